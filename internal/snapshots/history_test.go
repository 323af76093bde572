package snapshots_test

import (
	"testing"
	"time"

	"github.com/pulse-works/pulse/internal/snapshots"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func ptr(v float64) *float64 { return &v }

func findMetric(t *testing.T, deltas []snapshots.MetricDelta, name string) snapshots.MetricDelta {
	t.Helper()
	for _, d := range deltas {
		if d.Metric == name {
			return d
		}
	}
	t.Fatalf("metric %s missing from history", name)
	return snapshots.MetricDelta{}
}

func TestComputeHistoryDeltas(t *testing.T) {
	items := []snapshots.Snapshot{
		{
			SnapshotDate:          date("2024-12-01"),
			UnemploymentRate:      ptr(4.5),
			MedianHouseholdIncome: ptr(79000),
		},
		{
			SnapshotDate:          date("2025-01-15"),
			UnemploymentRate:      ptr(4.2),
			MedianHouseholdIncome: ptr(80000),
			GiniIndex:             ptr(0.48),
		},
		{
			SnapshotDate:     date("2025-06-01"),
			UnemploymentRate: ptr(3.9),
		},
		{
			SnapshotDate:          date("2026-01-01"),
			UnemploymentRate:      ptr(4.0),
			MedianHouseholdIncome: ptr(83000),
		},
	}

	deltas := snapshots.ComputeHistory(items, date("2025-01-01"))

	// Baseline is the first sample on or after 2025-01-01; the 2024 row is excluded.
	unemployment := findMetric(t, deltas, "unemployment_rate")
	if unemployment.Baseline == nil || unemployment.Baseline.Value != 4.2 {
		t.Fatalf("unemployment baseline: got %+v, want 4.2", unemployment.Baseline)
	}
	if unemployment.Latest == nil || unemployment.Latest.Value != 4.0 {
		t.Fatalf("unemployment latest: got %+v, want 4.0", unemployment.Latest)
	}
	if unemployment.Delta == nil || *unemployment.Delta != 4.0-4.2 {
		t.Errorf("unemployment delta: got %v, want -0.2", unemployment.Delta)
	}
	// Falling unemployment is an improvement.
	if unemployment.Improved == nil || !*unemployment.Improved {
		t.Error("falling unemployment must report improved")
	}

	income := findMetric(t, deltas, "median_household_income")
	if income.Delta == nil || *income.Delta != 3000 {
		t.Errorf("income delta: got %v, want 3000", income.Delta)
	}
	if income.Improved == nil || !*income.Improved {
		t.Error("rising income must report improved")
	}
}

func TestComputeHistoryMissingEndpoints(t *testing.T) {
	items := []snapshots.Snapshot{
		{SnapshotDate: date("2025-02-01"), UnemploymentRate: ptr(4.2)},
	}

	deltas := snapshots.ComputeHistory(items, date("2025-01-01"))

	// Gini never appears; delta must be nil, not zero.
	gini := findMetric(t, deltas, "gini_index")
	if gini.Baseline != nil || gini.Latest != nil || gini.Delta != nil {
		t.Errorf("gini: got %+v, want all nil", gini)
	}
}

func TestComputeHistorySingleSample(t *testing.T) {
	items := []snapshots.Snapshot{
		{SnapshotDate: date("2025-03-01"), GiniIndex: ptr(0.47)},
	}

	deltas := snapshots.ComputeHistory(items, date("2025-01-01"))

	// One sample serves as both endpoints; delta is zero, not nil.
	gini := findMetric(t, deltas, "gini_index")
	if gini.Delta == nil || *gini.Delta != 0 {
		t.Errorf("gini delta: got %v, want 0", gini.Delta)
	}
	if gini.Improved == nil || *gini.Improved {
		t.Error("zero delta must not report improved")
	}
}

func TestComputeHistoryAllBeforeBaseline(t *testing.T) {
	items := []snapshots.Snapshot{
		{SnapshotDate: date("2024-06-01"), UnemploymentRate: ptr(4.5)},
		{SnapshotDate: date("2024-12-01"), UnemploymentRate: ptr(4.4)},
	}

	deltas := snapshots.ComputeHistory(items, date("2025-01-01"))

	unemployment := findMetric(t, deltas, "unemployment_rate")
	if unemployment.Delta != nil {
		t.Errorf("delta: got %v, want nil when all samples predate baseline", unemployment.Delta)
	}
}

func TestComputeScoreHistory(t *testing.T) {
	items := []snapshots.ScoreSample{
		{Date: date("2024-11-01"), ProdLabor: ptr(40)},
		{Date: date("2025-02-01"), ProdLabor: ptr(50), AmericanDream: ptr(60)},
		{Date: date("2025-08-01"), ProdLabor: ptr(58), AmericanDream: ptr(52)},
	}

	deltas := snapshots.ComputeScoreHistory(items, date("2025-01-01"))

	prodLabor := findMetric(t, deltas, "prod_labor_score")
	if !prodLabor.HigherIsBetter {
		t.Error("prod_labor_score must be higher-is-better")
	}
	// The 2024 report predates the baseline and is excluded.
	if prodLabor.Delta == nil || *prodLabor.Delta != 8 {
		t.Errorf("prod_labor delta: got %v, want 8", prodLabor.Delta)
	}
	if prodLabor.Improved == nil || !*prodLabor.Improved {
		t.Error("rising prod_labor_score must report improved")
	}

	dream := findMetric(t, deltas, "american_dream_score")
	if dream.Delta == nil || *dream.Delta != -8 {
		t.Errorf("american_dream delta: got %v, want -8", dream.Delta)
	}
	if dream.Improved == nil || *dream.Improved {
		t.Error("falling american_dream_score must not report improved")
	}
}

func TestComputeScoreHistoryMissingScores(t *testing.T) {
	items := []snapshots.ScoreSample{
		{Date: date("2025-02-01")},
		{Date: date("2025-03-01")},
	}

	deltas := snapshots.ComputeScoreHistory(items, date("2025-01-01"))

	for _, name := range []string{"prod_labor_score", "american_dream_score"} {
		m := findMetric(t, deltas, name)
		if m.Delta != nil {
			t.Errorf("%s delta: got %v, want nil when no report carries scores", name, m.Delta)
		}
	}
}

func TestComputeHistoryDirection(t *testing.T) {
	tests := []struct {
		name         string
		metric       string
		baseline     float64
		latest       float64
		wantImproved bool
	}{
		{"unemployment rising regresses", "unemployment_rate", 4.0, 4.5, false},
		{"unemployment falling improves", "unemployment_rate", 4.5, 4.0, true},
		{"gini rising regresses", "gini_index", 0.45, 0.48, false},
		{"gini falling improves", "gini_index", 0.48, 0.45, true},
		{"income rising improves", "median_household_income", 80000, 82000, true},
		{"income falling regresses", "median_household_income", 82000, 80000, false},
	}

	set := func(s *snapshots.Snapshot, metric string, v float64) {
		switch metric {
		case "unemployment_rate":
			s.UnemploymentRate = ptr(v)
		case "gini_index":
			s.GiniIndex = ptr(v)
		case "median_household_income":
			s.MedianHouseholdIncome = ptr(v)
		}
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := snapshots.Snapshot{SnapshotDate: date("2025-01-15")}
			last := snapshots.Snapshot{SnapshotDate: date("2025-07-15")}
			set(&first, tt.metric, tt.baseline)
			set(&last, tt.metric, tt.latest)

			deltas := snapshots.ComputeHistory(
				[]snapshots.Snapshot{first, last},
				date("2025-01-01"),
			)

			m := findMetric(t, deltas, tt.metric)
			if m.Improved == nil || *m.Improved != tt.wantImproved {
				t.Errorf("improved: got %v, want %v", m.Improved, tt.wantImproved)
			}
		})
	}
}
