package snapshots

import "time"

// DefaultBaseline is the reference date history deltas are measured from.
const DefaultBaseline = "2025-01-01"

// Sample is a dated value for a single metric.
type Sample struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// MetricDelta reports the change in one metric between the first sample on
// or after the baseline date and the latest sample. Delta is nil when either
// endpoint is missing. Improved reflects the metric's direction: unemployment
// and Gini improve when they fall, income improves when it rises.
type MetricDelta struct {
	Metric         string   `json:"metric"`
	HigherIsBetter bool     `json:"higher_is_better"`
	Baseline       *Sample  `json:"baseline,omitempty"`
	Latest         *Sample  `json:"latest,omitempty"`
	Delta          *float64 `json:"delta,omitempty"`
	Improved       *bool    `json:"improved,omitempty"`
}

type metric struct {
	name           string
	higherIsBetter bool
	value          func(Snapshot) *float64
}

var metrics = []metric{
	{
		name:           "unemployment_rate",
		higherIsBetter: false,
		value:          func(s Snapshot) *float64 { return s.UnemploymentRate },
	},
	{
		name:           "median_household_income",
		higherIsBetter: true,
		value:          func(s Snapshot) *float64 { return s.MedianHouseholdIncome },
	},
	{
		name:           "gini_index",
		higherIsBetter: false,
		value:          func(s Snapshot) *float64 { return s.GiniIndex },
	},
}

// ComputeHistory derives per-metric deltas from snapshots sorted ascending
// by snapshot_date. The baseline sample for a metric is the first snapshot
// on or after the baseline date that carries a value for it; the latest
// sample is the last such snapshot.
func ComputeHistory(items []Snapshot, baseline time.Time) []MetricDelta {
	results := make([]MetricDelta, 0, len(metrics))

	for _, m := range metrics {
		d := MetricDelta{
			Metric:         m.name,
			HigherIsBetter: m.higherIsBetter,
		}

		for _, s := range items {
			v := m.value(s)
			if v == nil || s.SnapshotDate.Before(baseline) {
				continue
			}
			d.observe(Sample{Date: s.SnapshotDate.Format("2006-01-02"), Value: *v})
		}

		d.finalize()
		results = append(results, d)
	}

	return results
}

// ScoreSample carries the composite scores of one stored report.
type ScoreSample struct {
	Date          time.Time
	ProdLabor     *float64
	AmericanDream *float64
}

var scoreMetrics = []struct {
	name  string
	value func(ScoreSample) *float64
}{
	{
		name:  "prod_labor_score",
		value: func(s ScoreSample) *float64 { return s.ProdLabor },
	},
	{
		name:  "american_dream_score",
		value: func(s ScoreSample) *float64 { return s.AmericanDream },
	},
}

// ComputeScoreHistory derives deltas for the composite report scores, which
// both improve as they rise. Samples must be sorted ascending by date.
func ComputeScoreHistory(items []ScoreSample, baseline time.Time) []MetricDelta {
	results := make([]MetricDelta, 0, len(scoreMetrics))

	for _, m := range scoreMetrics {
		d := MetricDelta{
			Metric:         m.name,
			HigherIsBetter: true,
		}

		for _, s := range items {
			v := m.value(s)
			if v == nil || s.Date.Before(baseline) {
				continue
			}
			d.observe(Sample{Date: s.Date.Format("2006-01-02"), Value: *v})
		}

		d.finalize()
		results = append(results, d)
	}

	return results
}

func (d *MetricDelta) observe(sample Sample) {
	if d.Baseline == nil {
		b := sample
		d.Baseline = &b
	}
	l := sample
	d.Latest = &l
}

func (d *MetricDelta) finalize() {
	if d.Baseline == nil || d.Latest == nil {
		return
	}

	delta := d.Latest.Value - d.Baseline.Value
	d.Delta = &delta

	improved := delta > 0 == d.HigherIsBetter
	if delta == 0 {
		improved = false
	}
	d.Improved = &improved
}
