package snapshots

import (
	"net/url"

	"github.com/pulse-works/pulse/pkg/query"
	"github.com/pulse-works/pulse/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "macro_snapshots", "s").
	Project("id", "ID").
	Project("snapshot_date", "SnapshotDate").
	Project("unemployment_rate", "UnemploymentRate").
	Project("median_household_income", "MedianHouseholdIncome").
	Project("gini_index", "GiniIndex").
	Project("created_at", "CreatedAt")

// Charts consume snapshots oldest first.
var defaultSort = query.SortField{
	Field:      "SnapshotDate",
	Descending: false,
}

// Filters contains optional filtering criteria for snapshot queries.
// From filters to snapshots dated on or after the given date.
type Filters struct {
	From *string `json:"from,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereGte("SnapshotDate", f.From)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if from := values.Get("from"); from != "" {
		f.From = &from
	}

	return f
}

func scanSnapshot(s repository.Scanner) (Snapshot, error) {
	var snap Snapshot

	if err := s.Scan(
		&snap.ID,
		&snap.SnapshotDate,
		&snap.UnemploymentRate,
		&snap.MedianHouseholdIncome,
		&snap.GiniIndex,
		&snap.CreatedAt,
	); err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}
