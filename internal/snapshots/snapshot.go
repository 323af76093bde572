// Package snapshots implements the macro snapshot domain for Pulse.
// Snapshots are periodic samples of headline economic indicators consumed
// by the dashboard for trend charts and baseline-delta history views.
package snapshots

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is one dated sample of headline indicators. Rows are written by
// an external ingestion job; this service only reads them.
type Snapshot struct {
	ID                    uuid.UUID `json:"id"`
	SnapshotDate          time.Time `json:"snapshot_date"`
	UnemploymentRate      *float64  `json:"unemployment_rate,omitempty"`
	MedianHouseholdIncome *float64  `json:"median_household_income,omitempty"`
	GiniIndex             *float64  `json:"gini_index,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}
