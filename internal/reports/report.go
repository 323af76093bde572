// Package reports implements the report domain for Pulse.
// It provides types, data access, and query endpoints for the immutable
// assessment records produced by pipeline runs.
package reports

import (
	"time"

	"github.com/google/uuid"
)

// SeriesPoint is a single dated observation attached to a report.
type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Report represents one persisted outcome of a pipeline run. Reports are
// immutable once written; there are no update or delete operations.
type Report struct {
	ID                   uuid.UUID     `json:"id"`
	CreatedAt            time.Time     `json:"created_at"`
	Rating               float64       `json:"rating"`
	Summary              string        `json:"summary"`
	ProductivityInsight  *string       `json:"productivity_insight,omitempty"`
	AmericanDreamImpact  *string       `json:"american_dream_impact,omitempty"`
	ProdLaborScore       *float64      `json:"prod_labor_score,omitempty"`
	ProdLaborTooltip     *string       `json:"prod_labor_tooltip,omitempty"`
	AmericanDreamScore   *float64      `json:"american_dream_score,omitempty"`
	AmericanDreamTooltip *string       `json:"american_dream_tooltip,omitempty"`
	SeriesID             *string       `json:"series_id,omitempty"`
	SeriesTitle          *string       `json:"series_title,omitempty"`
	SeriesData           []SeriesPoint `json:"series_data,omitempty"`
}

// CreateCommand carries the validated fields for a new report row.
// Optional fields are nil when the active schema version or the macro
// fetch did not produce them.
type CreateCommand struct {
	Rating               float64
	Summary              string
	ProductivityInsight  *string
	AmericanDreamImpact  *string
	ProdLaborScore       *float64
	ProdLaborTooltip     *string
	AmericanDreamScore   *float64
	AmericanDreamTooltip *string
	SeriesID             *string
	SeriesTitle          *string
	SeriesData           []SeriesPoint
}
