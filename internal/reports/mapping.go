package reports

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pulse-works/pulse/pkg/query"
	"github.com/pulse-works/pulse/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "reports", "r").
	Project("id", "ID").
	Project("created_at", "CreatedAt").
	Project("rating", "Rating").
	Project("summary", "Summary").
	Project("productivity_insight", "ProductivityInsight").
	Project("american_dream_impact", "AmericanDreamImpact").
	Project("prod_labor_score", "ProdLaborScore").
	Project("prod_labor_tooltip", "ProdLaborTooltip").
	Project("american_dream_score", "AmericanDreamScore").
	Project("american_dream_tooltip", "AmericanDreamTooltip").
	Project("series_id", "SeriesID").
	Project("series_title", "SeriesTitle").
	Project("series_data", "SeriesData")

// Dashboard history charts consume reports oldest first.
var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: false,
}

// Filters contains optional filtering criteria for report queries.
// Nil fields are ignored. SeriesID uses exact matching; MinRating
// filters to reports at or above the given rating.
type Filters struct {
	SeriesID  *string  `json:"series_id,omitempty"`
	MinRating *float64 `json:"min_rating,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("SeriesID", f.SeriesID).
		WhereGte("Rating", f.MinRating)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("series_id"); s != "" {
		f.SeriesID = &s
	}

	if mr := values.Get("min_rating"); mr != "" {
		if v, err := strconv.ParseFloat(mr, 64); err == nil {
			f.MinRating = &v
		}
	}

	return f
}

func scanReport(s repository.Scanner) (Report, error) {
	var r Report
	var seriesData []byte

	if err := s.Scan(
		&r.ID,
		&r.CreatedAt,
		&r.Rating,
		&r.Summary,
		&r.ProductivityInsight,
		&r.AmericanDreamImpact,
		&r.ProdLaborScore,
		&r.ProdLaborTooltip,
		&r.AmericanDreamScore,
		&r.AmericanDreamTooltip,
		&r.SeriesID,
		&r.SeriesTitle,
		&seriesData,
	); err != nil {
		return Report{}, err
	}

	if len(seriesData) > 0 {
		if err := json.Unmarshal(seriesData, &r.SeriesData); err != nil {
			return Report{}, fmt.Errorf("decode series_data: %w", err)
		}
	}

	return r, nil
}
