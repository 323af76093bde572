package pipeline

import (
	"fmt"
	"unicode/utf8"
)

// SchemaVersion selects which required-field set and bounds apply to the
// model's JSON output. The contract evolved; V3 is the target and earlier
// shapes remain only so historical rows stay renderable.
type SchemaVersion string

const (
	// SchemaV1 requires rating and summary only.
	SchemaV1 SchemaVersion = "v1"
	// SchemaV2 adds the productivity_insight and american_dream_impact narratives.
	SchemaV2 SchemaVersion = "v2"
	// SchemaV3 adds paired score and tooltip fields. Latest and default.
	SchemaV3 SchemaVersion = "v3"
)

const (
	ratingMin = 1
	ratingMax = 10
	scoreMin  = 0
	scoreMax  = 100

	maxTooltipLen = 120
)

// Assessment holds the validated model output. Optional fields are nil
// when the active schema version does not require them.
type Assessment struct {
	Rating               float64
	Summary              string
	ProductivityInsight  *string
	AmericanDreamImpact  *string
	ProdLaborScore       *float64
	ProdLaborTooltip     *string
	AmericanDreamScore   *float64
	AmericanDreamTooltip *string
}

// Valid reports whether v names a known schema version.
func (v SchemaVersion) Valid() bool {
	switch v {
	case SchemaV1, SchemaV2, SchemaV3:
		return true
	}
	return false
}

// Validate checks raw model output against the schema version and returns
// the typed assessment. raw must come from a successful JSON parse; every
// violation here is a ValidationError, never a ParseError.
func Validate(raw map[string]any, version SchemaVersion, rawText string) (*Assessment, error) {
	rating, err := requireNumber(raw, "rating", ratingMin, ratingMax, rawText)
	if err != nil {
		return nil, err
	}

	summary, err := requireString(raw, "summary", rawText)
	if err != nil {
		return nil, err
	}

	a := &Assessment{
		Rating:  rating,
		Summary: summary,
	}

	switch version {
	case SchemaV1:
		return a, nil

	case SchemaV2:
		insight, err := requireString(raw, "productivity_insight", rawText)
		if err != nil {
			return nil, err
		}
		impact, err := requireString(raw, "american_dream_impact", rawText)
		if err != nil {
			return nil, err
		}
		a.ProductivityInsight = &insight
		a.AmericanDreamImpact = &impact
		return a, nil

	case SchemaV3:
		prodScore, err := requireNumber(raw, "prod_labor_score", scoreMin, scoreMax, rawText)
		if err != nil {
			return nil, err
		}
		prodTip, err := requireString(raw, "prod_labor_tip", rawText)
		if err != nil {
			return nil, err
		}
		dreamScore, err := requireNumber(raw, "american_dream_score", scoreMin, scoreMax, rawText)
		if err != nil {
			return nil, err
		}
		dreamTip, err := requireString(raw, "american_dream_tooltip", rawText)
		if err != nil {
			return nil, err
		}

		prodTip = truncate(prodTip, maxTooltipLen)
		dreamTip = truncate(dreamTip, maxTooltipLen)

		a.ProdLaborScore = &prodScore
		a.ProdLaborTooltip = &prodTip
		a.AmericanDreamScore = &dreamScore
		a.AmericanDreamTooltip = &dreamTip
		return a, nil
	}

	return nil, &ValidationError{
		Constraint: fmt.Sprintf("unknown schema version %q", version),
		Raw:        rawText,
	}
}

func requireNumber(raw map[string]any, field string, min, max float64, rawText string) (float64, error) {
	value, ok := raw[field]
	if !ok || value == nil {
		return 0, &ValidationError{
			Constraint: fmt.Sprintf("%s is required", field),
			Raw:        rawText,
		}
	}

	// json.Unmarshal into map[string]any yields float64 for every number.
	n, ok := value.(float64)
	if !ok {
		return 0, &ValidationError{
			Constraint: fmt.Sprintf("%s must be numeric", field),
			Raw:        rawText,
		}
	}

	if n < min || n > max {
		return 0, &ValidationError{
			Constraint: fmt.Sprintf("%s must be within [%g, %g]: %g", field, min, max, n),
			Raw:        rawText,
		}
	}

	return n, nil
}

func requireString(raw map[string]any, field, rawText string) (string, error) {
	value, ok := raw[field]
	if !ok || value == nil {
		return "", &ValidationError{
			Constraint: fmt.Sprintf("%s is required", field),
			Raw:        rawText,
		}
	}

	s, ok := value.(string)
	if !ok {
		return "", &ValidationError{
			Constraint: fmt.Sprintf("%s must be a string", field),
			Raw:        rawText,
		}
	}

	if s == "" {
		return "", &ValidationError{
			Constraint: fmt.Sprintf("%s must not be empty", field),
			Raw:        rawText,
		}
	}

	return s, nil
}

// truncate bounds s to max runes. The tooltip columns are VARCHAR(120),
// which Postgres measures in characters, so cutting bytes would both
// over-trim and risk splitting a multi-byte rune.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
