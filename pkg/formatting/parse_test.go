package formatting_test

import (
	"errors"
	"testing"

	"github.com/pulse-works/pulse/pkg/formatting"
)

type assessment struct {
	Rating  float64 `json:"rating"`
	Summary string  `json:"summary"`
}

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantRating float64
		wantErr    bool
	}{
		{
			name:       "plain json",
			content:    `{"rating": 7.2, "summary": "steady"}`,
			wantRating: 7.2,
		},
		{
			name:       "json fence",
			content:    "```json\n{\"rating\": 7.2, \"summary\": \"steady\"}\n```",
			wantRating: 7.2,
		},
		{
			name:       "bare fence",
			content:    "```\n{\"rating\": 4, \"summary\": \"mixed\"}\n```",
			wantRating: 4,
		},
		{
			name:       "surrounding whitespace",
			content:    "\n\n  {\"rating\": 9, \"summary\": \"strong\"}  \n",
			wantRating: 9,
		},
		{
			name:    "prose",
			content: "The outlook is positive overall.",
			wantErr: true,
		},
		{
			name:    "fenced prose",
			content: "```json\nnot actually json\n```",
			wantErr: true,
		},
		{
			name:    "empty",
			content: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := formatting.Parse[assessment](tt.content)

			if tt.wantErr {
				if !errors.Is(err, formatting.ErrParseFailed) {
					t.Fatalf("error: got %v, want ErrParseFailed", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Rating != tt.wantRating {
				t.Errorf("rating: got %v, want %v", result.Rating, tt.wantRating)
			}
		})
	}
}

func TestParseIntoMap(t *testing.T) {
	result, err := formatting.Parse[map[string]any]("```json\n{\"rating\": \"high\"}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Wrong-typed fields survive parsing; schema validation catches them later.
	if result["rating"] != "high" {
		t.Errorf("rating: got %v, want high", result["rating"])
	}
}
