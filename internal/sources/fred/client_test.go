package fred_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pulse-works/pulse/internal/sources/fred"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(baseURL string) *fred.Config {
	cfg := &fred.Config{
		BaseURL: baseURL,
		APIKey:  "test-key",
	}
	if err := cfg.Finalize(nil); err != nil {
		panic(err)
	}
	return cfg
}

type rawObservation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

// buildObservations produces 80 monthly samples with 5 sentinel "." values
// scattered through them, leaving 75 valid points.
func buildObservations() []rawObservation {
	obs := make([]rawObservation, 0, 80)
	for i := range 80 {
		value := fmt.Sprintf("%.1f", 3.5+float64(i)*0.1)
		if i%16 == 3 {
			value = "."
		}
		obs = append(obs, rawObservation{
			Date:  fmt.Sprintf("%04d-%02d-01", 2019+i/12, i%12+1),
			Value: value,
		})
	}
	return obs
}

func TestObservationsFiltersAndWindows(t *testing.T) {
	var gotQuery map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"series_id":         r.URL.Query().Get("series_id"),
			"file_type":         r.URL.Query().Get("file_type"),
			"observation_start": r.URL.Query().Get("observation_start"),
		}
		json.NewEncoder(w).Encode(map[string]any{"observations": buildObservations()})
	}))
	defer server.Close()

	client := fred.NewClient(testConfig(server.URL), testLogger())

	observations, err := client.Observations(context.Background(), "UNRATE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery["series_id"] != "UNRATE" {
		t.Errorf("series_id: got %s, want UNRATE", gotQuery["series_id"])
	}
	if gotQuery["file_type"] != "json" {
		t.Errorf("file_type: got %s, want json", gotQuery["file_type"])
	}
	if gotQuery["observation_start"] != "2020-01-01" {
		t.Errorf("observation_start: got %s, want 2020-01-01", gotQuery["observation_start"])
	}

	// 80 raw - 5 sentinels = 75 valid, windowed to the newest 60.
	if len(observations) != 60 {
		t.Fatalf("observations: got %d, want 60", len(observations))
	}

	for i := 1; i < len(observations); i++ {
		if observations[i].Date <= observations[i-1].Date {
			t.Fatalf("dates not ascending at %d: %s then %s",
				i, observations[i-1].Date, observations[i].Date)
		}
	}
}

func TestObservationsDropsUnparseableValues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"observations": []rawObservation{
				{Date: "2024-01-01", Value: "3.7"},
				{Date: "2024-02-01", Value: "."},
				{Date: "2024-03-01", Value: "n/a"},
				{Date: "2024-04-01", Value: "3.9"},
			},
		})
	}))
	defer server.Close()

	client := fred.NewClient(testConfig(server.URL), testLogger())

	observations, err := client.Observations(context.Background(), "UNRATE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(observations) != 2 {
		t.Fatalf("observations: got %d, want 2", len(observations))
	}
	if observations[0].Value != 3.7 || observations[1].Value != 3.9 {
		t.Errorf("values: got %v/%v, want 3.7/3.9", observations[0].Value, observations[1].Value)
	}
}

func TestObservationsEmptyAfterFilteringIsNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"observations": []rawObservation{
				{Date: "2024-01-01", Value: "."},
			},
		})
	}))
	defer server.Close()

	client := fred.NewClient(testConfig(server.URL), testLogger())

	observations, err := client.Observations(context.Background(), "AWHAETP")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(observations) != 0 {
		t.Errorf("observations: got %d, want 0", len(observations))
	}
}

func TestObservationsStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad api key", http.StatusForbidden)
	}))
	defer server.Close()

	client := fred.NewClient(testConfig(server.URL), testLogger())

	_, err := client.Observations(context.Background(), "UNRATE")

	var statusErr *fred.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error: got %v, want StatusError", err)
	}
	if statusErr.StatusCode != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", statusErr.StatusCode)
	}
}

func TestRandomSelectorStaysInPool(t *testing.T) {
	for range 50 {
		s := fred.RandomSelector(fred.Pool)
		found := false
		for _, p := range fred.Pool {
			if p.ID == s.ID {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("selected series %s not in pool", s.ID)
		}
	}
}
