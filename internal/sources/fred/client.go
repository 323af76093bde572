// Package fred fetches macroeconomic observations from the FRED API.
package fred

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Observation is a single dated sample from a FRED series.
type Observation struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// StatusError indicates a non-2xx response from the FRED API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fred api returned status %d: %s", e.StatusCode, e.Body)
}

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// Client queries the FRED series/observations endpoint.
type Client struct {
	cfg    *Config
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates a FRED client from the given configuration.
func NewClient(cfg *Config, logger *slog.Logger) *Client {
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.TimeoutDuration(),
		},
		logger: logger.With("system", "fred"),
	}
}

// Observations retrieves samples for a series since the configured
// observation start. FRED reports missing samples with the value ".";
// those and any other unparseable values are dropped. The result keeps
// the newest MaxPoints samples in ascending date order. An empty result
// after filtering is not an error.
func (c *Client) Observations(ctx context.Context, seriesID string) ([]Observation, error) {
	endpoint, err := c.buildURL(seriesID)
	if err != nil {
		return nil, fmt.Errorf("build fred url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create fred request: %w", err)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch fred series %s: %w", seriesID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read fred response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var parsed observationsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode fred response: %w", err)
	}

	observations := make([]Observation, 0, len(parsed.Observations))
	for _, obs := range parsed.Observations {
		if obs.Value == "." {
			continue
		}
		value, err := strconv.ParseFloat(obs.Value, 64)
		if err != nil {
			continue
		}
		observations = append(observations, Observation{
			Date:  obs.Date,
			Value: value,
		})
	}

	// FRED returns ascending dates; keep only the newest window.
	if len(observations) > c.cfg.MaxPoints {
		observations = observations[len(observations)-c.cfg.MaxPoints:]
	}

	c.logger.Info("fetched observations",
		"series", seriesID,
		"count", len(observations),
		"elapsed", time.Since(started),
	)

	return observations, nil
}

func (c *Client) buildURL(seriesID string) (string, error) {
	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", err
	}
	base = base.JoinPath("series", "observations")

	q := base.Query()
	q.Set("series_id", seriesID)
	q.Set("api_key", c.cfg.APIKey)
	q.Set("file_type", "json")
	q.Set("observation_start", c.cfg.ObservationStart)
	base.RawQuery = q.Encode()

	return base.String(), nil
}
