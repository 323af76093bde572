package config

import (
	"fmt"

	"github.com/pulse-works/pulse/internal/sources/fred"
	"github.com/pulse-works/pulse/internal/sources/model"
	"github.com/pulse-works/pulse/internal/sources/news"
)

var newsEnv = &news.Env{
	BaseURL:  "PULSE_NEWS_BASE_URL",
	APIKey:   "PULSE_NEWS_API_KEY",
	Query:    "PULSE_NEWS_QUERY",
	Language: "PULSE_NEWS_LANGUAGE",
	SortBy:   "PULSE_NEWS_SORT_BY",
	PageSize: "PULSE_NEWS_PAGE_SIZE",
	Timeout:  "PULSE_NEWS_TIMEOUT",
}

var fredEnv = &fred.Env{
	BaseURL:          "PULSE_FRED_BASE_URL",
	APIKey:           "PULSE_FRED_API_KEY",
	ObservationStart: "PULSE_FRED_OBSERVATION_START",
	MaxPoints:        "PULSE_FRED_MAX_POINTS",
	Timeout:          "PULSE_FRED_TIMEOUT",
}

var modelEnv = &model.Env{
	BaseURL:           "PULSE_MODEL_BASE_URL",
	APIKey:            "PULSE_MODEL_API_KEY",
	Name:              "PULSE_MODEL_NAME",
	Temperature:       "PULSE_MODEL_TEMPERATURE",
	MaxTokens:         "PULSE_MODEL_MAX_TOKENS",
	Timeout:           "PULSE_MODEL_TIMEOUT",
	RequestsPerMinute: "PULSE_MODEL_REQUESTS_PER_MINUTE",
}

// SourcesConfig holds the three external source configurations.
type SourcesConfig struct {
	News  news.Config  `toml:"news"`
	Fred  fred.Config  `toml:"fred"`
	Model model.Config `toml:"model"`
}

// Finalize applies defaults, environment variable overrides, and validation
// across all three sources. A missing credential fails here, before any
// network call is possible.
func (c *SourcesConfig) Finalize() error {
	if err := c.News.Finalize(newsEnv); err != nil {
		return fmt.Errorf("news: %w", err)
	}
	if err := c.Fred.Finalize(fredEnv); err != nil {
		return fmt.Errorf("fred: %w", err)
	}
	if err := c.Model.Finalize(modelEnv); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across all sources.
func (c *SourcesConfig) Merge(overlay *SourcesConfig) {
	c.News.Merge(&overlay.News)
	c.Fred.Merge(&overlay.Fred)
	c.Model.Merge(&overlay.Model)
}
