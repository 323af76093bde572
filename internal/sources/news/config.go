package news

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultQuery = `"artificial intelligence" AND (labor OR jobs OR economy OR workforce OR employment)`

// Config holds news API connection and query parameters.
type Config struct {
	BaseURL  string `toml:"base_url"`
	APIKey   string `toml:"api_key"`
	Query    string `toml:"query"`
	Language string `toml:"language"`
	SortBy   string `toml:"sort_by"`
	PageSize int    `toml:"page_size"`
	Timeout  string `toml:"timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	BaseURL  string
	APIKey   string
	Query    string
	Language string
	SortBy   string
	PageSize string
	Timeout  string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate(env)
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Query != "" {
		c.Query = overlay.Query
	}
	if overlay.Language != "" {
		c.Language = overlay.Language
	}
	if overlay.SortBy != "" {
		c.SortBy = overlay.SortBy
	}
	if overlay.PageSize != 0 {
		c.PageSize = overlay.PageSize
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *Config) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://newsapi.org/v2"
	}
	if c.Query == "" {
		c.Query = defaultQuery
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.SortBy == "" {
		c.SortBy = "publishedAt"
	}
	if c.PageSize <= 0 {
		c.PageSize = 25
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.BaseURL != "" {
		if v := os.Getenv(env.BaseURL); v != "" {
			c.BaseURL = v
		}
	}
	if env.APIKey != "" {
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
	}
	if env.Query != "" {
		if v := os.Getenv(env.Query); v != "" {
			c.Query = v
		}
	}
	if env.Language != "" {
		if v := os.Getenv(env.Language); v != "" {
			c.Language = v
		}
	}
	if env.SortBy != "" {
		if v := os.Getenv(env.SortBy); v != "" {
			c.SortBy = v
		}
	}
	if env.PageSize != "" {
		if v := os.Getenv(env.PageSize); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.PageSize = n
			}
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
}

func (c *Config) validate(env *Env) error {
	if c.APIKey == "" {
		if env != nil && env.APIKey != "" {
			return fmt.Errorf("api_key required (%s)", env.APIKey)
		}
		return fmt.Errorf("api_key required")
	}
	if c.PageSize > 100 {
		return fmt.Errorf("page_size cannot exceed 100")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
