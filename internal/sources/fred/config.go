package fred

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds FRED API connection and observation window parameters.
type Config struct {
	BaseURL          string `toml:"base_url"`
	APIKey           string `toml:"api_key"`
	ObservationStart string `toml:"observation_start"`
	MaxPoints        int    `toml:"max_points"`
	Timeout          string `toml:"timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	BaseURL          string
	APIKey           string
	ObservationStart string
	MaxPoints        string
	Timeout          string
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
	if overlay.ObservationStart != "" {
		c.ObservationStart = overlay.ObservationStart
	}
	if overlay.MaxPoints != 0 {
		c.MaxPoints = overlay.MaxPoints
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *Config) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.stlouisfed.org/fred"
	}
	if c.ObservationStart == "" {
		c.ObservationStart = "2020-01-01"
	}
	if c.MaxPoints <= 0 {
		c.MaxPoints = 60
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
	if env.ObservationStart != "" {
		if v := os.Getenv(env.ObservationStart); v != "" {
			c.ObservationStart = v
		}
	}
	if env.MaxPoints != "" {
		if v := os.Getenv(env.MaxPoints); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.MaxPoints = n
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
	if _, err := time.Parse("2006-01-02", c.ObservationStart); err != nil {
		return fmt.Errorf("invalid observation_start: %w", err)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
