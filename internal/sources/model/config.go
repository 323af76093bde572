package model

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// MaxTemperature caps sampling temperature; report generation needs
// deterministic, schema-conforming output.
const MaxTemperature = 0.4

// Config holds chat completion endpoint and sampling parameters.
type Config struct {
	BaseURL           string  `toml:"base_url"`
	APIKey            string  `toml:"api_key"`
	Name              string  `toml:"name"`
	Temperature       float64 `toml:"temperature"`
	MaxTokens         int     `toml:"max_tokens"`
	Timeout           string  `toml:"timeout"`
	RequestsPerMinute int     `toml:"requests_per_minute"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	BaseURL           string
	APIKey            string
	Name              string
	Temperature       string
	MaxTokens         string
	Timeout           string
	RequestsPerMinute string
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
	if overlay.Name != "" {
		c.Name = overlay.Name
	}
	if overlay.Temperature != 0 {
		c.Temperature = overlay.Temperature
	}
	if overlay.MaxTokens != 0 {
		c.MaxTokens = overlay.MaxTokens
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.RequestsPerMinute != 0 {
		c.RequestsPerMinute = overlay.RequestsPerMinute
	}
}

func (c *Config) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.openai.com/v1"
	}
	if c.Name == "" {
		c.Name = "gpt-4o-mini"
	}
	if c.Temperature == 0 {
		c.Temperature = 0.3
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 2200
	}
	if c.Timeout == "" {
		c.Timeout = "2m"
	}
	if c.RequestsPerMinute == 0 {
		c.RequestsPerMinute = 20
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
	if env.Name != "" {
		if v := os.Getenv(env.Name); v != "" {
			c.Name = v
		}
	}
	if env.Temperature != "" {
		if v := os.Getenv(env.Temperature); v != "" {
			if t, err := strconv.ParseFloat(v, 64); err == nil {
				c.Temperature = t
			}
		}
	}
	if env.MaxTokens != "" {
		if v := os.Getenv(env.MaxTokens); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.MaxTokens = n
			}
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
	if env.RequestsPerMinute != "" {
		if v := os.Getenv(env.RequestsPerMinute); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.RequestsPerMinute = n
			}
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
	if c.Temperature < 0 || c.Temperature > MaxTemperature {
		return fmt.Errorf("temperature must be within [0, %.1f]: %.2f", MaxTemperature, c.Temperature)
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("max_tokens must be positive")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
