package scheduler

import (
	"fmt"
	"os"

	"github.com/robfig/cron/v3"
)

// Config holds scheduled pipeline run parameters. Scheduling is disabled
// by default; runs are normally triggered on demand.
type Config struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Enabled  string
	Schedule string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.Schedule != "" {
		c.Schedule = overlay.Schedule
	}
}

func (c *Config) loadDefaults() {
	if c.Schedule == "" {
		c.Schedule = "0 6 * * *"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Enabled != "" {
		if v := os.Getenv(env.Enabled); v != "" {
			c.Enabled = v == "true" || v == "1"
		}
	}
	if env.Schedule != "" {
		if v := os.Getenv(env.Schedule); v != "" {
			c.Schedule = v
		}
	}
}

func (c *Config) validate() error {
	if !c.Enabled {
		return nil
	}
	if _, err := cron.ParseStandard(c.Schedule); err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}
	return nil
}
