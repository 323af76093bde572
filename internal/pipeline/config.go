package pipeline

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds pipeline orchestration parameters.
type Config struct {
	SchemaVersion     string `toml:"schema_version"`
	MaxPromptArticles int    `toml:"max_prompt_articles"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	SchemaVersion     string
	MaxPromptArticles string
}

// Version returns the configured schema version.
func (c *Config) Version() SchemaVersion {
	return SchemaVersion(c.SchemaVersion)
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
	if overlay.SchemaVersion != "" {
		c.SchemaVersion = overlay.SchemaVersion
	}
	if overlay.MaxPromptArticles != 0 {
		c.MaxPromptArticles = overlay.MaxPromptArticles
	}
}

func (c *Config) loadDefaults() {
	if c.SchemaVersion == "" {
		c.SchemaVersion = string(SchemaV3)
	}
	if c.MaxPromptArticles <= 0 {
		c.MaxPromptArticles = 15
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.SchemaVersion != "" {
		if v := os.Getenv(env.SchemaVersion); v != "" {
			c.SchemaVersion = v
		}
	}
	if env.MaxPromptArticles != "" {
		if v := os.Getenv(env.MaxPromptArticles); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.MaxPromptArticles = n
			}
		}
	}
}

func (c *Config) validate() error {
	if !c.Version().Valid() {
		return fmt.Errorf("unknown schema_version: %s", c.SchemaVersion)
	}
	return nil
}
