// Package config loads and finalizes the Pulse service configuration.
// A base config.toml (if present) is overlaid by config.<env>.toml selected
// via PULSE_ENV, then environment variables override individual values.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/pulse-works/pulse/internal/pipeline"
	"github.com/pulse-works/pulse/internal/scheduler"
	"github.com/pulse-works/pulse/pkg/archive"
	"github.com/pulse-works/pulse/pkg/database"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvPulseEnv             = "PULSE_ENV"
	EnvPulseShutdownTimeout = "PULSE_SHUTDOWN_TIMEOUT"
	EnvPulseVersion         = "PULSE_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "PULSE_DB_HOST",
	Port:            "PULSE_DB_PORT",
	Name:            "PULSE_DB_NAME",
	User:            "PULSE_DB_USER",
	Password:        "PULSE_DB_PASSWORD",
	SSLMode:         "PULSE_DB_SSL_MODE",
	MaxOpenConns:    "PULSE_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "PULSE_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "PULSE_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "PULSE_DB_CONN_TIMEOUT",
}

var archiveEnv = &archive.Env{
	Enabled:          "PULSE_ARCHIVE_ENABLED",
	ContainerName:    "PULSE_ARCHIVE_CONTAINER_NAME",
	ConnectionString: "PULSE_ARCHIVE_CONNECTION_STRING",
}

var pipelineEnv = &pipeline.Env{
	SchemaVersion:     "PULSE_PIPELINE_SCHEMA_VERSION",
	MaxPromptArticles: "PULSE_PIPELINE_MAX_PROMPT_ARTICLES",
}

var schedulerEnv = &scheduler.Env{
	Enabled:  "PULSE_SCHEDULER_ENABLED",
	Schedule: "PULSE_SCHEDULER_SCHEDULE",
}

// Config is the root configuration for the Pulse service.
type Config struct {
	Server          ServerConfig     `toml:"server"`
	Database        database.Config  `toml:"database"`
	Archive         archive.Config   `toml:"archive"`
	API             APIConfig        `toml:"api"`
	Sources         SourcesConfig    `toml:"sources"`
	Pipeline        pipeline.Config  `toml:"pipeline"`
	Scheduler       scheduler.Config `toml:"scheduler"`
	ShutdownTimeout string           `toml:"shutdown_timeout"`
	Version         string           `toml:"version"`
}

// Env returns the PULSE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvPulseEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Archive.Merge(&overlay.Archive)
	c.API.Merge(&overlay.API)
	c.Sources.Merge(&overlay.Sources)
	c.Pipeline.Merge(&overlay.Pipeline)
	c.Scheduler.Merge(&overlay.Scheduler)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Archive.Finalize(archiveEnv); err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Sources.Finalize(); err != nil {
		return fmt.Errorf("sources: %w", err)
	}
	if err := c.Pipeline.Finalize(pipelineEnv); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if err := c.Scheduler.Finalize(schedulerEnv); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvPulseShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvPulseVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvPulseEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
