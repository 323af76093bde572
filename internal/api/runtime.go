package api

import (
	"github.com/pulse-works/pulse/internal/config"
	"github.com/pulse-works/pulse/internal/infrastructure"
	"github.com/pulse-works/pulse/internal/pipeline"
	"github.com/pulse-works/pulse/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Sources    config.SourcesConfig
	Pipeline   pipeline.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Archive:   infra.Archive,
		},
		Pagination: cfg.API.Pagination,
		Sources:    cfg.Sources,
		Pipeline:   cfg.Pipeline,
	}
}
