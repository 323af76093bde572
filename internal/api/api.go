// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/pulse-works/pulse/internal/config"
	"github.com/pulse-works/pulse/internal/infrastructure"
	"github.com/pulse-works/pulse/pkg/middleware"
	"github.com/pulse-works/pulse/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// The assembled Domain is returned alongside the module so callers can wire
// additional consumers of the pipeline runner, such as the scheduler.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, *Domain, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, domain, nil
}
