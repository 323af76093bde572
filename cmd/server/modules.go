package main

import (
	"encoding/json"
	"net/http"

	"github.com/pulse-works/pulse/internal/api"
	"github.com/pulse-works/pulse/internal/config"
	"github.com/pulse-works/pulse/internal/infrastructure"
	"github.com/pulse-works/pulse/internal/scheduler"
	"github.com/pulse-works/pulse/pkg/module"
)

type Modules struct {
	API       *module.Module
	Scheduler *scheduler.Scheduler
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, domain, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	sched := scheduler.New(cfg.Scheduler, domain.Runner, infra.Logger)

	return &Modules{
		API:       apiModule,
		Scheduler: sched,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	return router
}
