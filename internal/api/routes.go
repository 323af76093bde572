package api

import (
	"net/http"

	"github.com/pulse-works/pulse/internal/pipeline"
	"github.com/pulse-works/pulse/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, runtime *Runtime) {
	routes.Register(
		mux,
		domain.Reports.Handler().Routes(),
		domain.Snapshots.Handler().Routes(),
		pipeline.NewHandler(domain.Runner, runtime.Logger).Routes(),
	)
}
