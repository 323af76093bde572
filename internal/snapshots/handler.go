package snapshots

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pulse-works/pulse/pkg/handlers"
	"github.com/pulse-works/pulse/pkg/pagination"
	"github.com/pulse-works/pulse/pkg/routes"
)

// Handler provides HTTP endpoints for snapshot queries.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "snapshots"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for snapshot endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/snapshots",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/history", Handler: h.History},
		},
	}
}

// List returns a paginated list of snapshots ordered oldest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// History returns per-metric deltas measured from the baseline query
// parameter (YYYY-MM-DD), defaulting to DefaultBaseline.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	param := r.URL.Query().Get("baseline")
	if param == "" {
		param = DefaultBaseline
	}

	baseline, err := time.Parse("2006-01-02", param)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBaseline)
		return
	}

	result, err := h.sys.History(r.Context(), baseline)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
