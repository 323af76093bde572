package pipeline

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/pulse-works/pulse/internal/reports"
	"github.com/pulse-works/pulse/pkg/archive"
	"github.com/pulse-works/pulse/pkg/handlers"
	"github.com/pulse-works/pulse/pkg/routes"
)

// RunResponse is the envelope returned to the invoking caller. Error and
// Details are populated only on failure; Report, ArticlesAnalyzed, and
// FredSeries only on success.
type RunResponse struct {
	Success          bool            `json:"success"`
	Report           *reports.Report `json:"report,omitempty"`
	ArticlesAnalyzed *int            `json:"articlesAnalyzed,omitempty"`
	FredSeries       *string         `json:"fredSeries,omitempty"`
	Error            string          `json:"error,omitempty"`
	Details          string          `json:"details,omitempty"`
}

// Handler provides the HTTP trigger for pipeline runs.
type Handler struct {
	runner *Runner
	logger *slog.Logger
}

// NewHandler creates a Handler with the given runner and logger.
func NewHandler(runner *Runner, logger *slog.Logger) *Handler {
	return &Handler{
		runner: runner,
		logger: logger.With("handler", "pipeline"),
	}
}

// Routes returns the route group definition for pipeline endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/analyze",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Run},
			{Method: "GET", Pattern: "/raw/{timestamp}", Handler: h.Raw},
			{Method: "DELETE", Pattern: "/raw/{timestamp}", Handler: h.DeleteRaw},
		},
	}
}

// Run executes one pipeline run and renders the structured outcome.
// All failures are converted into the envelope here; none propagate as
// uncaught faults.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	result, err := h.runner.Run(r.Context())
	if err != nil {
		h.logger.Error("pipeline run failed", "error", err)
		handlers.RespondJSON(w, http.StatusInternalServerError, failureResponse(err))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, RunResponse{
		Success:          true,
		Report:           result.Report,
		ArticlesAnalyzed: &result.ArticlesAnalyzed,
		FredSeries:       &result.SeriesTitle,
	})
}

// Raw streams the archived raw model output for the run with the given
// timestamp. Runs keep their raw output even when parsing or validation
// failed, so this is the diagnostic surface for rejected model responses.
func (h *Handler) Raw(w http.ResponseWriter, r *http.Request) {
	if h.runner.archive == nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, archive.ErrNotFound)
		return
	}

	key := rawKey(r.PathValue("timestamp"))
	body, err := h.runner.archive.Retrieve(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, archive.MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Error("stream raw output failed", "key", key, "error", err)
	}
}

// DeleteRaw removes the archived raw output for the run with the given
// timestamp.
func (h *Handler) DeleteRaw(w http.ResponseWriter, r *http.Request) {
	if h.runner.archive == nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, archive.ErrNotFound)
		return
	}

	key := rawKey(r.PathValue("timestamp"))
	if err := h.runner.archive.Delete(r.Context(), key); err != nil {
		handlers.RespondError(w, h.logger, archive.MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func failureResponse(err error) RunResponse {
	var parseErr *ParseError
	var validationErr *ValidationError
	var storageErr *StorageError

	switch {
	case errors.As(err, &parseErr):
		return RunResponse{
			Success: false,
			Error:   "AI response parsing failed",
			Details: parseErr.Error(),
		}
	case errors.As(err, &validationErr):
		return RunResponse{
			Success: false,
			Error:   "AI response parsing failed",
			Details: validationErr.Error(),
		}
	case errors.As(err, &storageErr):
		return RunResponse{
			Success: false,
			Error:   "Database insertion failed",
			Details: storageErr.Error(),
		}
	default:
		return RunResponse{
			Success: false,
			Error:   err.Error(),
		}
	}
}
