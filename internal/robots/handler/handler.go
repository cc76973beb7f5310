package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Checker

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"crawlreceipt/internal/robots"
	"crawlreceipt/pkg/domain"
	dErrors "crawlreceipt/pkg/domain-errors"
	"crawlreceipt/pkg/platform/httputil"
	"crawlreceipt/pkg/requestcontext"
)

// Checker evaluates a domain's robots.txt.
type Checker interface {
	Check(ctx context.Context, key domain.Key) (*robots.Report, error)
}

// Handler serves the robots.txt report.
type Handler struct {
	checker Checker
	logger  *slog.Logger
}

// New constructs a robots handler.
func New(checker Checker, logger *slog.Logger) *Handler {
	return &Handler{checker: checker, logger: logger}
}

// Register mounts the robots endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/robots", h.HandleRobots)
}

// HandleRobots handles GET /api/robots?domain= requests.
func (h *Handler) HandleRobots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	w.Header().Set("Access-Control-Allow-Origin", "*")

	raw := r.URL.Query().Get("domain")
	if domain.Normalize(raw) == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "domain parameter is required"))
		return
	}
	key, err := domain.ParseKey(raw)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	report, err := h.checker.Check(ctx, key)
	if err != nil {
		h.logger.WarnContext(ctx, "robots check failed",
			"request_id", requestID,
			"domain", key.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "robots checked",
		"request_id", requestID,
		"domain", key.String(),
		"status", report.Status,
		"blocked", report.Blocked,
	)
	httputil.WriteJSON(w, http.StatusOK, report)
}
