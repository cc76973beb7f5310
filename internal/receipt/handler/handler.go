package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Estimator

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"crawlreceipt/internal/catalog"
	"crawlreceipt/internal/estimate"
	"crawlreceipt/internal/receipt"
	"crawlreceipt/internal/receipt/render"
	"crawlreceipt/pkg/domain"
	dErrors "crawlreceipt/pkg/domain-errors"
	"crawlreceipt/pkg/platform/httputil"
	"crawlreceipt/pkg/requestcontext"
)

// Estimator produces the page count for a domain. It never fails.
type Estimator interface {
	Estimate(ctx context.Context, key domain.Key) estimate.Outcome
}

// Handler serves the landing page, the receipt page and the JSON data API.
type Handler struct {
	estimator Estimator
	crawlers  *catalog.Catalog
	pricing   receipt.Pricing
	renderer  *render.Renderer
	logger    *slog.Logger
}

// New constructs a receipt handler with its dependencies.
func New(estimator Estimator, crawlers *catalog.Catalog, pricing receipt.Pricing, renderer *render.Renderer, logger *slog.Logger) *Handler {
	return &Handler{
		estimator: estimator,
		crawlers:  crawlers,
		pricing:   pricing,
		renderer:  renderer,
		logger:    logger,
	}
}

// Register mounts the receipt endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.HandleLanding)
	r.Get("/api/data", h.HandleData)
	r.Get("/receipt", h.HandleReceipt)
	r.Get("/receipt/*", h.HandleReceipt)
}

// HandleLanding handles GET / requests.
func (h *Handler) HandleLanding(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.renderer.Landing(&buf, h.crawlers.Len(), h.pricing); err != nil {
		h.renderFailed(r.Context(), w, "landing", err)
		return
	}
	writeHTML(w, buf.Bytes())
}

// HandleData handles GET /api/data?domain= requests.
func (h *Handler) HandleData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	w.Header().Set("Access-Control-Allow-Origin", "*")

	key, err := parseQueryDomain(r)
	if err != nil {
		h.logger.DebugContext(ctx, "rejected data request",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, h.compose(ctx, key))
}

// HandleReceipt handles GET /receipt/{domain} requests. A missing domain
// sends the visitor back to the landing page.
func (h *Handler) HandleReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key, err := parsePathDomain(chi.URLParam(r, "*"))
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeBadRequest) {
			httputil.WriteError(w, err)
			return
		}
		// The landing form submits ?domain= when scripts are disabled.
		if fromForm := domain.Normalize(r.URL.Query().Get("domain")); fromForm != "" {
			http.Redirect(w, r, "/receipt/"+url.PathEscape(fromForm), http.StatusFound)
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	rc := h.compose(ctx, key)
	var buf bytes.Buffer
	if err := h.renderer.Receipt(&buf, rc, requestcontext.Now(ctx)); err != nil {
		h.renderFailed(ctx, w, "receipt", err)
		return
	}
	writeHTML(w, buf.Bytes())
}

// compose runs the estimator and prices the result. Both entry points go
// through here so they cannot disagree for the same domain.
func (h *Handler) compose(ctx context.Context, key domain.Key) receipt.Receipt {
	start := time.Now()
	outcome := h.estimator.Estimate(ctx, key)
	rc := receipt.Compose(key, outcome, h.crawlers.All(), h.pricing)

	h.logger.InfoContext(ctx, "receipt composed",
		"request_id", requestcontext.RequestID(ctx),
		"domain", key.String(),
		"pages", outcome.PageCount,
		"provenance", outcome.Provenance,
		"basis", outcome.Basis,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return rc
}

func (h *Handler) renderFailed(ctx context.Context, w http.ResponseWriter, page string, err error) {
	h.logger.ErrorContext(ctx, "failed to render page",
		"request_id", requestcontext.RequestID(ctx),
		"page", page,
		"error", err,
	)
	httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "render "+page))
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
