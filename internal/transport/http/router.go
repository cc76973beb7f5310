package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crawlreceipt/internal/catalog"
	"crawlreceipt/internal/platform/metrics"
	"crawlreceipt/internal/platform/middleware"
	dErrors "crawlreceipt/pkg/domain-errors"
	"crawlreceipt/pkg/platform/httputil"
	"crawlreceipt/pkg/platform/middleware/metadata"
	"crawlreceipt/pkg/platform/middleware/requesttime"
)

// Registrar mounts a module's endpoints.
type Registrar interface {
	Register(r chi.Router)
}

// RouterDeps collects what the router needs. Gatherer defaults to the
// Prometheus default registry.
type RouterDeps struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Crawlers *catalog.Catalog
	Gatherer prometheus.Gatherer
	Handlers []Registrar
}

// NewRouter builds the public HTTP surface: the shared middleware chain,
// liveness and metrics endpoints, and every module's routes.
func NewRouter(deps RouterDeps) http.Handler {
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		requesttime.Middleware,
		metadata.ClientMetadata,
		middleware.CrawlerVisits(deps.Crawlers, deps.Metrics, deps.Logger),
		middleware.RequestLogger(deps.Logger, deps.Metrics),
		middleware.Recover(deps.Logger),
	)

	r.Get("/healthz", handleHealthz)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	for _, h := range deps.Handlers {
		h.Register(r)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no route for "+r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorResponse{
			Error:            "method_not_allowed",
			ErrorDescription: r.Method + " is not supported on " + r.URL.Path,
		})
	})
	return r
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
