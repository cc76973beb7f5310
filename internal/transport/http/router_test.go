package httptransport

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"crawlreceipt/internal/catalog"
	"crawlreceipt/internal/platform/logger"
	"crawlreceipt/internal/platform/metrics"
	"crawlreceipt/internal/platform/middleware"
	"crawlreceipt/pkg/testutil"
)

type pingHandler struct{}

func (pingHandler) Register(r chi.Router) {
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func newTestRouter() http.Handler {
	reg := prometheus.NewRegistry()
	return NewRouter(RouterDeps{
		Logger:   logger.Discard(),
		Metrics:  metrics.NewWith(reg),
		Crawlers: catalog.New([]catalog.Crawler{{Name: "GPTBot", Company: "OpenAI", UserAgentPatterns: []string{"GPTBot"}}}),
		Gatherer: reg,
		Handlers: []Registrar{pingHandler{}},
	})
}

func TestRouter(t *testing.T) {
	router := newTestRouter()

	t.Run("healthz", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "status", "ok")
		assert.NotEmpty(t, rr.Header().Get(middleware.HeaderRequestID))
	})

	t.Run("module routes are mounted", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/ping"))
		testutil.AssertStatus(t, rr, http.StatusNoContent)
	})

	t.Run("metrics exposes crawler visits", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, "/ping")
		req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; GPTBot/1.2)")
		testutil.DoRequest(router, req)

		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
		testutil.AssertStatusOK(t, rr)
		body := rr.Body.String()
		assert.Contains(t, body, `crawlreceipt_ai_crawler_visits_total{crawler="GPTBot"} 1`)
		assert.Contains(t, body, "crawlreceipt_http_request_duration_seconds")
	})

	t.Run("unknown path is 404", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/does/not/exist"))
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})

	t.Run("wrong method is 405", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPost, "/healthz"))
		testutil.AssertStatusAndError(t, rr, http.StatusMethodNotAllowed, "method_not_allowed")
	})
}

func TestRouterCrawlerScenario(t *testing.T) {
	testutil.Given(t, "a router that knows GPTBot", func(t *testing.T) {
		router := newTestRouter()

		testutil.When(t, "GPTBot asks for a page that does not exist", func(t *testing.T) {
			req := testutil.NewRequest(t, http.MethodGet, "/wp-admin")
			req.Header.Set("User-Agent", "GPTBot/1.2")
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "it gets a JSON 404 with a request id", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
				assert.NotEmpty(t, rr.Header().Get(middleware.HeaderRequestID))
			})

			testutil.Then(t, "the visit is still counted", func(t *testing.T) {
				body := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics")).Body.String()
				assert.Contains(t, body, `crawlreceipt_ai_crawler_visits_total{crawler="GPTBot"} 1`)
			})
		})
	})
}
