package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mssola/useragent"

	"crawlreceipt/internal/catalog"
	"crawlreceipt/internal/platform/metrics"
	"crawlreceipt/pkg/requestcontext"
)

// CrawlerVisits counts requests from catalogued AI crawlers and tags the
// request context with the crawler name. Other self-declared bots are counted
// separately. Nothing is blocked.
func CrawlerVisits(crawlers *catalog.Catalog, m *metrics.Metrics, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.UserAgent()
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			if cr, ok := crawlers.Match(raw); ok {
				m.IncrementCrawlerVisit(cr.Name)
				logger.DebugContext(ctx, "ai crawler visit",
					"request_id", requestcontext.RequestID(ctx),
					"crawler", cr.Name,
					"company", cr.Company,
					"path", r.URL.Path,
				)
				r = r.WithContext(requestcontext.WithCrawler(ctx, cr.Name))
			} else if ua := useragent.New(raw); ua.Bot() {
				name, _ := ua.Browser()
				m.IncrementBotVisit()
				logger.DebugContext(ctx, "bot visit",
					"request_id", requestcontext.RequestID(ctx),
					"bot", name,
					"path", r.URL.Path,
				)
			}
			next.ServeHTTP(w, r)
		})
	}
}
