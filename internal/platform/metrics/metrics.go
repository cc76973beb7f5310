package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP-level Prometheus metrics for the application
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	CrawlerVisits   *prometheus.CounterVec
	BotVisits       prometheus.Counter
}

// New creates and registers all HTTP metrics with the default registry
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the HTTP metrics with reg
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crawlreceipt_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern, method and status",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 4, 8, 10},
		}, []string{"route", "method", "status"}),

		CrawlerVisits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "crawlreceipt_ai_crawler_visits_total",
			Help: "Requests made by catalogued AI crawlers",
		}, []string{"crawler"}),

		BotVisits: factory.NewCounter(prometheus.CounterOpts{
			Name: "crawlreceipt_bot_visits_total",
			Help: "Requests whose User-Agent identifies a bot that is not a catalogued AI crawler",
		}),
	}
}

// ObserveRequest records one served request
func (m *Metrics) ObserveRequest(route, method, status string, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(route, method, status).Observe(d.Seconds())
	}
}

// IncrementCrawlerVisit counts a visit by a catalogued AI crawler
func (m *Metrics) IncrementCrawlerVisit(crawler string) {
	if m != nil {
		m.CrawlerVisits.WithLabelValues(crawler).Inc()
	}
}

// IncrementBotVisit counts a visit by any other bot
func (m *Metrics) IncrementBotVisit() {
	if m != nil {
		m.BotVisits.Inc()
	}
}
