package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the page-count estimator.
type Metrics struct {
	// Per-index lookup latency by index and result
	IndexLatency *prometheus.HistogramVec

	// Per-index lookup results by index and result category
	IndexResults *prometheus.CounterVec

	// Estimates by provenance and basis
	Outcomes *prometheus.CounterVec

	// Full estimate latency, fan-out included
	EstimateLatency prometheus.Histogram
}

// New creates a Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the estimator metrics with reg.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		IndexLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crawlreceipt_index_query_duration_seconds",
			Help:    "Duration of crawl index block-count lookups by index",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8},
		}, []string{"index", "result"}),

		IndexResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "crawlreceipt_index_query_results_total",
			Help: "Crawl index lookups by index and result",
		}, []string{"index", "result"}), // result: "ok", "empty", or a provider error category

		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "crawlreceipt_estimates_total",
			Help: "Page-count estimates by provenance and basis",
		}, []string{"provenance", "basis"}),

		EstimateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "crawlreceipt_estimate_duration_seconds",
			Help:    "Duration of a full page-count estimate including the index fan-out",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 10},
		}),
	}
}

// ObserveIndexQuery records one index lookup.
func (m *Metrics) ObserveIndexQuery(index, result string, d time.Duration) {
	if m != nil {
		m.IndexLatency.WithLabelValues(index, result).Observe(d.Seconds())
		m.IndexResults.WithLabelValues(index, result).Inc()
	}
}

// IncrementOutcome records an estimate result.
func (m *Metrics) IncrementOutcome(provenance, basis string) {
	if m != nil {
		m.Outcomes.WithLabelValues(provenance, basis).Inc()
	}
}

// ObserveEstimateLatency records the total estimate duration.
func (m *Metrics) ObserveEstimateLatency(d time.Duration) {
	if m != nil {
		m.EstimateLatency.Observe(d.Seconds())
	}
}
