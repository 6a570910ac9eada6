package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the search pipeline.
// Construct once per process; a nil *Metrics is a no-op so tests can skip it.
type Metrics struct {
	SearchesTotal        *prometheus.CounterVec
	SearchDurationMs     prometheus.Histogram
	SummaryFailures      prometheus.Counter
	CountriesCacheHits   prometheus.Counter
	CountriesCacheMisses prometheus.Counter
}

// New creates and registers all search metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		SearchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tradeintel_searches_total",
			Help: "Total search invocations by outcome",
		}, []string{"outcome"}),
		SearchDurationMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tradeintel_search_duration_ms",
			Help:    "Latency of the full search pipeline in milliseconds",
			Buckets: []float64{1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		SummaryFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradeintel_summary_failures_total",
			Help: "Total summary queries that failed and were zeroed",
		}),
		CountriesCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradeintel_countries_cache_hits_total",
			Help: "Country lookups served from the Redis cache",
		}),
		CountriesCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradeintel_countries_cache_misses_total",
			Help: "Country lookups that fell through to the store",
		}),
	}
}

// ObserveSearch records one pipeline invocation.
func (m *Metrics) ObserveSearch(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.SearchesTotal.WithLabelValues(outcome).Inc()
	m.SearchDurationMs.Observe(float64(elapsed.Microseconds()) / 1000.0)
}

// IncrementSummaryFailures counts a zeroed summary.
func (m *Metrics) IncrementSummaryFailures() {
	if m == nil {
		return
	}
	m.SummaryFailures.Inc()
}

// RecordCountriesCache counts a cache hit or miss.
func (m *Metrics) RecordCountriesCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CountriesCacheHits.Inc()
	} else {
		m.CountriesCacheMisses.Inc()
	}
}
