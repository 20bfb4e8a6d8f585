package catalog

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for catalog loading.
type Metrics struct {
	Registry        *prometheus.Registry
	FetchesTotal    *prometheus.CounterVec
	FetchDuration   prometheus.Histogram
	RowsParsedTotal prometheus.Counter
	CacheHitsTotal  prometheus.Counter
}

// NewMetrics constructs and registers all collectors on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	fetches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_fetches_total",
			Help: "Catalog payload fetch attempts by area and outcome.",
		},
		[]string{"area", "outcome"},
	)
	fetchDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_fetch_duration_seconds",
			Help:    "Catalog payload fetch latency.",
			Buckets: prometheus.DefBuckets,
		},
	)
	rowsParsed := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_rows_parsed_total",
			Help: "Catalog rows successfully parsed into items.",
		},
	)
	cacheHits := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Catalog loads served from the parsed-item cache.",
		},
	)

	registry.MustRegister(fetches, fetchDuration, rowsParsed, cacheHits)

	return &Metrics{
		Registry:        registry,
		FetchesTotal:    fetches,
		FetchDuration:   fetchDuration,
		RowsParsedTotal: rowsParsed,
		CacheHitsTotal:  cacheHits,
	}
}

// ObserveFetch records one fetch attempt.
func (m *Metrics) ObserveFetch(area, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.FetchesTotal.WithLabelValues(area, outcome).Inc()
	m.FetchDuration.Observe(elapsed.Seconds())
}

// ObserveRows records successfully parsed rows.
func (m *Metrics) ObserveRows(n int) {
	if m == nil {
		return
	}
	m.RowsParsedTotal.Add(float64(n))
}

// ObserveCacheHit records a load served from cache.
func (m *Metrics) ObserveCacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}
