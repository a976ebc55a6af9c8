package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the lookup path.
type Metrics struct {
	VendorRequests  *prometheus.CounterVec   // labels: vendor, outcome={success,upstream_error,transport_error,no_results}
	VendorDuration  *prometheus.HistogramVec // labels: vendor
	CacheLookups    *prometheus.CounterVec   // labels: capability, result={hit,miss}
	StationSearches *prometheus.CounterVec   // labels: outcome={resolved,out_of_range,empty}
	Lookups         *prometheus.CounterVec   // labels: capability, outcome={success,error}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.VendorRequests,
		m.VendorDuration,
		m.CacheLookups,
		m.StationSearches,
		m.Lookups,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		VendorRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geodata",
			Name:      "vendor_requests_total",
			Help:      "Upstream vendor requests by vendor and outcome.",
		}, []string{"vendor", "outcome"}),
		VendorDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "geodata",
			Name:      "vendor_request_duration_seconds",
			Help:      "Upstream vendor request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"vendor"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geodata",
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups by capability and result.",
		}, []string{"capability", "result"}),
		StationSearches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geodata",
			Name:      "station_searches_total",
			Help:      "Nearest-station searches by outcome.",
		}, []string{"outcome"}),
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geodata",
			Name:      "lookups_total",
			Help:      "Completed lookups by capability and outcome.",
		}, []string{"capability", "outcome"}),
	}
}
