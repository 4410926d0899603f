package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Farewatch
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Storage Metrics
	StoreFailuresTotal prometheus.Counter

	// Business Metrics
	ListingsSynthesizedTotal prometheus.Counter
	BookingsTotal            prometheus.Counter
	AlertsSentTotal          prometheus.Counter
	AlertsThrottledTotal     prometheus.Counter
	JobDuration              prometheus.HistogramVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farewatch_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "farewatch_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "farewatch_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Storage Metrics
		StoreFailuresTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "farewatch_store_failures_total",
				Help: "Total snapshot storage failures that degraded to an empty result",
			},
		),

		// Business Metrics
		ListingsSynthesizedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "farewatch_listings_synthesized_total",
				Help: "Total flight listings synthesized from raw snapshots",
			},
		),
		BookingsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "farewatch_bookings_total",
				Help: "Total demo bookings acknowledged",
			},
		),
		AlertsSentTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "farewatch_alerts_sent_total",
				Help: "Total price-drop alerts dispatched",
			},
		),
		AlertsThrottledTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "farewatch_alerts_throttled_total",
				Help: "Total price-drop alerts suppressed by the throttle window",
			},
		),
		JobDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "farewatch_job_duration_seconds",
				Help:    "Background job execution time in seconds",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
			},
			[]string{"job_name"},
		),
	}
}
