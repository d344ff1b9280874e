package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts finished HTTP requests.
	// Labels: method, path (route template), status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roadmap_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency per route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roadmap_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60, 120},
		},
		[]string{"method", "path"},
	)

	// GenerationsTotal counts roadmap generation attempts by outcome.
	// Labels: status (ok/transport_error/parse_error/validation_error/field_error).
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roadmap_generations_total",
			Help: "Total number of roadmap generation attempts by outcome",
		},
		[]string{"status"},
	)

	// GenerationDuration observes the blocking model round trip.
	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "roadmap_generation_duration_seconds",
			Help:    "Duration of external model calls in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 180},
		},
	)
)

// RecordGeneration records one generation attempt.
func RecordGeneration(status string, seconds float64) {
	GenerationsTotal.WithLabelValues(status).Inc()
	GenerationDuration.Observe(seconds)
}
