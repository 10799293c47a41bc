// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// ActiveConnections tracks the number of active HTTP connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Business metrics track recommendation pipeline operations
var (
	// WardrobeItemsTotal tracks total number of wardrobe items in database
	WardrobeItemsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wardrobe_items_total",
			Help: "Total number of wardrobe items in the database",
		},
	)

	// TemplatesActiveTotal tracks number of active outfit templates
	TemplatesActiveTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "outfit_templates_active_total",
			Help: "Number of active outfit templates in the catalog",
		},
	)

	// RecommendationRequestsTotal counts recommendation requests by outcome
	RecommendationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"status"}, // status: success, partial, failure
	)

	// RecommendationDuration measures end-to-end recommendation latency
	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time taken to generate a full recommendation response",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)

	// SlotMatchesTotal counts slot match outcomes by clothing type
	SlotMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slot_matches_total",
			Help: "Total number of slot match decisions",
		},
		[]string{"clothing_type", "status"}, // status: matched, unmatched
	)

	// TemplatesFailedTotal counts templates dropped from a response
	TemplatesFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_templates_failed_total",
			Help: "Total number of templates that failed during matching",
		},
		[]string{"reason"},
	)

	// OracleQueryDuration measures similarity search latency per clothing type
	OracleQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "similarity_query_duration_seconds",
			Help:    "Time taken by a nearest-neighbour similarity query",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"clothing_type"},
	)

	// OracleQueryErrors counts similarity search failures
	OracleQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "similarity_query_errors_total",
			Help: "Total number of similarity query errors",
		},
		[]string{"clothing_type", "error_type"},
	)

	// SuggestionLookupsTotal counts substitute product lookups by result
	SuggestionLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suggestion_lookups_total",
			Help: "Total number of substitute suggestion lookups",
		},
		[]string{"result"}, // result: success, failure, skipped
	)

	// SuggestionLookupDuration measures suggestion lookup latency
	SuggestionLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "suggestion_lookup_duration_seconds",
			Help:    "Time taken to look up substitute suggestions",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)

	// DescriptionsTotal counts slot description generations by status
	DescriptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slot_descriptions_total",
			Help: "Total number of slot descriptions generated",
		},
		[]string{"status"},
	)

	// DescriptionDuration measures time to describe a slot via an AI provider
	DescriptionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "slot_description_duration_seconds",
			Help:    "Time taken to generate a slot description",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordOperationDuration records the duration of a named operation
func RecordOperationDuration(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
