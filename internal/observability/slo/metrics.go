// Package slo publishes service level objective gauges for the
// recommendation API and recomputes them from the request metrics.
package slo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Targets the gauges are measured against. Availability allows roughly
// 43 minutes of downtime per month; the latency bounds cover the vector
// search path, which dominates recommendation latency.
const (
	AvailabilitySLO = 99.9
	LatencyP95SLO   = 0.200
	LatencyP99SLO   = 0.500
	ErrorRateSLO    = 0.001
)

var (
	// Availability is (total - 5xx) / total over the process lifetime.
	Availability = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_availability_ratio",
		Help: "Current availability ratio (0-1), target: 0.999",
	})

	// LatencyP95 and LatencyP99 are estimated from the request
	// duration histogram.
	LatencyP95 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_latency_p95_seconds",
		Help: "Current p95 latency in seconds, target: 0.200",
	})

	LatencyP99 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_latency_p99_seconds",
		Help: "Current p99 latency in seconds, target: 0.500",
	})

	// ErrorRate is 5xx / total over the process lifetime.
	ErrorRate = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_error_rate_ratio",
		Help: "Current error rate ratio (0-1), target: 0.001",
	})
)
