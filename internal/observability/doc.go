// Package observability groups the logging, metrics, tracing, and SLO
// subpackages. Handlers log through slog, record Prometheus metrics,
// and open OpenTelemetry spans; the slo package derives objective
// gauges from the request metrics.
package observability
