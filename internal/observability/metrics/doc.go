// Package metrics registers the application's Prometheus collectors:
// HTTP request counts and latency, recommendation and slot match
// outcomes, describer calls, and suggestion search results. Everything
// lands in the default registry and is served from /metrics.
package metrics
