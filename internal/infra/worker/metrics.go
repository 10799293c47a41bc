package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"outfitmatch/internal/pkg/config"
)

// WorkerMetrics provides Prometheus metrics for the maintenance worker.
// It embeds ConfigMetrics for the fail-open configuration loader and adds
// counters for the catalog integrity sweep.
//
// Sweep metrics:
//   - worker_sweep_runs_total: sweep runs by status (success/failure)
//   - worker_sweep_duration_seconds: sweep execution duration
//   - worker_sweep_templates_checked_total: templates validated across runs
//   - worker_sweep_last_success_timestamp: Unix time of the last clean run
type WorkerMetrics struct {
	*config.ConfigMetrics

	SweepRunsTotal             *prometheus.CounterVec
	SweepDurationSeconds       prometheus.Histogram
	SweepTemplatesCheckedTotal prometheus.Counter
	SweepLastSuccessTimestamp  prometheus.Gauge

	// GaugeRefreshFailuresTotal counts failed size-gauge refreshes. The
	// refresh loop keeps running after a failure; this is how you notice.
	GaugeRefreshFailuresTotal prometheus.Counter
}

// NewWorkerMetrics creates the worker metric set. Registration happens via
// promauto at construction time.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		SweepRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_sweep_runs_total",
			Help: "Total number of catalog integrity sweep runs by status (success/failure)",
		}, []string{"status"}),

		SweepDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_sweep_duration_seconds",
			Help:    "Duration of catalog integrity sweep runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 30, 60, 300},
		}),

		SweepTemplatesCheckedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_sweep_templates_checked_total",
			Help: "Total number of templates validated across all sweep runs",
		}),

		SweepLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_sweep_last_success_timestamp",
			Help: "Unix timestamp of the last successful integrity sweep",
		}),

		GaugeRefreshFailuresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_gauge_refresh_failures_total",
			Help: "Total number of failed wardrobe/catalog size gauge refreshes",
		}),
	}
}

// MustRegister is a no-op kept for call-site symmetry; promauto already
// registered everything in NewWorkerMetrics.
func (m *WorkerMetrics) MustRegister() {}

// RecordSweepRun increments the sweep run counter. Status is "success" or
// "failure".
func (m *WorkerMetrics) RecordSweepRun(status string) {
	m.SweepRunsTotal.WithLabelValues(status).Inc()
}

// RecordSweepDuration observes one sweep's execution time in seconds.
func (m *WorkerMetrics) RecordSweepDuration(seconds float64) {
	m.SweepDurationSeconds.Observe(seconds)
}

// RecordTemplatesChecked adds the number of templates validated in one run.
func (m *WorkerMetrics) RecordTemplatesChecked(count int) {
	m.SweepTemplatesCheckedTotal.Add(float64(count))
}

// RecordLastSuccess marks the current time as the last clean sweep.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.SweepLastSuccessTimestamp.SetToCurrentTime()
}

// RecordGaugeRefreshFailure counts one failed size-gauge refresh.
func (m *WorkerMetrics) RecordGaugeRefreshFailure() {
	m.GaugeRefreshFailuresTotal.Inc()
}
