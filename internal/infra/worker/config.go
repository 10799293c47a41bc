package worker

import (
	"fmt"
	"log/slog"
	"time"

	"outfitmatch/internal/pkg/config"
)

// WorkerConfig holds the configuration for the maintenance worker: the cron
// schedule for the catalog integrity sweep, the gauge refresh interval, and
// the health endpoint port.
//
// Loading is fail-open: invalid environment values fall back to defaults
// with a warning and a fallback metric, never a startup failure. The worker
// is maintenance tooling and a bad SWEEP_SCHEDULE should not keep the gauges
// from being served.
type WorkerConfig struct {
	// SweepSchedule is the cron expression for the catalog integrity sweep.
	// Format: "minute hour day month weekday"
	// Default: "0 4 * * *" (every day at 04:00)
	SweepSchedule string

	// Timezone is the IANA timezone name used for cron scheduling.
	// Default: "UTC"
	Timezone string

	// SweepTimeout bounds a single integrity sweep run.
	// Range: 1m-1h. Default: 10 minutes
	SweepTimeout time.Duration

	// GaugeRefreshInterval controls how often the wardrobe and catalog size
	// gauges are recomputed from the database.
	// Range: 30s-1h. Default: 5 minutes
	GaugeRefreshInterval time.Duration

	// HealthPort is the port for the worker's health and metrics HTTP server.
	// Range: 1024-65535. Default: 9091
	HealthPort int
}

// DefaultConfig returns a WorkerConfig with production defaults: a nightly
// sweep at 04:00 UTC, a 10-minute sweep timeout, and 5-minute gauge refresh.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		SweepSchedule:        "0 4 * * *",
		Timezone:             "UTC",
		SweepTimeout:         10 * time.Minute,
		GaugeRefreshInterval: 5 * time.Minute,
		HealthPort:           9091,
	}
}

// Validate checks every field and returns all violations together.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.SweepSchedule); err != nil {
		errs = append(errs, fmt.Errorf("sweep schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateDuration(c.SweepTimeout, 1*time.Minute, 1*time.Hour); err != nil {
		errs = append(errs, fmt.Errorf("sweep timeout: %w", err))
	}
	if err := config.ValidateDuration(c.GaugeRefreshInterval, 30*time.Second, 1*time.Hour); err != nil {
		errs = append(errs, fmt.Errorf("gauge refresh interval: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads worker configuration from environment variables.
//
// Environment variables:
//   - SWEEP_SCHEDULE: Cron expression (default: "0 4 * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default: "UTC")
//   - SWEEP_TIMEOUT: Duration string between 1m and 1h (default: 10m)
//   - GAUGE_REFRESH_INTERVAL: Duration string between 30s and 1h (default: 5m)
//   - WORKER_HEALTH_PORT: Integer 1024-65535 (default: 9091)
//
// Every invalid value falls back to its default with a warning log and a
// fallback metric. The returned config is always valid and the error is
// always nil; the signature keeps the error for call-site symmetry with the
// fail-closed loaders.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	warn := func(field string, result config.ConfigLoadResult) {
		if !result.FallbackApplied {
			return
		}
		fallbackApplied = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field)
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", warning))
		}
	}

	result := config.LoadEnvWithFallback("SWEEP_SCHEDULE", cfg.SweepSchedule, config.ValidateCronSchedule)
	cfg.SweepSchedule = result.Value.(string)
	warn("sweep_schedule", result)

	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	warn("timezone", result)

	result = config.LoadEnvDuration("SWEEP_TIMEOUT", cfg.SweepTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 1*time.Hour)
	})
	cfg.SweepTimeout = result.Value.(time.Duration)
	warn("sweep_timeout", result)

	result = config.LoadEnvDuration("GAUGE_REFRESH_INTERVAL", cfg.GaugeRefreshInterval, func(d time.Duration) error {
		return config.ValidateDuration(d, 30*time.Second, 1*time.Hour)
	})
	cfg.GaugeRefreshInterval = result.Value.(time.Duration)
	warn("gauge_refresh_interval", result)

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	warn("health_port", result)

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
