package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	"outfitmatch/internal/config"
	"outfitmatch/internal/handler/http/respond"
	pgRepo "outfitmatch/internal/infra/adapter/persistence/postgres"
	"outfitmatch/internal/infra/db"
	workerPkg "outfitmatch/internal/infra/worker"
	"outfitmatch/internal/observability/logging"
	"outfitmatch/internal/observability/metrics"
	"outfitmatch/internal/repository"
	catalogUC "outfitmatch/internal/usecase/catalog"
)

func waitForMigrations(logger *slog.Logger, database *sql.DB) {
	const probe = "SELECT 1 FROM outfit_templates LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := database.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

func main() {
	logger := initLogger()
	database := db.Open()
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	waitForMigrations(logger, database)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("sweep_schedule", workerConfig.SweepSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("sweep_timeout", workerConfig.SweepTimeout),
		slog.Duration("gauge_refresh_interval", workerConfig.GaugeRefreshInterval),
		slog.Int("health_port", workerConfig.HealthPort))

	matchingConfig, err := config.LoadMatchingConfig()
	if err != nil {
		logger.Error("failed to load matching configuration", slog.Any("error", err))
		os.Exit(1)
	}

	templateRepo := pgRepo.NewOutfitTemplateRepo(database)
	itemRepo := pgRepo.NewWardrobeItemRepo(database)
	catalogService := catalogUC.NewService(templateRepo, matchingConfig)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	go runGaugeRefresh(ctx, logger, workerConfig, workerMetrics, itemRepo, templateRepo)

	startSweepScheduler(ctx, logger, &catalogService, workerConfig, workerMetrics, healthServer)
}

// initLogger initializes the process-wide structured logger.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// startSweepScheduler runs the catalog integrity sweep on the configured
// cron schedule and blocks until the context is cancelled.
func startSweepScheduler(ctx context.Context, logger *slog.Logger, svc *catalogUC.Service, cfg *workerPkg.WorkerConfig, workerMetrics *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.SweepSchedule, func() {
		runSweep(logger, svc, cfg, workerMetrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started", slog.String("schedule", cfg.SweepSchedule), slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	healthServer.SetReady(false)
	<-c.Stop().Done()
	logger.Info("worker stopped")
}

// runSweep executes a single catalog integrity sweep with timeout and
// error handling.
func runSweep(logger *slog.Logger, svc *catalogUC.Service, cfg *workerPkg.WorkerConfig, workerMetrics *workerPkg.WorkerMetrics) {
	startTime := time.Now()
	logger.Info("catalog integrity sweep started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.SweepTimeout)
	defer cancel()

	stats, err := svc.SweepIntegrity(ctx)
	if err != nil {
		logger.Error("sweep failed", slog.String("error", respond.SanitizeError(err)))
		workerMetrics.RecordSweepRun("failure")
		workerMetrics.RecordSweepDuration(time.Since(startTime).Seconds())
		return
	}

	workerMetrics.RecordSweepRun("success")
	workerMetrics.RecordSweepDuration(time.Since(startTime).Seconds())
	workerMetrics.RecordTemplatesChecked(stats.Checked)
	workerMetrics.RecordLastSuccess()

	logger.Info("catalog integrity sweep completed",
		slog.Int("checked", stats.Checked),
		slog.Int("deactivated", stats.Deactivated),
		slog.Duration("duration", stats.Duration))
}

// runGaugeRefresh periodically recomputes the wardrobe and catalog size
// gauges from the database until the context is cancelled.
func runGaugeRefresh(ctx context.Context, logger *slog.Logger, cfg *workerPkg.WorkerConfig, workerMetrics *workerPkg.WorkerMetrics, items *pgRepo.WardrobeItemRepo, templates repository.OutfitTemplateRepository) {
	ticker := time.NewTicker(cfg.GaugeRefreshInterval)
	defer ticker.Stop()

	refresh := func() {
		refreshCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		itemCount, err := items.CountAll(refreshCtx)
		if err != nil {
			logger.Warn("failed to refresh wardrobe items gauge", slog.Any("error", err))
			workerMetrics.RecordGaugeRefreshFailure()
		} else {
			metrics.UpdateWardrobeItemsTotal(int(itemCount))
		}

		active, err := templates.ListActive(refreshCtx, nil)
		if err != nil {
			logger.Warn("failed to refresh active templates gauge", slog.Any("error", err))
			workerMetrics.RecordGaugeRefreshFailure()
		} else {
			metrics.UpdateTemplatesActiveTotal(len(active))
		}
	}

	refresh()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}
