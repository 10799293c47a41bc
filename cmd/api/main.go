package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"

	"outfitmatch/internal/config"
	hhttp "outfitmatch/internal/handler/http"
	houtfit "outfitmatch/internal/handler/http/outfit"
	hrecommendation "outfitmatch/internal/handler/http/recommendation"
	hwardrobe "outfitmatch/internal/handler/http/wardrobe"
	"outfitmatch/internal/handler/http/middleware"
	"outfitmatch/internal/handler/http/requestid"
	pgRepo "outfitmatch/internal/infra/adapter/persistence/postgres"
	"outfitmatch/internal/infra/db"
	"outfitmatch/internal/infra/describer"
	"outfitmatch/internal/infra/linkpreview"
	"outfitmatch/internal/infra/suggest"
	"outfitmatch/internal/observability/logging"
	"outfitmatch/internal/observability/slo"
	"outfitmatch/internal/observability/tracing"
	catalogUC "outfitmatch/internal/usecase/catalog"
	"outfitmatch/internal/usecase/recommend"
	wardrobeUC "outfitmatch/internal/usecase/wardrobe"
)

func main() {
	logger := initLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	handler := setupServer(logger, database, version)

	runServer(logger, handler, version)
}

// initLogger initializes the process-wide structured logger.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer wires repositories, usecases and routes, and returns the HTTP
// handler with the full middleware chain applied.
func setupServer(logger *slog.Logger, database *sql.DB, version string) http.Handler {
	matchingConfig, err := config.LoadMatchingConfig()
	if err != nil {
		logger.Error("failed to load matching configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("matching configuration loaded",
		slog.Int("embedding_dimension", matchingConfig.EmbeddingDimension),
		slog.Float64("default_threshold", matchingConfig.DefaultThreshold),
		slog.Int("nearest_k", matchingConfig.NearestK),
		slog.Int("type_overrides", len(matchingConfig.TypeThresholds)))

	itemRepo := pgRepo.NewWardrobeItemRepo(database)
	templateRepo := pgRepo.NewOutfitTemplateRepo(database)
	oracle := pgRepo.NewSimilarityOracle(database, matchingConfig.OracleTimeout)

	wardrobeSvc := wardrobeUC.NewService(itemRepo, matchingConfig, createDescriber(logger))
	catalogSvc := catalogUC.NewService(templateRepo, matchingConfig)

	suggester, breakerState := createSuggester(logger)
	recommendSvc := recommend.NewService(
		templateRepo,
		recommend.NewMatcher(oracle, matchingConfig),
		recommend.NewAssembler(itemRepo, suggester),
		matchingConfig,
	)

	mux := http.NewServeMux()
	hwardrobe.Register(mux, wardrobeSvc)
	houtfit.Register(mux, catalogSvc)
	hrecommendation.Register(mux, recommendSvc)

	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: version, SuggestBreakerState: breakerState})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	return applyMiddleware(logger, mux)
}

// createDescriber picks a description backend from DESCRIBER_TYPE, falling
// back to whichever API key is configured. Returns nil when no backend is
// available; the wardrobe service then skips description back-fill.
func createDescriber(logger *slog.Logger) describer.Describer {
	describerType := os.Getenv("DESCRIBER_TYPE")
	if describerType == "" {
		switch {
		case os.Getenv("ANTHROPIC_API_KEY") != "":
			describerType = "claude"
		case os.Getenv("OPENAI_API_KEY") != "":
			describerType = "openai"
		default:
			describerType = "none"
		}
	}

	switch describerType {
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			logger.Error("ANTHROPIC_API_KEY is required when DESCRIBER_TYPE=claude")
			os.Exit(1)
		}
		logger.Info("Using Claude API for item descriptions", slog.String("type", "claude"))
		return describer.NewClaude(apiKey)
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Error("OPENAI_API_KEY is required when DESCRIBER_TYPE=openai")
			os.Exit(1)
		}
		cfg, err := describer.LoadOpenAIConfig()
		if err != nil {
			logger.Error("failed to load OpenAI configuration", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Using OpenAI API for item descriptions",
			slog.String("type", "openai"),
			slog.Int("character_limit", cfg.GetCharacterLimit()))
		return describer.NewOpenAI(apiKey, cfg)
	case "none":
		logger.Info("item description back-fill disabled")
		return nil
	default:
		logger.Error("Invalid DESCRIBER_TYPE",
			slog.String("type", describerType),
			slog.String("expected", "claude, openai or none"))
		os.Exit(1)
		return nil
	}
}

// createSuggester builds the substitute lookup client. When the Custom
// Search credentials are absent, recommendations still work; unmatched
// slots simply carry no suggestion.
func createSuggester(logger *slog.Logger) (recommend.Suggester, hhttp.BreakerStatus) {
	suggestConfig, err := config.LoadSuggestConfig()
	if err != nil {
		logger.Error("failed to load suggest configuration", slog.Any("error", err))
		os.Exit(1)
	}

	if !suggestConfig.Enabled() {
		logger.Info("suggestion lookups disabled, no search credentials configured")
		return suggest.NewNoOpSuggester(), nil
	}

	previewer := linkpreview.NewFetcher(10 * time.Second)
	client := suggest.NewGoogleClient(suggestConfig, previewer)
	logger.Info("suggestion lookups enabled",
		slog.Float64("rate_per_second", suggestConfig.RatePerSecond),
		slog.Duration("timeout", suggestConfig.Timeout))
	return client, client.BreakerState
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): CORS, request ID, rate limit, recovery, logging,
// body limit, input validation, timeout, metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	corsConfig, err := middleware.LoadCORSConfig()
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		os.Exit(1)
	}
	corsConfig.Logger = &middleware.SlogAdapter{Logger: logger}
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.Validator.GetAllowedOrigins()),
		slog.Any("allowed_methods", corsConfig.AllowedMethods))

	rateLimiter := hhttp.NewRateLimiter(loadRateLimit(), 1*time.Minute)

	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Timeout(30 * time.Second)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = rateLimiter.Limit(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = middleware.CORS(*corsConfig)(chain)

	return chain
}

// loadRateLimit reads the per-IP request budget per minute.
func loadRateLimit() int {
	const defaultLimit = 300
	raw := os.Getenv("RATE_LIMIT_PER_MINUTE")
	if raw == "" {
		return defaultLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		slog.Warn("invalid RATE_LIMIT_PER_MINUTE, using default",
			slog.String("value", raw),
			slog.Int("default", defaultLimit))
		return defaultLimit
	}
	return limit
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go slo.StartUpdater(ctx, prometheus.DefaultGatherer, time.Minute)

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", ":8080"),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
