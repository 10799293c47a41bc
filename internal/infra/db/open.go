package db

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"outfitmatch/internal/pkg/config"
)

// Pool sizing defaults. The matcher issues one vector search per outfit
// slot, so a single recommendation request can fan out to several
// concurrent queries.
const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 10
	defaultConnMaxLifetime = time.Hour
	defaultConnMaxIdleTime = 30 * time.Minute
)

// PoolSettings holds the connection pool knobs applied to the pgx pool.
type PoolSettings struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Open connects to the database named by DATABASE_URL, applies pool
// settings from the environment, and verifies the connection with a
// bounded ping. A missing DSN or unreachable database aborts startup.
func Open() *sql.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatal(err)
	}

	settings := loadPoolSettings()
	pool.SetMaxOpenConns(settings.MaxOpenConns)
	pool.SetMaxIdleConns(settings.MaxIdleConns)
	pool.SetConnMaxLifetime(settings.ConnMaxLifetime)
	pool.SetConnMaxIdleTime(settings.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.Int("max_open_conns", settings.MaxOpenConns),
		slog.Int("max_idle_conns", settings.MaxIdleConns),
		slog.Duration("conn_max_lifetime", settings.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", settings.ConnMaxIdleTime))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	slog.Info("database connection established")
	return pool
}

// loadPoolSettings reads pool sizing from the environment with the same
// fail-open behavior as the rest of the engine's configuration: invalid
// values are logged and replaced by defaults.
func loadPoolSettings() PoolSettings {
	positive := func(n int) error { return config.ValidateIntRange(n, 1, 10000) }
	bounded := func(d time.Duration) error { return config.ValidateDuration(d, time.Second, 24*time.Hour) }

	maxOpen := config.LoadEnvInt("DB_MAX_OPEN_CONNS", defaultMaxOpenConns, positive)
	maxIdle := config.LoadEnvInt("DB_MAX_IDLE_CONNS", defaultMaxIdleConns, positive)
	lifetime := config.LoadEnvDuration("DB_CONN_MAX_LIFETIME", defaultConnMaxLifetime, bounded)
	idleTime := config.LoadEnvDuration("DB_CONN_MAX_IDLE_TIME", defaultConnMaxIdleTime, bounded)

	for _, result := range []config.ConfigLoadResult{maxOpen, maxIdle, lifetime, idleTime} {
		for _, warning := range result.Warnings {
			slog.Warn("database pool configuration", slog.String("detail", warning))
		}
	}

	return PoolSettings{
		MaxOpenConns:    maxOpen.Value.(int),
		MaxIdleConns:    maxIdle.Value.(int),
		ConnMaxLifetime: lifetime.Value.(time.Duration),
		ConnMaxIdleTime: idleTime.Value.(time.Duration),
	}
}
