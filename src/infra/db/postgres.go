package db

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"itemsapi/src/infra/config"
	"itemsapi/src/infra/metrics"
)

// PgxPool is the part of *pgxpool.Pool the repositories use.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// NewPostgresManager returns a Manager that dials PostgreSQL with pgx on first use.
func NewPostgresManager(gate Gate, cfg config.DatabaseConfig, log *slog.Logger, m *metrics.Metrics) *Manager[PgxPool] {
	return NewManager(gate, ConnectPostgres(cfg, log), func(p PgxPool) { p.Close() }, Options{
		ConnectTimeout: cfg.ConnectTimeout,
		Log:            log,
		Metrics:        m,
	})
}

// ConnectPostgres reads the PG* variables and opens a verified pgx pool.
func ConnectPostgres(cfg config.DatabaseConfig, log *slog.Logger) ConnectFunc[PgxPool] {
	return func(ctx context.Context) (PgxPool, error) {
		settings, err := config.LoadPostgresSettings()
		if err != nil {
			return nil, err
		}

		poolCfg, err := newPoolConfig(settings.DSN(), cfg)
		if err != nil {
			return nil, err
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create connection pool: %w", err)
		}

		// Verify connection
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}

		log.Info("database connection established",
			"driver", string(config.DriverPostgres),
			"target", settings.Target(),
		)
		return pool, nil
	}
}

// newPoolConfig applies the pool settings to a parsed DSN. pgxpool has no idle
// cap, so MaxIdleConns is left to database/sql drivers; the pool keeps pgx's
// zero minimum and opens connections on demand.
func newPoolConfig(dsn string, cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = clampInt32(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	return poolCfg, nil
}

func clampInt32(v int) int32 {
	switch {
	case v <= 0:
		return 0
	case v > math.MaxInt32:
		return math.MaxInt32
	default:
		return int32(v)
	}
}
