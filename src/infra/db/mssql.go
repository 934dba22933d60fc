package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	// Registers the "sqlserver" database/sql driver.
	_ "github.com/microsoft/go-mssqldb"

	"itemsapi/src/infra/config"
	"itemsapi/src/infra/metrics"
)

const mssqlDriverName = "sqlserver"

// NewMSSQLManager returns a Manager that dials SQL Server on first use.
func NewMSSQLManager(gate Gate, cfg config.DatabaseConfig, log *slog.Logger, m *metrics.Metrics) *Manager[*sql.DB] {
	return NewManager(gate, ConnectMSSQL(cfg, log), func(db *sql.DB) { _ = db.Close() }, Options{
		ConnectTimeout: cfg.ConnectTimeout,
		Log:            log,
		Metrics:        m,
	})
}

// ConnectMSSQL reads the DB_* variables and opens a verified database/sql pool.
func ConnectMSSQL(cfg config.DatabaseConfig, log *slog.Logger) ConnectFunc[*sql.DB] {
	return func(ctx context.Context) (*sql.DB, error) {
		settings, err := config.LoadMSSQLSettings()
		if err != nil {
			return nil, err
		}

		db, err := sql.Open(mssqlDriverName, settings.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}

		log.Info("database connection established",
			"driver", string(config.DriverMSSQL),
			"target", settings.Target(),
		)
		return db, nil
	}
}
