// Package db provides database connection management.
//
// This package is responsible for:
//   - Lazy, shared connection establishment (Manager) for PostgreSQL (pgx) and SQL Server
//   - Degraded mode: callers get a not configured error instead of a dial when
//     required variables are missing
//   - Schema migrations for the items table (goose)
//
// Example usage:
//
//	gate := config.NewGate(config.DriverPostgres)
//	conns := db.NewPostgresManager(gate, cfg.Database, log, m)
//	defer conns.Close()
//
//	pool, err := conns.Acquire(ctx)
package db
