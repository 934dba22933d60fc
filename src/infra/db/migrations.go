package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"

	// Registers the "pgx" database/sql driver used by goose for postgres.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"itemsapi/src/core/domain"
	"itemsapi/src/infra/config"
)

//go:embed migrations/postgres/*.sql migrations/mssql/*.sql
var migrationsFS embed.FS

var gooseMu sync.Mutex

// Migration commands accepted by Migrate.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
)

type migrationTarget struct {
	sqlDriver string
	dialect   string
	dir       string
	dsn       string
}

// Migrate runs a goose command against the database of the selected driver.
// It honors the same configuration gate as the HTTP layer.
func Migrate(ctx context.Context, gate Gate, driver config.Driver, command string, log *slog.Logger) error {
	if missing := gate.Missing(); len(missing) > 0 {
		return domain.NewNotConfiguredError(missing)
	}
	target, err := resolveMigrationTarget(driver)
	if err != nil {
		return err
	}

	db, err := sql.Open(target.sqlDriver, target.dsn)
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	log.Info("running migrations", "driver", string(driver), "command", command)
	return runMigrations(ctx, db, target, command)
}

func resolveMigrationTarget(driver config.Driver) (migrationTarget, error) {
	switch driver {
	case config.DriverPostgres:
		s, err := config.LoadPostgresSettings()
		if err != nil {
			return migrationTarget{}, err
		}
		return migrationTarget{sqlDriver: "pgx", dialect: "postgres", dir: "migrations/postgres", dsn: s.DSN()}, nil
	case config.DriverMSSQL:
		s, err := config.LoadMSSQLSettings()
		if err != nil {
			return migrationTarget{}, err
		}
		return migrationTarget{sqlDriver: mssqlDriverName, dialect: "mssql", dir: "migrations/mssql", dsn: s.DSN()}, nil
	default:
		return migrationTarget{}, fmt.Errorf("driver %q has no migrations", driver)
	}
}

// runMigrations applies a goose command on the provided *sql.DB.
func runMigrations(ctx context.Context, db *sql.DB, target migrationTarget, command string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(target.dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	var err error
	switch command {
	case MigrateUp:
		err = goose.UpContext(ctx, db, target.dir)
	case MigrateDown:
		err = goose.DownContext(ctx, db, target.dir)
	case MigrateStatus:
		err = goose.StatusContext(ctx, db, target.dir)
	default:
		return fmt.Errorf("unknown migration command %q (want up, down or status)", command)
	}
	if err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
