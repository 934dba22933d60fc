package repo

import (
	"fmt"
	"log/slog"

	"itemsapi/src/core/ports"
	"itemsapi/src/infra/config"
	"itemsapi/src/infra/db"
	"itemsapi/src/infra/logger"
	"itemsapi/src/infra/metrics"
)

// Store is the repository selected by configuration plus its shutdown hook.
type Store struct {
	Items ports.ItemRepository
	Close func()
}

// NewStore builds the repository for cfg.Store.Driver. Relational drivers get
// a lazy connection manager: nothing is dialed here.
func NewStore(cfg *config.Config, gate db.Gate, log *slog.Logger, m *metrics.Metrics) (*Store, error) {
	dbLog := logger.WithComponent(log, "db")
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return &Store{Items: NewMemoryRepository(cfg.Store.MemorySeed), Close: func() {}}, nil
	case config.DriverPostgres:
		conns := db.NewPostgresManager(gate, cfg.Database, dbLog, m)
		return &Store{Items: NewPostgresRepository(conns, dbLog), Close: conns.Close}, nil
	case config.DriverMSSQL:
		conns := db.NewMSSQLManager(gate, cfg.Database, dbLog, m)
		return &Store{Items: NewMSSQLRepository(conns, dbLog), Close: conns.Close}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
