// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra/repo. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"

	"itemsapi/src/core/domain"
)

// Repository is the base interface for all repositories.
type Repository interface {
	// Ping issues a trivial statement through the shared connection and
	// returns its scalar result (1 when healthy).
	Ping(ctx context.Context) (int, error)
}

// ItemRepository stores items. Implementations assign ID and CreatedAt.
type ItemRepository interface {
	Repository

	// List returns at most domain.MaxListItems items, newest first.
	// A non-empty query filters names by case-insensitive substring.
	List(ctx context.Context, query string) ([]domain.Item, error)

	// Get returns the item with the given id or a not found error.
	Get(ctx context.Context, id int64) (*domain.Item, error)

	// Create inserts an item and returns it as stored.
	Create(ctx context.Context, name string) (*domain.Item, error)
}
