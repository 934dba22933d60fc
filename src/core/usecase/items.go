package usecase

import (
	"context"
	"log/slog"

	"itemsapi/src/core/domain"
	"itemsapi/src/core/ports"
)

// ItemService handles list/get/create of items.
type ItemService struct {
	repo ports.ItemRepository
	log  *slog.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(repo ports.ItemRepository, log *slog.Logger) *ItemService {
	return &ItemService{repo: repo, log: log}
}

// List returns the newest items, optionally filtered by a name substring.
func (s *ItemService) List(ctx context.Context, query string) ([]domain.Item, error) {
	return s.repo.List(ctx, domain.NormalizeQuery(query))
}

// Get returns a single item.
func (s *ItemService) Get(ctx context.Context, id int64) (*domain.Item, error) {
	return s.repo.Get(ctx, id)
}

// Create validates the name and stores a new item.
// Invalid input never reaches the repository.
func (s *ItemService) Create(ctx context.Context, name string) (*domain.Item, error) {
	if err := domain.ValidateItemName(name); err != nil {
		return nil, err
	}
	item, err := s.repo.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	s.log.Info("item created", "id", item.ID)
	return item, nil
}
