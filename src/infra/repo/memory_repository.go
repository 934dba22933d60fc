package repo

import (
	"context"
	"sync"
	"time"

	"itemsapi/src/core/domain"
)

var seedNames = []string{"Alpha", "Beta", "Gamma"}

// MemoryRepository keeps items in insertion order; ids grow monotonically.
type MemoryRepository struct {
	mu     sync.RWMutex
	items  []domain.Item
	nextID int64
	now    func() time.Time
}

// NewMemoryRepository creates an empty store, or one holding the sample
// items Alpha, Beta and Gamma when seed is set.
func NewMemoryRepository(seed bool) *MemoryRepository {
	r := &MemoryRepository{now: time.Now}
	if seed {
		for _, name := range seedNames {
			r.insert(name)
		}
	}
	return r
}

// Ping always fails: there is no database behind the memory store.
func (r *MemoryRepository) Ping(_ context.Context) (int, error) {
	return 0, &domain.NotConfiguredError{
		Missing: []string{},
		Message: "store driver memory has no database",
	}
}

func (r *MemoryRepository) List(_ context.Context, query string) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Item, 0, min(len(r.items), domain.MaxListItems))
	for i := len(r.items) - 1; i >= 0 && len(out) < domain.MaxListItems; i-- {
		if r.items[i].MatchesQuery(query) {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

func (r *MemoryRepository) Get(_ context.Context, id int64) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.ID == id {
			found := it
			return &found, nil
		}
	}
	return nil, domain.NewNotFoundError("item")
}

func (r *MemoryRepository) Create(_ context.Context, name string) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it := r.insertLocked(name)
	return &it, nil
}

func (r *MemoryRepository) insert(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insertLocked(name)
}

func (r *MemoryRepository) insertLocked(name string) domain.Item {
	r.nextID++
	it := domain.Item{
		ID:        r.nextID,
		Name:      name,
		CreatedAt: r.now().UTC(),
	}
	r.items = append(r.items, it)
	return it
}
