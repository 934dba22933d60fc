package usecase

import (
	"context"
	"io"
	"log/slog"

	"itemsapi/src/core/domain"
	"itemsapi/src/core/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeItemRepo records calls and returns canned results.
type fakeItemRepo struct {
	items     []domain.Item
	pingErr   error
	createErr error

	listQueries []string
	createCalls int
	pingCalls   int
}

func (f *fakeItemRepo) Ping(_ context.Context) (int, error) {
	f.pingCalls++
	if f.pingErr != nil {
		return 0, f.pingErr
	}
	return 1, nil
}

func (f *fakeItemRepo) List(_ context.Context, query string) ([]domain.Item, error) {
	f.listQueries = append(f.listQueries, query)
	return f.items, nil
}

func (f *fakeItemRepo) Get(_ context.Context, id int64) (*domain.Item, error) {
	for _, it := range f.items {
		if it.ID == id {
			return &it, nil
		}
	}
	return nil, domain.NewNotFoundError("item")
}

func (f *fakeItemRepo) Create(_ context.Context, name string) (*domain.Item, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	it := domain.Item{ID: int64(len(f.items) + 1), Name: name}
	f.items = append(f.items, it)
	return &it, nil
}

type fakeInspector struct {
	missing []string
}

func (f fakeInspector) Missing() []string { return f.missing }

func (f fakeInspector) Status() ports.ConfigStatus {
	return ports.ConfigStatus{
		OK:      len(f.missing) == 0,
		Missing: f.missing,
		Visible: map[string]string{"PGHOST": "db"},
	}
}
