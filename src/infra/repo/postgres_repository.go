package repo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"itemsapi/src/core/domain"
	"itemsapi/src/infra/db"
)

const (
	pgListItems = `
		SELECT id, name, created_at
		FROM items
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	pgListItemsFiltered = `
		SELECT id, name, created_at
		FROM items
		WHERE name ILIKE $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	pgGetItem = `
		SELECT id, name, created_at
		FROM items
		WHERE id = $1
	`
	pgCreateItem = `
		INSERT INTO items (name)
		VALUES ($1)
		RETURNING id, name, created_at
	`
	pgPing = `SELECT 1 AS ok`
)

// PostgresRepository implements ItemRepository using pgx.
type PostgresRepository struct {
	conns db.Source[db.PgxPool]
	log   *slog.Logger
}

// NewPostgresRepository constructs a repository backed by Postgres.
func NewPostgresRepository(conns db.Source[db.PgxPool], log *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		conns: conns,
		log:   log,
	}
}

func (r *PostgresRepository) Ping(ctx context.Context) (int, error) {
	pool, err := r.conns.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	var ok int
	if err := pool.QueryRow(ctx, pgPing).Scan(&ok); err != nil {
		return 0, r.storageError("ping", err)
	}
	return ok, nil
}

func (r *PostgresRepository) List(ctx context.Context, query string) ([]domain.Item, error) {
	pool, err := r.conns.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var rows pgx.Rows
	if query == "" {
		rows, err = pool.Query(ctx, pgListItems, domain.MaxListItems)
	} else {
		rows, err = pool.Query(ctx, pgListItemsFiltered, likePattern(query), domain.MaxListItems)
	}
	if err != nil {
		return nil, r.storageError("list items", err)
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.CreatedAt); err != nil {
			return nil, r.storageError("scan item", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, r.storageError("list items", err)
	}
	return items, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*domain.Item, error) {
	pool, err := r.conns.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	var it domain.Item
	if err := pool.QueryRow(ctx, pgGetItem, id).Scan(&it.ID, &it.Name, &it.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("item")
		}
		return nil, r.storageError("get item", err)
	}
	return &it, nil
}

func (r *PostgresRepository) Create(ctx context.Context, name string) (*domain.Item, error) {
	pool, err := r.conns.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	var it domain.Item
	if err := pool.QueryRow(ctx, pgCreateItem, name).Scan(&it.ID, &it.Name, &it.CreatedAt); err != nil {
		return nil, r.storageError("create item", err)
	}
	return &it, nil
}

func (r *PostgresRepository) storageError(op string, err error) error {
	r.log.Error("postgres statement failed", "op", op, "error", err)
	return domain.NewStorageError(op, err)
}
