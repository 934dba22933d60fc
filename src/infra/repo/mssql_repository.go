package repo

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"itemsapi/src/core/domain"
	"itemsapi/src/infra/db"
)

const (
	msListItems = `
		SELECT TOP (@p1) id, name, created_at
		FROM items
		ORDER BY created_at DESC, id DESC
	`
	msListItemsFiltered = `
		SELECT TOP (@p1) id, name, created_at
		FROM items
		WHERE LOWER(name) LIKE @p2 ESCAPE '\'
		ORDER BY created_at DESC, id DESC
	`
	msGetItem = `
		SELECT id, name, created_at
		FROM items
		WHERE id = @p1
	`
	msCreateItem = `
		INSERT INTO items (name)
		OUTPUT INSERTED.id, INSERTED.name, INSERTED.created_at
		VALUES (@p1)
	`
	msPing = `SELECT 1 AS ok`
)

// MSSQLRepository implements ItemRepository on SQL Server through database/sql.
type MSSQLRepository struct {
	conns db.Source[*sql.DB]
	log   *slog.Logger
}

// NewMSSQLRepository constructs a repository backed by SQL Server.
func NewMSSQLRepository(conns db.Source[*sql.DB], log *slog.Logger) *MSSQLRepository {
	return &MSSQLRepository{
		conns: conns,
		log:   log,
	}
}

func (r *MSSQLRepository) Ping(ctx context.Context) (int, error) {
	conn, err := r.conns.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	var ok int
	if err := conn.QueryRowContext(ctx, msPing).Scan(&ok); err != nil {
		return 0, r.storageError("ping", err)
	}
	return ok, nil
}

func (r *MSSQLRepository) List(ctx context.Context, query string) ([]domain.Item, error) {
	conn, err := r.conns.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var rows *sql.Rows
	if query == "" {
		rows, err = conn.QueryContext(ctx, msListItems, domain.MaxListItems)
	} else {
		rows, err = conn.QueryContext(ctx, msListItemsFiltered, domain.MaxListItems, likePattern(query))
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

func (r *MSSQLRepository) Get(ctx context.Context, id int64) (*domain.Item, error) {
	conn, err := r.conns.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	var it domain.Item
	if err := conn.QueryRowContext(ctx, msGetItem, id).Scan(&it.ID, &it.Name, &it.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("item")
		}
		return nil, r.storageError("get item", err)
	}
	return &it, nil
}

func (r *MSSQLRepository) Create(ctx context.Context, name string) (*domain.Item, error) {
	conn, err := r.conns.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	var it domain.Item
	if err := conn.QueryRowContext(ctx, msCreateItem, name).Scan(&it.ID, &it.Name, &it.CreatedAt); err != nil {
		return nil, r.storageError("create item", err)
	}
	return &it, nil
}

func (r *MSSQLRepository) storageError(op string, err error) error {
	r.log.Error("mssql statement failed", "op", op, "error", err)
	return domain.NewStorageError(op, err)
}
