package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itemsapi/src/core/domain"
	"itemsapi/src/infra/db"
	"itemsapi/src/infra/logger"
)

func newPostgresRepo(t *testing.T) (*PostgresRepository, pgxmock.PgxPoolIface, *stubSource[db.PgxPool]) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	src := &stubSource[db.PgxPool]{handle: mockPool}
	return NewPostgresRepository(src, logger.Discard()), mockPool, src
}

func TestPostgresRepository_List(t *testing.T) {
	t.Run("Should list newest items with the fixed cap", func(t *testing.T) {
		repo, mockPool, _ := newPostgresRepo(t)
		now := time.Now().UTC()
		rows := mockPool.NewRows([]string{"id", "name", "created_at"}).
			AddRow(int64(3), "C", now).
			AddRow(int64(2), "B", now.Add(-time.Minute))
		mockPool.ExpectQuery(`SELECT id, name, created_at FROM items ORDER BY created_at DESC, id DESC LIMIT \$1`).
			WithArgs(domain.MaxListItems).
			WillReturnRows(rows)

		items, err := repo.List(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, int64(3), items[0].ID)
		assert.Equal(t, "B", items[1].Name)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should filter with an escaped ILIKE pattern", func(t *testing.T) {
		repo, mockPool, _ := newPostgresRepo(t)
		mockPool.ExpectQuery(`SELECT id, name, created_at FROM items WHERE name ILIKE \$1`).
			WithArgs(`%50\%%`, domain.MaxListItems).
			WillReturnRows(mockPool.NewRows([]string{"id", "name", "created_at"}))

		items, err := repo.List(context.Background(), "50%")
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should wrap query failures as storage errors", func(t *testing.T) {
		repo, mockPool, _ := newPostgresRepo(t)
		mockPool.ExpectQuery(`SELECT (.+) FROM items`).
			WithArgs(domain.MaxListItems).
			WillReturnError(errors.New("relation \"items\" does not exist"))

		_, err := repo.List(context.Background(), "")
		assert.True(t, domain.IsStorageError(err))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should pass acquire errors through untouched", func(t *testing.T) {
		repo, mockPool, src := newPostgresRepo(t)
		src.err = domain.NewNotConfiguredError([]string{"PGHOST"})

		_, err := repo.List(context.Background(), "")
		assert.True(t, domain.IsNotConfigured(err))
		assert.False(t, domain.IsStorageError(err))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPostgresRepository_Get(t *testing.T) {
	t.Run("Should return the matching row", func(t *testing.T) {
		repo, mockPool, _ := newPostgresRepo(t)
		now := time.Now().UTC()
		mockPool.ExpectQuery(`SELECT id, name, created_at FROM items WHERE id = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(mockPool.NewRows([]string{"id", "name", "created_at"}).AddRow(int64(7), "Seven", now))

		it, err := repo.Get(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, "Seven", it.Name)
		assert.Equal(t, now, it.CreatedAt)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should map no rows to not found", func(t *testing.T) {
		repo, mockPool, _ := newPostgresRepo(t)
		mockPool.ExpectQuery(`SELECT (.+) FROM items WHERE id = \$1`).
			WithArgs(int64(404)).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.Get(context.Background(), 404)
		assert.True(t, domain.IsNotFound(err))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPostgresRepository_Create(t *testing.T) {
	t.Run("Should insert and read back generated fields in one statement", func(t *testing.T) {
		repo, mockPool, src := newPostgresRepo(t)
		now := time.Now().UTC()
		mockPool.ExpectQuery(`INSERT INTO items \(name\) VALUES \(\$1\) RETURNING id, name, created_at`).
			WithArgs("Delta").
			WillReturnRows(mockPool.NewRows([]string{"id", "name", "created_at"}).AddRow(int64(42), "Delta", now))

		it, err := repo.Create(context.Background(), "Delta")
		require.NoError(t, err)
		assert.Equal(t, int64(42), it.ID)
		assert.Equal(t, now, it.CreatedAt)
		assert.Equal(t, 1, src.calls)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should wrap insert failures as storage errors", func(t *testing.T) {
		repo, mockPool, _ := newPostgresRepo(t)
		mockPool.ExpectQuery(`INSERT INTO items`).
			WithArgs("Delta").
			WillReturnError(errors.New("connection reset by peer"))

		_, err := repo.Create(context.Background(), "Delta")
		assert.True(t, domain.IsStorageError(err))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPostgresRepository_Ping(t *testing.T) {
	t.Run("Should return the SELECT 1 result", func(t *testing.T) {
		repo, mockPool, _ := newPostgresRepo(t)
		mockPool.ExpectQuery(`SELECT 1 AS ok`).
			WillReturnRows(mockPool.NewRows([]string{"ok"}).AddRow(1))

		ok, err := repo.Ping(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, ok)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should surface connect failures from the source", func(t *testing.T) {
		repo, _, src := newPostgresRepo(t)
		src.err = domain.NewConnectFailedError(errors.New("timeout"))

		_, err := repo.Ping(context.Background())
		assert.True(t, domain.IsConnectFailed(err))
	})
}
