package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itemsapi/src/core/domain"
	"itemsapi/src/infra/logger"
)

func newMSSQLRepo(t *testing.T) (*MSSQLRepository, sqlmock.Sqlmock, *stubSource[*sql.DB]) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	src := &stubSource[*sql.DB]{handle: conn}
	return NewMSSQLRepository(src, logger.Discard()), mock, src
}

var itemColumns = []string{"id", "name", "created_at"}

func TestMSSQLRepository_List(t *testing.T) {
	t.Run("Should list newest items with TOP", func(t *testing.T) {
		repo, mock, _ := newMSSQLRepo(t)
		now := time.Now().UTC()
		mock.ExpectQuery(`SELECT TOP \(@p1\) id, name, created_at FROM items ORDER BY created_at DESC, id DESC`).
			WithArgs(int64(domain.MaxListItems)).
			WillReturnRows(sqlmock.NewRows(itemColumns).
				AddRow(int64(3), "C", now).
				AddRow(int64(2), "B", now))

		items, err := repo.List(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "C", items[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should filter with a lower-cased LIKE pattern", func(t *testing.T) {
		repo, mock, _ := newMSSQLRepo(t)
		mock.ExpectQuery(`WHERE LOWER\(name\) LIKE @p2`).
			WithArgs(int64(domain.MaxListItems), "%gam%").
			WillReturnRows(sqlmock.NewRows(itemColumns))

		items, err := repo.List(context.Background(), "gam")
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should wrap row errors as storage errors", func(t *testing.T) {
		repo, mock, _ := newMSSQLRepo(t)
		mock.ExpectQuery(`SELECT TOP`).
			WillReturnRows(sqlmock.NewRows(itemColumns).
				AddRow(int64(1), "A", time.Now()).
				RowError(0, errors.New("network reset")))

		_, err := repo.List(context.Background(), "")
		assert.True(t, domain.IsStorageError(err))
	})
}

func TestMSSQLRepository_Get(t *testing.T) {
	t.Run("Should map no rows to not found", func(t *testing.T) {
		repo, mock, _ := newMSSQLRepo(t)
		mock.ExpectQuery(`SELECT id, name, created_at FROM items WHERE id = @p1`).
			WithArgs(int64(9)).
			WillReturnRows(sqlmock.NewRows(itemColumns))

		_, err := repo.Get(context.Background(), 9)
		assert.True(t, domain.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should return the matching row", func(t *testing.T) {
		repo, mock, _ := newMSSQLRepo(t)
		now := time.Now().UTC()
		mock.ExpectQuery(`WHERE id = @p1`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(itemColumns).AddRow(int64(1), "Alpha", now))

		it, err := repo.Get(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Alpha", it.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMSSQLRepository_Create(t *testing.T) {
	t.Run("Should insert with OUTPUT INSERTED in one round trip", func(t *testing.T) {
		repo, mock, _ := newMSSQLRepo(t)
		now := time.Now().UTC()
		mock.ExpectQuery(`INSERT INTO items \(name\) OUTPUT INSERTED.id, INSERTED.name, INSERTED.created_at VALUES \(@p1\)`).
			WithArgs("Delta").
			WillReturnRows(sqlmock.NewRows(itemColumns).AddRow(int64(12), "Delta", now))

		it, err := repo.Create(context.Background(), "Delta")
		require.NoError(t, err)
		assert.Equal(t, int64(12), it.ID)
		assert.Equal(t, now, it.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should wrap driver failures as storage errors", func(t *testing.T) {
		repo, mock, _ := newMSSQLRepo(t)
		mock.ExpectQuery(`INSERT INTO items`).
			WithArgs("Delta").
			WillReturnError(errors.New("mssql: Cannot insert the value NULL"))

		_, err := repo.Create(context.Background(), "Delta")
		assert.True(t, domain.IsStorageError(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMSSQLRepository_Ping(t *testing.T) {
	t.Run("Should return the SELECT 1 result", func(t *testing.T) {
		repo, mock, _ := newMSSQLRepo(t)
		mock.ExpectQuery(`SELECT 1 AS ok`).
			WillReturnRows(sqlmock.NewRows([]string{"ok"}).AddRow(1))

		ok, err := repo.Ping(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should not touch the database when not configured", func(t *testing.T) {
		repo, mock, src := newMSSQLRepo(t)
		src.err = domain.NewNotConfiguredError([]string{"DB_PASSWORD"})

		_, err := repo.Ping(context.Background())
		assert.True(t, domain.IsNotConfigured(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
