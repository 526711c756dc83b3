package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPostgresStoreTest(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	return NewPostgresStore(mockPool), mockPool
}

func TestPostgresStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		store, mockPool := setupPostgresStoreTest(t)
		mockPool.ExpectQuery(`SELECT value FROM ai_cache WHERE cache_key = \$1`).
			WithArgs("k").
			WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow([]byte(`{"a":1}`)))

		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, string(got))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("no rows maps to ErrNotFound", func(t *testing.T) {
		store, mockPool := setupPostgresStoreTest(t)
		mockPool.ExpectQuery(`SELECT value FROM ai_cache`).
			WithArgs("k").
			WillReturnError(pgx.ErrNoRows)

		_, err := store.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("driver error is wrapped", func(t *testing.T) {
		store, mockPool := setupPostgresStoreTest(t)
		boom := errors.New("connection reset")
		mockPool.ExpectQuery(`SELECT value FROM ai_cache`).
			WithArgs("k").
			WillReturnError(boom)

		_, err := store.Get(ctx, "k")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestPostgresStore_SetDelete(t *testing.T) {
	ctx := context.Background()
	store, mockPool := setupPostgresStoreTest(t)

	mockPool.ExpectExec(`INSERT INTO ai_cache`).
		WithArgs("k", []byte("v"), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectExec(`DELETE FROM ai_cache WHERE cache_key = \$1`).
		WithArgs("k").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mockPool.ExpectExec(`DELETE FROM ai_cache WHERE expires_at < NOW\(\)`).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Hour))
	require.NoError(t, store.Delete(ctx, "k"))
	n, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
