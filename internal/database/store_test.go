package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gamehub/backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

type row struct {
	ID int `json:"id"`
}

func openTestDB(t *testing.T, path string) *Store {
	t.Helper()
	db, err := Open(sqlite.Open(path))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewStore(db)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return openTestDB(t, filepath.Join(t.TempDir(), "gamehub.db"))
}

func TestOpenSeedsEveryCollection(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, c := range store.Collections {
		data, err := s.Read(ctx, c)
		require.NoError(t, err, c)
		assert.JSONEq(t, "[]", string(data), c)
	}

	data, err := s.Read(ctx, store.Collection("unknown"))
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestReopenKeepsExistingRows(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "gamehub.db")
	s := openTestDB(t, path)
	require.NoError(t, store.Save(ctx, s, store.Games, []row{{ID: 1}}))

	reopened := openTestDB(t, path)
	items, err := store.Load[row](ctx, reopened, store.Games)
	require.NoError(t, err)
	assert.Equal(t, []row{{ID: 1}}, items)
}

func TestStoreWriteReplacesCollection(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, store.Save(ctx, s, store.Games, []row{{ID: 1}, {ID: 2}}))
	require.NoError(t, store.Save(ctx, s, store.Games, []row{{ID: 3}}))

	items, err := store.Load[row](ctx, s, store.Games)
	require.NoError(t, err)
	assert.Equal(t, []row{{ID: 3}}, items)
}

func TestStoreAtomicRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, store.Save(ctx, s, store.Games, []row{{ID: 1}}))
	require.NoError(t, store.Save(ctx, s, store.Comments, []row{{ID: 10}, {ID: 11}}))

	boom := errors.New("boom")
	err := s.Atomic(ctx, func(tx store.Store) error {
		if err := store.Save(ctx, tx, store.Games, []row{}); err != nil {
			return err
		}
		if err := store.Save(ctx, tx, store.Comments, []row{}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	games, err := store.Load[row](ctx, s, store.Games)
	require.NoError(t, err)
	assert.Len(t, games, 1)

	comments, err := store.Load[row](ctx, s, store.Comments)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestStoreAtomicCommits(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := store.Atomic(ctx, s, func(tx store.Store) error {
		return store.Save(ctx, tx, store.Threads, []row{{ID: 5}})
	})
	require.NoError(t, err)

	threads, err := store.Load[row](ctx, s, store.Threads)
	require.NoError(t, err)
	assert.Equal(t, []row{{ID: 5}}, threads)
}
