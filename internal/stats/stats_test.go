package stats

import (
	"context"
	"testing"

	"gamehub/backend/internal/apperr"
	"gamehub/backend/internal/models"
	"gamehub/backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounts(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, store.Save(ctx, st, store.Games, []models.Game{{ID: 1}, {ID: 2}, {ID: 3}}))
	require.NoError(t, store.Save(ctx, st, store.Users, []models.User{{ID: 1}}))

	counts, err := NewService(st).Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{Games: 3, Users: 1, Comments: 0}, counts)
}

func TestCountsReflectWritesImmediately(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewService(st)

	before, err := svc.Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, before.Comments)

	require.NoError(t, store.Save(ctx, st, store.Comments, []models.Comment{{ID: 1}, {ID: 2}}))

	after, err := svc.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, after.Comments)
}

func TestCountsCorruptCollection(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, st.Write(ctx, store.Users, []byte("{not json")))

	_, err := NewService(st).Counts(ctx)
	assert.Equal(t, apperr.Internal, apperr.KindOf(err))
	assert.Equal(t, "Failed to fetch stats", apperr.Message(err))
}
