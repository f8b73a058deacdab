package requests

import (
	"context"
	"testing"
	"time"

	"gamehub/backend/internal/apperr"
	"gamehub/backend/internal/auth"
	"gamehub/backend/internal/models"
	"gamehub/backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = auth.Identity{ID: 1, Username: "alice", Role: models.RoleBasic}
	bob   = auth.Identity{ID: 2, Username: "bob", Role: models.RoleGameAdder}
	admin = auth.Identity{ID: 3, Username: "root", Role: models.RoleAdmin}
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(store.NewMemory())
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc
}

func TestSubmit(t *testing.T) {
	svc := newTestService(t)

	req, err := svc.Submit(context.Background(), alice, " 620 ", "Portal 2", "please")
	require.NoError(t, err)
	assert.Equal(t, 1, req.ID)
	assert.Equal(t, "620", req.SteamID)
	assert.Equal(t, "alice", req.Username)
	assert.Equal(t, models.RequestPending, req.Status)

	_, err = svc.Submit(context.Background(), alice, "1", "", "")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestListScopedToCaller(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, caller := range []auth.Identity{alice, bob, alice} {
		_, err := svc.Submit(ctx, caller, "", "game by "+caller.Username, "")
		require.NoError(t, err)
	}

	own, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, own, 2)
	for _, r := range own {
		assert.Equal(t, "alice", r.Username)
	}
	assert.Equal(t, 3, own[0].ID, "newest first")

	bobs, err := svc.List(ctx, bob)
	require.NoError(t, err)
	require.Len(t, bobs, 1)
	assert.Equal(t, "bob", bobs[0].Username)

	all, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSetStatusTransitions(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	req, err := svc.Submit(ctx, alice, "", "Celeste", "")
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, alice, req.ID, models.RequestApproved)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	_, err = svc.SetStatus(ctx, admin, req.ID, models.RequestPending)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = svc.SetStatus(ctx, admin, req.ID, "maybe")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	updated, err := svc.SetStatus(ctx, admin, req.ID, models.RequestApproved)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, updated.Status)

	_, err = svc.SetStatus(ctx, admin, req.ID, models.RequestRejected)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	_, err = svc.SetStatus(ctx, admin, 99, models.RequestRejected)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	req, err := svc.Submit(ctx, alice, "", "Hades", "")
	require.NoError(t, err)

	err = svc.Delete(ctx, alice, req.ID)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	require.NoError(t, svc.Delete(ctx, admin, req.ID))

	all, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, all)

	err = svc.Delete(ctx, admin, req.ID)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
