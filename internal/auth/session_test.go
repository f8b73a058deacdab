package auth

import (
	"context"
	"testing"
	"time"

	"gamehub/backend/internal/apperr"
	"gamehub/backend/internal/models"
	"gamehub/backend/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessions() *Sessions {
	return NewSessions(jwt.NewIssuer("test-secret", 24*time.Hour), nil)
}

func TestVerifyRoundTrip(t *testing.T) {
	s := newTestSessions()
	token, err := s.Issue(models.User{ID: 4, Username: "alice", Role: models.RoleGameAdder})
	require.NoError(t, err)

	id, err := s.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, Identity{ID: 4, Username: "alice", Role: models.RoleGameAdder}, id)
}

func TestVerifyMissingToken(t *testing.T) {
	_, err := newTestSessions().Verify(context.Background(), "")
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}

func TestVerifyInvalidToken(t *testing.T) {
	_, err := newTestSessions().Verify(context.Background(), "abc.def.ghi")
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}

func TestVerifyExpiredToken(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour)
	old := NewSessions(jwt.NewIssuer("test-secret", 24*time.Hour, jwt.WithClock(func() time.Time { return past })), nil)
	token, err := old.Issue(models.User{ID: 1, Username: "bob", Role: models.RoleBasic})
	require.NoError(t, err)

	_, err = newTestSessions().Verify(context.Background(), token)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}

func TestRevokedTokenIsForbidden(t *testing.T) {
	ctx := context.Background()
	s := newTestSessions()
	token, err := s.Issue(models.User{ID: 1, Username: "bob", Role: models.RoleBasic})
	require.NoError(t, err)

	require.NoError(t, s.Revoke(ctx, token))

	_, err = s.Verify(ctx, token)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}

func TestRevokeAccountKeepsOtherAccounts(t *testing.T) {
	ctx := context.Background()
	s := newTestSessions()
	old, err := s.Issue(models.User{ID: 2, Username: "mallory", Role: models.RoleBasic, SessionKey: "k1"})
	require.NoError(t, err)
	reused, err := s.Issue(models.User{ID: 2, Username: "carol", Role: models.RoleBasic, SessionKey: "k2"})
	require.NoError(t, err)

	require.NoError(t, s.RevokeAccount(ctx, "k1"))

	_, err = s.Verify(ctx, old)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	id, err := s.Verify(ctx, reused)
	require.NoError(t, err)
	assert.Equal(t, "carol", id.Username)
}

func TestClaimsAreNotRecheckedAgainstStorage(t *testing.T) {
	// The role embedded at issuance stays in force until expiry.
	s := newTestSessions()
	token, err := s.Issue(models.User{ID: 9, Username: "demoted", Role: models.RoleAdmin})
	require.NoError(t, err)

	id, err := s.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, id.Role)
}

func TestMemoryDenylistForgetsExpiredEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	d := NewMemoryDenylist()
	d.now = func() time.Time { return now }

	require.NoError(t, d.Revoke(ctx, "a", now.Add(time.Minute)))
	require.NoError(t, d.Revoke(ctx, "b", now.Add(-time.Minute)))

	revoked, _ := d.IsRevoked(ctx, "a")
	assert.True(t, revoked)
	revoked, _ = d.IsRevoked(ctx, "b")
	assert.False(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, _ = d.IsRevoked(ctx, "a")
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "c", now.Add(time.Minute)))
	assert.Len(t, d.entries, 1)
}
