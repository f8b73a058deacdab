package users

import (
	"context"
	"testing"
	"time"

	"gamehub/backend/internal/apperr"
	"gamehub/backend/internal/auth"
	"gamehub/backend/internal/models"
	"gamehub/backend/internal/store"
	"gamehub/backend/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*Service, *auth.Sessions, store.Store) {
	t.Helper()
	st := store.NewMemory()
	sessions := auth.NewSessions(jwt.NewIssuer("test-secret", 24*time.Hour), nil)
	return NewService(st, sessions, WithHashCost(bcrypt.MinCost)), sessions, st
}

func TestRegisterIssuesWorkingSession(t *testing.T) {
	ctx := context.Background()
	svc, sessions, st := newTestService(t)

	sess, err := svc.Register(ctx, "alice", "pa55word")
	require.NoError(t, err)
	assert.Equal(t, 1, sess.User.ID)
	assert.Equal(t, models.RoleBasic, sess.User.Role)
	assert.Equal(t, "dark", sess.User.Theme)

	id, err := sessions.Verify(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{ID: 1, Username: "alice", Role: models.RoleBasic}, id)

	users, err := store.Load[models.User](ctx, st, store.Users)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.NotEqual(t, "pa55word", users[0].Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte("pa55word")))
}

func TestRegisterDuplicateIsConflict(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.Register(ctx, "alice", "one")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "two")
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestRegisterAssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	a, err := svc.Register(ctx, "a", "pw")
	require.NoError(t, err)
	b, err := svc.Register(ctx, "b", "pw")
	require.NoError(t, err)
	assert.Equal(t, a.User.ID+1, b.User.ID)
}

func TestRegisterRequiresCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Register(context.Background(), "  ", "pw")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newTestService(t)
	_, err := svc.Register(ctx, "alice", "correct")
	require.NoError(t, err)

	sess, err := svc.Login(ctx, "alice", "correct")
	require.NoError(t, err)
	_, err = sessions.Verify(ctx, sess.Token)
	assert.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "alice", "incorrect")
	_, unknownUser := svc.Login(ctx, "mallory", "correct")

	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(wrongPassword))
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(unknownUser))
	assert.Equal(t, apperr.Message(wrongPassword), apperr.Message(unknownUser))
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newTestService(t)
	sess, err := svc.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess.Token))

	_, err = sessions.Verify(ctx, sess.Token)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}

func TestSeedAdminOnlyOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	created, err := svc.SeedAdmin(ctx, "root", "toor")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.SeedAdmin(ctx, "other", "pw")
	require.NoError(t, err)
	assert.False(t, created)

	sess, err := svc.Login(ctx, "root", "toor")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, sess.User.Role)
}

func TestSeedAdminSkippedWithoutCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)
	created, err := svc.SeedAdmin(context.Background(), "", "")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestSetRole(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	sess, err := svc.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	u, err := svc.SetRole(ctx, sess.User.ID, models.RoleGameAdder)
	require.NoError(t, err)
	assert.Equal(t, models.RoleGameAdder, u.Role)

	_, err = svc.SetRole(ctx, sess.User.ID, "superuser")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = svc.SetRole(ctx, 99, models.RoleAdmin)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	a, err := svc.Register(ctx, "a", "pw")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "b", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, a.User.ID))

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].Username)

	err = svc.DeleteUser(ctx, a.User.ID)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestDeletedAccountSessionsDoNotCarryOverToReusedID(t *testing.T) {
	ctx := context.Background()
	svc, sessions, st := newTestService(t)
	_, err := svc.Register(ctx, "admin", "pw")
	require.NoError(t, err)
	mallory, err := svc.Register(ctx, "mallory", "pw")
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, st, store.Favorites, []models.Favorite{{ID: 1, UserID: mallory.User.ID, GameID: 1}}))
	require.NoError(t, store.Save(ctx, st, store.Ratings, []models.Rating{
		{ID: 1, UserID: mallory.User.ID, GameID: 1, Rating: 3},
		{ID: 2, UserID: 1, GameID: 1, Rating: 9},
	}))

	require.NoError(t, svc.DeleteUser(ctx, mallory.User.ID))

	carol, err := svc.Register(ctx, "carol", "pw")
	require.NoError(t, err)
	require.Equal(t, mallory.User.ID, carol.User.ID)

	_, err = sessions.Verify(ctx, mallory.Token)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
	_, err = sessions.Verify(ctx, carol.Token)
	assert.NoError(t, err)

	favorites, err := store.Load[models.Favorite](ctx, st, store.Favorites)
	require.NoError(t, err)
	assert.Empty(t, favorites)
	ratings, err := store.Load[models.Rating](ctx, st, store.Ratings)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, 1, ratings[0].UserID)
}

func TestLoginAssignsMissingSessionKey(t *testing.T) {
	ctx := context.Background()
	svc, sessions, st := newTestService(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, st, store.Users, []models.User{{ID: 1, Username: "legacy", Password: string(hash), Role: models.RoleBasic}}))

	sess, err := svc.Login(ctx, "legacy", "pw")
	require.NoError(t, err)

	users, err := store.Load[models.User](ctx, st, store.Users)
	require.NoError(t, err)
	assert.NotEmpty(t, users[0].SessionKey)

	require.NoError(t, svc.DeleteUser(ctx, 1))
	_, err = sessions.Verify(ctx, sess.Token)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}

func TestUpdateProfileOwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	a, err := svc.Register(ctx, "a", "pw")
	require.NoError(t, err)
	b, err := svc.Register(ctx, "b", "pw")
	require.NoError(t, err)

	callerA := auth.Identity{ID: a.User.ID, Username: "a", Role: models.RoleBasic}
	profile := Profile{AvatarURL: "/uploads/x.png", Bio: "hi", Theme: "light"}

	_, err = svc.UpdateProfile(ctx, callerA, b.User.ID, profile)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	u, err := svc.UpdateProfile(ctx, callerA, a.User.ID, profile)
	require.NoError(t, err)
	assert.Equal(t, "hi", u.Bio)
	assert.Equal(t, "light", u.Theme)
	assert.Equal(t, "/uploads/x.png", u.AvatarURL)

	me, err := svc.Me(ctx, callerA)
	require.NoError(t, err)
	assert.Equal(t, u, me)
}
