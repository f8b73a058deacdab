package handler

import (
	"net/http"
	"testing"

	"gamehub/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterTwiceIsConflict(t *testing.T) {
	s := newTestServer(t)
	s.register("alice")

	w := s.do(http.MethodPost, "/api/auth/register", "", gin.H{"username": "alice", "password": "x"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Username already exists", errorOf(t, w))
}

func TestRegisterRequiresFields(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodPost, "/api/auth/register", "", gin.H{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginFailuresLookAlike(t *testing.T) {
	s := newTestServer(t)
	s.register("alice")

	wrong := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "alice", "password": "nope"})
	unknown := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "mallory", "password": "nope"})

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.JSONEq(t, wrong.Body.String(), unknown.Body.String())
}

func TestSessionGrantsAccess(t *testing.T) {
	s := newTestServer(t)
	token, id := s.register("alice")

	w := s.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[models.PublicUser](t, w)
	assert.Equal(t, id, me.ID)
	assert.Equal(t, "alice", me.Username)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestMissingAndInvalidTokens(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register("alice")

	w := s.do(http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserManagementIsAdminOnly(t *testing.T) {
	s := newTestServer(t)
	basic, basicID := s.register("alice")
	admin, _ := s.userWithRole("root", models.RoleAdmin)

	w := s.do(http.MethodGet, "/api/users", basic, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/users", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.PublicUser](t, w), 2)

	w = s.do(http.MethodPut, "/api/users/"+itoa(basicID)+"/role", admin, gin.H{"role": "gameadder"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RoleGameAdder, decode[models.PublicUser](t, w).Role)

	w = s.do(http.MethodPut, "/api/users/"+itoa(basicID)+"/role", admin, gin.H{"role": "emperor"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, "/api/users/"+itoa(basicID), admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodDelete, "/api/users/"+itoa(basicID), admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletedUserTokenCannotActForNewAccount(t *testing.T) {
	s := newTestServer(t)
	admin, _ := s.userWithRole("root", models.RoleAdmin)
	mallory, malloryID := s.register("mallory")

	w := s.do(http.MethodDelete, "/api/users/"+itoa(malloryID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	carol, carolID := s.register("carol")
	require.Equal(t, malloryID, carolID)

	w = s.do(http.MethodPut, "/api/users/"+itoa(carolID)+"/profile", mallory, gin.H{"bio": "pwned"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/auth/me", carol, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", decode[models.PublicUser](t, w).Bio)
}

func TestUpdateProfileOwnerOnly(t *testing.T) {
	s := newTestServer(t)
	alice, aliceID := s.register("alice")
	bob, _ := s.register("bob")

	body := gin.H{"bio": "hello", "theme": "light", "avatarUrl": "/uploads/a.png"}

	w := s.do(http.MethodPut, "/api/users/"+itoa(aliceID)+"/profile", bob, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPut, "/api/users/"+itoa(aliceID)+"/profile", alice, body)
	require.Equal(t, http.StatusOK, w.Code)
	u := decode[models.PublicUser](t, w)
	assert.Equal(t, "hello", u.Bio)
	assert.Equal(t, "/uploads/a.png", u.AvatarURL)
}

func TestAuthRateLimit(t *testing.T) {
	s := newTestServer(t)
	s.h.AuthLimiter = NewIPRateLimiter(0.001, 1)
	s.router = gin.New()
	s.h.RegisterRoutes(s.router.Group("/api"))

	body := gin.H{"username": "alice", "password": "pw"}
	first := s.do(http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, http.StatusUnauthorized, first.Code)

	second := s.do(http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
