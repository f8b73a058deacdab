package handler

import (
	"net/http"
	"testing"

	"gamehub/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestListingIsScoped(t *testing.T) {
	s := newTestServer(t)
	alice, _ := s.register("alice")
	bob, _ := s.register("bob")
	admin, _ := s.userWithRole("root", models.RoleAdmin)

	for _, token := range []string{alice, bob, alice} {
		w := s.do(http.MethodPost, "/api/requests", token, gin.H{"steamId": "620", "gameName": "Portal 2"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.do(http.MethodGet, "/api/requests", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	own := decode[[]models.Request](t, w)
	require.Len(t, own, 2)
	for _, r := range own {
		assert.Equal(t, "alice", r.Username)
	}

	w = s.do(http.MethodGet, "/api/requests", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Request](t, w), 3)

	w = s.do(http.MethodGet, "/api/requests", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestStatusChange(t *testing.T) {
	s := newTestServer(t)
	alice, _ := s.register("alice")
	admin, _ := s.userWithRole("root", models.RoleAdmin)

	w := s.do(http.MethodPost, "/api/requests", alice, gin.H{"gameName": "Hades"})
	require.Equal(t, http.StatusCreated, w.Code)
	req := decode[models.Request](t, w)
	assert.Equal(t, models.RequestPending, req.Status)
	path := "/api/requests/" + itoa(req.ID)

	w = s.do(http.MethodPut, path, alice, gin.H{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPut, path, admin, gin.H{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RequestApproved, decode[models.Request](t, w).Status)

	w = s.do(http.MethodPut, path, admin, gin.H{"status": "rejected"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodDelete, path, alice, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodDelete, path, admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodDelete, path, admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
