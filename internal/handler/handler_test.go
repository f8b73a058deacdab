package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"gamehub/backend/internal/auth"
	"gamehub/backend/internal/catalog"
	"gamehub/backend/internal/discussion"
	"gamehub/backend/internal/hub"
	"gamehub/backend/internal/models"
	"gamehub/backend/internal/requests"
	"gamehub/backend/internal/stats"
	"gamehub/backend/internal/store"
	"gamehub/backend/internal/upload"
	"gamehub/backend/internal/users"
	"gamehub/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	h      *Handler
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	st := store.NewMemory()
	sessions := auth.NewSessions(jwt.NewIssuer("test-secret", time.Hour), nil)
	events := hub.New()

	h := &Handler{
		Sessions:   sessions,
		Users:      users.NewService(st, sessions, users.WithHashCost(bcrypt.MinCost)),
		Catalog:    catalog.NewService(st),
		Requests:   requests.NewService(st),
		Discussion: discussion.NewService(st, events),
		Stats:      stats.NewService(st),
		Images:     upload.NewImages(t.TempDir(), 1024),
		Events:     events,
	}
	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return &testServer{t: t, h: h, router: r}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// register creates a basic user and returns its token and id.
func (s *testServer) register(username string) (string, int) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/register", "", gin.H{"username": username, "password": "pw-" + username})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	sess := decode[users.Session](s.t, w)
	return sess.Token, sess.User.ID
}

// userWithRole registers username, grants role and logs in again so the token carries it.
func (s *testServer) userWithRole(username string, role models.Role) (string, int) {
	s.t.Helper()
	_, id := s.register(username)
	_, err := s.h.Users.SetRole(context.Background(), id, role)
	require.NoError(s.t, err)

	w := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": username, "password": "pw-" + username})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return decode[users.Session](s.t, w).Token, id
}

func (s *testServer) addGame(token, title string) models.Game {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/games", token, gin.H{"title": title, "developer": "Dev"})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Game](s.t, w)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[ErrorResponse](t, w).Error
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
