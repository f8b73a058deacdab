package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gamehub/backend/internal/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func (s *testServer) upload(path, token, field string, content []byte) *httptest.ResponseRecorder {
	s.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, "file.bin")
	require.NoError(s.t, err)
	_, err = part.Write(content)
	require.NoError(s.t, err)
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestUploadAvatar(t *testing.T) {
	s := newTestServer(t)
	alice, _ := s.register("alice")

	w := s.upload("/api/upload/avatar", alice, "avatar", pngHeader)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	url := decode[UploadResponse](t, w).URL
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))
}

func TestUploadRejections(t *testing.T) {
	s := newTestServer(t)
	alice, _ := s.register("alice")

	w := s.upload("/api/upload/banner", "", "banner", pngHeader)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.upload("/api/upload/banner", alice, "banner", []byte("plain text, not an image"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Only image files are allowed", errorOf(t, w))

	w = s.upload("/api/upload/banner", alice, "avatar", pngHeader)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	oversize := append(append([]byte{}, pngHeader...), make([]byte, 2048)...)
	w = s.upload("/api/upload/banner", alice, "banner", oversize)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStats(t *testing.T) {
	s := newTestServer(t)
	s.register("alice")
	s.register("bob")

	w := s.do(http.MethodGet, "/api/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, stats.Counts{Games: 0, Users: 2, Comments: 0}, decode[stats.Counts](t, w))
}
