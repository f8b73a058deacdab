package upload

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gamehub/backend/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	images := NewImages(dir, 1024)

	url, err := images.Save(bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)
}

func TestSaveRejectsNonImage(t *testing.T) {
	images := NewImages(t.TempDir(), 1024)

	_, err := images.Save(strings.NewReader("#!/bin/sh\necho hi\n"))
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	assert.Equal(t, "Only image files are allowed", apperr.Message(err))
}

func TestSaveRejectsSVG(t *testing.T) {
	dir := t.TempDir()
	images := NewImages(dir, 1024)

	svg := `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`
	_, err := images.Save(strings.NewReader(svg))
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveRejectsOversize(t *testing.T) {
	images := NewImages(t.TempDir(), int64(len(pngHeader)-1))

	_, err := images.Save(bytes.NewReader(pngHeader))
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestSaveRejectsEmpty(t *testing.T) {
	images := NewImages(t.TempDir(), 1024)

	_, err := images.Save(bytes.NewReader(nil))
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	images := NewImages(dir, 1024)

	_, err := images.Save(bytes.NewReader(pngHeader))
	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
