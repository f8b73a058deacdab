// Package upload stores user-submitted images on disk.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gamehub/backend/internal/apperr"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// URLPrefix is the path under which stored files are served.
const URLPrefix = "/uploads"

// Images saves images into a directory, rejecting anything that does not sniff as image/*.
type Images struct {
	dir      string
	maxBytes int64
}

func NewImages(dir string, maxBytes int64) *Images {
	return &Images{dir: dir, maxBytes: maxBytes}
}

func (s *Images) Dir() string { return s.dir }

func (s *Images) MaxBytes() int64 { return s.maxBytes }

// rasterTypes are the accepted image formats. SVG is excluded since it can carry script.
var rasterTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

// Save reads at most maxBytes from r and stores it under a random name with an
// extension derived from the detected content type. It returns the public URL.
func (s *Images) Save(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", apperr.Wrap(apperr.Validation, err, "Failed to read upload")
	}
	if int64(len(data)) > s.maxBytes {
		return "", apperr.New(apperr.Validation, fmt.Sprintf("File too large (max %d bytes)", s.maxBytes))
	}
	if len(data) == 0 {
		return "", apperr.New(apperr.Validation, "No file uploaded")
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), rasterTypes...) {
		return "", apperr.New(apperr.Validation, "Only image files are allowed")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", apperr.Wrap(apperr.Internal, err, "Failed to store upload")
	}
	name := uuid.NewString() + mt.Extension()
	if err := writeFile(filepath.Join(s.dir, name), data); err != nil {
		return "", apperr.Wrap(apperr.Internal, err, "Failed to store upload")
	}
	return URLPrefix + "/" + name, nil
}

func writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
