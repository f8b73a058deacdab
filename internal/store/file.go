package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File keeps each collection in <dir>/<collection>.json.
type File struct {
	dir string
	mu  sync.RWMutex
}

var _ Transactional = (*File)(nil)

// NewFile creates dir if needed and returns a store rooted there.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(c Collection) string {
	return filepath.Join(f.dir, string(c)+".json")
}

func (f *File) Read(ctx context.Context, c Collection) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.read(c)
}

func (f *File) Write(ctx context.Context, c Collection, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(c, data)
}

// Atomic serializes fn against every other read-modify-write unit in the
// process. The files are replaced one after another once fn succeeds, so a
// crash between two renames can still leave them out of step.
func (f *File) Atomic(ctx context.Context, fn func(tx Store) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tx := newBufferedTx(func(ctx context.Context, c Collection) ([]byte, error) {
		return f.read(c)
	})
	if err := fn(tx); err != nil {
		return err
	}
	return tx.flush(ctx, func(_ context.Context, c Collection, data []byte) error {
		return f.write(c, data)
	})
}

func (f *File) read(c Collection) ([]byte, error) {
	data, err := os.ReadFile(f.path(c))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// write replaces the collection file through a temp file and rename.
func (f *File) write(c Collection, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, string(c)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path(c))
}
