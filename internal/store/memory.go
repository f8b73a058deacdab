package store

import (
	"context"
	"slices"
	"sync"
)

// Memory is an in-process Store, used by tests and as a scratch backend.
type Memory struct {
	mu   sync.RWMutex
	data map[Collection][]byte
}

var _ Transactional = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{data: make(map[Collection][]byte)}
}

func (m *Memory) Read(ctx context.Context, c Collection) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.data[c]), nil
}

func (m *Memory) Write(ctx context.Context, c Collection, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[c] = slices.Clone(data)
	return nil
}

func (m *Memory) Atomic(ctx context.Context, fn func(tx Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := newBufferedTx(func(_ context.Context, c Collection) ([]byte, error) {
		return slices.Clone(m.data[c]), nil
	})
	if err := fn(tx); err != nil {
		return err
	}
	return tx.flush(ctx, func(_ context.Context, c Collection, data []byte) error {
		m.data[c] = data
		return nil
	})
}
