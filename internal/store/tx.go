package store

import (
	"context"
	"slices"
)

// bufferedTx collects writes in memory so a failed unit leaves the backing store untouched.
type bufferedTx struct {
	read    func(ctx context.Context, c Collection) ([]byte, error)
	pending map[Collection][]byte
	order   []Collection
}

func newBufferedTx(read func(ctx context.Context, c Collection) ([]byte, error)) *bufferedTx {
	return &bufferedTx{read: read, pending: make(map[Collection][]byte)}
}

func (t *bufferedTx) Read(ctx context.Context, c Collection) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if data, ok := t.pending[c]; ok {
		return slices.Clone(data), nil
	}
	return t.read(ctx, c)
}

func (t *bufferedTx) Write(ctx context.Context, c Collection, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := t.pending[c]; !ok {
		t.order = append(t.order, c)
	}
	t.pending[c] = slices.Clone(data)
	return nil
}

// flush applies pending writes in the order collections were first written.
func (t *bufferedTx) flush(ctx context.Context, write func(ctx context.Context, c Collection, data []byte) error) error {
	for _, c := range t.order {
		if err := write(ctx, c, t.pending[c]); err != nil {
			return err
		}
	}
	return nil
}
