// Package stats reports collection sizes for the site dashboard.
package stats

import (
	"context"

	"gamehub/backend/internal/apperr"
	"gamehub/backend/internal/models"
	"gamehub/backend/internal/store"

	"golang.org/x/sync/errgroup"
)

// Counts holds the number of records per collection.
type Counts struct {
	Games    int `json:"games"`
	Users    int `json:"users"`
	Comments int `json:"comments"`
}

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Counts reads the collections concurrently. Nothing is cached.
func (s *Service) Counts(ctx context.Context) (Counts, error) {
	var out Counts
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := count[models.Game](ctx, s.store, store.Games)
		out.Games = n
		return err
	})
	g.Go(func() error {
		n, err := count[models.User](ctx, s.store, store.Users)
		out.Users = n
		return err
	})
	g.Go(func() error {
		n, err := count[models.Comment](ctx, s.store, store.Comments)
		out.Comments = n
		return err
	})
	if err := g.Wait(); err != nil {
		return Counts{}, apperr.Wrap(apperr.Internal, err, "Failed to fetch stats")
	}
	return out, nil
}

func count[T any](ctx context.Context, st store.Store, c store.Collection) (int, error) {
	items, err := store.Load[T](ctx, st, c)
	return len(items), err
}
