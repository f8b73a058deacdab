// Package catalog manages games and everything users attach to them:
// comments, ratings and favorites.
package catalog

import (
	"context"
	"time"

	"gamehub/backend/internal/apperr"
	"gamehub/backend/internal/models"
	"gamehub/backend/internal/store"
)

type Service struct {
	store store.Store
	now   func() time.Time
}

func NewService(st store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC()
}

// requireGame fails with NotFound unless a game with id exists in st.
func requireGame(ctx context.Context, st store.Store, id int) error {
	games, err := store.Load[models.Game](ctx, st, store.Games)
	if err != nil {
		return err
	}
	if indexOf(games, id) < 0 {
		return apperr.New(apperr.NotFound, "Game not found")
	}
	return nil
}

func indexOf[T store.Keyed](items []T, id int) int {
	for i, it := range items {
		if it.Key() == id {
			return i
		}
	}
	return -1
}
