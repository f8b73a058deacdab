package catalog

import (
	"context"

	"gamehub/backend/internal/apperr"
	"gamehub/backend/internal/auth"
	"gamehub/backend/internal/models"
	"gamehub/backend/internal/store"
)

// ListFavorites returns the games userID marked as favorite. Callers may only read their own list.
func (s *Service) ListFavorites(ctx context.Context, caller auth.Identity, userID int) ([]models.Game, error) {
	if caller.ID != userID {
		return nil, apperr.New(apperr.Forbidden, "Can only access your own favorites")
	}

	ids, err := s.FavoriteGameIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	games, err := store.Load[models.Game](ctx, s.store, store.Games)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Failed to fetch favorites")
	}

	out := []models.Game{}
	for _, g := range games {
		if ids[g.ID] {
			out = append(out, g)
		}
	}
	return out, nil
}

// FavoriteGameIDs returns the set of game ids userID has marked.
func (s *Service) FavoriteGameIDs(ctx context.Context, userID int) (map[int]bool, error) {
	favorites, err := store.Load[models.Favorite](ctx, s.store, store.Favorites)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Failed to fetch favorites")
	}
	ids := make(map[int]bool)
	for _, f := range favorites {
		if f.UserID == userID {
			ids[f.GameID] = true
		}
	}
	return ids, nil
}

// AddFavorite marks gameID for the caller. Adding an existing favorite is a no-op.
func (s *Service) AddFavorite(ctx context.Context, caller auth.Identity, gameID int) error {
	err := store.Atomic(ctx, s.store, func(tx store.Store) error {
		if err := requireGame(ctx, tx, gameID); err != nil {
			return err
		}
		favorites, err := store.Load[models.Favorite](ctx, tx, store.Favorites)
		if err != nil {
			return err
		}
		for _, f := range favorites {
			if f.UserID == caller.ID && f.GameID == gameID {
				return nil
			}
		}
		return store.Save(ctx, tx, store.Favorites, append(favorites, models.Favorite{
			ID:        store.NextID(favorites),
			UserID:    caller.ID,
			GameID:    gameID,
			CreatedAt: s.timestamp(),
		}))
	})
	return apperr.OrInternal(err, "Failed to add favorite")
}

// RemoveFavorite unmarks gameID for userID. Removing a missing favorite succeeds.
func (s *Service) RemoveFavorite(ctx context.Context, caller auth.Identity, userID, gameID int) error {
	if caller.ID != userID {
		return apperr.New(apperr.Forbidden, "Can only modify your own favorites")
	}
	err := store.Atomic(ctx, s.store, func(tx store.Store) error {
		return removeWhere(ctx, tx, store.Favorites, func(f models.Favorite) bool {
			return f.UserID == userID && f.GameID == gameID
		})
	})
	return apperr.OrInternal(err, "Failed to remove favorite")
}
