package catalog

import (
	"context"
	"slices"
	"strings"

	"gamehub/backend/internal/apperr"
	"gamehub/backend/internal/auth"
	"gamehub/backend/internal/models"
	"gamehub/backend/internal/store"
)

// ListGames returns the whole catalog in stored order.
func (s *Service) ListGames(ctx context.Context) ([]models.Game, error) {
	games, err := store.Load[models.Game](ctx, s.store, store.Games)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Failed to fetch games")
	}
	return games, nil
}

func (s *Service) GetGame(ctx context.Context, id int) (models.Game, error) {
	games, err := store.Load[models.Game](ctx, s.store, store.Games)
	if err != nil {
		return models.Game{}, apperr.Wrap(apperr.Internal, err, "Failed to fetch game")
	}
	i := indexOf(games, id)
	if i < 0 {
		return models.Game{}, apperr.New(apperr.NotFound, "Game not found")
	}
	return games[i], nil
}

// AddGame stores g under the next free id. AddedBy and Timestamp default to the
// caller and the current time.
func (s *Service) AddGame(ctx context.Context, caller auth.Identity, g models.Game) (models.Game, error) {
	g.Title = strings.TrimSpace(g.Title)
	if g.Title == "" {
		return models.Game{}, apperr.New(apperr.Validation, "Title is required")
	}
	if g.AddedBy == "" {
		g.AddedBy = caller.Username
	}
	if g.Timestamp.IsZero() {
		g.Timestamp = s.timestamp()
	}

	err := store.Atomic(ctx, s.store, func(tx store.Store) error {
		games, err := store.Load[models.Game](ctx, tx, store.Games)
		if err != nil {
			return err
		}
		g.ID = store.NextID(games)
		return store.Save(ctx, tx, store.Games, append(games, g))
	})
	if err != nil {
		return models.Game{}, apperr.OrInternal(err, "Failed to add game")
	}
	return g, nil
}

// DeleteGame removes the game together with its comments, ratings and favorites
// as one unit.
func (s *Service) DeleteGame(ctx context.Context, id int) error {
	err := store.Atomic(ctx, s.store, func(tx store.Store) error {
		games, err := store.Load[models.Game](ctx, tx, store.Games)
		if err != nil {
			return err
		}
		i := indexOf(games, id)
		if i < 0 {
			return apperr.New(apperr.NotFound, "Game not found")
		}
		if err := store.Save(ctx, tx, store.Games, slices.Delete(games, i, i+1)); err != nil {
			return err
		}

		if err := removeWhere(ctx, tx, store.Comments, func(c models.Comment) bool { return c.GameID == id }); err != nil {
			return err
		}
		if err := removeWhere(ctx, tx, store.Ratings, func(r models.Rating) bool { return r.GameID == id }); err != nil {
			return err
		}
		return removeWhere(ctx, tx, store.Favorites, func(f models.Favorite) bool { return f.GameID == id })
	})
	return apperr.OrInternal(err, "Failed to delete game")
}

// removeWhere rewrites collection c without the records matching del. The
// collection is left untouched when nothing matches.
func removeWhere[T any](ctx context.Context, st store.Store, c store.Collection, del func(T) bool) error {
	items, err := store.Load[T](ctx, st, c)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(slices.Clone(items), del)
	if len(kept) == len(items) {
		return nil
	}
	return store.Save(ctx, st, c, kept)
}
