package catalog

import (
	"context"

	"gamehub/backend/internal/apperr"
	"gamehub/backend/internal/auth"
	"gamehub/backend/internal/models"
	"gamehub/backend/internal/store"
)

const (
	MinScore = 1
	MaxScore = 10

	unknownUsername = "Unknown"
)

// RatingView is a rating joined with its author's username.
type RatingView struct {
	models.Rating
	Username string `json:"username"`
}

// ListRatings returns a game's ratings with usernames resolved.
func (s *Service) ListRatings(ctx context.Context, gameID int) ([]RatingView, error) {
	ratings, err := store.Load[models.Rating](ctx, s.store, store.Ratings)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Failed to fetch ratings")
	}
	users, err := store.Load[models.User](ctx, s.store, store.Users)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Failed to fetch ratings")
	}

	names := make(map[int]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}

	views := []RatingView{}
	for _, r := range ratings {
		if r.GameID != gameID {
			continue
		}
		name, ok := names[r.UserID]
		if !ok {
			name = unknownUsername
		}
		views = append(views, RatingView{Rating: r, Username: name})
	}
	return views, nil
}

// UpsertRating records the caller's score for a game. Rating the same game again
// replaces the earlier entry in place and keeps its id.
func (s *Service) UpsertRating(ctx context.Context, caller auth.Identity, gameID, score int, review string) (models.Rating, error) {
	if score < MinScore || score > MaxScore {
		return models.Rating{}, apperr.New(apperr.Validation, "Rating must be between 1 and 10")
	}

	var rating models.Rating
	err := store.Atomic(ctx, s.store, func(tx store.Store) error {
		if err := requireGame(ctx, tx, gameID); err != nil {
			return err
		}
		ratings, err := store.Load[models.Rating](ctx, tx, store.Ratings)
		if err != nil {
			return err
		}

		rating = models.Rating{
			UserID:    caller.ID,
			GameID:    gameID,
			Rating:    score,
			Review:    review,
			CreatedAt: s.timestamp(),
		}
		for i, r := range ratings {
			if r.UserID == caller.ID && r.GameID == gameID {
				rating.ID = r.ID
				ratings[i] = rating
				return store.Save(ctx, tx, store.Ratings, ratings)
			}
		}
		rating.ID = store.NextID(ratings)
		return store.Save(ctx, tx, store.Ratings, append(ratings, rating))
	})
	if err != nil {
		return models.Rating{}, apperr.OrInternal(err, "Failed to add rating")
	}
	return rating, nil
}
