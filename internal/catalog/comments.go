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

// ListComments returns comments newest first. A gameID of 0 lists every game's comments.
func (s *Service) ListComments(ctx context.Context, gameID int) ([]models.Comment, error) {
	comments, err := store.Load[models.Comment](ctx, s.store, store.Comments)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Failed to fetch comments")
	}
	if gameID != 0 {
		comments = slices.DeleteFunc(comments, func(c models.Comment) bool { return c.GameID != gameID })
	}
	slices.SortStableFunc(comments, func(a, b models.Comment) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return comments, nil
}

func (s *Service) AddComment(ctx context.Context, caller auth.Identity, gameID int, text string) (models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return models.Comment{}, apperr.New(apperr.Validation, "Comment text is required")
	}

	var comment models.Comment
	err := store.Atomic(ctx, s.store, func(tx store.Store) error {
		if err := requireGame(ctx, tx, gameID); err != nil {
			return err
		}
		comments, err := store.Load[models.Comment](ctx, tx, store.Comments)
		if err != nil {
			return err
		}
		comment = models.Comment{
			ID:        store.NextID(comments),
			GameID:    gameID,
			Author:    caller.Username,
			Role:      caller.Role,
			Text:      text,
			Likes:     []string{},
			Timestamp: s.timestamp(),
		}
		return store.Save(ctx, tx, store.Comments, append(comments, comment))
	})
	if err != nil {
		return models.Comment{}, apperr.OrInternal(err, "Failed to add comment")
	}
	return comment, nil
}

// ToggleCommentLike flips the caller's membership in the comment's likes.
func (s *Service) ToggleCommentLike(ctx context.Context, caller auth.Identity, id int) (models.Comment, error) {
	var comment models.Comment
	err := store.Atomic(ctx, s.store, func(tx store.Store) error {
		comments, err := store.Load[models.Comment](ctx, tx, store.Comments)
		if err != nil {
			return err
		}
		i := indexOf(comments, id)
		if i < 0 {
			return apperr.New(apperr.NotFound, "Comment not found")
		}
		comments[i].Likes, _ = models.ToggleLike(comments[i].Likes, caller.Username)
		comment = comments[i]
		return store.Save(ctx, tx, store.Comments, comments)
	})
	if err != nil {
		return models.Comment{}, apperr.OrInternal(err, "Failed to toggle like")
	}
	return comment, nil
}

// DeleteComment removes a comment written by the caller, or any comment for an admin.
func (s *Service) DeleteComment(ctx context.Context, caller auth.Identity, id int) error {
	err := store.Atomic(ctx, s.store, func(tx store.Store) error {
		comments, err := store.Load[models.Comment](ctx, tx, store.Comments)
		if err != nil {
			return err
		}
		i := indexOf(comments, id)
		if i < 0 {
			return apperr.New(apperr.NotFound, "Comment not found")
		}
		if !caller.CanModify(comments[i].Author) {
			return apperr.New(apperr.Forbidden, "Can only delete your own comments")
		}
		return store.Save(ctx, tx, store.Comments, slices.Delete(comments, i, i+1))
	})
	return apperr.OrInternal(err, "Failed to delete comment")
}
