package discussion

import (
	"context"
	"slices"
	"strings"

	"gamehub/backend/internal/apperr"
	"gamehub/backend/internal/auth"
	"gamehub/backend/internal/models"
	"gamehub/backend/internal/store"
)

// ListMessages returns the messages of a thread, oldest first.
func (s *Service) ListMessages(ctx context.Context, threadID int) ([]models.Message, error) {
	if _, err := s.GetThread(ctx, threadID); err != nil {
		return nil, err
	}
	messages, err := store.Load[models.Message](ctx, s.store, store.ThreadMessages)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Failed to fetch messages")
	}
	messages = slices.DeleteFunc(messages, func(m models.Message) bool { return m.ThreadID != threadID })
	slices.SortStableFunc(messages, func(a, b models.Message) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return messages, nil
}

// PostMessage appends a message and refreshes the thread's message_count and
// last_activity in the same unit. Locked threads only accept moderators.
func (s *Service) PostMessage(ctx context.Context, caller auth.Identity, threadID int, content string) (models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return models.Message{}, apperr.New(apperr.Validation, "Message content is required")
	}

	var msg models.Message
	err := store.Atomic(ctx, s.store, func(tx store.Store) error {
		threads, err := store.Load[models.Thread](ctx, tx, store.Threads)
		if err != nil {
			return err
		}
		ti := threadIndex(threads, threadID)
		if ti < 0 {
			return apperr.New(apperr.NotFound, "Thread not found")
		}
		if threads[ti].Locked && !caller.Can(auth.ActionModerate) {
			return apperr.New(apperr.Forbidden, "Thread is locked")
		}

		messages, err := store.Load[models.Message](ctx, tx, store.ThreadMessages)
		if err != nil {
			return err
		}
		now := s.now().UTC()
		msg = models.Message{
			ID:         store.NextID(messages),
			ThreadID:   threadID,
			Content:    content,
			Author:     caller.Username,
			AuthorRole: caller.Role,
			CreatedAt:  now,
			Likes:      []string{},
		}
		messages = append(messages, msg)
		if err := store.Save(ctx, tx, store.ThreadMessages, messages); err != nil {
			return err
		}

		threads[ti].MessageCount = countMessages(messages, threadID)
		if now.After(threads[ti].LastActivity) {
			threads[ti].LastActivity = now
		}
		return store.Save(ctx, tx, store.Threads, threads)
	})
	if err != nil {
		return models.Message{}, apperr.OrInternal(err, "Failed to post message")
	}
	s.events.Publish(threadID, EventMessagePosted, msg)
	return msg, nil
}

// ToggleMessageLike flips the caller's like on a message of threadID.
func (s *Service) ToggleMessageLike(ctx context.Context, caller auth.Identity, threadID, messageID int) (models.Message, error) {
	var msg models.Message
	err := store.Atomic(ctx, s.store, func(tx store.Store) error {
		messages, err := store.Load[models.Message](ctx, tx, store.ThreadMessages)
		if err != nil {
			return err
		}
		i := messageIndex(messages, threadID, messageID)
		if i < 0 {
			return apperr.New(apperr.NotFound, "Message not found")
		}
		messages[i].Likes, _ = models.ToggleLike(messages[i].Likes, caller.Username)
		msg = messages[i]
		return store.Save(ctx, tx, store.ThreadMessages, messages)
	})
	if err != nil {
		return models.Message{}, apperr.OrInternal(err, "Failed to toggle like")
	}
	s.events.Publish(threadID, EventMessageLiked, msg)
	return msg, nil
}

// DeleteMessage removes a message written by the caller, or any message for a
// moderator, and recounts the thread.
func (s *Service) DeleteMessage(ctx context.Context, caller auth.Identity, threadID, messageID int) error {
	err := store.Atomic(ctx, s.store, func(tx store.Store) error {
		messages, err := store.Load[models.Message](ctx, tx, store.ThreadMessages)
		if err != nil {
			return err
		}
		i := messageIndex(messages, threadID, messageID)
		if i < 0 {
			return apperr.New(apperr.NotFound, "Message not found")
		}
		if !caller.CanModify(messages[i].Author) {
			return apperr.New(apperr.Forbidden, "Can only delete your own messages")
		}
		messages = slices.Delete(messages, i, i+1)
		if err := store.Save(ctx, tx, store.ThreadMessages, messages); err != nil {
			return err
		}

		threads, err := store.Load[models.Thread](ctx, tx, store.Threads)
		if err != nil {
			return err
		}
		if ti := threadIndex(threads, threadID); ti >= 0 {
			threads[ti].MessageCount = countMessages(messages, threadID)
			return store.Save(ctx, tx, store.Threads, threads)
		}
		return nil
	})
	if err != nil {
		return apperr.OrInternal(err, "Failed to delete message")
	}
	s.events.Publish(threadID, EventMessageDeleted, map[string]int{"id": messageID})
	return nil
}

func messageIndex(messages []models.Message, threadID, messageID int) int {
	return slices.IndexFunc(messages, func(m models.Message) bool {
		return m.ID == messageID && m.ThreadID == threadID
	})
}
