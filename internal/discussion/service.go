// Package discussion implements the forum: threads and the messages posted in them.
package discussion

import (
	"context"
	"slices"
	"strings"
	"time"

	"gamehub/backend/internal/apperr"
	"gamehub/backend/internal/auth"
	"gamehub/backend/internal/models"
	"gamehub/backend/internal/store"
)

// Event types sent to a Publisher.
const (
	EventMessagePosted  = "message_posted"
	EventMessageLiked   = "message_liked"
	EventMessageDeleted = "message_deleted"
	EventThreadLocked   = "thread_locked"
	EventThreadDeleted  = "thread_deleted"
)

// Publisher receives thread activity after it has been persisted.
type Publisher interface {
	Publish(threadID int, eventType string, payload any)
}

type nopPublisher struct{}

func (nopPublisher) Publish(int, string, any) {}

type Service struct {
	store  store.Store
	events Publisher
	now    func() time.Time
}

// NewService creates the forum service. events may be nil.
func NewService(st store.Store, events Publisher) *Service {
	if events == nil {
		events = nopPublisher{}
	}
	return &Service{store: st, events: events, now: time.Now}
}

// region --- Threads ---

// ListThreads returns every thread, most recently active first.
func (s *Service) ListThreads(ctx context.Context) ([]models.Thread, error) {
	threads, err := store.Load[models.Thread](ctx, s.store, store.Threads)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Failed to fetch threads")
	}
	slices.SortStableFunc(threads, func(a, b models.Thread) int {
		return b.LastActivity.Compare(a.LastActivity)
	})
	return threads, nil
}

func (s *Service) GetThread(ctx context.Context, id int) (models.Thread, error) {
	threads, err := store.Load[models.Thread](ctx, s.store, store.Threads)
	if err != nil {
		return models.Thread{}, apperr.Wrap(apperr.Internal, err, "Failed to fetch thread")
	}
	i := threadIndex(threads, id)
	if i < 0 {
		return models.Thread{}, apperr.New(apperr.NotFound, "Thread not found")
	}
	return threads[i], nil
}

func (s *Service) CreateThread(ctx context.Context, caller auth.Identity, title, content string) (models.Thread, error) {
	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(content) == "" {
		return models.Thread{}, apperr.New(apperr.Validation, "Title and content are required")
	}

	var thread models.Thread
	err := store.Atomic(ctx, s.store, func(tx store.Store) error {
		threads, err := store.Load[models.Thread](ctx, tx, store.Threads)
		if err != nil {
			return err
		}
		now := s.now().UTC()
		thread = models.Thread{
			ID:           store.NextID(threads),
			Title:        title,
			Content:      content,
			Author:       caller.Username,
			AuthorRole:   caller.Role,
			CreatedAt:    now,
			LastActivity: now,
		}
		return store.Save(ctx, tx, store.Threads, append(threads, thread))
	})
	if err != nil {
		return models.Thread{}, apperr.OrInternal(err, "Failed to create thread")
	}
	return thread, nil
}

// SetLocked opens or closes a thread for new messages.
func (s *Service) SetLocked(ctx context.Context, caller auth.Identity, id int, locked bool) (models.Thread, error) {
	if !caller.Can(auth.ActionLockThread) {
		return models.Thread{}, apperr.New(apperr.Forbidden, "Insufficient permissions")
	}

	var thread models.Thread
	err := store.Atomic(ctx, s.store, func(tx store.Store) error {
		threads, err := store.Load[models.Thread](ctx, tx, store.Threads)
		if err != nil {
			return err
		}
		i := threadIndex(threads, id)
		if i < 0 {
			return apperr.New(apperr.NotFound, "Thread not found")
		}
		threads[i].Locked = locked
		thread = threads[i]
		return store.Save(ctx, tx, store.Threads, threads)
	})
	if err != nil {
		return models.Thread{}, apperr.OrInternal(err, "Failed to update thread")
	}
	s.events.Publish(id, EventThreadLocked, thread)
	return thread, nil
}

// DeleteThread removes a thread and all of its messages as one unit.
func (s *Service) DeleteThread(ctx context.Context, caller auth.Identity, id int) error {
	if !caller.Can(auth.ActionModerate) {
		return apperr.New(apperr.Forbidden, "Insufficient permissions")
	}

	err := store.Atomic(ctx, s.store, func(tx store.Store) error {
		threads, err := store.Load[models.Thread](ctx, tx, store.Threads)
		if err != nil {
			return err
		}
		i := threadIndex(threads, id)
		if i < 0 {
			return apperr.New(apperr.NotFound, "Thread not found")
		}
		if err := store.Save(ctx, tx, store.Threads, slices.Delete(threads, i, i+1)); err != nil {
			return err
		}

		messages, err := store.Load[models.Message](ctx, tx, store.ThreadMessages)
		if err != nil {
			return err
		}
		kept := slices.DeleteFunc(messages, func(m models.Message) bool { return m.ThreadID == id })
		return store.Save(ctx, tx, store.ThreadMessages, kept)
	})
	if err != nil {
		return apperr.OrInternal(err, "Failed to delete thread")
	}
	s.events.Publish(id, EventThreadDeleted, map[string]int{"id": id})
	return nil
}

// endregion

func threadIndex(threads []models.Thread, id int) int {
	return slices.IndexFunc(threads, func(t models.Thread) bool { return t.ID == id })
}

func countMessages(messages []models.Message, threadID int) int {
	n := 0
	for _, m := range messages {
		if m.ThreadID == threadID {
			n++
		}
	}
	return n
}
