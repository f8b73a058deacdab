// Package store persists named collections of JSON records. Every collection is
// a JSON array that is read and written as a whole.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Collection names a persisted array of records.
type Collection string

const (
	Users          Collection = "users"
	Games          Collection = "games"
	Comments       Collection = "comments"
	Requests       Collection = "requests"
	Threads        Collection = "threads"
	ThreadMessages Collection = "thread_messages"
	Favorites      Collection = "favorites"
	Ratings        Collection = "ratings"
)

// Collections lists every collection the application uses.
var Collections = []Collection{Users, Games, Comments, Requests, Threads, ThreadMessages, Favorites, Ratings}

// Store reads and replaces whole collections. Read returns nil data for a
// collection that has never been written.
type Store interface {
	Read(ctx context.Context, c Collection) ([]byte, error)
	Write(ctx context.Context, c Collection, data []byte) error
}

// Transactional stores can run a read-modify-write unit with exclusive access.
// Writes made through tx are applied only when fn returns nil.
type Transactional interface {
	Store
	Atomic(ctx context.Context, fn func(tx Store) error) error
}

// Atomic runs fn as a single unit when s supports it, and directly on s otherwise.
func Atomic(ctx context.Context, s Store, fn func(tx Store) error) error {
	if t, ok := s.(Transactional); ok {
		return t.Atomic(ctx, fn)
	}
	return fn(s)
}

// Load decodes collection c. An absent or empty collection yields an empty slice.
func Load[T any](ctx context.Context, s Store, c Collection) ([]T, error) {
	data, err := s.Read(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c, err)
	}

	items := []T{}
	if len(bytes.TrimSpace(data)) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save encodes items and replaces collection c with them.
func Save[T any](ctx context.Context, s Store, c Collection, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c, err)
	}
	if err := s.Write(ctx, c, data); err != nil {
		return fmt.Errorf("write %s: %w", c, err)
	}
	return nil
}

// Keyed records expose their per-collection id.
type Keyed interface {
	Key() int
}

// NextID returns max(existing ids)+1, or 1 for an empty collection. Ids are
// unique per collection only.
func NextID[T Keyed](items []T) int {
	max := 0
	for _, it := range items {
		if k := it.Key(); k > max {
			max = k
		}
	}
	return max + 1
}
