package database

import (
	"context"
	"errors"
	"time"

	"gamehub/backend/internal/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store keeps every collection as a row of the collections table.
type Store struct {
	db *gorm.DB
	// inTx marks a Store bound to a transaction; its reads lock the row.
	inTx bool
}

var _ store.Transactional = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Read(ctx context.Context, c store.Collection) ([]byte, error) {
	q := s.db.WithContext(ctx)
	if s.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var row collectionRow
	err := q.Where("name = ?", string(c)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(row.Data), nil
}

func (s *Store) Write(ctx context.Context, c store.Collection, data []byte) error {
	row := collectionRow{Name: string(c), Data: data, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
}

// Atomic runs fn inside a database transaction. A multi-collection cascade is
// committed or rolled back as a whole.
func (s *Store) Atomic(ctx context.Context, fn func(tx store.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, inTx: true})
	})
}
