package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gamehub/backend/internal/store"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// collectionRow holds one whole collection as a JSON document.
type collectionRow struct {
	Name      string         `gorm:"primaryKey;size:64"`
	Data      datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (collectionRow) TableName() string {
	return "collections"
}

// Connect opens the PostgreSQL database at dsn and runs migrations.
func Connect(dsn string) (*gorm.DB, error) {
	return Open(postgres.Open(dsn))
}

// Open initializes a connection through dialector and runs migrations.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: customLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established.")

	if err := db.AutoMigrate(&collectionRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := seedCollections(db); err != nil {
		return nil, fmt.Errorf("failed to seed collections: %w", err)
	}

	log.Println("Database migrated successfully.")
	return db, nil
}

// seedCollections makes sure every collection has a row so that transactions
// always have something to lock, even before the first write.
func seedCollections(db *gorm.DB) error {
	rows := make([]collectionRow, 0, len(store.Collections))
	for _, c := range store.Collections {
		rows = append(rows, collectionRow{Name: string(c), Data: datatypes.JSON("[]"), UpdatedAt: time.Now()})
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}
