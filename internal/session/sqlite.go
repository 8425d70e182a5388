package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// sessionEntry is one row of the session table
type sessionEntry struct {
	Key       string    `gorm:"column:entry_key;primaryKey;type:varchar(64)"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (sessionEntry) TableName() string {
	return "session_entries"
}

// SQLiteBackend stores the session record in a local SQLite database.
// Multi-key writes and deletes run in a single transaction.
type SQLiteBackend struct {
	db *gorm.DB
}

// OpenSQLiteBackend opens (creating if needed) the database at path
func OpenSQLiteBackend(path string) (*SQLiteBackend, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	// single writer; also keeps ":memory:" on one connection
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA busy_timeout=5000").Error; err != nil {
		return nil, fmt.Errorf("failed to apply pragma: %w", err)
	}

	if err := db.AutoMigrate(&sessionEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session database: %w", err)
	}

	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Get(ctx context.Context, key string) (string, bool, error) {
	var entry sessionEntry
	err := b.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (b *SQLiteBackend) SetAll(ctx context.Context, entries map[string]string) error {
	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for k, v := range entries {
			entry := sessionEntry{Key: k, Value: v}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "entry_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&entry).Error
			if err != nil {
				return fmt.Errorf("failed to save %s: %w", k, err)
			}
		}
		return nil
	})
}

func (b *SQLiteBackend) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entry_key IN ?", keys).Delete(&sessionEntry{}).Error; err != nil {
			return fmt.Errorf("failed to delete session entries: %w", err)
		}
		return nil
	})
}

func (b *SQLiteBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
