package devapi

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/equitydash/equitydash/internal/assert"
	"github.com/equitydash/equitydash/internal/models"
)

// BaseModel provides common fields and an auto-generated ULID
type BaseModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	assert.Length(b.ID, ulid.EncodedSize)
	return nil
}

// Account is a fixture employee that can sign in
type Account struct {
	BaseModel
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string
	Role         string `gorm:"not null;default:employee"`
}

// User returns the account as the wire user payload
func (a *Account) User() models.User {
	return models.User{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}

// Holding is one stock balance row
type Holding struct {
	BaseModel
	AccountID    string `gorm:"index;not null"`
	Type         string `gorm:"not null"`
	Quantity     float64
	CurrentValue float64
	CurrencyCode string `gorm:"type:varchar(3);not null"`
}

// VestingEvent is one vesting schedule row
type VestingEvent struct {
	BaseModel
	AccountID      string `gorm:"index;not null"`
	VestingDate    string `gorm:"type:varchar(10);not null"`
	Quantity       float64
	EstimatedValue float64
	CurrencyCode   string               `gorm:"type:varchar(3);not null"`
	Status         models.VestingStatus `gorm:"type:varchar(16);not null"`
}

// Trade is one transaction history row
type Trade struct {
	BaseModel
	AccountID    string                 `gorm:"index;not null"`
	Date         string                 `gorm:"type:varchar(10);not null"`
	Type         models.TransactionType `gorm:"type:varchar(16);not null"`
	Quantity     float64
	Value        float64
	CurrencyCode string `gorm:"type:varchar(3);not null"`
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Account{}, &Holding{}, &VestingEvent{}, &Trade{})
}

// openDatabase opens the fixture database. ":memory:" keeps everything in
// process.
func openDatabase(path string, zlog zerolog.Logger) (*gorm.DB, error) {
	const busyTimeout = 5000 // 5 seconds

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.New(
			log.New(os.Stderr, "\r\n", log.LstdFlags),
			logger.Config{
				LogLevel:                  logger.Error,
				IgnoreRecordNotFoundError: true,
				SlowThreshold:             200 * time.Millisecond,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// An in-memory database exists per connection
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeout)).Error; err != nil {
		zlog.Warn().Err(err).Msg("Failed to apply pragma")
	}

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func findAccountByEmail(db *gorm.DB, email string) (*Account, error) {
	var account Account
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func findAccountByID(db *gorm.DB, id string) (*Account, error) {
	var account Account
	if err := db.Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}
