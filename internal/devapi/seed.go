package devapi

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/equitydash/equitydash/internal/assert"
	"github.com/equitydash/equitydash/internal/models"
)

const isoDate = "2006-01-02"

type seedAccount struct {
	name     string
	email    string
	password string
	role     string
	holdings []Holding
	vesting  func(today time.Time) []VestingEvent
	trades   func(today time.Time) []Trade
}

// SeedAccounts are the sign-in pairs the fixture server accepts
var SeedAccounts = map[string]string{
	"demo@example.com": "password",
	"jane@example.com": "vesting-cliff",
}

func seedAccounts() []seedAccount {
	return []seedAccount{
		{
			name:     "Demo User",
			email:    "demo@example.com",
			password: SeedAccounts["demo@example.com"],
			role:     "employee",
			holdings: []Holding{
				{Type: "RSU", Quantity: 120, CurrentValue: 18000, CurrencyCode: "USD"},
				{Type: "ESPP", Quantity: 40, CurrentValue: 5200, CurrencyCode: "USD"},
			},
			vesting: func(today time.Time) []VestingEvent {
				return []VestingEvent{
					{VestingDate: today.AddDate(0, -6, 0).Format(isoDate), Quantity: 30, EstimatedValue: 4200, CurrencyCode: "USD", Status: models.VestingExercised},
					{VestingDate: today.AddDate(0, -2, 0).Format(isoDate), Quantity: 30, EstimatedValue: 4500, CurrencyCode: "USD", Status: models.VestingVested},
					{VestingDate: today.AddDate(0, 1, 0).Format(isoDate), Quantity: 30, EstimatedValue: 4500, CurrencyCode: "USD", Status: models.VestingUpcoming},
					{VestingDate: today.AddDate(0, 4, 0).Format(isoDate), Quantity: 30, EstimatedValue: 4500, CurrencyCode: "USD", Status: models.VestingUpcoming},
				}
			},
			trades: func(today time.Time) []Trade {
				return []Trade{
					{Date: today.AddDate(-1, 0, 0).Format(isoDate), Type: models.TransactionGrant, Quantity: 120, Value: 18000, CurrencyCode: "USD"},
					{Date: today.AddDate(0, -6, 0).Format(isoDate), Type: models.TransactionVest, Quantity: 30, Value: 4200, CurrencyCode: "USD"},
					{Date: today.AddDate(0, -5, 0).Format(isoDate), Type: models.TransactionExercise, Quantity: 30, Value: 4200, CurrencyCode: "USD"},
					{Date: today.AddDate(0, -2, 0).Format(isoDate), Type: models.TransactionSell, Quantity: 10, Value: 1500, CurrencyCode: "USD"},
				}
			},
		},
		{
			name:     "Jane Doe",
			email:    "jane@example.com",
			password: SeedAccounts["jane@example.com"],
			role:     "manager",
			holdings: []Holding{
				{Type: "RSU", Quantity: 400, CurrentValue: 60000, CurrencyCode: "EUR"},
				{Type: "Option", Quantity: 200, CurrentValue: 9000, CurrencyCode: "EUR"},
			},
			vesting: func(today time.Time) []VestingEvent {
				return []VestingEvent{
					{VestingDate: today.AddDate(0, 3, 0).Format(isoDate), Quantity: 100, EstimatedValue: 15000, CurrencyCode: "EUR", Status: models.VestingUpcoming},
				}
			},
			trades: func(today time.Time) []Trade {
				return []Trade{
					{Date: today.AddDate(-2, 0, 0).Format(isoDate), Type: models.TransactionGrant, Quantity: 400, Value: 60000, CurrencyCode: "EUR"},
				}
			},
		},
	}
}

// seed creates the fixture accounts and their portfolios when the database
// has no accounts yet
func seed(db *gorm.DB, now time.Time, accounts []seedAccount) error {
	var count int64
	if err := db.Model(&Account{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	today := now.UTC()

	return db.Transaction(func(tx *gorm.DB) error {
		for _, s := range accounts {
			hash, err := HashPassword(s.password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			assert.NotEmpty(hash, "password hash")

			account := &Account{Email: s.email, PasswordHash: hash, Name: s.name, Role: s.role}
			if err := tx.Create(account).Error; err != nil {
				return fmt.Errorf("failed to create account %s: %w", s.email, err)
			}

			holdings := s.holdings
			for i := range holdings {
				holdings[i].AccountID = account.ID
			}
			vesting := s.vesting(today)
			for i := range vesting {
				if !vesting[i].Status.Valid() {
					return fmt.Errorf("invalid vesting status %q for %s", vesting[i].Status, s.email)
				}
				vesting[i].AccountID = account.ID
			}
			trades := s.trades(today)
			for i := range trades {
				if !trades[i].Type.Valid() {
					return fmt.Errorf("invalid transaction type %q for %s", trades[i].Type, s.email)
				}
				trades[i].AccountID = account.ID
			}

			if err := tx.Create(&holdings).Error; err != nil {
				return fmt.Errorf("failed to create holdings: %w", err)
			}
			if err := tx.Create(&vesting).Error; err != nil {
				return fmt.Errorf("failed to create vesting events: %w", err)
			}
			if err := tx.Create(&trades).Error; err != nil {
				return fmt.Errorf("failed to create trades: %w", err)
			}
		}
		return nil
	})
}
