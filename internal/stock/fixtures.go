package stock

import (
	"time"

	"github.com/equitydash/equitydash/internal/models"
)

const isoDate = "2006-01-02"

// FixtureBalances is the fixed balance data served when the API is unavailable
func FixtureBalances() []models.StockBalance {
	return []models.StockBalance{
		{ID: "1", Type: "RSU", Quantity: 100, CurrentValue: 15000, CurrencyCode: "USD"},
		{ID: "2", Type: "Option", Quantity: 50, CurrentValue: 7500, CurrencyCode: "USD"},
	}
}

// FixtureVestingSchedules is the fallback vesting data, dated relative to now
func FixtureVestingSchedules(now time.Time) []models.VestingSchedule {
	today := now.UTC()
	return []models.VestingSchedule{
		{
			ID:             "1",
			VestingDate:    today.AddDate(0, 1, 0).Format(isoDate),
			Quantity:       25,
			EstimatedValue: 3750,
			CurrencyCode:   "USD",
			Status:         models.VestingUpcoming,
		},
		{
			ID:             "2",
			VestingDate:    today.AddDate(0, 3, 0).Format(isoDate),
			Quantity:       25,
			EstimatedValue: 3750,
			CurrencyCode:   "USD",
			Status:         models.VestingUpcoming,
		},
		{
			ID:             "3",
			VestingDate:    today.Format(isoDate),
			Quantity:       25,
			EstimatedValue: 3750,
			CurrencyCode:   "USD",
			Status:         models.VestingVested,
		},
	}
}

// FixtureTransactions is the fallback transaction history, dated relative to now
func FixtureTransactions(now time.Time) []models.Transaction {
	today := now.UTC()
	return []models.Transaction{
		{
			ID:           "1",
			Date:         today.AddDate(0, -2, 0).Format(isoDate),
			Type:         models.TransactionGrant,
			Quantity:     100,
			Value:        15000,
			CurrencyCode: "USD",
		},
		{
			ID:           "2",
			Date:         today.AddDate(0, -1, 0).Format(isoDate),
			Type:         models.TransactionVest,
			Quantity:     25,
			Value:        3750,
			CurrencyCode: "USD",
		},
		{
			ID:           "3",
			Date:         today.Format(isoDate),
			Type:         models.TransactionExercise,
			Quantity:     25,
			Value:        3750,
			CurrencyCode: "USD",
		},
	}
}
