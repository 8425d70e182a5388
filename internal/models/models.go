package models

import "strings"

// Credentials is the email/password pair exchanged for a session. Never persisted.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// User identifies the signed-in employee
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// StockBalance is the current holding of one equity type (RSU, Option, ...)
type StockBalance struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Quantity     float64 `json:"quantity"`
	CurrentValue float64 `json:"currentValue"`
	CurrencyCode string  `json:"currencyCode"`
}

// VestingStatus is the lifecycle state of a vesting tranche
type VestingStatus string

const (
	VestingUpcoming  VestingStatus = "upcoming"
	VestingVested    VestingStatus = "vested"
	VestingExercised VestingStatus = "exercised"
)

// Valid reports whether s is a known vesting status
func (s VestingStatus) Valid() bool {
	switch s {
	case VestingUpcoming, VestingVested, VestingExercised:
		return true
	}
	return false
}

// Title returns the status with its first letter upper-cased
func (s VestingStatus) Title() string {
	return capitalize(string(s))
}

// VestingSchedule is one tranche of a grant. VestingDate is an ISO date (YYYY-MM-DD).
type VestingSchedule struct {
	ID             string        `json:"id"`
	VestingDate    string        `json:"vestingDate"`
	Quantity       float64       `json:"quantity"`
	EstimatedValue float64       `json:"estimatedValue"`
	CurrencyCode   string        `json:"currencyCode"`
	Status         VestingStatus `json:"status"`
}

// TransactionType classifies an equity transaction
type TransactionType string

const (
	TransactionGrant    TransactionType = "grant"
	TransactionVest     TransactionType = "vest"
	TransactionExercise TransactionType = "exercise"
	TransactionSell     TransactionType = "sell"
)

// Valid reports whether t is a known transaction type
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionGrant, TransactionVest, TransactionExercise, TransactionSell:
		return true
	}
	return false
}

// Title returns the type with its first letter upper-cased
func (t TransactionType) Title() string {
	return capitalize(string(t))
}

// Transaction is one entry of the employee's equity history. Date is an ISO date.
type Transaction struct {
	ID           string          `json:"id"`
	Date         string          `json:"date"`
	Type         TransactionType `json:"type"`
	Quantity     float64         `json:"quantity"`
	Value        float64         `json:"value"`
	CurrencyCode string          `json:"currencyCode"`
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
