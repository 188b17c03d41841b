package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies a balance bucket.
type AccountType string

const (
	AccountTypeSavings     AccountType = "savings"
	AccountTypeAllowance   AccountType = "allowance"
	AccountTypeBudget      AccountType = "budget"
	AccountTypeStockMarket AccountType = "stock_market"
)

// Frequency is how often a recurring deposit is made into an account.
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

type Account struct {
	ID              int                 `json:"id" validate:"required,gt=0"`
	Name            string              `json:"name" validate:"required,max=100"`
	FriendlyName    string              `json:"friendly_name" validate:"max=100"`
	Balance         decimal.Decimal     `json:"balance"`
	Type            AccountType         `json:"type" validate:"required,oneof=savings allowance budget stock_market"`
	InsertFrequency *Frequency          `json:"insert_frequency" validate:"omitempty,oneof=weekly biweekly monthly"`
	InsertAmount    decimal.NullDecimal `json:"insert_amount"`
	InsertStartDate *time.Time          `json:"insert_start_date"`
}

// HasRecurringDeposit reports whether all recurring-deposit fields are set.
func (a *Account) HasRecurringDeposit() bool {
	return a.InsertFrequency != nil && a.InsertAmount.Valid && a.InsertStartDate != nil &&
		a.InsertAmount.Decimal.IsPositive()
}
