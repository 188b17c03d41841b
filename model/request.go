// file: model/request.go

package model

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType selects the direction of a posted transaction.
type TransactionType string

const (
	TransactionTypeDeposit TransactionType = "deposit"
	TransactionTypeExpense TransactionType = "expense"
)

// AccountRef is an account id that accepts both JSON numbers and numeric strings.
type AccountRef int

func (a *AccountRef) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("account_id must be an integer")
	}
	*a = AccountRef(id)
	return nil
}

// PostTransactionRequest is the payload for posting a deposit or expense.
// Amount is always positive; Type decides the sign.
type PostTransactionRequest struct {
	Type            TransactionType `json:"type" validate:"omitempty,oneof=deposit expense"`
	Amount          decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Description     string          `json:"description" validate:"max=255"`
	Date            string          `json:"date"`
	AccountID       AccountRef      `json:"account_id" validate:"required,gt=0"`
	TakeFromSavings bool            `json:"take_from_savings"`
	Recurring       bool            `json:"-"`
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates.
// An empty string yields now.
func ParseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format")
}

// DataExport is the bulk dump used by download/upload.
type DataExport struct {
	ExportedAt   time.Time      `json:"exported_at"`
	Accounts     []*Account     `json:"accounts" validate:"dive"`
	Transactions []*Transaction `json:"transactions" validate:"dive"`
}

// ImportResult reports how many rows an import upserted.
type ImportResult struct {
	Accounts     int `json:"accounts"`
	Transactions int `json:"transactions"`
}
