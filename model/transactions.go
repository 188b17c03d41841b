package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable ledger entry. Positive amounts are deposits
// into ToAccountID, negative amounts are expenses from FromAccountID.
type Transaction struct {
	ID            int             `json:"id" validate:"required,gt=0"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	FromAccountID *int            `json:"from_account_id"`
	ToAccountID   *int            `json:"to_account_id"`
	CreatedAt     time.Time       `json:"created_at"`
	Recurring     bool            `json:"recurring"`
}

// AccountID returns the account the transaction was posted against.
func (t *Transaction) AccountID() int {
	if t.ToAccountID != nil {
		return *t.ToAccountID
	}
	if t.FromAccountID != nil {
		return *t.FromAccountID
	}
	return 0
}
