package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionPostedEvent is published after a posting commits.
type TransactionPostedEvent struct {
	EventID         string          `json:"event_id"`
	TransactionID   int             `json:"transaction_id"`
	Type            TransactionType `json:"type"`
	AccountID       int             `json:"account_id"`
	Amount          decimal.Decimal `json:"amount"`
	TakeFromSavings bool            `json:"take_from_savings"`
	SavingsDelta    decimal.Decimal `json:"savings_delta"`
	OccurredAt      time.Time       `json:"occurred_at"`
}
