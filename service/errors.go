package service

import "errors"

var (
	ErrAccountNotFound        = errors.New("account not found")
	ErrSavingsAccountNotFound = errors.New("savings account not found")
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrInvalidTransactionType = errors.New("transaction type must be deposit or expense")
	ErrInvalidDate            = errors.New("date must be YYYY-MM-DD or an RFC3339 timestamp")
	ErrInvalidImport          = errors.New("invalid import payload")
)
