package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"go-budget-api/events"
	"go-budget-api/logger"
	"go-budget-api/model"
	"go-budget-api/repository"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type TransactionService struct {
	db                 *sql.DB
	accountRepo        repository.IAccountRepository
	transactionRepo    repository.ITransactionRepository
	savingsAccountName string
	cache              ICacheClient
	publisher          events.Publisher
	now                func() time.Time
}

// NewTransactionService wires the poster. cache may be nil; a nil publisher drops events.
func NewTransactionService(db *sql.DB, accountRepo repository.IAccountRepository, transactionRepo repository.ITransactionRepository,
	savingsAccountName string, cache ICacheClient, publisher events.Publisher) *TransactionService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &TransactionService{
		db:                 db,
		accountRepo:        accountRepo,
		transactionRepo:    transactionRepo,
		savingsAccountName: savingsAccountName,
		cache:              cache,
		publisher:          publisher,
		now:                func() time.Time { return time.Now().UTC() },
	}
}

// Deposit posts req as a deposit into req.AccountID.
func (s *TransactionService) Deposit(ctx context.Context, req model.PostTransactionRequest) (*model.Transaction, error) {
	req.Type = model.TransactionTypeDeposit
	return s.PostTransaction(ctx, req)
}

// Withdraw posts req as an expense from req.AccountID.
func (s *TransactionService) Withdraw(ctx context.Context, req model.PostTransactionRequest) (*model.Transaction, error) {
	req.Type = model.TransactionTypeExpense
	return s.PostTransaction(ctx, req)
}

// PostTransaction records a ledger row and applies it to the target account,
// plus the savings mirror when TakeFromSavings is set, in one database
// transaction.
func (s *TransactionService) PostTransaction(ctx context.Context, req model.PostTransactionRequest) (*model.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	date, err := model.ParseDate(req.Date, s.now())
	if err != nil {
		return nil, ErrInvalidDate
	}

	accountID := int(req.AccountID)
	transaction := &model.Transaction{
		Description: req.Description,
		Date:        date,
		Recurring:   req.Recurring,
	}
	switch req.Type {
	case model.TransactionTypeDeposit:
		transaction.Amount = req.Amount
		transaction.ToAccountID = &accountID
	case model.TransactionTypeExpense:
		transaction.Amount = req.Amount.Neg()
		transaction.FromAccountID = &accountID
	default:
		return nil, ErrInvalidTransactionType
	}

	log := logger.Log.WithFields(logrus.Fields{
		"type":              req.Type,
		"account_id":        accountID,
		"amount":            transaction.Amount.String(),
		"take_from_savings": req.TakeFromSavings,
	})
	log.Info("Starting transaction posting")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.transactionRepo.CreateTransaction(ctx, tx, transaction); err != nil {
		return nil, fmt.Errorf("could not create transaction record: %w", err)
	}

	if _, err := s.accountRepo.AdjustBalance(ctx, tx, accountID, transaction.Amount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("could not update account balance: %w", err)
	}

	savingsDelta := decimal.Zero
	if req.TakeFromSavings {
		savingsID, err := s.accountRepo.GetAccountIDByName(ctx, tx, s.savingsAccountName)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrSavingsAccountNotFound
			}
			return nil, fmt.Errorf("could not resolve savings account: %w", err)
		}

		if savingsID != accountID {
			// Money funded by savings always leaves savings, whichever
			// direction the target account moved.
			savingsDelta = req.Amount.Neg()
			if _, err := s.accountRepo.AdjustBalance(ctx, tx, savingsID, savingsDelta); err != nil {
				return nil, fmt.Errorf("could not update savings balance: %w", err)
			}
		} else {
			log.Info("Transaction targets the savings account, skipping savings mirror")
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	log.WithField("transaction_id", transaction.ID).Info("Transaction posted successfully")

	invalidateAccounts(ctx, s.cache)
	s.publishPosted(ctx, req, transaction, savingsDelta)

	return transaction, nil
}

func (s *TransactionService) publishPosted(ctx context.Context, req model.PostTransactionRequest, transaction *model.Transaction, savingsDelta decimal.Decimal) {
	event := model.TransactionPostedEvent{
		EventID:         uuid.NewString(),
		TransactionID:   transaction.ID,
		Type:            req.Type,
		AccountID:       int(req.AccountID),
		Amount:          transaction.Amount,
		TakeFromSavings: req.TakeFromSavings,
		SavingsDelta:    savingsDelta,
		OccurredAt:      s.now(),
	}
	if err := s.publisher.PublishTransactionPosted(ctx, event); err != nil {
		logger.Log.WithError(err).WithField("transaction_id", transaction.ID).Warn("Failed to publish transaction posted event")
	}
}

// ListTransactions returns the whole ledger, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context) ([]*model.Transaction, error) {
	return s.transactionRepo.GetAllTransactions(ctx)
}
