package service

import (
	"context"
	"database/sql"
	"fmt"
	"go-budget-api/common"
	"go-budget-api/logger"
	"go-budget-api/model"
	"go-budget-api/repository"
	"time"

	"github.com/sirupsen/logrus"
)

// DataService dumps and restores the whole dataset.
type DataService struct {
	db              *sql.DB
	accountRepo     repository.IAccountRepository
	transactionRepo repository.ITransactionRepository
	cache           ICacheClient
}

func NewDataService(db *sql.DB, accountRepo repository.IAccountRepository, transactionRepo repository.ITransactionRepository, cache ICacheClient) *DataService {
	return &DataService{
		db:              db,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		cache:           cache,
	}
}

func (s *DataService) Export(ctx context.Context) (*model.DataExport, error) {
	accounts, err := s.accountRepo.GetAllAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not export accounts: %w", err)
	}
	transactions, err := s.transactionRepo.GetAllTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not export transactions: %w", err)
	}

	return &model.DataExport{
		ExportedAt:   time.Now().UTC(),
		Accounts:     accounts,
		Transactions: transactions,
	}, nil
}

// Import upserts every account and then every transaction by primary key.
// Rows already present with the same id are overwritten.
func (s *DataService) Import(ctx context.Context, data *model.DataExport) (*model.ImportResult, error) {
	if err := validateImport(data); err != nil {
		return nil, err
	}

	log := logger.Log.WithFields(logrus.Fields{
		"accounts":     len(data.Accounts),
		"transactions": len(data.Transactions),
	})
	log.Info("Starting data import")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, account := range data.Accounts {
		if err := s.accountRepo.UpsertAccount(ctx, tx, account); err != nil {
			return nil, fmt.Errorf("could not import account %d: %w", account.ID, err)
		}
	}
	if err := s.accountRepo.SyncIDSequence(ctx, tx); err != nil {
		return nil, fmt.Errorf("could not sync account ids: %w", err)
	}

	for _, transaction := range data.Transactions {
		if err := s.transactionRepo.UpsertTransaction(ctx, tx, transaction); err != nil {
			return nil, fmt.Errorf("could not import transaction %d: %w", transaction.ID, err)
		}
	}
	if err := s.transactionRepo.SyncIDSequence(ctx, tx); err != nil {
		return nil, fmt.Errorf("could not sync transaction ids: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	invalidateAccounts(ctx, s.cache)
	log.Info("Data import completed successfully")

	return &model.ImportResult{Accounts: len(data.Accounts), Transactions: len(data.Transactions)}, nil
}

func validateImport(data *model.DataExport) error {
	if data == nil {
		return fmt.Errorf("%w: empty payload", ErrInvalidImport)
	}
	if err := common.Validate(data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	for _, account := range data.Accounts {
		if account == nil {
			return fmt.Errorf("%w: null account", ErrInvalidImport)
		}
	}
	for _, transaction := range data.Transactions {
		if transaction == nil {
			return fmt.Errorf("%w: null transaction", ErrInvalidImport)
		}
		if transaction.FromAccountID == nil && transaction.ToAccountID == nil {
			return fmt.Errorf("%w: transaction %d has no account", ErrInvalidImport, transaction.ID)
		}
	}
	return nil
}
