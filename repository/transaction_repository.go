package repository

import (
	"context"
	"database/sql"
	"go-budget-api/db"
	"go-budget-api/logger"
	"go-budget-api/model"
	"time"

	"github.com/sirupsen/logrus"
)

const transactionColumns = `id, amount, description, date, from_account_id, to_account_id, created_at, recurring`

// ITransactionRepository defines the contract for transaction database operations.
type ITransactionRepository interface {
	CreateTransaction(ctx context.Context, tx *sql.Tx, transaction *model.Transaction) error
	GetAllTransactions(ctx context.Context) ([]*model.Transaction, error)
	UpsertTransaction(ctx context.Context, tx *sql.Tx, transaction *model.Transaction) error
	HasRecurringDepositBetween(ctx context.Context, accountID int, from, to time.Time) (bool, error)
	SyncIDSequence(ctx context.Context, tx *sql.Tx) error
}

// TransactionRepository implements ITransactionRepository.
type TransactionRepository struct {
	DB     *sql.DB
	Driver db.Driver
}

func NewTransactionRepository(database *sql.DB, driver db.Driver) *TransactionRepository {
	return &TransactionRepository{DB: database, Driver: driver}
}

// CreateTransaction inserts a ledger row and fills in its id and created_at.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, tx *sql.Tx, transaction *model.Transaction) error {
	log := logger.Log.WithFields(logrus.Fields{
		"from_account_id": transaction.FromAccountID,
		"to_account_id":   transaction.ToAccountID,
		"amount":          transaction.Amount.String(),
	})
	log.Info("Executing query to create a new transaction")

	query := `INSERT INTO transactions (amount, description, date, from_account_id, to_account_id, recurring)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := tx.QueryRowContext(ctx, query, transaction.Amount, transaction.Description, transaction.Date,
		transaction.FromAccountID, transaction.ToAccountID, transaction.Recurring).Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create transaction query")
		return err
	}
	return nil
}

// GetAllTransactions retrieves the whole ledger, newest first.
func (r *TransactionRepository) GetAllTransactions(ctx context.Context) ([]*model.Transaction, error) {
	log := logger.Log.WithField("query", "all_transactions")
	log.Debug("Executing query to get all transactions")

	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY created_at DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for all transactions")
		return nil, err
	}
	defer rows.Close()

	transactions := make([]*model.Transaction, 0)
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.Amount, &t.Description, &t.Date, &t.FromAccountID, &t.ToAccountID, &t.CreatedAt, &t.Recurring); err != nil {
			log.WithError(err).Error("Failed to scan transaction row")
			return nil, err
		}
		transactions = append(transactions, &t)
	}
	if err := rows.Err(); err != nil {
		log.WithError(err).Error("Failed to iterate transaction rows")
		return nil, err
	}
	return transactions, nil
}

// UpsertTransaction inserts the row with its original id or overwrites an existing one.
func (r *TransactionRepository) UpsertTransaction(ctx context.Context, tx *sql.Tx, transaction *model.Transaction) error {
	log := logger.Log.WithField("transaction_id", transaction.ID)
	log.Debug("Executing query to upsert transaction")

	createdAt := transaction.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			amount = EXCLUDED.amount,
			description = EXCLUDED.description,
			date = EXCLUDED.date,
			from_account_id = EXCLUDED.from_account_id,
			to_account_id = EXCLUDED.to_account_id,
			created_at = EXCLUDED.created_at,
			recurring = EXCLUDED.recurring`
	_, err := tx.ExecContext(ctx, query, transaction.ID, transaction.Amount, transaction.Description, transaction.Date,
		transaction.FromAccountID, transaction.ToAccountID, createdAt, transaction.Recurring)
	if err != nil {
		log.WithError(err).Error("Failed to execute upsert transaction query")
		return err
	}
	return nil
}

// HasRecurringDepositBetween reports whether a scheduled deposit already
// reached accountID with a date in [from, to).
func (r *TransactionRepository) HasRecurringDepositBetween(ctx context.Context, accountID int, from, to time.Time) (bool, error) {
	log := logger.Log.WithField("account_id", accountID)

	var count int
	query := `SELECT COUNT(*) FROM transactions WHERE to_account_id = $1 AND recurring = TRUE AND date >= $2 AND date < $3`
	if err := r.DB.QueryRowContext(ctx, query, accountID, from, to).Scan(&count); err != nil {
		log.WithError(err).Error("Failed to execute recurring deposit lookup query")
		return false, err
	}
	return count > 0, nil
}

func (r *TransactionRepository) SyncIDSequence(ctx context.Context, tx *sql.Tx) error {
	return syncIDSequence(ctx, tx, r.Driver, "transactions")
}
