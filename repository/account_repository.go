package repository

import (
	"context"
	"database/sql"
	"go-budget-api/db"
	"go-budget-api/logger"
	"go-budget-api/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const accountColumns = `id, name, friendly_name, balance, type, insert_frequency, insert_amount, insert_start_date`

// IAccountRepository defines the contract for account database operations.
type IAccountRepository interface {
	GetAllAccounts(ctx context.Context) ([]*model.Account, error)
	GetRecurringAccounts(ctx context.Context) ([]*model.Account, error)
	GetAccountIDByName(ctx context.Context, tx *sql.Tx, name string) (int, error)
	AdjustBalance(ctx context.Context, tx *sql.Tx, accountID int, delta decimal.Decimal) (*model.Account, error)
	UpsertAccount(ctx context.Context, tx *sql.Tx, account *model.Account) error
	SyncIDSequence(ctx context.Context, tx *sql.Tx) error
}

type AccountRepository struct {
	DB     *sql.DB
	Driver db.Driver
}

func NewAccountRepository(database *sql.DB, driver db.Driver) *AccountRepository {
	return &AccountRepository{DB: database, Driver: driver}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (*model.Account, error) {
	var acc model.Account
	err := row.Scan(&acc.ID, &acc.Name, &acc.FriendlyName, &acc.Balance, &acc.Type,
		&acc.InsertFrequency, &acc.InsertAmount, &acc.InsertStartDate)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *AccountRepository) queryAccounts(ctx context.Context, log *logrus.Entry, query string, args ...interface{}) ([]*model.Account, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.WithError(err).Error("Failed to execute accounts query")
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*model.Account, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			log.WithError(err).Error("Failed to scan account row")
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		log.WithError(err).Error("Failed to iterate account rows")
		return nil, err
	}
	return accounts, nil
}

// GetAllAccounts retrieves every account ordered by id.
func (r *AccountRepository) GetAllAccounts(ctx context.Context) ([]*model.Account, error) {
	log := logger.Log.WithField("query", "all_accounts")
	log.Debug("Executing query to get all accounts")

	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY id ASC`
	return r.queryAccounts(ctx, log, query)
}

// GetRecurringAccounts retrieves the accounts with a complete recurring-deposit configuration.
func (r *AccountRepository) GetRecurringAccounts(ctx context.Context) ([]*model.Account, error) {
	log := logger.Log.WithField("query", "recurring_accounts")
	log.Debug("Executing query to get recurring deposit accounts")

	query := `SELECT ` + accountColumns + ` FROM accounts
		WHERE insert_frequency IS NOT NULL AND insert_amount IS NOT NULL AND insert_start_date IS NOT NULL
		ORDER BY id ASC`
	return r.queryAccounts(ctx, log, query)
}

// GetAccountIDByName resolves an account id inside tx. Returns sql.ErrNoRows when absent.
func (r *AccountRepository) GetAccountIDByName(ctx context.Context, tx *sql.Tx, name string) (int, error) {
	log := logger.Log.WithField("account_name", name)
	log.Debug("Executing query to get account id by name")

	var id int
	query := `SELECT id FROM accounts WHERE name = $1`
	err := tx.QueryRowContext(ctx, query, name).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Info("Account not found by name")
		} else {
			log.WithError(err).Error("Failed to execute get account id by name query")
		}
		return 0, err
	}
	return id, nil
}

// balanceExpr is the new balance after adding $1. SQLite does NUMERIC
// arithmetic in floating point, so the result is rounded back to cents.
func balanceExpr(driver db.Driver) string {
	if driver == db.SQLite {
		return `ROUND(balance + $1, 2)`
	}
	return `balance + $1`
}

// AdjustBalance adds delta to the account balance and returns the updated row.
// Returns sql.ErrNoRows when the account does not exist.
func (r *AccountRepository) AdjustBalance(ctx context.Context, tx *sql.Tx, accountID int, delta decimal.Decimal) (*model.Account, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id": accountID,
		"delta":      delta.String(),
	})
	log.Info("Executing query to adjust account balance")

	query := `UPDATE accounts SET balance = ` + balanceExpr(r.Driver) + ` WHERE id = $2 RETURNING ` + accountColumns
	account, err := scanAccount(tx.QueryRowContext(ctx, query, delta, accountID))
	if err != nil {
		if err == sql.ErrNoRows {
			log.Info("Account not found for balance adjustment")
		} else {
			log.WithError(err).Error("Failed to execute adjust balance query")
		}
		return nil, err
	}
	return account, nil
}

// UpsertAccount inserts the account or overwrites the row with the same id.
func (r *AccountRepository) UpsertAccount(ctx context.Context, tx *sql.Tx, account *model.Account) error {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id": account.ID,
		"name":       account.Name,
	})
	log.Debug("Executing query to upsert account")

	query := `INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			friendly_name = EXCLUDED.friendly_name,
			balance = EXCLUDED.balance,
			type = EXCLUDED.type,
			insert_frequency = EXCLUDED.insert_frequency,
			insert_amount = EXCLUDED.insert_amount,
			insert_start_date = EXCLUDED.insert_start_date`
	_, err := tx.ExecContext(ctx, query, account.ID, account.Name, account.FriendlyName, account.Balance,
		string(account.Type), account.InsertFrequency, account.InsertAmount, account.InsertStartDate)
	if err != nil {
		log.WithError(err).Error("Failed to execute upsert account query")
		return err
	}
	return nil
}

// SyncIDSequence moves the Postgres id sequence past the highest id after
// rows were inserted with explicit ids. SQLite needs no adjustment.
func (r *AccountRepository) SyncIDSequence(ctx context.Context, tx *sql.Tx) error {
	return syncIDSequence(ctx, tx, r.Driver, "accounts")
}

func syncIDSequence(ctx context.Context, tx *sql.Tx, driver db.Driver, table string) error {
	if driver != db.Postgres {
		return nil
	}
	query := `SELECT setval(pg_get_serial_sequence('` + table + `', 'id'), COALESCE((SELECT MAX(id) FROM ` + table + `), 0) + 1, false)`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		logger.Log.WithError(err).WithField("table", table).Error("Failed to sync id sequence")
		return err
	}
	return nil
}
