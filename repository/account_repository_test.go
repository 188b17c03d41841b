package repository

import (
	"context"
	"database/sql"
	"go-budget-api/db"
	"go-budget-api/model"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accountColumnNames = []string{"id", "name", "friendly_name", "balance", "type", "insert_frequency", "insert_amount", "insert_start_date"}

func TestAccountRepository_GetAllAccounts(t *testing.T) {
	database, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	repo := NewAccountRepository(database, db.Postgres)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(accountColumnNames).
		AddRow(1, "Marcus", "Savings Account", "1500.25", "savings", nil, nil, nil).
		AddRow(5, "brennon_allowance", "Brennon Allowance", "20.00", "allowance", "weekly", "10.00", start)
	dbMock.ExpectQuery(regexp.QuoteMeta(`FROM accounts ORDER BY id ASC`)).WillReturnRows(rows)

	accounts, err := repo.GetAllAccounts(context.Background())

	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Marcus", accounts[0].Name)
	assert.True(t, decimal.RequireFromString("1500.25").Equal(accounts[0].Balance))
	assert.Nil(t, accounts[0].InsertFrequency)
	assert.False(t, accounts[0].InsertAmount.Valid)
	assert.Equal(t, model.AccountTypeAllowance, accounts[1].Type)
	require.NotNil(t, accounts[1].InsertFrequency)
	assert.Equal(t, model.FrequencyWeekly, *accounts[1].InsertFrequency)
	assert.True(t, accounts[1].HasRecurringDeposit())
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestAccountRepository_GetAllAccounts_Empty(t *testing.T) {
	database, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	dbMock.ExpectQuery(regexp.QuoteMeta(`FROM accounts ORDER BY id ASC`)).WillReturnRows(sqlmock.NewRows(accountColumnNames))

	accounts, err := NewAccountRepository(database, db.Postgres).GetAllAccounts(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, accounts)
	assert.Empty(t, accounts)
}

func TestAccountRepository_AdjustBalance(t *testing.T) {
	database, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	repo := NewAccountRepository(database, db.Postgres)
	ctx := context.Background()
	query := regexp.QuoteMeta(`UPDATE accounts SET balance = balance + $1 WHERE id = $2 RETURNING`)

	t.Run("success", func(t *testing.T) {
		dbMock.ExpectBegin()
		dbMock.ExpectQuery(query).
			WithArgs(decimal.NewFromInt(-75), 2).
			WillReturnRows(sqlmock.NewRows(accountColumnNames).AddRow(2, "grocery_budget", "Grocery Budget", "25.00", "budget", nil, nil, nil))
		dbMock.ExpectCommit()

		tx, err := database.Begin()
		require.NoError(t, err)
		account, err := repo.AdjustBalance(ctx, tx, 2, decimal.NewFromInt(-75))
		require.NoError(t, err)
		require.NoError(t, tx.Commit())

		assert.Equal(t, 2, account.ID)
		assert.True(t, decimal.NewFromInt(25).Equal(account.Balance))
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("missing account", func(t *testing.T) {
		dbMock.ExpectBegin()
		dbMock.ExpectQuery(query).
			WithArgs(decimal.NewFromInt(10), 99).
			WillReturnRows(sqlmock.NewRows(accountColumnNames))
		dbMock.ExpectRollback()

		tx, err := database.Begin()
		require.NoError(t, err)
		_, err = repo.AdjustBalance(ctx, tx, 99, decimal.NewFromInt(10))
		assert.ErrorIs(t, err, sql.ErrNoRows)
		require.NoError(t, tx.Rollback())
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestAccountRepository_GetAccountIDByName(t *testing.T) {
	database, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	repo := NewAccountRepository(database, db.Postgres)

	dbMock.ExpectBegin()
	dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM accounts WHERE name = $1`)).
		WithArgs("Marcus").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	dbMock.ExpectRollback()

	tx, err := database.Begin()
	require.NoError(t, err)
	id, err := repo.GetAccountIDByName(context.Background(), tx, "Marcus")
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	assert.Equal(t, 1, id)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestAccountRepository_UpsertAccountAndSync(t *testing.T) {
	database, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	ctx := context.Background()
	weekly := model.FrequencyWeekly
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	account := &model.Account{
		ID:              5,
		Name:            "brennon_allowance",
		FriendlyName:    "Brennon Allowance",
		Balance:         decimal.RequireFromString("12.50"),
		Type:            model.AccountTypeAllowance,
		InsertFrequency: &weekly,
		InsertAmount:    decimal.NewNullDecimal(decimal.NewFromInt(10)),
		InsertStartDate: &start,
	}

	t.Run("postgres realigns the sequence", func(t *testing.T) {
		repo := NewAccountRepository(database, db.Postgres)

		dbMock.ExpectBegin()
		dbMock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (id) DO UPDATE SET`)).
			WithArgs(5, "brennon_allowance", "Brennon Allowance", decimal.RequireFromString("12.50"), "allowance", "weekly", decimal.NewFromInt(10), start).
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectExec(regexp.QuoteMeta(`SELECT setval(pg_get_serial_sequence('accounts', 'id')`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		dbMock.ExpectCommit()

		tx, err := database.Begin()
		require.NoError(t, err)
		require.NoError(t, repo.UpsertAccount(ctx, tx, account))
		require.NoError(t, repo.SyncIDSequence(ctx, tx))
		require.NoError(t, tx.Commit())
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("sqlite skips the sequence", func(t *testing.T) {
		repo := NewAccountRepository(database, db.SQLite)

		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		tx, err := database.Begin()
		require.NoError(t, err)
		require.NoError(t, repo.SyncIDSequence(ctx, tx))
		require.NoError(t, tx.Commit())
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestAccountRepository_AdjustBalance_SQLiteRoundsToCents(t *testing.T) {
	database, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	repo := NewAccountRepository(database, db.SQLite)
	ctx := context.Background()

	dbMock.ExpectBegin()
	dbMock.ExpectQuery(regexp.QuoteMeta(`UPDATE accounts SET balance = ROUND(balance + $1, 2) WHERE id = $2 RETURNING`)).
		WithArgs(decimal.RequireFromString("0.2"), 5).
		WillReturnRows(sqlmock.NewRows(accountColumnNames).AddRow(5, "brennon_allowance", "Brennon Allowance", 0.3, "allowance", nil, nil, nil))
	dbMock.ExpectCommit()

	tx, err := database.Begin()
	require.NoError(t, err)
	account, err := repo.AdjustBalance(ctx, tx, 5, decimal.RequireFromString("0.2"))
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.True(t, account.Balance.Equal(decimal.RequireFromString("0.3")))
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
