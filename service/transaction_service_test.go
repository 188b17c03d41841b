// service/transaction_service_test.go
package service

import (
	"context"
	"database/sql"
	"errors"
	"go-budget-api/model"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const savingsID = 1

type posterFixture struct {
	service  *TransactionService
	dbMock   sqlmock.Sqlmock
	accounts *MockAccountRepository
	txns     *MockTransactionRepository
	cache    *mockCache
	events   *mockPublisher
}

func newPosterFixture(t *testing.T) *posterFixture {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &posterFixture{
		dbMock:   dbMock,
		accounts: new(MockAccountRepository),
		txns:     new(MockTransactionRepository),
		cache:    newMockCache(),
		events:   new(mockPublisher),
	}
	f.service = NewTransactionService(db, f.accounts, f.txns, "Marcus", f.cache, f.events)
	f.service.now = func() time.Time { return time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC) }
	return f
}

func (f *posterFixture) assertAll(t *testing.T) {
	f.accounts.AssertExpectations(t)
	f.txns.AssertExpectations(t)
	f.events.AssertExpectations(t)
	assert.NoError(t, f.dbMock.ExpectationsWereMet())
}

func request(typ model.TransactionType, amount int64, accountID int, fromSavings bool) model.PostTransactionRequest {
	return model.PostTransactionRequest{
		Type:            typ,
		Amount:          decimal.NewFromInt(amount),
		Description:     "Test",
		Date:            "2024-01-02",
		AccountID:       model.AccountRef(accountID),
		TakeFromSavings: fromSavings,
	}
}

func TestTransactionService_ExpenseAgainstSavingsDoesNotMirror(t *testing.T) {
	f := newPosterFixture(t)

	f.dbMock.ExpectBegin()
	f.txns.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tr *model.Transaction) bool {
		return tr.FromAccountID != nil && *tr.FromAccountID == savingsID && tr.ToAccountID == nil &&
			tr.Amount.Equal(decimal.NewFromInt(-50))
	})).Return(nil).Once()
	f.accounts.On("AdjustBalance", mock.Anything, savingsID, decimalEq(-50)).Return(&model.Account{ID: savingsID}, nil).Once()
	f.accounts.On("GetAccountIDByName", mock.Anything, "Marcus").Return(savingsID, nil).Once()
	f.dbMock.ExpectCommit()
	f.events.On("PublishTransactionPosted", mock.MatchedBy(func(e model.TransactionPostedEvent) bool {
		return e.SavingsDelta.IsZero() && e.AccountID == savingsID
	})).Return(nil).Once()

	transaction, err := f.service.PostTransaction(context.Background(), request(model.TransactionTypeExpense, 50, savingsID, true))

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-50).Equal(transaction.Amount))
	f.accounts.AssertNumberOfCalls(t, "AdjustBalance", 1)
	f.assertAll(t)
}

func TestTransactionService_ExpenseFromSavingsMirrorsOntoSavings(t *testing.T) {
	f := newPosterFixture(t)

	f.dbMock.ExpectBegin()
	f.txns.On("CreateTransaction", mock.Anything, mock.AnythingOfType("*model.Transaction")).Return(nil).Once()
	f.accounts.On("AdjustBalance", mock.Anything, 2, decimalEq(-75)).Return(&model.Account{ID: 2}, nil).Once()
	f.accounts.On("GetAccountIDByName", mock.Anything, "Marcus").Return(savingsID, nil).Once()
	f.accounts.On("AdjustBalance", mock.Anything, savingsID, decimalEq(-75)).Return(&model.Account{ID: savingsID}, nil).Once()
	f.dbMock.ExpectCommit()
	f.events.On("PublishTransactionPosted", mock.Anything).Return(nil).Once()

	_, err := f.service.Withdraw(context.Background(), request("", 75, 2, true))

	require.NoError(t, err)
	f.assertAll(t)
}

func TestTransactionService_SavingsFundedDepositMovesMoneyOutOfSavings(t *testing.T) {
	f := newPosterFixture(t)

	f.dbMock.ExpectBegin()
	f.txns.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tr *model.Transaction) bool {
		return tr.ToAccountID != nil && *tr.ToAccountID == 3 && tr.FromAccountID == nil &&
			tr.Amount.Equal(decimal.NewFromInt(125)) && tr.Date.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()
	f.accounts.On("AdjustBalance", mock.Anything, 3, decimalEq(125)).Return(&model.Account{ID: 3}, nil).Once()
	f.accounts.On("GetAccountIDByName", mock.Anything, "Marcus").Return(savingsID, nil).Once()
	f.accounts.On("AdjustBalance", mock.Anything, savingsID, decimalEq(-125)).Return(&model.Account{ID: savingsID}, nil).Once()
	f.dbMock.ExpectCommit()
	f.events.On("PublishTransactionPosted", mock.MatchedBy(func(e model.TransactionPostedEvent) bool {
		return e.Type == model.TransactionTypeDeposit && e.SavingsDelta.Equal(decimal.NewFromInt(-125))
	})).Return(nil).Once()

	_, err := f.service.Deposit(context.Background(), request("", 125, 3, true))

	require.NoError(t, err)
	f.assertAll(t)
}

func TestTransactionService_WithoutSavingsFlag(t *testing.T) {
	f := newPosterFixture(t)
	f.cache.values[accountsCacheKey] = "[]"

	f.dbMock.ExpectBegin()
	f.txns.On("CreateTransaction", mock.Anything, mock.AnythingOfType("*model.Transaction")).Return(nil).Once()
	f.accounts.On("AdjustBalance", mock.Anything, 8, decimalEq(40)).Return(&model.Account{ID: 8}, nil).Once()
	f.dbMock.ExpectCommit()
	f.events.On("PublishTransactionPosted", mock.Anything).Return(errors.New("broker down")).Once()

	_, err := f.service.Deposit(context.Background(), request("", 40, 8, false))

	require.NoError(t, err, "publish failures must not fail the posting")
	f.accounts.AssertNotCalled(t, "GetAccountIDByName", mock.Anything, mock.Anything)
	assert.Equal(t, []string{accountsCacheKey}, f.cache.deleted)
	f.assertAll(t)
}

func TestTransactionService_RollbackPaths(t *testing.T) {
	t.Run("unknown account", func(t *testing.T) {
		f := newPosterFixture(t)
		f.dbMock.ExpectBegin()
		f.txns.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		f.accounts.On("AdjustBalance", mock.Anything, 99, decimalEq(-10)).Return(nil, sql.ErrNoRows).Once()
		f.dbMock.ExpectRollback()

		_, err := f.service.Withdraw(context.Background(), request("", 10, 99, true))

		assert.ErrorIs(t, err, ErrAccountNotFound)
		assert.Empty(t, f.cache.deleted)
		f.assertAll(t)
	})

	t.Run("missing savings account", func(t *testing.T) {
		f := newPosterFixture(t)
		f.dbMock.ExpectBegin()
		f.txns.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		f.accounts.On("AdjustBalance", mock.Anything, 2, decimalEq(-10)).Return(&model.Account{ID: 2}, nil).Once()
		f.accounts.On("GetAccountIDByName", mock.Anything, "Marcus").Return(0, sql.ErrNoRows).Once()
		f.dbMock.ExpectRollback()

		_, err := f.service.Withdraw(context.Background(), request("", 10, 2, true))

		assert.ErrorIs(t, err, ErrSavingsAccountNotFound)
		f.assertAll(t)
	})

	t.Run("savings update fails", func(t *testing.T) {
		f := newPosterFixture(t)
		f.dbMock.ExpectBegin()
		f.txns.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		f.accounts.On("AdjustBalance", mock.Anything, 2, decimalEq(-10)).Return(&model.Account{ID: 2}, nil).Once()
		f.accounts.On("GetAccountIDByName", mock.Anything, "Marcus").Return(savingsID, nil).Once()
		f.accounts.On("AdjustBalance", mock.Anything, savingsID, decimalEq(-10)).Return(nil, errors.New("connection reset")).Once()
		f.dbMock.ExpectRollback()

		_, err := f.service.Withdraw(context.Background(), request("", 10, 2, true))

		assert.Error(t, err)
		f.assertAll(t)
	})

	t.Run("insert fails", func(t *testing.T) {
		f := newPosterFixture(t)
		f.dbMock.ExpectBegin()
		f.txns.On("CreateTransaction", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()
		f.dbMock.ExpectRollback()

		_, err := f.service.Deposit(context.Background(), request("", 10, 2, false))

		assert.Error(t, err)
		f.accounts.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
		f.assertAll(t)
	})

	t.Run("commit fails", func(t *testing.T) {
		f := newPosterFixture(t)
		f.dbMock.ExpectBegin()
		f.txns.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		f.accounts.On("AdjustBalance", mock.Anything, 2, decimalEq(10)).Return(&model.Account{ID: 2}, nil).Once()
		f.dbMock.ExpectCommit().WillReturnError(errors.New("commit failed"))

		_, err := f.service.Deposit(context.Background(), request("", 10, 2, false))

		assert.Error(t, err)
		f.events.AssertNotCalled(t, "PublishTransactionPosted", mock.Anything)
		f.assertAll(t)
	})
}

func TestTransactionService_InvalidRequests(t *testing.T) {
	f := newPosterFixture(t)
	ctx := context.Background()

	_, err := f.service.Deposit(ctx, request("", 0, 2, false))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = f.service.Withdraw(ctx, request("", -5, 2, false))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = f.service.PostTransaction(ctx, request("transfer", 5, 2, false))
	assert.ErrorIs(t, err, ErrInvalidTransactionType)

	bad := request(model.TransactionTypeDeposit, 5, 2, false)
	bad.Date = "next tuesday"
	_, err = f.service.PostTransaction(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidDate)

	assert.NoError(t, f.dbMock.ExpectationsWereMet(), "no database work for invalid requests")
}
