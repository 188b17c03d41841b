package service

import (
	"context"
	"errors"
	"fmt"
	"go-budget-api/logger"
	"go-budget-api/model"
	"go-budget-api/repository"
	"time"

	"github.com/sirupsen/logrus"
)

// RecurringDepositDescription is the description given to scheduled deposits.
const RecurringDepositDescription = "Recurring deposit"

type depositPoster interface {
	Deposit(ctx context.Context, req model.PostTransactionRequest) (*model.Transaction, error)
}

// RecurringService posts the automatic deposits configured on accounts.
type RecurringService struct {
	accountRepo     repository.IAccountRepository
	transactionRepo repository.ITransactionRepository
	poster          depositPoster
	takeFromSavings bool
}

func NewRecurringService(accountRepo repository.IAccountRepository, transactionRepo repository.ITransactionRepository,
	poster depositPoster, takeFromSavings bool) *RecurringService {
	return &RecurringService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		poster:          poster,
		takeFromSavings: takeFromSavings,
	}
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsDepositDue reports whether a deposit with the given frequency, counted
// from start, falls on day. Monthly deposits fall on the start's day of month,
// or the last day for shorter months.
func IsDepositDue(frequency model.Frequency, start, day time.Time) bool {
	start = truncateDay(start)
	day = truncateDay(day)
	if day.Before(start) {
		return false
	}

	days := int(day.Sub(start).Hours() / 24)
	switch frequency {
	case model.FrequencyWeekly:
		return days%7 == 0
	case model.FrequencyBiweekly:
		return days%14 == 0
	case model.FrequencyMonthly:
		lastDay := time.Date(day.Year(), day.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
		target := start.Day()
		if target > lastDay {
			target = lastDay
		}
		return day.Day() == target
	default:
		return false
	}
}

// RunDueDeposits posts every recurring deposit due on now's date that has not
// been posted yet. Failures on one account do not stop the others.
func (s *RecurringService) RunDueDeposits(ctx context.Context, now time.Time) (int, error) {
	accounts, err := s.accountRepo.GetRecurringAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not load recurring accounts: %w", err)
	}

	day := truncateDay(now)
	posted := 0
	var errs []error
	for _, account := range accounts {
		if !account.HasRecurringDeposit() || !IsDepositDue(*account.InsertFrequency, *account.InsertStartDate, day) {
			continue
		}

		log := logger.Log.WithFields(logrus.Fields{
			"account_id": account.ID,
			"frequency":  *account.InsertFrequency,
			"amount":     account.InsertAmount.Decimal.String(),
		})

		exists, err := s.transactionRepo.HasRecurringDepositBetween(ctx, account.ID, day, day.AddDate(0, 0, 1))
		if err != nil {
			errs = append(errs, fmt.Errorf("account %d: %w", account.ID, err))
			continue
		}
		if exists {
			log.Debug("Recurring deposit already posted today")
			continue
		}

		_, err = s.poster.Deposit(ctx, model.PostTransactionRequest{
			Amount:          account.InsertAmount.Decimal,
			Description:     RecurringDepositDescription,
			Date:            day.Format(time.RFC3339),
			AccountID:       model.AccountRef(account.ID),
			TakeFromSavings: s.takeFromSavings,
			Recurring:       true,
		})
		if err != nil {
			log.WithError(err).Error("Failed to post recurring deposit")
			errs = append(errs, fmt.Errorf("account %d: %w", account.ID, err))
			continue
		}
		log.Info("Recurring deposit posted")
		posted++
	}

	return posted, errors.Join(errs...)
}
