// file: service/account_service.go

package service

import (
	"context"
	"go-budget-api/model"
	"go-budget-api/repository"
	"time"
)

type AccountService struct {
	repo  repository.IAccountRepository
	cache ICacheClient
	ttl   time.Duration
}

// NewAccountService creates an AccountService. cache may be nil.
func NewAccountService(repo repository.IAccountRepository, cache ICacheClient, ttl time.Duration) *AccountService {
	return &AccountService{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
	}
}

// ListAccounts returns every account ordered by id, using a cache-aside strategy.
func (s *AccountService) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	if accounts, ok := getCachedAccounts(ctx, s.cache); ok {
		return accounts, nil
	}

	accounts, err := s.repo.GetAllAccounts(ctx)
	if err != nil {
		return nil, err
	}

	setCachedAccounts(ctx, s.cache, accounts, s.ttl)
	return accounts, nil
}
