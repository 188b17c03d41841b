// file: service/cache.go

package service

import (
	"context"
	"encoding/json"
	"go-budget-api/logger"
	"go-budget-api/model"
	"time"

	"github.com/redis/go-redis/v9"
)

const accountsCacheKey = "accounts:all"

// ICacheClient defines the contract for a cache client.
// *redis.Client satisfies it; nil disables caching.
type ICacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

func getCachedAccounts(ctx context.Context, cache ICacheClient) ([]*model.Account, bool) {
	if cache == nil {
		return nil, false
	}
	cached, err := cache.Get(ctx, accountsCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Log.WithError(err).Warn("Failed to read accounts cache")
		}
		return nil, false
	}
	var accounts []*model.Account
	if err := json.Unmarshal([]byte(cached), &accounts); err != nil {
		logger.Log.WithError(err).Warn("Discarding undecodable accounts cache entry")
		return nil, false
	}
	return accounts, true
}

func setCachedAccounts(ctx context.Context, cache ICacheClient, accounts []*model.Account, ttl time.Duration) {
	if cache == nil {
		return
	}
	data, err := json.Marshal(accounts)
	if err != nil {
		return
	}
	if err := cache.Set(ctx, accountsCacheKey, data, ttl).Err(); err != nil {
		logger.Log.WithError(err).Warn("Failed to write accounts cache")
	}
}

// invalidateAccounts drops the cached account list after balances changed.
func invalidateAccounts(ctx context.Context, cache ICacheClient) {
	if cache == nil {
		return
	}
	if err := cache.Del(ctx, accountsCacheKey).Err(); err != nil {
		logger.Log.WithError(err).Warn("Failed to invalidate accounts cache")
	}
}
