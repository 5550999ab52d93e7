package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheService wraps Redis with JSON serialization. A nil client disables
// caching; every method then reports a miss or succeeds as a no-op, so the
// server runs fine without Redis.
type CacheService struct {
	client *redis.Client
}

// ErrCacheMiss is returned by Get when the key is absent or caching is
// disabled.
var ErrCacheMiss = fmt.Errorf("cache miss")

func NewCacheService(client *redis.Client) *CacheService {
	return &CacheService{
		client: client,
	}
}

// Enabled reports whether a Redis backend is configured.
func (s *CacheService) Enabled() bool {
	return s.client != nil
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if s.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := s.client.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	if s.client == nil {
		return ErrCacheMiss
	}

	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get cache: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

// Cache key generators
// SimulationCacheKey holds a raw simulation result, DisplayCacheKey the
// dashboard payload built from one. They carry different shapes, so they must
// never share a key.
func SimulationCacheKey(nSims int) string {
	return fmt.Sprintf("simulation:%d", nSims)
}

func DisplayCacheKey(nSims int) string {
	return fmt.Sprintf("display:%d", nSims)
}

func ScoreboardCacheKey() string {
	return "scoreboard:live"
}
