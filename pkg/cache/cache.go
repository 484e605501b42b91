package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs. History summaries change on every tracked edit, so they
// stay short.
const (
	TTLHistorySummary = 1 * time.Minute
	TTLDefault        = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixHistory = "history:"
)

// Service is a thin cache layer over Redis. All operations degrade to
// no-ops when Redis is not configured, so callers never branch on
// availability.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	GetHistorySummary(ctx context.Context, entityType string, entityID string, dest interface{}) error
	SetHistorySummary(ctx context.Context, entityType string, entityID string, data interface{}) error
	InvalidateHistory(ctx context.Context, entityType string, entityID string) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service. A nil client is allowed and
// produces a cache that silently misses.
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return redis.Nil
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func historyKey(entityType, entityID string) string {
	return PrefixHistory + entityType + ":" + entityID
}

func (c *redisCache) GetHistorySummary(ctx context.Context, entityType, entityID string, dest interface{}) error {
	return c.Get(ctx, historyKey(entityType, entityID), dest)
}

func (c *redisCache) SetHistorySummary(ctx context.Context, entityType, entityID string, data interface{}) error {
	return c.Set(ctx, historyKey(entityType, entityID), data, TTLHistorySummary)
}

func (c *redisCache) InvalidateHistory(ctx context.Context, entityType, entityID string) error {
	return c.Delete(ctx, historyKey(entityType, entityID))
}
