package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tradeerp/backend/internal/domain/catalog"
)

const defaultKeyPrefix = "trade:taxinfo:"

// RedisTaxInfoCache stores merchandise tax info in Redis as JSON.
// Suitable when several instances should share one cache.
type RedisTaxInfoCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisTaxInfoCache connects to Redis and verifies the connection
func NewRedisTaxInfoCache(cfg RedisConfig, ttl time.Duration) (*RedisTaxInfoCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisTaxInfoCacheWithClient(client, "", ttl), nil
}

// NewRedisTaxInfoCacheWithClient creates a cache on an existing Redis client
func NewRedisTaxInfoCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisTaxInfoCache {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisTaxInfoCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// GetTaxInfo returns the cached tax info, or nil on a miss
func (c *RedisTaxInfoCache) GetTaxInfo(ctx context.Context, serialNumber string) (*catalog.TaxInfo, error) {
	raw, err := c.client.Get(ctx, c.keyPrefix+serialNumber).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read tax info: %w", err)
	}

	var info catalog.TaxInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("failed to decode tax info for %s: %w", serialNumber, err)
	}
	return &info, nil
}

// SetTaxInfo caches info for the configured TTL
func (c *RedisTaxInfoCache) SetTaxInfo(ctx context.Context, info catalog.TaxInfo) error {
	raw, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to encode tax info: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+info.SerialNumber, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write tax info: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisTaxInfoCache) Close() error {
	return c.client.Close()
}

// Ensure RedisTaxInfoCache implements TaxInfoStore
var _ TaxInfoStore = (*RedisTaxInfoCache)(nil)
