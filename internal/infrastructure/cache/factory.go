package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/tradeerp/backend/internal/domain/catalog"
	"github.com/tradeerp/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// TaxInfoStore is a tax info cache that holds resources
type TaxInfoStore interface {
	GetTaxInfo(ctx context.Context, serialNumber string) (*catalog.TaxInfo, error)
	SetTaxInfo(ctx context.Context, info catalog.TaxInfo) error
	Close() error
}

// TaxInfoCacheFactory creates tax info caches based on configuration
type TaxInfoCacheFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// TaxInfoCacheFactoryOption is a functional option for configuring the factory
type TaxInfoCacheFactoryOption func(*TaxInfoCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) TaxInfoCacheFactoryOption {
	return func(f *TaxInfoCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to a
// process local cache. Defaults to true.
func WithInMemoryFallback(allow bool) TaxInfoCacheFactoryOption {
	return func(f *TaxInfoCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewTaxInfoCacheFactory creates a new factory
func NewTaxInfoCacheFactory(cfg config.RedisConfig, ttl time.Duration, opts ...TaxInfoCacheFactoryOption) *TaxInfoCacheFactory {
	f := &TaxInfoCacheFactory{
		redisConfig:           cfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns a Redis cache, or an in-memory one when Redis is unreachable
// and fallback is allowed
func (f *TaxInfoCacheFactory) Create() (TaxInfoStore, error) {
	store, err := NewRedisTaxInfoCache(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, f.ttl)
	if err == nil {
		f.logger.Info("Using Redis tax info cache", zap.Duration("ttl", f.ttl))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for tax info cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory tax info cache", zap.Error(err))
	return NewInMemoryTaxInfoCache(f.ttl), nil
}
