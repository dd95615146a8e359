package cache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradeerp/backend/internal/domain/catalog"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisTaxInfoCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewRedisTaxInfoCacheWithClient(client, "", ttl)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func sampleTaxInfo() catalog.TaxInfo {
	return catalog.TaxInfo{
		SerialNumber: "A1",
		VAT:          decimal.RequireFromString("1.09"),
		ETR:          decimal.RequireFromString("0.09"),
		UnitEn:       "pcs",
		UnitCn:       "个",
	}
}

func TestRedisTaxInfoCache_RoundTrip(t *testing.T) {
	c, mr := newTestRedisCache(t, time.Minute)
	ctx := context.Background()

	miss, err := c.GetTaxInfo(ctx, "A1")
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, c.SetTaxInfo(ctx, sampleTaxInfo()))
	assert.True(t, mr.Exists("trade:taxinfo:A1"))
	assert.Equal(t, time.Minute, mr.TTL("trade:taxinfo:A1"))

	got, err := c.GetTaxInfo(ctx, "A1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.VAT.Equal(decimal.RequireFromString("1.09")))
	assert.True(t, got.ETR.Equal(decimal.RequireFromString("0.09")))
	assert.Equal(t, "个", got.UnitCn)

	mr.FastForward(2 * time.Minute)
	expired, err := c.GetTaxInfo(ctx, "A1")
	require.NoError(t, err)
	assert.Nil(t, expired)
}

func TestRedisTaxInfoCache_Errors(t *testing.T) {
	t.Run("corrupt payload", func(t *testing.T) {
		c, mr := newTestRedisCache(t, time.Minute)
		require.NoError(t, mr.Set("trade:taxinfo:A1", "{not json"))

		_, err := c.GetTaxInfo(context.Background(), "A1")
		assert.ErrorContains(t, err, "failed to decode tax info")
	})

	t.Run("server down", func(t *testing.T) {
		c, mr := newTestRedisCache(t, time.Minute)
		mr.Close()

		_, err := c.GetTaxInfo(context.Background(), "A1")
		assert.ErrorContains(t, err, "failed to read tax info")
		assert.Error(t, c.SetTaxInfo(context.Background(), sampleTaxInfo()))
	})
}

func TestNewRedisTaxInfoCache(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	c, err := NewRedisTaxInfoCache(RedisConfig{Host: mr.Host(), Port: port}, time.Minute)
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, defaultKeyPrefix, c.keyPrefix)
}
