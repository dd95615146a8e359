package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTaxInfoCache(t *testing.T) {
	c := NewInMemoryTaxInfoCache(time.Minute)
	defer c.Close()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	miss, err := c.GetTaxInfo(ctx, "A1")
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, c.SetTaxInfo(ctx, sampleTaxInfo()))
	got, err := c.GetTaxInfo(ctx, "A1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "pcs", got.UnitEn)

	now = now.Add(time.Minute)
	expired, err := c.GetTaxInfo(ctx, "A1")
	require.NoError(t, err)
	assert.Nil(t, expired)

	assert.Equal(t, 1, c.Size())
	c.cleanup()
	assert.Equal(t, 0, c.Size())
}

func TestInMemoryTaxInfoCache_CloseTwice(t *testing.T) {
	c := NewInMemoryTaxInfoCache(time.Minute)
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}
