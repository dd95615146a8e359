package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradeerp/backend/internal/domain/catalog"
	"github.com/tradeerp/backend/internal/domain/shared"
	"github.com/tradeerp/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

func seedMerchandise(t *testing.T, db *gorm.DB, serial string, vat, etr string, removed bool) *catalog.Merchandise {
	t.Helper()
	m, err := catalog.NewMerchandise(serial)
	require.NoError(t, err)
	m.VAT = decimal.RequireFromString(vat)
	m.ETR = decimal.RequireFromString(etr)
	m.UnitEn = "pcs"
	m.Removed = removed
	require.NoError(t, db.Create(models.MerchandiseModelFromDomain(m)).Error)
	return m
}

func TestGormMerchandiseRepository_FindActiveBySerialNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormMerchandiseRepository(db)
	ctx := context.Background()

	seeded := seedMerchandise(t, db, "A1", "1.09", "0.09", false)
	seedMerchandise(t, db, "OLD", "1.13", "0.13", true)

	t.Run("found", func(t *testing.T) {
		m, err := repo.FindActiveBySerialNumber(ctx, "A1")
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, m.ID)
		assert.True(t, m.VAT.Equal(decimal.RequireFromString("1.09")))
		assert.True(t, m.ETR.Equal(decimal.RequireFromString("0.09")))
		assert.Equal(t, "pcs", m.UnitEn)
	})

	t.Run("removed is not found", func(t *testing.T) {
		_, err := repo.FindActiveBySerialNumber(ctx, "OLD")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("serial numbers match exactly", func(t *testing.T) {
		_, err := repo.FindActiveBySerialNumber(ctx, "a1")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormMerchandiseRepository_FindActiveBySerialNumbers(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormMerchandiseRepository(db)
	ctx := context.Background()

	seedMerchandise(t, db, "B2", "1.13", "0.13", false)
	seedMerchandise(t, db, "A1", "1.13", "0.13", false)
	seedMerchandise(t, db, "C3", "1.13", "0.13", true)

	found, err := repo.FindActiveBySerialNumbers(ctx, []string{"A1", "B2", "C3", "Z9"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "A1", found[0].SerialNumber)
	assert.Equal(t, "B2", found[1].SerialNumber)

	empty, err := repo.FindActiveBySerialNumbers(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGormMerchandiseRepository_Search(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormMerchandiseRepository(db)
	ctx := context.Background()

	for _, serial := range []string{"AB-3", "AB-1", "AB-2", "ABX", "XAB"} {
		seedMerchandise(t, db, serial, "1.13", "0.13", false)
	}
	seedMerchandise(t, db, "AB-0", "1.13", "0.13", true)

	t.Run("prefix match ordered by serial number", func(t *testing.T) {
		found, err := repo.Search(ctx, "AB-", 0)
		require.NoError(t, err)
		require.Len(t, found, 3)
		assert.Equal(t, "AB-1", found[0].SerialNumber)
		assert.Equal(t, "AB-3", found[2].SerialNumber)
	})

	t.Run("limit", func(t *testing.T) {
		found, err := repo.Search(ctx, "AB", 2)
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("wildcards in keyword are literal", func(t *testing.T) {
		found, err := repo.Search(ctx, "A_", 0)
		require.NoError(t, err)
		assert.Empty(t, found)

		found, err = repo.Search(ctx, "%B", 0)
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}
