package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tradeerp/backend/internal/domain/catalog"
	"github.com/tradeerp/backend/internal/domain/shared"
)

// MockMerchandiseRepository is a mock implementation of MerchandiseRepository
type MockMerchandiseRepository struct {
	mock.Mock
}

func (m *MockMerchandiseRepository) FindActiveBySerialNumber(ctx context.Context, serialNumber string) (*catalog.Merchandise, error) {
	args := m.Called(ctx, serialNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Merchandise), args.Error(1)
}

func (m *MockMerchandiseRepository) FindActiveBySerialNumbers(ctx context.Context, serialNumbers []string) ([]catalog.Merchandise, error) {
	args := m.Called(ctx, serialNumbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Merchandise), args.Error(1)
}

func (m *MockMerchandiseRepository) Search(ctx context.Context, keyword string, limit int) ([]catalog.Merchandise, error) {
	args := m.Called(ctx, keyword, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Merchandise), args.Error(1)
}

var _ catalog.MerchandiseRepository = (*MockMerchandiseRepository)(nil)

// MockTaxInfoCache is a mock implementation of TaxInfoCache
type MockTaxInfoCache struct {
	mock.Mock
}

func (m *MockTaxInfoCache) GetTaxInfo(ctx context.Context, serialNumber string) (*catalog.TaxInfo, error) {
	args := m.Called(ctx, serialNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.TaxInfo), args.Error(1)
}

func (m *MockTaxInfoCache) SetTaxInfo(ctx context.Context, info catalog.TaxInfo) error {
	return m.Called(ctx, info).Error(0)
}

func merch(serial, vat, etr string) *catalog.Merchandise {
	m, _ := catalog.NewMerchandise(serial)
	if vat != "" {
		m.VAT = decimal.RequireFromString(vat)
	}
	if etr != "" {
		m.ETR = decimal.RequireFromString(etr)
	}
	m.UnitEn = "PCS"
	m.UnitCn = "个"
	return m
}

func TestMerchandiseService_LookupTaxInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored rates", func(t *testing.T) {
		repo := new(MockMerchandiseRepository)
		repo.On("FindActiveBySerialNumber", ctx, "HX-1").Return(merch("HX-1", "1.09", "0.09"), nil)
		svc := NewMerchandiseService(repo, nil)

		info, err := svc.LookupTaxInfo(ctx, "HX-1")
		require.NoError(t, err)
		assert.Equal(t, "1.09", info.VAT.String())
		assert.Equal(t, "0.09", info.ETR.String())
		assert.Equal(t, "PCS", info.UnitEn)
		repo.AssertExpectations(t)
	})

	t.Run("missing record is merchandise not found", func(t *testing.T) {
		repo := new(MockMerchandiseRepository)
		repo.On("FindActiveBySerialNumber", ctx, "NOPE").Return(nil, shared.ErrNotFound)
		svc := NewMerchandiseService(repo, nil)

		_, err := svc.LookupTaxInfo(ctx, "NOPE")
		assert.True(t, errors.Is(err, shared.ErrMerchandiseNotFound))
	})

	t.Run("storage errors propagate", func(t *testing.T) {
		repo := new(MockMerchandiseRepository)
		boom := errors.New("connection reset")
		repo.On("FindActiveBySerialNumber", ctx, "HX-1").Return(nil, boom)
		svc := NewMerchandiseService(repo, nil)

		_, err := svc.LookupTaxInfo(ctx, "HX-1")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("blank serial number is rejected before any lookup", func(t *testing.T) {
		repo := new(MockMerchandiseRepository)
		svc := NewMerchandiseService(repo, nil)

		_, err := svc.LookupTaxInfo(ctx, "  ")
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		repo.AssertNotCalled(t, "FindActiveBySerialNumber", mock.Anything, mock.Anything)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		repo := new(MockMerchandiseRepository)
		cache := new(MockTaxInfoCache)
		cached := merch("HX-1", "", "").TaxInfo()
		cache.On("GetTaxInfo", ctx, "HX-1").Return(&cached, nil)
		svc := NewMerchandiseService(repo, nil)
		svc.SetCache(cache)

		info, err := svc.LookupTaxInfo(ctx, "HX-1")
		require.NoError(t, err)
		assert.True(t, info.VAT.Equal(catalog.DefaultVAT))
		repo.AssertNotCalled(t, "FindActiveBySerialNumber", mock.Anything, mock.Anything)
	})

	t.Run("cache miss reads through and stores", func(t *testing.T) {
		repo := new(MockMerchandiseRepository)
		cache := new(MockTaxInfoCache)
		repo.On("FindActiveBySerialNumber", ctx, "HX-1").Return(merch("HX-1", "", ""), nil)
		cache.On("GetTaxInfo", ctx, "HX-1").Return(nil, nil)
		cache.On("SetTaxInfo", ctx, mock.AnythingOfType("catalog.TaxInfo")).Return(nil)
		svc := NewMerchandiseService(repo, nil)
		svc.SetCache(cache)

		_, err := svc.LookupTaxInfo(ctx, "HX-1")
		require.NoError(t, err)
		cache.AssertExpectations(t)
	})
}

func TestMerchandiseService_LookupTaxInfos(t *testing.T) {
	ctx := context.Background()
	repo := new(MockMerchandiseRepository)
	repo.On("FindActiveBySerialNumbers", ctx, []string{"A", "B"}).
		Return([]catalog.Merchandise{*merch("A", "1.13", "0.13")}, nil)
	svc := NewMerchandiseService(repo, nil)

	infos, err := svc.LookupTaxInfos(ctx, []string{"A", "B", "A"})
	require.NoError(t, err)
	assert.Len(t, infos, 1)
	assert.Contains(t, infos, "A")
	assert.NotContains(t, infos, "B")
}

func TestMerchandiseService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("clamps the limit", func(t *testing.T) {
		repo := new(MockMerchandiseRepository)
		repo.On("Search", ctx, "HX", maxSearchLimit).Return([]catalog.Merchandise{*merch("HX-1", "", "")}, nil)
		svc := NewMerchandiseService(repo, nil)

		out, err := svc.Search(ctx, " HX ", 1000)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "HX-1", out[0].SerialNumber)
	})

	t.Run("empty keyword returns nothing", func(t *testing.T) {
		repo := new(MockMerchandiseRepository)
		svc := NewMerchandiseService(repo, nil)

		out, err := svc.Search(ctx, "", 0)
		require.NoError(t, err)
		assert.Empty(t, out)
		repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestMerchandiseService_GetBySerialNumber(t *testing.T) {
	ctx := context.Background()
	repo := new(MockMerchandiseRepository)
	repo.On("FindActiveBySerialNumber", ctx, "HX-1").Return(merch("HX-1", "0", "0"), nil)
	repo.On("FindActiveBySerialNumber", ctx, "NOPE").Return(nil, shared.ErrNotFound)
	svc := NewMerchandiseService(repo, nil)

	resp, err := svc.GetBySerialNumber(ctx, "HX-1")
	require.NoError(t, err)
	assert.True(t, resp.VAT.Equal(catalog.DefaultVAT))

	_, err = svc.GetBySerialNumber(ctx, "NOPE")
	assert.True(t, errors.Is(err, shared.ErrMerchandiseNotFound))
}
