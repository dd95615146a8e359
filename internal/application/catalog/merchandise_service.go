package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/tradeerp/backend/internal/domain/catalog"
	"github.com/tradeerp/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// TaxInfoCache is an optional read-through cache for merchandise tax info.
// GetTaxInfo returns nil without error on a miss.
type TaxInfoCache interface {
	GetTaxInfo(ctx context.Context, serialNumber string) (*catalog.TaxInfo, error)
	SetTaxInfo(ctx context.Context, info catalog.TaxInfo) error
}

// MerchandiseService resolves merchandise records and their tax attributes
type MerchandiseService struct {
	repo   catalog.MerchandiseRepository
	cache  TaxInfoCache
	logger *zap.Logger
}

// NewMerchandiseService creates a new MerchandiseService
func NewMerchandiseService(repo catalog.MerchandiseRepository, logger *zap.Logger) *MerchandiseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MerchandiseService{
		repo:   repo,
		logger: logger.Named("catalog.merchandise"),
	}
}

// SetCache enables the tax info cache
func (s *MerchandiseService) SetCache(cache TaxInfoCache) {
	s.cache = cache
}

// LookupTaxInfo returns the VAT, ETR and unit labels of an active merchandise.
// Returns shared.ErrMerchandiseNotFound when no active record matches exactly.
func (s *MerchandiseService) LookupTaxInfo(ctx context.Context, serialNumber string) (*catalog.TaxInfo, error) {
	if strings.TrimSpace(serialNumber) == "" {
		return nil, shared.ErrInvalidInput.WithMessage("serial number is required")
	}

	if s.cache != nil {
		cached, err := s.cache.GetTaxInfo(ctx, serialNumber)
		if err != nil {
			s.logger.Warn("Tax info cache read failed", zap.String("serial_number", serialNumber), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	m, err := s.repo.FindActiveBySerialNumber(ctx, serialNumber)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrMerchandiseNotFound.WithMessage("merchandise " + serialNumber + " not found")
		}
		return nil, err
	}

	info := m.TaxInfo()
	s.remember(ctx, info)
	return &info, nil
}

// LookupTaxInfos returns tax info keyed by serial number for every active
// merchandise among serialNumbers. Unknown serial numbers are left out.
func (s *MerchandiseService) LookupTaxInfos(ctx context.Context, serialNumbers []string) (map[string]catalog.TaxInfo, error) {
	out := make(map[string]catalog.TaxInfo, len(serialNumbers))
	var missing []string
	for _, sn := range serialNumbers {
		if _, seen := out[sn]; seen {
			continue
		}
		if s.cache != nil {
			cached, err := s.cache.GetTaxInfo(ctx, sn)
			if err == nil && cached != nil {
				out[sn] = *cached
				continue
			}
		}
		missing = append(missing, sn)
	}
	if len(missing) == 0 {
		return out, nil
	}

	records, err := s.repo.FindActiveBySerialNumbers(ctx, missing)
	if err != nil {
		return nil, err
	}
	for i := range records {
		info := records[i].TaxInfo()
		out[info.SerialNumber] = info
		s.remember(ctx, info)
	}
	return out, nil
}

// GetBySerialNumber returns an active merchandise record
func (s *MerchandiseService) GetBySerialNumber(ctx context.Context, serialNumber string) (*MerchandiseResponse, error) {
	m, err := s.repo.FindActiveBySerialNumber(ctx, serialNumber)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrMerchandiseNotFound.WithMessage("merchandise " + serialNumber + " not found")
		}
		return nil, err
	}
	resp := ToMerchandiseResponse(m)
	return &resp, nil
}

// Search returns active merchandise whose serial number starts with keyword,
// for autocomplete
func (s *MerchandiseService) Search(ctx context.Context, keyword string, limit int) ([]MerchandiseResponse, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []MerchandiseResponse{}, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	records, err := s.repo.Search(ctx, keyword, limit)
	if err != nil {
		return nil, err
	}
	out := make([]MerchandiseResponse, len(records))
	for i := range records {
		out[i] = ToMerchandiseResponse(&records[i])
	}
	return out, nil
}

func (s *MerchandiseService) remember(ctx context.Context, info catalog.TaxInfo) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetTaxInfo(ctx, info); err != nil {
		s.logger.Warn("Tax info cache write failed", zap.String("serial_number", info.SerialNumber), zap.Error(err))
	}
}
