package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/tradeerp/backend/internal/domain/catalog"
	"github.com/tradeerp/backend/internal/domain/shared"
	"github.com/tradeerp/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GormMerchandiseRepository implements catalog.MerchandiseRepository using GORM
type GormMerchandiseRepository struct {
	db *gorm.DB
}

// NewGormMerchandiseRepository creates a new GormMerchandiseRepository
func NewGormMerchandiseRepository(db *gorm.DB) *GormMerchandiseRepository {
	return &GormMerchandiseRepository{db: db}
}

// FindActiveBySerialNumber finds an active merchandise by exact serial number
func (r *GormMerchandiseRepository) FindActiveBySerialNumber(ctx context.Context, serialNumber string) (*catalog.Merchandise, error) {
	var model models.MerchandiseModel
	if err := r.db.WithContext(ctx).
		Where("serial_number = ? AND removed = ?", serialNumber, false).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveBySerialNumbers finds the active merchandise matching serialNumbers
func (r *GormMerchandiseRepository) FindActiveBySerialNumbers(ctx context.Context, serialNumbers []string) ([]catalog.Merchandise, error) {
	if len(serialNumbers) == 0 {
		return []catalog.Merchandise{}, nil
	}
	var rows []models.MerchandiseModel
	if err := r.db.WithContext(ctx).
		Where("serial_number IN ? AND removed = ?", serialNumbers, false).
		Order("serial_number ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toMerchandises(rows), nil
}

// Search finds active merchandise whose serial number starts with keyword
func (r *GormMerchandiseRepository) Search(ctx context.Context, keyword string, limit int) ([]catalog.Merchandise, error) {
	var rows []models.MerchandiseModel
	query := r.db.WithContext(ctx).
		Where("removed = ?", false).
		Where(`serial_number LIKE ? ESCAPE '\'`, likeEscaper.Replace(keyword)+"%").
		Order("serial_number ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toMerchandises(rows), nil
}

func toMerchandises(rows []models.MerchandiseModel) []catalog.Merchandise {
	out := make([]catalog.Merchandise, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// Ensure GormMerchandiseRepository implements MerchandiseRepository
var _ catalog.MerchandiseRepository = (*GormMerchandiseRepository)(nil)
