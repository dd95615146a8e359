package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tradeerp/backend/internal/domain/shared"
	"github.com/tradeerp/backend/internal/domain/trade"
	"github.com/tradeerp/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPurchaseOrderRepository implements trade.PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindActiveWithItem finds an active purchase order by ID that buys itemName
func (r *GormPurchaseOrderRepository) FindActiveWithItem(ctx context.Context, id uuid.UUID, itemName string) (*trade.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items", orderByPosition).
		Where("id = ? AND removed = ?", id, false).
		Where("EXISTS (SELECT 1 FROM purchase_order_items poi WHERE poi.purchase_order_id = purchase_orders.id AND poi.item_name = ?)", itemName).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByIDs finds active purchase orders with their lines, in the order of ids.
// Removed or unknown IDs are skipped.
func (r *GormPurchaseOrderRepository) FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]trade.PurchaseOrder, error) {
	if len(ids) == 0 {
		return []trade.PurchaseOrder{}, nil
	}
	var rows []models.PurchaseOrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items", orderByPosition).
		Where("id IN ? AND removed = ?", ids, false).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*models.PurchaseOrderModel, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}
	out := make([]trade.PurchaseOrder, 0, len(rows))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		row, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, *row.ToDomain())
	}
	return out, nil
}

// Ensure GormPurchaseOrderRepository implements PurchaseOrderRepository
var _ trade.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
