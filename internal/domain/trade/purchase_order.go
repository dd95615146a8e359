package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeerp/backend/internal/domain/shared"
	"github.com/tradeerp/backend/internal/domain/shared/valueobject"
)

// PurchaseOrder is a purchase contract placed with a factory. Line prices are
// the purchase cost in CNY including VAT.
type PurchaseOrder struct {
	shared.BaseEntity
	Number    string
	FactoryID uuid.UUID
	Date      time.Time
	Currency  valueobject.Currency
	Items     []LineItem
	Total     decimal.Decimal
}

// NewPurchaseOrder creates a purchase order and computes its total
func NewPurchaseOrder(number string, factoryID uuid.UUID, date time.Time, items []LineItem) (*PurchaseOrder, error) {
	if number == "" {
		return nil, shared.ErrInvalidInput.WithMessage("purchase order number cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.ErrInvalidInput.WithMessage("purchase order must have at least one item")
	}
	return &PurchaseOrder{
		BaseEntity: shared.NewBaseEntity(),
		Number:     number,
		FactoryID:  factoryID,
		Date:       date,
		Currency:   valueobject.CNY,
		Items:      items,
		Total:      sumLines(items),
	}, nil
}

// FindItem returns the first line buying itemName
func (po *PurchaseOrder) FindItem(itemName string) (LineItem, bool) {
	return findLine(po.Items, itemName)
}

// FirstContaining returns the first order in orders, in order, that buys itemName
func FirstContaining(orders []PurchaseOrder, itemName string) (*PurchaseOrder, LineItem, bool) {
	for i := range orders {
		if line, ok := orders[i].FindItem(itemName); ok {
			return &orders[i], line, true
		}
	}
	return nil, LineItem{}, false
}
