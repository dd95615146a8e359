package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeerp/backend/internal/domain/shared"
	"github.com/tradeerp/backend/internal/domain/shared/valueobject"
)

// Invoice is a proforma invoice issued to a client. The purchase orders that
// sourced it are kept in RelatedPurchaseOrderIDs in the order they were linked.
type Invoice struct {
	shared.BaseEntity
	Number                  string
	ClientID                uuid.UUID
	Date                    time.Time
	Currency                valueobject.Currency
	Items                   []LineItem
	RelatedPurchaseOrderIDs []uuid.UUID
	SubTotal                decimal.Decimal
	// TaxRate is a percentage, 13 means 13%
	TaxRate  decimal.Decimal
	TaxTotal decimal.Decimal
	Total    decimal.Decimal
}

// NewInvoice creates an invoice and computes its totals
func NewInvoice(number string, clientID uuid.UUID, date time.Time, currency valueobject.Currency, items []LineItem, taxRate decimal.Decimal) (*Invoice, error) {
	if number == "" {
		return nil, shared.ErrInvalidInput.WithMessage("invoice number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.ErrInvalidInput.WithMessage("invoice client is required")
	}
	if len(items) == 0 {
		return nil, shared.ErrInvalidInput.WithMessage("invoice must have at least one item")
	}
	inv := &Invoice{
		BaseEntity: shared.NewBaseEntity(),
		Number:     number,
		ClientID:   clientID,
		Date:       date,
		Currency:   currency,
		Items:      items,
		TaxRate:    taxRate,
	}
	inv.Recalculate()
	return inv, nil
}

// Recalculate refreshes SubTotal, TaxTotal and Total from the lines
func (i *Invoice) Recalculate() {
	i.SubTotal = sumLines(i.Items)
	i.TaxTotal = i.SubTotal.Mul(i.TaxRate).Div(decimal.NewFromInt(100))
	i.Total = i.SubTotal.Add(i.TaxTotal)
}

// LinkPurchaseOrder appends a related purchase order, ignoring duplicates
func (i *Invoice) LinkPurchaseOrder(id uuid.UUID) {
	for _, existing := range i.RelatedPurchaseOrderIDs {
		if existing == id {
			return
		}
	}
	i.RelatedPurchaseOrderIDs = append(i.RelatedPurchaseOrderIDs, id)
}

// FindItem returns the first line selling itemName
func (i *Invoice) FindItem(itemName string) (LineItem, bool) {
	return findLine(i.Items, itemName)
}
