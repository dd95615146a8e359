package trade

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tradeerp/backend/internal/domain/shared"
)

// LineItem is one priced line of an invoice or purchase order.
// ItemName holds the merchandise serial number.
type LineItem struct {
	ItemName    string
	Description string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Total       decimal.Decimal
}

// NewLineItem creates a line with Total = Quantity * Price
func NewLineItem(itemName string, quantity, price decimal.Decimal) (LineItem, error) {
	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return LineItem{}, shared.ErrInvalidInput.WithMessage("item name cannot be empty")
	}
	if quantity.IsNegative() {
		return LineItem{}, shared.ErrInvalidInput.WithMessage("quantity cannot be negative")
	}
	if price.IsNegative() {
		return LineItem{}, shared.ErrInvalidInput.WithMessage("price cannot be negative")
	}
	return LineItem{
		ItemName: itemName,
		Quantity: quantity,
		Price:    price,
		Total:    quantity.Mul(price),
	}, nil
}

// findLine returns the first line selling or buying itemName
func findLine(items []LineItem, itemName string) (LineItem, bool) {
	for _, item := range items {
		if item.ItemName == itemName {
			return item, true
		}
	}
	return LineItem{}, false
}

// sumLines totals line amounts
func sumLines(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Total)
	}
	return total
}
