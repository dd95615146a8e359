// Package comparison holds the pure cost, tax refund and margin formulas
// behind purchase price comparisons. Nothing here touches storage.
package comparison

import (
	"github.com/shopspring/decimal"
	"github.com/tradeerp/backend/internal/domain/shared"
)

// Rounding precision per call site. Comparison sheets have always shown
// margins to 3 places while reports show 4.
const (
	MoneyPlaces        int32 = 2
	MarginPlacesSheet  int32 = 3
	MarginPlacesReport int32 = 4
)

func notComputable(msg string) error {
	return shared.ErrNotComputable.WithMessage(msg)
}

// RoundMoney rounds an amount for display
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// USDCost converts a VAT inclusive CNY purchase price into a USD cost net of
// the export rebate: purchase * (vat - etr) / vat / rate. The result is not rounded.
func USDCost(purchase, vat, etr, rate decimal.Decimal) (decimal.Decimal, error) {
	if vat.IsZero() {
		return decimal.Zero, notComputable("VAT is zero")
	}
	if rate.IsZero() {
		return decimal.Zero, notComputable("exchange rate is zero")
	}
	return purchase.Mul(vat.Sub(etr)).Div(vat).Div(rate), nil
}

// TaxRefund is the export rebate earned on a purchase: purchase * etr / vat.
// The result is not rounded.
func TaxRefund(purchase, vat, etr decimal.Decimal) (decimal.Decimal, error) {
	if vat.IsZero() {
		return decimal.Zero, notComputable("VAT is zero")
	}
	return purchase.Mul(etr).Div(vat), nil
}

// CNYAdjustedCost strips VAT from a CNY purchase price without any currency conversion
func CNYAdjustedCost(purchase, vat decimal.Decimal) (decimal.Decimal, error) {
	if vat.IsZero() {
		return decimal.Zero, notComputable("VAT is zero")
	}
	return purchase.Div(vat), nil
}

// GrossProfitMargin returns (sell - cost) / sell rounded to places.
// Selling at or below cost yields exactly zero, never a negative margin.
func GrossProfitMargin(sell, cost decimal.Decimal, places int32) (decimal.Decimal, error) {
	if sell.LessThanOrEqual(cost) {
		return decimal.Zero, nil
	}
	if sell.IsZero() {
		return decimal.Zero, notComputable("sell price is zero")
	}
	return sell.Sub(cost).Div(sell).Round(places), nil
}

// OverallMargin relates total profit to the purchase cost net of refunds.
// It is undefined when refunds cover the whole purchase total.
func OverallMargin(profit, purchaseTotal, refundTotal decimal.Decimal, places int32) (decimal.Decimal, error) {
	denominator := purchaseTotal.Sub(refundTotal)
	if !denominator.IsPositive() {
		return decimal.Zero, notComputable("purchase total does not exceed tax refund total")
	}
	return profit.Div(denominator).Round(places), nil
}
