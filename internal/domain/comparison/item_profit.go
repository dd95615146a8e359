package comparison

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/tradeerp/backend/internal/domain/shared"
)

// Mode selects the currency the sell price is compared in
type Mode struct {
	UseCNY       bool
	ExchangeRate decimal.Decimal
}

// ItemProfit is the cost and margin of one sold item. Unset values are null
// in reports; Note explains a margin that could not be computed.
type ItemProfit struct {
	USDCost      decimal.NullDecimal
	AdjustedCost decimal.NullDecimal
	Margin       decimal.NullDecimal
	Note         string
}

// EvaluateItem prices one item for a report.
//
// In USD mode the purchase price is converted to a USD cost and compared with
// the sell price. In CNY mode the VAT stripped purchase price is compared with
// the sell price as is, whatever currency the sale was in. A nil purchase
// price leaves everything but the USD cost unset, a nil sell price leaves the
// margin unset.
func EvaluateItem(sell, purchase *decimal.Decimal, vat, etr decimal.Decimal, mode Mode, places int32) (ItemProfit, error) {
	var out ItemProfit
	if purchase == nil {
		return out, nil
	}

	var cost decimal.Decimal
	var err error
	if mode.UseCNY {
		cost, err = CNYAdjustedCost(*purchase, vat)
		if err == nil {
			out.AdjustedCost = decimal.NewNullDecimal(RoundMoney(cost))
		}
	} else {
		cost, err = USDCost(*purchase, vat, etr, mode.ExchangeRate)
		if err == nil {
			out.USDCost = decimal.NewNullDecimal(RoundMoney(cost))
		}
	}
	if err != nil {
		return noteOrFail(out, err)
	}

	if sell == nil {
		return out, nil
	}
	margin, err := GrossProfitMargin(*sell, cost, places)
	if err != nil {
		return noteOrFail(out, err)
	}
	out.Margin = decimal.NewNullDecimal(margin)
	return out, nil
}

func noteOrFail(out ItemProfit, err error) (ItemProfit, error) {
	if errors.Is(err, shared.ErrNotComputable) {
		out.Note = err.Error()
		return out, nil
	}
	return out, err
}
