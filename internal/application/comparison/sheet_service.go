package comparison

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tradeerp/backend/internal/domain/catalog"
	"github.com/tradeerp/backend/internal/domain/comparison"
	"github.com/tradeerp/backend/internal/domain/shared"
	"github.com/tradeerp/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

var hundred = decimal.NewFromInt(100)

// SheetService calculates a comparison sheet while it is being drafted
type SheetService struct {
	rates  RateDefaults
	logger *zap.Logger
}

// NewSheetService creates a new SheetService
func NewSheetService(logger *zap.Logger) *SheetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SheetService{
		rates:  DefaultRateDefaults(),
		logger: logger.Named("comparison.sheet"),
	}
}

// SetRateDefaults sets the rates used when a request leaves them out
func (s *SheetService) SetRateDefaults(rates RateDefaults) {
	s.rates = rates
}

// Calculate computes line totals, sheet totals and the gross profit of every
// line with both a positive price and a positive purchase price. Gross profit is
// rounded to 3 places and never negative.
func (s *SheetService) Calculate(ctx context.Context, req SheetRequest) (*SheetResult, error) {
	_, span := telemetry.StartServiceSpan(ctx, "comparison", "CalculateSheet")
	defer span.End()

	if len(req.Items) == 0 {
		return nil, shared.ErrInvalidInput.WithMessage("items cannot be empty")
	}
	if req.TaxRate.IsNegative() {
		return nil, shared.ErrInvalidInput.WithMessage("tax rate cannot be negative")
	}
	rate, err := rateOrDefault("exchange rate", req.ExchangeRate, s.rates.SheetExchangeRate)
	if err != nil {
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrItemCount, len(req.Items))

	mode := comparison.Mode{ExchangeRate: rate}
	result := &SheetResult{
		Items:        make([]SheetItem, 0, len(req.Items)),
		SubTotal:     decimal.Zero,
		TaxRate:      req.TaxRate,
		ExchangeRate: rate,
	}
	for i, in := range req.Items {
		if strings.TrimSpace(in.ItemName) == "" {
			return nil, shared.ErrInvalidInput.WithMessage("item name cannot be empty")
		}
		if in.Quantity.IsNegative() || in.Price.IsNegative() {
			return nil, shared.ErrInvalidInput.WithMessage("quantity and price cannot be negative")
		}

		item := SheetItem{
			ItemName:    strings.TrimSpace(in.ItemName),
			Description: in.Description,
			Quantity:    in.Quantity,
			Price:       in.Price,
			Total:       in.Quantity.Mul(in.Price),
			VAT:         optionalRate(in.VAT, catalog.DefaultVAT),
			ETR:         optionalRate(in.ETR, catalog.DefaultETR),
		}
		result.SubTotal = result.SubTotal.Add(item.Total)

		if in.PurchasePrice != nil {
			item.PurchasePrice = nullable(*in.PurchasePrice)
		}
		if in.PurchasePrice != nil && in.PurchasePrice.IsPositive() && in.Price.IsPositive() {
			price := in.Price
			profit, err := comparison.EvaluateItem(&price, in.PurchasePrice, item.VAT, item.ETR, mode, comparison.MarginPlacesSheet)
			if err != nil {
				return nil, err
			}
			item.USDCost = profit.USDCost
			item.GrossProfit = profit.Margin
			item.Note = profit.Note
		}

		s.logger.Debug("Sheet line calculated", zap.Int("line", i), zap.String("item_name", item.ItemName))
		result.Items = append(result.Items, item)
	}

	result.TaxTotal = result.SubTotal.Mul(req.TaxRate).Div(hundred)
	result.Total = result.SubTotal.Add(result.TaxTotal)
	return result, nil
}

func optionalRate(v *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if v == nil || v.IsZero() {
		return def
	}
	return *v
}
