package comparison

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tradeerp/backend/internal/domain/catalog"
	"github.com/tradeerp/backend/internal/domain/shared"
)

// TaxInfoLookup resolves merchandise tax attributes by serial number.
// Unknown serial numbers are absent from the returned map.
type TaxInfoLookup interface {
	LookupTaxInfos(ctx context.Context, serialNumbers []string) (map[string]catalog.TaxInfo, error)
}

// Metrics records pricing outcomes
type Metrics interface {
	RecordResolution(ctx context.Context, source string)
	RecordSearch(ctx context.Context, outcomes map[string]int)
	RecordUndefinedMargin(ctx context.Context)
}

type noopMetrics struct{}

func (noopMetrics) RecordResolution(context.Context, string)     {}
func (noopMetrics) RecordSearch(context.Context, map[string]int) {}
func (noopMetrics) RecordUndefinedMargin(context.Context)        {}

// CatalogPolicy decides what a missing catalog entry does to an operation
type CatalogPolicy int

const (
	// CatalogPolicyRequired fails the operation with ErrMerchandiseNotFound
	CatalogPolicyRequired CatalogPolicy = iota
	// CatalogPolicyTolerant reports missing entries and carries on
	CatalogPolicyTolerant
)

// loadTaxInfos looks up serialNumbers and returns the ones missing from the
// catalog in input order.
func loadTaxInfos(ctx context.Context, lookup TaxInfoLookup, serialNumbers []string, policy CatalogPolicy) (map[string]catalog.TaxInfo, []string, error) {
	infos, err := lookup.LookupTaxInfos(ctx, serialNumbers)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up merchandise: %w", err)
	}
	var missing []string
	for _, sn := range serialNumbers {
		if _, ok := infos[sn]; !ok {
			missing = append(missing, sn)
		}
	}
	if len(missing) > 0 && policy == CatalogPolicyRequired {
		return nil, missing, shared.ErrMerchandiseNotFound.WithMessage(
			fmt.Sprintf("merchandise %s not found", missing[0]))
	}
	return infos, missing, nil
}

// RateDefaults are the exchange rates used when a request leaves them out
type RateDefaults struct {
	SearchExchangeRate decimal.Decimal
	FullExchangeRate   decimal.Decimal
	ConversionRate     decimal.Decimal
	SheetExchangeRate  decimal.Decimal
}

// DefaultRateDefaults returns the built-in rates
func DefaultRateDefaults() RateDefaults {
	return RateDefaults{
		SearchExchangeRate: decimal.NewFromInt(7),
		FullExchangeRate:   decimal.NewFromInt(7),
		ConversionRate:     decimal.NewFromInt(7),
		SheetExchangeRate:  decimal.RequireFromString("6.5"),
	}
}

// rateOrDefault returns def when rate is absent. An explicit zero is kept so
// the costs depending on it are reported as not computable. Negative rates are rejected.
func rateOrDefault(name string, rate *decimal.Decimal, def decimal.Decimal) (decimal.Decimal, error) {
	if rate == nil {
		return def, nil
	}
	if rate.IsNegative() {
		return decimal.Zero, shared.ErrInvalidInput.WithMessage(name + " cannot be negative")
	}
	return *rate, nil
}

// uniqueNames trims names and drops blanks and repeats, keeping first occurrences in order
func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func nullable(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(d)
}

func stringPtr(s string) *string {
	return &s
}
