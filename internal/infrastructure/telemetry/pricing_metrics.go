package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics set is created without a meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// Metric attribute keys
var (
	AttrPriceSource   = attribute.Key("price_source")
	AttrSearchOutcome = attribute.Key("outcome")
)

// PricingMetrics counts purchase price resolutions and report outcomes.
type PricingMetrics struct {
	resolutions      *Counter
	searchItems      *Counter
	searchBatchSize  *Histogram
	undefinedMargins *Counter
}

// NewPricingMetrics registers the pricing instruments on meter.
func NewPricingMetrics(meter metric.Meter) (*PricingMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	resolutions, err := NewCounter(meter, "pricing_purchase_price_resolutions_total",
		"Purchase price resolutions by the history that answered them", "{resolutions}")
	if err != nil {
		return nil, err
	}
	searchItems, err := NewCounter(meter, "pricing_search_items_total",
		"Items processed by price history searches by outcome", "{items}")
	if err != nil {
		return nil, err
	}
	batchSize, err := NewHistogram(meter, "pricing_search_batch_size",
		"Number of items per price history search", "{items}", ItemCountBuckets...)
	if err != nil {
		return nil, err
	}
	undefined, err := NewCounter(meter, "pricing_undefined_margins_total",
		"Full comparisons whose overall margin could not be computed", "{comparisons}")
	if err != nil {
		return nil, err
	}

	return &PricingMetrics{
		resolutions:      resolutions,
		searchItems:      searchItems,
		searchBatchSize:  batchSize,
		undefinedMargins: undefined,
	}, nil
}

// RecordResolution counts one resolution. source is empty when no history was found.
func (m *PricingMetrics) RecordResolution(ctx context.Context, source string) {
	if source == "" {
		source = "none"
	}
	m.resolutions.Inc(ctx, AttrPriceSource.String(source))
}

// RecordSearch counts the outcome of every item of one search.
func (m *PricingMetrics) RecordSearch(ctx context.Context, outcomes map[string]int) {
	total := 0
	for outcome, n := range outcomes {
		if n == 0 {
			continue
		}
		m.searchItems.Add(ctx, int64(n), AttrSearchOutcome.String(outcome))
		total += n
	}
	m.searchBatchSize.Record(ctx, float64(total))
}

// RecordUndefinedMargin counts a comparison with no overall margin.
func (m *PricingMetrics) RecordUndefinedMargin(ctx context.Context) {
	m.undefinedMargins.Inc(ctx)
}
