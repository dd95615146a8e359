package comparison

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeerp/backend/internal/domain/catalog"
	"github.com/tradeerp/backend/internal/domain/comparison"
	"github.com/tradeerp/backend/internal/domain/shared"
	"github.com/tradeerp/backend/internal/domain/trade"
	"github.com/tradeerp/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PriceSearchService looks up the latest sale of a batch of items to a client
// together with the purchase price behind it
type PriceSearchService struct {
	taxInfos TaxInfoLookup
	invoices trade.InvoiceRepository
	rates    RateDefaults
	metrics  Metrics
	logger   *zap.Logger
}

// NewPriceSearchService creates a new PriceSearchService
func NewPriceSearchService(taxInfos TaxInfoLookup, invoices trade.InvoiceRepository, logger *zap.Logger) *PriceSearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PriceSearchService{
		taxInfos: taxInfos,
		invoices: invoices,
		rates:    DefaultRateDefaults(),
		metrics:  noopMetrics{},
		logger:   logger.Named("comparison.search"),
	}
}

// SetRateDefaults sets the rates used when a request leaves them out
func (s *PriceSearchService) SetRateDefaults(rates RateDefaults) {
	s.rates = rates
}

// SetMetrics sets the metrics recorder
func (s *PriceSearchService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// Search returns an entry for every requested item. Items missing from the
// catalog or never sold to the client are reported as not found and logged;
// they do not fail the batch.
func (s *PriceSearchService) Search(ctx context.Context, req PriceSearchRequest) (*PriceSearchResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "comparison", "SearchPriceHistory")
	defer span.End()

	names := uniqueNames(req.ItemNames)
	if req.ClientID == uuid.Nil || len(names) == 0 {
		return nil, shared.ErrInvalidInput.WithMessage("client ID and item names are required")
	}
	if req.StartDate != nil && req.EndDate != nil && req.StartDate.After(*req.EndDate) {
		return nil, shared.ErrInvalidInput.WithMessage("start date is after end date")
	}
	rate, err := rateOrDefault("exchange rate", req.ExchangeRate, s.rates.SearchExchangeRate)
	if err != nil {
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrClientID, req.ClientID.String(),
		telemetry.SpanAttrItemCount, len(names),
		telemetry.SpanAttrUseCNY, req.UseCNY,
	)

	var (
		infos   map[string]catalog.TaxInfo
		unknown []string
		sales   []trade.LatestSale
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		infos, unknown, err = loadTaxInfos(gctx, s.taxInfos, names, CatalogPolicyTolerant)
		return err
	})
	g.Go(func() error {
		var err error
		sales, err = s.invoices.FindLatestSales(gctx, trade.LatestSalesQuery{
			ClientID:  req.ClientID,
			ItemNames: names,
			From:      req.StartDate,
			To:        req.EndDate,
		})
		if err != nil {
			return fmt.Errorf("failed to find latest sales: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	p := printerFor(req.Lang)
	mode := comparison.Mode{UseCNY: req.UseCNY, ExchangeRate: rate}
	entries := make(map[string]PriceSearchEntry, len(names))
	for _, name := range names {
		entries[name] = PriceSearchEntry{}
	}
	logs := make([]string, 0, len(names))
	outcomes := map[string]int{}

	for _, name := range unknown {
		logs = append(logs, p.Sprintf(msgUnknownItem, name))
		outcomes[outcomeUnknownItem]++
	}

	for _, sale := range sales {
		info, known := infos[sale.ItemName]
		if _, requested := entries[sale.ItemName]; !requested || !known {
			continue
		}
		entry, err := searchEntry(sale, info, mode)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		entries[sale.ItemName] = entry
		outcomes[outcomeFound]++

		if sale.HasPurchaseOrder() {
			logs = append(logs, p.Sprintf(msgFoundWithOrder, sale.ItemName, sale.InvoiceNumber, sale.PurchaseOrderNumber))
		} else {
			logs = append(logs, p.Sprintf(msgFoundInvoice, sale.ItemName, sale.InvoiceNumber))
		}
	}

	for _, name := range names {
		if _, known := infos[name]; known && !entries[name].Found {
			logs = append(logs, p.Sprintf(msgNoSalesRecord, name))
			outcomes[outcomeNoRecord]++
		}
	}

	s.metrics.RecordSearch(ctx, outcomes)
	s.logger.Debug("Price history searched",
		zap.String("client_id", req.ClientID.String()),
		zap.Int("items", len(names)),
		zap.Int("found", outcomes[outcomeFound]))

	return &PriceSearchResult{
		Items:        entries,
		Logs:         logs,
		UseCNY:       req.UseCNY,
		ExchangeRate: rate,
	}, nil
}

func searchEntry(sale trade.LatestSale, info catalog.TaxInfo, mode comparison.Mode) (PriceSearchEntry, error) {
	date := sale.InvoiceDate
	entry := PriceSearchEntry{
		Found:         true,
		LatestPrice:   nullable(sale.SellPrice),
		InvoiceNumber: stringPtr(sale.InvoiceNumber),
		InvoiceDate:   &date,
		Currency:      stringPtr(sale.Currency),
		PurchasePrice: sale.PurchasePrice,
	}
	if sale.HasPurchaseOrder() {
		entry.PurchaseOrderNumber = stringPtr(sale.PurchaseOrderNumber)
	}

	var purchase *decimal.Decimal
	if sale.PurchasePrice.Valid {
		price := sale.PurchasePrice.Decimal
		purchase = &price
	}
	sell := sale.SellPrice
	profit, err := comparison.EvaluateItem(&sell, purchase, info.VAT, info.ETR, mode, comparison.MarginPlacesReport)
	if err != nil {
		return PriceSearchEntry{}, err
	}
	entry.USDCost = profit.USDCost
	entry.AdjustedCost = profit.AdjustedCost
	entry.ProfitMargin = profit.Margin
	entry.MarginNote = profit.Note
	return entry, nil
}
