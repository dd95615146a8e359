package comparison

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeerp/backend/internal/domain/catalog"
	"github.com/tradeerp/backend/internal/domain/comparison"
	"github.com/tradeerp/backend/internal/domain/shared"
	"github.com/tradeerp/backend/internal/domain/shared/valueobject"
	"github.com/tradeerp/backend/internal/domain/trade"
	"github.com/tradeerp/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/message"
)

// FullComparisonService compares every line of an invoice with the purchase
// orders linked to it
type FullComparisonService struct {
	taxInfos TaxInfoLookup
	invoices trade.InvoiceRepository
	orders   trade.PurchaseOrderRepository
	rates    RateDefaults
	metrics  Metrics
	logger   *zap.Logger
}

// NewFullComparisonService creates a new FullComparisonService
func NewFullComparisonService(
	taxInfos TaxInfoLookup,
	invoices trade.InvoiceRepository,
	orders trade.PurchaseOrderRepository,
	logger *zap.Logger,
) *FullComparisonService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FullComparisonService{
		taxInfos: taxInfos,
		invoices: invoices,
		orders:   orders,
		rates:    DefaultRateDefaults(),
		metrics:  noopMetrics{},
		logger:   logger.Named("comparison.full"),
	}
}

// SetRateDefaults sets the rates used when a request leaves them out
func (s *FullComparisonService) SetRateDefaults(rates RateDefaults) {
	s.rates = rates
}

// SetMetrics sets the metrics recorder
func (s *FullComparisonService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// Compare builds the comparison report of an invoice
func (s *FullComparisonService) Compare(ctx context.Context, req FullComparisonRequest) (*FullComparisonReport, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "comparison", "CompareInvoice")
	defer span.End()

	if req.InvoiceID == uuid.Nil {
		return nil, shared.ErrInvalidInput.WithMessage("invoice ID is required")
	}
	exchangeRate, err := rateOrDefault("exchange rate", req.ExchangeRate, s.rates.FullExchangeRate)
	if err != nil {
		return nil, err
	}
	conversionRate, err := rateOrDefault("conversion rate", req.ConversionRate, s.rates.ConversionRate)
	if err != nil {
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrInvoiceID, req.InvoiceID.String(), telemetry.SpanAttrUseCNY, req.UseCNY)

	invoice, err := s.invoices.FindByID(ctx, req.InvoiceID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvoiceNotFound
		}
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	if invoice.IsRemoved() {
		return nil, shared.ErrInvoiceNotFound
	}

	orders, infos, err := s.loadInputs(ctx, invoice)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	b := &reportBuilder{
		printer:  printerFor(req.Lang),
		mode:     comparison.Mode{UseCNY: req.UseCNY, ExchangeRate: exchangeRate},
		evaluate: comparison.EvaluateItem,
		items:    make([]ComparisonItem, 0, len(invoice.Items)),
		logs:     []string{},
		index:    map[uuid.UUID]int{},
	}
	for _, line := range invoice.Items {
		if err := b.addLine(invoice, line, orders, infos); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	report := &FullComparisonReport{
		Invoice: InvoiceSummary{
			ID:       invoice.ID,
			Number:   invoice.Number,
			Date:     invoice.Date,
			Total:    invoice.Total,
			Currency: string(invoice.Currency),
		},
		Items:          b.items,
		PurchaseOrders: b.summaries(),
		Summary:        b.summary(invoice, req.UseCNY, conversionRate),
		UseCNY:         req.UseCNY,
		ExchangeRate:   exchangeRate,
		ConversionRate: conversionRate,
		Logs:           b.logs,
	}
	if report.Summary.ProfitMarginUndefined {
		s.metrics.RecordUndefinedMargin(ctx)
		report.Logs = append(report.Logs, b.printer.Sprintf(msgOverallNotSound, report.Summary.ProfitMarginReason))
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrItemCount, len(report.Items))
	return report, nil
}

// loadInputs reads the linked purchase orders and the catalog entries of the
// invoice lines concurrently
func (s *FullComparisonService) loadInputs(ctx context.Context, invoice *trade.Invoice) ([]trade.PurchaseOrder, map[string]catalog.TaxInfo, error) {
	names := make([]string, 0, len(invoice.Items))
	for _, line := range invoice.Items {
		names = append(names, line.ItemName)
	}
	names = uniqueNames(names)

	var (
		orders []trade.PurchaseOrder
		infos  map[string]catalog.TaxInfo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if len(invoice.RelatedPurchaseOrderIDs) == 0 {
			return nil
		}
		var err error
		orders, err = s.orders.FindActiveByIDs(gctx, invoice.RelatedPurchaseOrderIDs)
		if err != nil {
			return fmt.Errorf("failed to load purchase orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if len(names) == 0 {
			infos = map[string]catalog.TaxInfo{}
			return nil
		}
		var err error
		infos, _, err = loadTaxInfos(gctx, s.taxInfos, names, CatalogPolicyTolerant)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return orders, infos, nil
}

type orderTotals struct {
	summary PurchaseOrderSummary
	refund  decimal.Decimal
}

// reportBuilder accumulates report lines in invoice order. Refunds are kept
// unrounded until the summary is built.
type reportBuilder struct {
	printer  *message.Printer
	mode     comparison.Mode
	evaluate itemEvaluator
	items    []ComparisonItem
	logs     []string
	orders   []*orderTotals
	index    map[uuid.UUID]int
}

type itemEvaluator func(sell, purchase *decimal.Decimal, vat, etr decimal.Decimal, mode comparison.Mode, places int32) (comparison.ItemProfit, error)

func (b *reportBuilder) addLine(invoice *trade.Invoice, line trade.LineItem, orders []trade.PurchaseOrder, infos map[string]catalog.TaxInfo) error {
	item := ComparisonItem{
		ItemName:  line.ItemName,
		Quantity:  line.Quantity,
		SellPrice: line.Price,
		Currency:  string(invoice.Currency),
	}

	order, orderLine, found := trade.FirstContaining(orders, line.ItemName)
	info, known := infos[line.ItemName]
	if !found || !known {
		b.logs = append(b.logs, b.printer.Sprintf(msgNoPurchaseInfo, line.ItemName))
		b.items = append(b.items, item)
		return nil
	}

	purchase := orderLine.Price
	item.PurchasePrice = nullable(purchase)
	item.PurchaseOrderNumber = stringPtr(order.Number)

	refund, err := comparison.TaxRefund(purchase, info.VAT, info.ETR)
	if err != nil {
		if !errors.Is(err, shared.ErrNotComputable) {
			return err
		}
		item.MarginNote = err.Error()
		b.logs = append(b.logs, b.printer.Sprintf(msgNotComputable, line.ItemName, err.Error()))
		b.items = append(b.items, item)
		return nil
	}
	item.TaxRefund = nullable(comparison.RoundMoney(refund))

	sell := line.Price
	profit, err := b.evaluate(&sell, &purchase, info.VAT, info.ETR, b.mode, comparison.MarginPlacesReport)
	if err != nil {
		return fmt.Errorf("failed to evaluate %s: %w", line.ItemName, err)
	}
	item.USDCost = profit.USDCost
	item.AdjustedCost = profit.AdjustedCost
	item.ProfitMargin = profit.Margin
	item.MarginNote = profit.Note
	if profit.Note != "" {
		b.logs = append(b.logs, b.printer.Sprintf(msgNotComputable, line.ItemName, profit.Note))
	}

	totals := b.totalsFor(order)
	totals.summary.TotalAmount = totals.summary.TotalAmount.Add(purchase)
	totals.refund = totals.refund.Add(refund)
	totals.summary.Items = append(totals.summary.Items, PurchaseOrderItem{
		ItemName:  line.ItemName,
		Price:     purchase,
		TaxRefund: comparison.RoundMoney(refund),
	})
	b.items = append(b.items, item)
	return nil
}

func (b *reportBuilder) totalsFor(order *trade.PurchaseOrder) *orderTotals {
	if i, ok := b.index[order.ID]; ok {
		return b.orders[i]
	}
	t := &orderTotals{summary: PurchaseOrderSummary{
		ID:          order.ID,
		Number:      order.Number,
		TotalAmount: decimal.Zero,
		Items:       []PurchaseOrderItem{},
	}}
	b.index[order.ID] = len(b.orders)
	b.orders = append(b.orders, t)
	return t
}

func (b *reportBuilder) summaries() []PurchaseOrderSummary {
	out := make([]PurchaseOrderSummary, len(b.orders))
	for i, t := range b.orders {
		s := t.summary
		s.TotalAmount = comparison.RoundMoney(s.TotalAmount)
		s.TotalTaxRefund = comparison.RoundMoney(t.refund)
		out[i] = s
	}
	return out
}

func (b *reportBuilder) summary(invoice *trade.Invoice, useCNY bool, conversionRate decimal.Decimal) ComparisonSummary {
	purchases := make([]valueobject.Money, len(b.orders))
	refunds := make([]valueobject.Money, len(b.orders))
	for i, t := range b.orders {
		purchases[i] = valueobject.NewMoneyCNY(t.summary.TotalAmount)
		refunds[i] = valueobject.NewMoneyCNY(t.refund)
	}
	// same currency throughout, Sum cannot fail
	purchaseMoney, _ := valueobject.Sum(valueobject.CNY, purchases...)
	refundMoney, _ := valueobject.Sum(valueobject.CNY, refunds...)
	purchaseTotal := purchaseMoney.Amount()
	refundTotal := refundMoney.Amount()

	out := ComparisonSummary{
		InvoiceTotal:    invoice.Total,
		InvoiceCurrency: string(invoice.Currency),
		PurchaseTotal:   comparison.RoundMoney(purchaseTotal),
		TaxRefundTotal:  comparison.RoundMoney(refundTotal),
	}

	invoiceTotalCNY := invoice.Total
	if !useCNY {
		// ParseCurrency never yields an empty code, NewMoney cannot fail
		invoiceMoney, _ := valueobject.NewMoney(invoice.Total, valueobject.ParseCurrency(string(invoice.Currency)))
		converted, err := invoiceMoney.Convert(conversionRate, valueobject.CNY)
		if err != nil {
			out.ProfitMarginUndefined = true
			out.ProfitMarginReason = shared.ErrNotComputable.WithMessage("conversion rate is zero").Error()
			return out
		}
		invoiceTotalCNY = converted.Amount()
	}
	profit := invoiceTotalCNY.Add(refundTotal).Sub(purchaseTotal)
	out.InvoiceTotalCNY = comparison.RoundMoney(invoiceTotalCNY)
	out.Profit = comparison.RoundMoney(profit)

	margin, err := comparison.OverallMargin(profit, purchaseTotal, refundTotal, comparison.MarginPlacesReport)
	if err != nil {
		out.ProfitMarginUndefined = true
		out.ProfitMarginReason = err.Error()
		return out
	}
	out.ProfitMargin = nullable(margin)
	return out
}
