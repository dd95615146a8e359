package comparison

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeerp/backend/internal/domain/catalog"
	"github.com/tradeerp/backend/internal/domain/partner"
	"github.com/tradeerp/backend/internal/domain/shared"
	"github.com/tradeerp/backend/internal/domain/trade"
	"github.com/tradeerp/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// PurchasePriceResolver finds the price an item was last bought at for a client.
//
// The client's own sales history is searched first, then the history of the
// other clients in the same country. Within a history, invoices are walked
// newest first and each invoice's related purchase orders in stored order; the
// first active purchase order buying the item answers. Purchase orders past
// the answer are never read.
type PurchasePriceResolver struct {
	taxInfos TaxInfoLookup
	clients  partner.ClientRepository
	invoices trade.InvoiceRepository
	orders   trade.PurchaseOrderRepository
	metrics  Metrics
	logger   *zap.Logger
}

// NewPurchasePriceResolver creates a new PurchasePriceResolver
func NewPurchasePriceResolver(
	taxInfos TaxInfoLookup,
	clients partner.ClientRepository,
	invoices trade.InvoiceRepository,
	orders trade.PurchaseOrderRepository,
	logger *zap.Logger,
) *PurchasePriceResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchasePriceResolver{
		taxInfos: taxInfos,
		clients:  clients,
		invoices: invoices,
		orders:   orders,
		metrics:  noopMetrics{},
		logger:   logger.Named("comparison.resolver"),
	}
}

// SetMetrics sets the metrics recorder
func (r *PurchasePriceResolver) SetMetrics(m Metrics) {
	if m != nil {
		r.metrics = m
	}
}

type priceHit struct {
	candidate trade.PurchaseCandidate
	order     *trade.PurchaseOrder
	price     decimal.Decimal
}

// Resolve returns the historical purchase price of req.ItemName.
// Finding no history is not an error: the result then has a nil price and source.
func (r *PurchasePriceResolver) Resolve(ctx context.Context, req PurchasePriceRequest) (*PurchasePriceResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "comparison", "ResolvePurchasePrice")
	defer span.End()

	itemName := strings.TrimSpace(req.ItemName)
	if itemName == "" || req.ClientID == uuid.Nil {
		return nil, shared.ErrInvalidInput.WithMessage("item name and client ID are required")
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrItemName, itemName, telemetry.SpanAttrClientID, req.ClientID.String())

	info, err := r.taxInfo(ctx, itemName, req)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	result := &PurchasePriceResult{VAT: info.VAT, ETR: info.ETR}

	source := SourceClientHistory
	hit, err := r.scan(ctx, []uuid.UUID{req.ClientID}, itemName)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if hit == nil {
		source = SourceRegionHistory
		hit, err = r.scanRegion(ctx, req.ClientID, itemName)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	if hit == nil {
		r.metrics.RecordResolution(ctx, "")
		r.logger.Debug("No purchase history found",
			zap.String("item_name", itemName),
			zap.String("client_id", req.ClientID.String()))
		return result, nil
	}

	price := hit.price
	result.PurchasePrice = &price
	result.Source = &source
	result.InvoiceNumber = hit.candidate.InvoiceNumber
	result.PurchaseOrderNumber = hit.order.Number
	telemetry.SetAttributes(span, telemetry.SpanAttrSource, string(source))
	r.metrics.RecordResolution(ctx, string(source))
	return result, nil
}

func (r *PurchasePriceResolver) taxInfo(ctx context.Context, itemName string, req PurchasePriceRequest) (catalog.TaxInfo, error) {
	if req.VAT != nil && req.ETR != nil {
		return catalog.OverrideTaxInfo(itemName, *req.VAT, *req.ETR), nil
	}
	infos, _, err := loadTaxInfos(ctx, r.taxInfos, []string{itemName}, CatalogPolicyRequired)
	if err != nil {
		return catalog.TaxInfo{}, err
	}
	return infos[itemName], nil
}

// scanRegion searches the history of the other clients sharing the client's country
func (r *PurchasePriceResolver) scanRegion(ctx context.Context, clientID uuid.UUID, itemName string) (*priceHit, error) {
	client, err := r.clients.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrMissingClientRegion.WithMessage("client not found, cannot search its region")
		}
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	region, ok := client.Region()
	if !ok {
		return nil, shared.ErrMissingClientRegion
	}

	peers, err := r.clients.FindActiveIDsByCountry(ctx, region, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to find clients in region: %w", err)
	}
	if len(peers) == 0 {
		return nil, nil
	}
	return r.scan(ctx, peers, itemName)
}

// scan walks the sales history of clientIDs and stops at the first purchase
// order buying itemName
func (r *PurchasePriceResolver) scan(ctx context.Context, clientIDs []uuid.UUID, itemName string) (*priceHit, error) {
	invoices, err := r.invoices.FindActiveByClientsWithItem(ctx, clientIDs, itemName)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoices: %w", err)
	}

	for _, candidate := range trade.PurchaseCandidates(invoices) {
		order, err := r.orders.FindActiveWithItem(ctx, candidate.PurchaseOrderID, itemName)
		if errors.Is(err, shared.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load purchase order: %w", err)
		}
		line, ok := order.FindItem(itemName)
		if !ok {
			continue
		}
		return &priceHit{candidate: candidate, order: order, price: line.Price}, nil
	}
	return nil, nil
}
