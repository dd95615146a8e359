package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tradeerp/backend/internal/application/comparison"
)

// PurchasePriceResolver finds the historical purchase price of an item
type PurchasePriceResolver interface {
	Resolve(ctx context.Context, req comparison.PurchasePriceRequest) (*comparison.PurchasePriceResult, error)
}

// InvoiceComparer compares an invoice against its linked purchase orders
type InvoiceComparer interface {
	Compare(ctx context.Context, req comparison.FullComparisonRequest) (*comparison.FullComparisonReport, error)
}

// SheetCalculator calculates a comparison sheet being drafted
type SheetCalculator interface {
	Calculate(ctx context.Context, req comparison.SheetRequest) (*comparison.SheetResult, error)
}

// ComparisonHandler handles purchase/sale comparison endpoints
type ComparisonHandler struct {
	BaseHandler
	resolver PurchasePriceResolver
	comparer InvoiceComparer
	sheets   SheetCalculator
}

// NewComparisonHandler creates a new ComparisonHandler
func NewComparisonHandler(resolver PurchasePriceResolver, comparer InvoiceComparer, sheets SheetCalculator) *ComparisonHandler {
	return &ComparisonHandler{
		resolver: resolver,
		comparer: comparer,
		sheets:   sheets,
	}
}

// PurchasePrice resolves the purchase price of an item for a client
// GET /comparison/purchase-price
func (h *ComparisonHandler) PurchasePrice(c *gin.Context) {
	var q PurchasePriceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "itemName and a valid clientId are required")
		return
	}
	vat, err := parseOptionalDecimal("VAT", q.VAT)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	etr, err := parseOptionalDecimal("ETR", q.ETR)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.resolver.Resolve(c.Request.Context(), comparison.PurchasePriceRequest{
		ItemName: q.ItemName,
		ClientID: uuid.MustParse(q.ClientID),
		VAT:      vat,
		ETR:      etr,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Full compares an invoice against its linked purchase orders
// POST /comparison/full
func (h *ComparisonHandler) Full(c *gin.Context) {
	var req FullComparisonRequest
	if !h.BindJSON(c, &req) {
		return
	}

	report, err := h.comparer.Compare(c.Request.Context(), comparison.FullComparisonRequest{
		InvoiceID:      uuid.MustParse(req.InvoiceID),
		ExchangeRate:   req.ExchangeRate,
		ConversionRate: req.ConversionRate,
		UseCNY:         req.UseCNY,
		Lang:           requestLang(c, req.Lang),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Calculate totals a comparison sheet and its per line gross profit
// POST /comparison/calculate
func (h *ComparisonHandler) Calculate(c *gin.Context) {
	var req SheetRequest
	if !h.BindJSON(c, &req) {
		return
	}

	items := make([]comparison.SheetItemRequest, len(req.Items))
	for i, item := range req.Items {
		items[i] = comparison.SheetItemRequest{
			ItemName:      item.ItemName,
			Description:   item.Description,
			Quantity:      item.Quantity,
			Price:         item.Price,
			PurchasePrice: item.PurchasePrice,
			VAT:           item.VAT,
			ETR:           item.ETR,
		}
	}

	result, err := h.sheets.Calculate(c.Request.Context(), comparison.SheetRequest{
		Items:        items,
		TaxRate:      req.TaxRate,
		ExchangeRate: req.ExchangeRate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
