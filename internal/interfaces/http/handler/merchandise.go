package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/tradeerp/backend/internal/application/catalog"
	"github.com/tradeerp/backend/internal/domain/catalog"
)

// MerchandiseReader reads the merchandise catalog
type MerchandiseReader interface {
	GetBySerialNumber(ctx context.Context, serialNumber string) (*appcatalog.MerchandiseResponse, error)
	Search(ctx context.Context, keyword string, limit int) ([]appcatalog.MerchandiseResponse, error)
	LookupTaxInfo(ctx context.Context, serialNumber string) (*catalog.TaxInfo, error)
}

// MerchandiseHandler handles merchandise lookup endpoints
type MerchandiseHandler struct {
	BaseHandler
	merchandise MerchandiseReader
}

// NewMerchandiseHandler creates a new MerchandiseHandler
func NewMerchandiseHandler(merchandise MerchandiseReader) *MerchandiseHandler {
	return &MerchandiseHandler{merchandise: merchandise}
}

// Search autocompletes serial numbers
// GET /merchandise/search?keyword=&limit=
func (h *MerchandiseHandler) Search(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.BadRequest(c, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	results, err := h.merchandise.Search(c.Request.Context(), c.Query("keyword"), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// GetBySerialNumber returns one active merchandise record
// GET /merchandise/:serialNumber
func (h *MerchandiseHandler) GetBySerialNumber(c *gin.Context) {
	result, err := h.merchandise.GetBySerialNumber(c.Request.Context(), c.Param("serialNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// TaxInfo returns the VAT and ETR of a merchandise with defaults applied
// GET /merchandise/:serialNumber/tax-info
func (h *MerchandiseHandler) TaxInfo(c *gin.Context) {
	info, err := h.merchandise.LookupTaxInfo(c.Request.Context(), c.Param("serialNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}
