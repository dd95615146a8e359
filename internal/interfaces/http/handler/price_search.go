package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tradeerp/backend/internal/application/comparison"
)

// PriceSearcher looks up the latest sale of several items to one client
type PriceSearcher interface {
	Search(ctx context.Context, req comparison.PriceSearchRequest) (*comparison.PriceSearchResult, error)
}

// PriceSearchHandler handles the batch price history search
type PriceSearchHandler struct {
	BaseHandler
	searcher PriceSearcher
}

// NewPriceSearchHandler creates a new PriceSearchHandler
func NewPriceSearchHandler(searcher PriceSearcher) *PriceSearchHandler {
	return &PriceSearchHandler{searcher: searcher}
}

// History returns the latest sale, purchase cost and margin of each item
// POST /price-search/history
func (h *PriceSearchHandler) History(c *gin.Context) {
	var req PriceSearchRequest
	if !h.BindJSON(c, &req) {
		return
	}
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	end, err := parseDate("endDate", req.EndDate)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.searcher.Search(c.Request.Context(), comparison.PriceSearchRequest{
		ClientID:     uuid.MustParse(req.ClientID),
		ItemNames:    req.ItemNames,
		StartDate:    start,
		EndDate:      end,
		ExchangeRate: req.ExchangeRate,
		UseCNY:       req.UseCNY,
		Lang:         requestLang(c, req.Lang),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
