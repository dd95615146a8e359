package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tradeerp/backend/internal/application/comparison"
	"github.com/tradeerp/backend/internal/interfaces/http/dto"
)

func setupPriceSearchRouter() (*gin.Engine, *mockPriceSearcher) {
	searcher := new(mockPriceSearcher)
	h := NewPriceSearchHandler(searcher)
	r := newTestRouter()
	r.POST("/price-search/history", h.History)
	return r, searcher
}

func TestPriceSearchHandler_History(t *testing.T) {
	clientID := uuid.New()

	t.Run("returns one entry per item", func(t *testing.T) {
		r, searcher := setupPriceSearchRouter()
		searcher.On("Search", mock.Anything, mock.MatchedBy(func(req comparison.PriceSearchRequest) bool {
			return req.ClientID == clientID &&
				assert.ObjectsAreEqual([]string{"A1", "ZZ"}, req.ItemNames) &&
				req.StartDate != nil && req.StartDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) &&
				req.EndDate == nil &&
				req.ExchangeRate != nil && req.ExchangeRate.Equal(decimal.RequireFromString("7.1")) &&
				req.Lang == "en"
		})).Return(&comparison.PriceSearchResult{
			Items: map[string]comparison.PriceSearchEntry{
				"A1": {Found: true, LatestPrice: decimal.NewNullDecimal(decimal.NewFromInt(20))},
				"ZZ": {Found: false},
			},
			Logs:         []string{"No merchandise record for item ZZ"},
			ExchangeRate: decimal.RequireFromString("7.1"),
		}, nil)

		body := `{"clientId":"` + clientID.String() + `","itemNames":["A1","ZZ"],"startDate":"2024-01-01","exchangeRate":"7.1","lang":"en"}`
		w := perform(r, http.MethodPost, "/price-search/history", body)

		require.Equal(t, http.StatusOK, w.Code)
		result := decodeResponse(t, w).Result.(map[string]any)
		items := result["items"].(map[string]any)
		assert.Equal(t, true, items["A1"].(map[string]any)["found"])
		assert.Equal(t, false, items["ZZ"].(map[string]any)["found"])
		assert.Nil(t, items["ZZ"].(map[string]any)["latestPrice"])
		searcher.AssertExpectations(t)
	})

	t.Run("empty client id or item names is 400", func(t *testing.T) {
		r, searcher := setupPriceSearchRouter()

		for _, body := range []string{
			`{"itemNames":["A1"]}`,
			`{"clientId":"","itemNames":["A1"]}`,
			`{"clientId":"` + clientID.String() + `","itemNames":[]}`,
			`{"clientId":"` + clientID.String() + `"}`,
		} {
			w := perform(r, http.MethodPost, "/price-search/history", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
			assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)
		}
		searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("malformed date is 400", func(t *testing.T) {
		r, searcher := setupPriceSearchRouter()

		body := `{"clientId":"` + clientID.String() + `","itemNames":["A1"],"endDate":"yesterday"}`
		w := perform(r, http.MethodPost, "/price-search/history", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeResponse(t, w).Message, "endDate")
		searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("storage failure is 500", func(t *testing.T) {
		r, searcher := setupPriceSearchRouter()
		searcher.On("Search", mock.Anything, mock.Anything).Return(nil, errors.New("failed to query latest sales: timeout"))

		body := `{"clientId":"` + clientID.String() + `","itemNames":["A1"]}`
		w := perform(r, http.MethodPost, "/price-search/history", body)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, dto.ErrCodeInternal, decodeResponse(t, w).Error.Code)
	})
}
