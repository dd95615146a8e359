package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	appcatalog "github.com/tradeerp/backend/internal/application/catalog"
	"github.com/tradeerp/backend/internal/application/comparison"
	"github.com/tradeerp/backend/internal/domain/catalog"
	"github.com/tradeerp/backend/internal/interfaces/http/dto"
	"github.com/tradeerp/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type mockResolver struct{ mock.Mock }

func (m *mockResolver) Resolve(ctx context.Context, req comparison.PurchasePriceRequest) (*comparison.PurchasePriceResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*comparison.PurchasePriceResult), args.Error(1)
}

type mockComparer struct{ mock.Mock }

func (m *mockComparer) Compare(ctx context.Context, req comparison.FullComparisonRequest) (*comparison.FullComparisonReport, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*comparison.FullComparisonReport), args.Error(1)
}

type mockSheetCalculator struct{ mock.Mock }

func (m *mockSheetCalculator) Calculate(ctx context.Context, req comparison.SheetRequest) (*comparison.SheetResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*comparison.SheetResult), args.Error(1)
}

type mockPriceSearcher struct{ mock.Mock }

func (m *mockPriceSearcher) Search(ctx context.Context, req comparison.PriceSearchRequest) (*comparison.PriceSearchResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*comparison.PriceSearchResult), args.Error(1)
}

type mockMerchandiseReader struct{ mock.Mock }

func (m *mockMerchandiseReader) GetBySerialNumber(ctx context.Context, serialNumber string) (*appcatalog.MerchandiseResponse, error) {
	args := m.Called(ctx, serialNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appcatalog.MerchandiseResponse), args.Error(1)
}

func (m *mockMerchandiseReader) Search(ctx context.Context, keyword string, limit int) ([]appcatalog.MerchandiseResponse, error) {
	args := m.Called(ctx, keyword, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]appcatalog.MerchandiseResponse), args.Error(1)
}

func (m *mockMerchandiseReader) LookupTaxInfo(ctx context.Context, serialNumber string) (*catalog.TaxInfo, error) {
	args := m.Called(ctx, serialNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.TaxInfo), args.Error(1)
}

func newTestRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	return r
}

func perform(r http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
