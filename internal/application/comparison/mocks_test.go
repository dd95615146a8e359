package comparison

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/tradeerp/backend/internal/domain/catalog"
	"github.com/tradeerp/backend/internal/domain/partner"
	"github.com/tradeerp/backend/internal/domain/shared"
	"github.com/tradeerp/backend/internal/domain/trade"
)

// MockTaxInfoLookup is a mock implementation of TaxInfoLookup
type MockTaxInfoLookup struct {
	mock.Mock
}

func (m *MockTaxInfoLookup) LookupTaxInfos(ctx context.Context, serialNumbers []string) (map[string]catalog.TaxInfo, error) {
	args := m.Called(ctx, serialNumbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]catalog.TaxInfo), args.Error(1)
}

// MockClientRepository is a mock implementation of partner.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindActiveIDsByCountry(ctx context.Context, country string, excludeID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, country, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockInvoiceRepository is a mock implementation of trade.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindActiveByClientsWithItem(ctx context.Context, clientIDs []uuid.UUID, itemName string) ([]trade.Invoice, error) {
	args := m.Called(ctx, clientIDs, itemName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindLatestSales(ctx context.Context, query trade.LatestSalesQuery) ([]trade.LatestSale, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.LatestSale), args.Error(1)
}

// MockPurchaseOrderRepository is a mock implementation of trade.PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindActiveWithItem(ctx context.Context, id uuid.UUID, itemName string) (*trade.PurchaseOrder, error) {
	args := m.Called(ctx, id, itemName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]trade.PurchaseOrder, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.PurchaseOrder), args.Error(1)
}

// MockMetrics is a mock implementation of Metrics
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordResolution(ctx context.Context, source string) {
	m.Called(ctx, source)
}

func (m *MockMetrics) RecordSearch(ctx context.Context, outcomes map[string]int) {
	m.Called(ctx, outcomes)
}

func (m *MockMetrics) RecordUndefinedMargin(ctx context.Context) {
	m.Called(ctx)
}

var (
	_ TaxInfoLookup                 = (*MockTaxInfoLookup)(nil)
	_ partner.ClientRepository      = (*MockClientRepository)(nil)
	_ trade.InvoiceRepository       = (*MockInvoiceRepository)(nil)
	_ trade.PurchaseOrderRepository = (*MockPurchaseOrderRepository)(nil)
	_ Metrics                       = (*MockMetrics)(nil)
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func decPtr(t *testing.T, s string) *decimal.Decimal {
	d := dec(t, s)
	return &d
}

func defaultTaxInfo(serialNumber string) catalog.TaxInfo {
	return catalog.TaxInfo{SerialNumber: serialNumber, VAT: catalog.DefaultVAT, ETR: catalog.DefaultETR}
}

func invoiceWith(number string, orderIDs ...uuid.UUID) trade.Invoice {
	return trade.Invoice{
		BaseEntity:              shared.BaseEntity{ID: uuid.New()},
		Number:                  number,
		RelatedPurchaseOrderIDs: orderIDs,
	}
}

func orderWith(id uuid.UUID, number string, lines ...trade.LineItem) *trade.PurchaseOrder {
	return &trade.PurchaseOrder{
		BaseEntity: shared.BaseEntity{ID: id},
		Number:     number,
		Items:      lines,
	}
}

func lineOf(t *testing.T, itemName, quantity, price string) trade.LineItem {
	q := dec(t, quantity)
	p := dec(t, price)
	return trade.LineItem{ItemName: itemName, Quantity: q, Price: p, Total: q.Mul(p)}
}
