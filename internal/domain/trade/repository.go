package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceRepository defines the invoice reads used by pricing.
// Only FindByID returns removed invoices.
type InvoiceRepository interface {
	// FindByID finds an invoice with its items and related purchase order IDs
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindActiveByClientsWithItem finds active invoices of any of clientIDs that
	// sell itemName, newest first. Items are not loaded; related purchase order IDs are.
	FindActiveByClientsWithItem(ctx context.Context, clientIDs []uuid.UUID, itemName string) ([]Invoice, error)

	// FindLatestSales returns, per requested item, the latest line the client
	// bought it on, joined to the first active related purchase order buying it.
	// Items never sold to the client are absent. Results are ordered by item name.
	FindLatestSales(ctx context.Context, query LatestSalesQuery) ([]LatestSale, error)
}

// PurchaseOrderRepository defines the purchase order reads used by pricing
type PurchaseOrderRepository interface {
	// FindActiveWithItem finds an active purchase order by ID that buys itemName.
	// Returns shared.ErrNotFound otherwise.
	FindActiveWithItem(ctx context.Context, id uuid.UUID, itemName string) (*PurchaseOrder, error)

	// FindActiveByIDs finds active purchase orders with their items, in the order of ids
	FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]PurchaseOrder, error)
}

// LatestSalesQuery filters FindLatestSales. From and To are inclusive.
type LatestSalesQuery struct {
	ClientID  uuid.UUID
	ItemNames []string
	From      *time.Time
	To        *time.Time
}

// LatestSale is the newest sale of an item to a client
type LatestSale struct {
	ItemName            string
	SellPrice           decimal.Decimal
	InvoiceID           uuid.UUID
	InvoiceNumber       string
	InvoiceDate         time.Time
	Currency            string
	PurchaseOrderID     *uuid.UUID
	PurchaseOrderNumber string
	PurchasePrice       decimal.NullDecimal
}

// HasPurchaseOrder reports whether a related purchase order buys the item
func (s LatestSale) HasPurchaseOrder() bool {
	return s.PurchaseOrderID != nil
}
