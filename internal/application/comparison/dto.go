package comparison

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceSource names the sales history a purchase price was found in
type PriceSource string

const (
	SourceClientHistory PriceSource = "client_history"
	SourceRegionHistory PriceSource = "region_history"
)

// Search outcomes reported to metrics
const (
	outcomeFound       = "found"
	outcomeNoRecord    = "no_record"
	outcomeUnknownItem = "unknown_item"
)

// =============================================================================
// Purchase price resolution
// =============================================================================

// PurchasePriceRequest asks for the historical purchase price of an item sold to a client.
// VAT and ETR override the catalog only when both are given.
type PurchasePriceRequest struct {
	ItemName string
	ClientID uuid.UUID
	VAT      *decimal.Decimal
	ETR      *decimal.Decimal
}

// PurchasePriceResult is the outcome of a resolution. A nil PurchasePrice
// means no history was found and the caller should enter the price manually.
type PurchasePriceResult struct {
	PurchasePrice       *decimal.Decimal `json:"purchasePrice"`
	Source              *PriceSource     `json:"source"`
	VAT                 decimal.Decimal  `json:"VAT"`
	ETR                 decimal.Decimal  `json:"ETR"`
	InvoiceNumber       string           `json:"invoiceNumber,omitempty"`
	PurchaseOrderNumber string           `json:"purchaseOrderNumber,omitempty"`
}

// =============================================================================
// Batch price history search
// =============================================================================

// PriceSearchRequest searches the latest sale of several items to one client
type PriceSearchRequest struct {
	ClientID     uuid.UUID
	ItemNames    []string
	StartDate    *time.Time
	EndDate      *time.Time
	ExchangeRate *decimal.Decimal
	UseCNY       bool
	Lang         string
}

// PriceSearchEntry is the search result of one item
type PriceSearchEntry struct {
	Found               bool                `json:"found"`
	LatestPrice         decimal.NullDecimal `json:"latestPrice"`
	InvoiceNumber       *string             `json:"invoiceNumber"`
	InvoiceDate         *time.Time          `json:"invoiceDate"`
	Currency            *string             `json:"currency"`
	PurchasePrice       decimal.NullDecimal `json:"purchasePrice"`
	PurchaseOrderNumber *string             `json:"purchaseOrderNumber"`
	USDCost             decimal.NullDecimal `json:"usdCost"`
	AdjustedCost        decimal.NullDecimal `json:"adjustedCost"`
	ProfitMargin        decimal.NullDecimal `json:"profitMargin"`
	MarginNote          string              `json:"marginNote,omitempty"`
}

// PriceSearchResult maps every requested item name to its entry
type PriceSearchResult struct {
	Items        map[string]PriceSearchEntry `json:"items"`
	Logs         []string                    `json:"logs"`
	UseCNY       bool                        `json:"useCny"`
	ExchangeRate decimal.Decimal             `json:"exchangeRate"`
}

// =============================================================================
// Full invoice comparison
// =============================================================================

// FullComparisonRequest compares an invoice against its linked purchase orders
type FullComparisonRequest struct {
	InvoiceID      uuid.UUID
	ExchangeRate   *decimal.Decimal
	ConversionRate *decimal.Decimal
	UseCNY         bool
	Lang           string
}

// InvoiceSummary identifies the compared invoice
type InvoiceSummary struct {
	ID       uuid.UUID       `json:"id"`
	Number   string          `json:"number"`
	Date     time.Time       `json:"date"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
}

// ComparisonItem is one invoice line with its purchase cost and margin
type ComparisonItem struct {
	ItemName            string              `json:"itemName"`
	Quantity            decimal.Decimal     `json:"quantity"`
	SellPrice           decimal.Decimal     `json:"sellPrice"`
	Currency            string              `json:"currency"`
	PurchasePrice       decimal.NullDecimal `json:"purchasePrice"`
	PurchaseOrderNumber *string             `json:"purchaseOrderNumber"`
	TaxRefund           decimal.NullDecimal `json:"taxRefund"`
	USDCost             decimal.NullDecimal `json:"usdCost"`
	AdjustedCost        decimal.NullDecimal `json:"adjustedCost"`
	ProfitMargin        decimal.NullDecimal `json:"profitMargin"`
	MarginNote          string              `json:"marginNote,omitempty"`
}

// PurchaseOrderItem is an invoice line attributed to a purchase order
type PurchaseOrderItem struct {
	ItemName  string          `json:"itemName"`
	Price     decimal.Decimal `json:"price"`
	TaxRefund decimal.Decimal `json:"taxRefund"`
}

// PurchaseOrderSummary totals the invoice lines attributed to one purchase order.
// TotalAmount sums unit prices, not line totals.
type PurchaseOrderSummary struct {
	ID             uuid.UUID           `json:"poId"`
	Number         string              `json:"poNumber"`
	TotalAmount    decimal.Decimal     `json:"totalAmount"`
	TotalTaxRefund decimal.Decimal     `json:"totalTaxRefund"`
	Items          []PurchaseOrderItem `json:"items"`
}

// ComparisonSummary holds the invoice level totals. ProfitMargin is null and
// ProfitMarginUndefined set when refunds cover the whole purchase total.
type ComparisonSummary struct {
	InvoiceTotal          decimal.Decimal     `json:"invoiceTotal"`
	InvoiceCurrency       string              `json:"invoiceCurrency"`
	InvoiceTotalCNY       decimal.Decimal     `json:"invoiceTotalCny"`
	PurchaseTotal         decimal.Decimal     `json:"purchaseTotal"`
	TaxRefundTotal        decimal.Decimal     `json:"taxRefundTotal"`
	Profit                decimal.Decimal     `json:"profit"`
	ProfitMargin          decimal.NullDecimal `json:"profitMargin"`
	ProfitMarginUndefined bool                `json:"profitMarginUndefined"`
	ProfitMarginReason    string              `json:"profitMarginReason,omitempty"`
}

// FullComparisonReport is the result of a full invoice comparison
type FullComparisonReport struct {
	Invoice        InvoiceSummary         `json:"invoice"`
	Items          []ComparisonItem       `json:"items"`
	PurchaseOrders []PurchaseOrderSummary `json:"poSummary"`
	Summary        ComparisonSummary      `json:"summary"`
	UseCNY         bool                   `json:"useCny"`
	ExchangeRate   decimal.Decimal        `json:"exchangeRate"`
	ConversionRate decimal.Decimal        `json:"conversionRate"`
	Logs           []string               `json:"logs"`
}

// =============================================================================
// Comparison sheet calculation
// =============================================================================

// SheetItemRequest is one line of a comparison sheet being drafted
type SheetItemRequest struct {
	ItemName      string
	Description   string
	Quantity      decimal.Decimal
	Price         decimal.Decimal
	PurchasePrice *decimal.Decimal
	VAT           *decimal.Decimal
	ETR           *decimal.Decimal
}

// SheetRequest holds the lines and rates of a comparison sheet
type SheetRequest struct {
	Items        []SheetItemRequest
	TaxRate      decimal.Decimal
	ExchangeRate *decimal.Decimal
}

// SheetItem is a calculated comparison sheet line
type SheetItem struct {
	ItemName      string              `json:"itemName"`
	Description   string              `json:"description,omitempty"`
	Quantity      decimal.Decimal     `json:"quantity"`
	Price         decimal.Decimal     `json:"price"`
	Total         decimal.Decimal     `json:"total"`
	PurchasePrice decimal.NullDecimal `json:"purchasePrice"`
	VAT           decimal.Decimal     `json:"VAT"`
	ETR           decimal.Decimal     `json:"ETR"`
	USDCost       decimal.NullDecimal `json:"usdCost"`
	GrossProfit   decimal.NullDecimal `json:"grossProfit"`
	Note          string              `json:"note,omitempty"`
}

// SheetResult is a calculated comparison sheet
type SheetResult struct {
	Items        []SheetItem     `json:"items"`
	SubTotal     decimal.Decimal `json:"subTotal"`
	TaxRate      decimal.Decimal `json:"taxRate"`
	TaxTotal     decimal.Decimal `json:"taxTotal"`
	Total        decimal.Decimal `json:"total"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}
