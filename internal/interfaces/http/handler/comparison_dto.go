package handler

import (
	"github.com/shopspring/decimal"
)

// PurchasePriceQuery are the query parameters of the purchase price lookup.
// VAT and ETR replace the catalog values only when both are given.
type PurchasePriceQuery struct {
	ItemName string `form:"itemName" binding:"required"`
	ClientID string `form:"clientId" binding:"required,uuid"`
	VAT      string `form:"VAT"`
	ETR      string `form:"ETR"`
}

// FullComparisonRequest is the body of a full invoice comparison
type FullComparisonRequest struct {
	InvoiceID      string           `json:"invoiceId" binding:"required,uuid"`
	ExchangeRate   *decimal.Decimal `json:"exchangeRate"`
	ConversionRate *decimal.Decimal `json:"conversionRate"`
	UseCNY         bool             `json:"useCny"`
	Lang           string           `json:"lang"`
}

// SheetItemRequest is one line of a comparison sheet
type SheetItemRequest struct {
	ItemName      string           `json:"itemName" binding:"required"`
	Description   string           `json:"description"`
	Quantity      decimal.Decimal  `json:"quantity"`
	Price         decimal.Decimal  `json:"price"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	VAT           *decimal.Decimal `json:"VAT"`
	ETR           *decimal.Decimal `json:"ETR"`
}

// SheetRequest is the body of a comparison sheet calculation
type SheetRequest struct {
	Items        []SheetItemRequest `json:"items" binding:"required,min=1,dive"`
	TaxRate      decimal.Decimal    `json:"taxRate"`
	ExchangeRate *decimal.Decimal   `json:"exchangeRate"`
}

// PriceSearchRequest is the body of a batch price history search
type PriceSearchRequest struct {
	ClientID     string           `json:"clientId" binding:"required,uuid"`
	ItemNames    []string         `json:"itemNames" binding:"required,min=1"`
	StartDate    string           `json:"startDate"`
	EndDate      string           `json:"endDate"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate"`
	UseCNY       bool             `json:"useCny"`
	Lang         string           `json:"lang"`
}
