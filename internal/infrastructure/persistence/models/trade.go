package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeerp/backend/internal/domain/shared/valueobject"
	"github.com/tradeerp/backend/internal/domain/trade"
)

// InvoiceModel is the persistence model for the Invoice aggregate root
type InvoiceModel struct {
	BaseModel
	Number             string                      `gorm:"type:varchar(50);not null;uniqueIndex"`
	ClientID           uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Date               time.Time                   `gorm:"not null;index"`
	Currency           string                      `gorm:"type:varchar(3);not null;default:'USD'"`
	SubTotal           decimal.Decimal             `gorm:"type:decimal(18,4);not null;default:0"`
	TaxRate            decimal.Decimal             `gorm:"type:decimal(8,4);not null;default:0"`
	TaxTotal           decimal.Decimal             `gorm:"type:decimal(18,4);not null;default:0"`
	Total              decimal.Decimal             `gorm:"type:decimal(18,4);not null;default:0"`
	Items              []InvoiceItemModel          `gorm:"foreignKey:InvoiceID;references:ID"`
	PurchaseOrderLinks []InvoicePurchaseOrderModel `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceItemModel is one line of an invoice. Position keeps the entry order.
type InvoiceItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	ItemName    string          `gorm:"type:varchar(100);not null;index"`
	Description string          `gorm:"type:text"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Total       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// InvoicePurchaseOrderModel links an invoice to a purchase order that sourced it
type InvoicePurchaseOrderModel struct {
	InvoiceID       uuid.UUID `gorm:"type:uuid;primary_key"`
	PurchaseOrderID uuid.UUID `gorm:"type:uuid;primary_key;index"`
	Position        int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoicePurchaseOrderModel) TableName() string {
	return "invoice_purchase_orders"
}

// ToDomain converts the persistence model to a domain Invoice. Lines and
// links are expected to be loaded in position order.
func (m *InvoiceModel) ToDomain() *trade.Invoice {
	inv := &trade.Invoice{
		BaseEntity: m.BaseModel.ToDomain(),
		Number:     m.Number,
		ClientID:   m.ClientID,
		Date:       m.Date,
		Currency:   valueobject.Currency(m.Currency),
		SubTotal:   m.SubTotal,
		TaxRate:    m.TaxRate,
		TaxTotal:   m.TaxTotal,
		Total:      m.Total,
		Items:      make([]trade.LineItem, 0, len(m.Items)),
	}
	for i := range m.Items {
		inv.Items = append(inv.Items, m.Items[i].ToDomain())
	}
	inv.RelatedPurchaseOrderIDs = make([]uuid.UUID, 0, len(m.PurchaseOrderLinks))
	for _, link := range m.PurchaseOrderLinks {
		inv.RelatedPurchaseOrderIDs = append(inv.RelatedPurchaseOrderIDs, link.PurchaseOrderID)
	}
	return inv
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(e *trade.Invoice) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Number = e.Number
	m.ClientID = e.ClientID
	m.Date = e.Date
	m.Currency = string(e.Currency)
	m.SubTotal = e.SubTotal
	m.TaxRate = e.TaxRate
	m.TaxTotal = e.TaxTotal
	m.Total = e.Total

	m.Items = make([]InvoiceItemModel, 0, len(e.Items))
	for i, item := range e.Items {
		m.Items = append(m.Items, InvoiceItemModel{
			ID:          uuid.New(),
			InvoiceID:   e.ID,
			Position:    i,
			ItemName:    item.ItemName,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       item.Total,
		})
	}
	m.PurchaseOrderLinks = make([]InvoicePurchaseOrderModel, 0, len(e.RelatedPurchaseOrderIDs))
	for i, id := range e.RelatedPurchaseOrderIDs {
		m.PurchaseOrderLinks = append(m.PurchaseOrderLinks, InvoicePurchaseOrderModel{
			InvoiceID:       e.ID,
			PurchaseOrderID: id,
			Position:        i,
		})
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice
func InvoiceModelFromDomain(e *trade.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(e)
	return m
}

// ToDomain converts the line to a domain LineItem
func (m *InvoiceItemModel) ToDomain() trade.LineItem {
	return trade.LineItem{
		ItemName:    m.ItemName,
		Description: m.Description,
		Quantity:    m.Quantity,
		Price:       m.Price,
		Total:       m.Total,
	}
}

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate root
type PurchaseOrderModel struct {
	BaseModel
	Number    string                   `gorm:"type:varchar(50);not null;uniqueIndex"`
	FactoryID uuid.UUID                `gorm:"type:uuid;index"`
	Date      time.Time                `gorm:"not null"`
	Currency  string                   `gorm:"type:varchar(3);not null;default:'CNY'"`
	Total     decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	Items     []PurchaseOrderItemModel `gorm:"foreignKey:PurchaseOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderItemModel is one line of a purchase order
type PurchaseOrderItemModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position        int             `gorm:"not null"`
	ItemName        string          `gorm:"type:varchar(100);not null;index"`
	Description     string          `gorm:"type:text"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Price           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Total           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItemModel) TableName() string {
	return "purchase_order_items"
}

// ToDomain converts the persistence model to a domain PurchaseOrder
func (m *PurchaseOrderModel) ToDomain() *trade.PurchaseOrder {
	po := &trade.PurchaseOrder{
		BaseEntity: m.BaseModel.ToDomain(),
		Number:     m.Number,
		FactoryID:  m.FactoryID,
		Date:       m.Date,
		Currency:   valueobject.Currency(m.Currency),
		Total:      m.Total,
		Items:      make([]trade.LineItem, 0, len(m.Items)),
	}
	for _, item := range m.Items {
		po.Items = append(po.Items, trade.LineItem{
			ItemName:    item.ItemName,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       item.Total,
		})
	}
	return po
}

// FromDomain populates the persistence model from a domain PurchaseOrder
func (m *PurchaseOrderModel) FromDomain(e *trade.PurchaseOrder) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Number = e.Number
	m.FactoryID = e.FactoryID
	m.Date = e.Date
	m.Currency = string(e.Currency)
	m.Total = e.Total

	m.Items = make([]PurchaseOrderItemModel, 0, len(e.Items))
	for i, item := range e.Items {
		m.Items = append(m.Items, PurchaseOrderItemModel{
			ID:              uuid.New(),
			PurchaseOrderID: e.ID,
			Position:        i,
			ItemName:        item.ItemName,
			Description:     item.Description,
			Quantity:        item.Quantity,
			Price:           item.Price,
			Total:           item.Total,
		})
	}
}

// PurchaseOrderModelFromDomain creates a new persistence model from a domain PurchaseOrder
func PurchaseOrderModelFromDomain(e *trade.PurchaseOrder) *PurchaseOrderModel {
	m := &PurchaseOrderModel{}
	m.FromDomain(e)
	return m
}

// AllModels lists every model for AutoMigrate in tests
func AllModels() []any {
	return []any{
		&MerchandiseModel{},
		&ClientModel{},
		&InvoiceModel{},
		&InvoiceItemModel{},
		&InvoicePurchaseOrderModel{},
		&PurchaseOrderModel{},
		&PurchaseOrderItemModel{},
	}
}
