package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeerp/backend/internal/domain/shared"
	"github.com/tradeerp/backend/internal/domain/trade"
	"github.com/tradeerp/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements trade.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// FindByID finds an invoice by ID with its lines and purchase order links, removed or not
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Items", orderByPosition).
		Preload("PurchaseOrderLinks", orderByPosition).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByClientsWithItem finds active invoices of clientIDs that sell itemName,
// newest invoice date first, ties broken by newest creation time
func (r *GormInvoiceRepository) FindActiveByClientsWithItem(ctx context.Context, clientIDs []uuid.UUID, itemName string) ([]trade.Invoice, error) {
	if len(clientIDs) == 0 {
		return []trade.Invoice{}, nil
	}
	var rows []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("PurchaseOrderLinks", orderByPosition).
		Where("client_id IN ? AND removed = ?", clientIDs, false).
		Where("EXISTS (SELECT 1 FROM invoice_items ii WHERE ii.invoice_id = invoices.id AND ii.item_name = ?)", itemName).
		Order("date DESC").
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]trade.Invoice, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// latestSaleRow is the scan target of the latest sales query
type latestSaleRow struct {
	ItemName            string
	SellPrice           decimal.Decimal
	InvoiceID           uuid.UUID
	InvoiceNumber       string
	InvoiceDate         time.Time
	Currency            string
	PurchaseOrderID     *uuid.UUID
	PurchaseOrderNumber *string
	PurchasePrice       decimal.NullDecimal
}

// FindLatestSales picks, per item, the line of the client's newest active
// invoice selling it, then the first line of the first active linked purchase
// order buying it. Both picks run as window functions in a single round trip.
func (r *GormInvoiceRepository) FindLatestSales(ctx context.Context, query trade.LatestSalesQuery) ([]trade.LatestSale, error) {
	if len(query.ItemNames) == 0 {
		return []trade.LatestSale{}, nil
	}
	sql, args := latestSalesSQL(query)

	var rows []latestSaleRow
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query latest sales: %w", err)
	}

	out := make([]trade.LatestSale, len(rows))
	for i, row := range rows {
		out[i] = trade.LatestSale{
			ItemName:        row.ItemName,
			SellPrice:       row.SellPrice,
			InvoiceID:       row.InvoiceID,
			InvoiceNumber:   row.InvoiceNumber,
			InvoiceDate:     row.InvoiceDate,
			Currency:        row.Currency,
			PurchaseOrderID: row.PurchaseOrderID,
			PurchasePrice:   row.PurchasePrice,
		}
		if row.PurchaseOrderNumber != nil {
			out[i].PurchaseOrderNumber = *row.PurchaseOrderNumber
		}
	}
	return out, nil
}

func latestSalesSQL(query trade.LatestSalesQuery) (string, []any) {
	var b strings.Builder
	args := []any{query.ClientID, false, query.ItemNames}

	b.WriteString(`WITH latest AS (
	SELECT * FROM (
		SELECT ii.item_name, ii.price AS sell_price, i.id AS invoice_id, i.number AS invoice_number,
			i.date AS invoice_date, i.currency AS currency,
			ROW_NUMBER() OVER (PARTITION BY ii.item_name ORDER BY i.date DESC, i.created_at DESC, ii.position ASC) AS rn
		FROM invoice_items ii
		JOIN invoices i ON i.id = ii.invoice_id
		WHERE i.client_id = ? AND i.removed = ? AND ii.item_name IN ?`)
	if query.From != nil {
		b.WriteString(" AND i.date >= ?")
		args = append(args, *query.From)
	}
	if query.To != nil {
		b.WriteString(" AND i.date <= ?")
		args = append(args, *query.To)
	}
	b.WriteString(`
	) ranked WHERE rn = 1
),
matched AS (
	SELECT * FROM (
		SELECT l.item_name, po.id AS purchase_order_id, po.number AS purchase_order_number,
			poi.price AS purchase_price,
			ROW_NUMBER() OVER (PARTITION BY l.item_name ORDER BY ipo.position ASC, poi.position ASC) AS rn
		FROM latest l
		JOIN invoice_purchase_orders ipo ON ipo.invoice_id = l.invoice_id
		JOIN purchase_orders po ON po.id = ipo.purchase_order_id AND po.removed = ?
		JOIN purchase_order_items poi ON poi.purchase_order_id = po.id AND poi.item_name = l.item_name
	) candidates WHERE rn = 1
)
SELECT l.item_name, l.sell_price, l.invoice_id, l.invoice_number, l.invoice_date, l.currency,
	m.purchase_order_id, m.purchase_order_number, m.purchase_price
FROM latest l
LEFT JOIN matched m ON m.item_name = l.item_name
ORDER BY l.item_name`)
	args = append(args, false)
	return b.String(), args
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ trade.InvoiceRepository = (*GormInvoiceRepository)(nil)
