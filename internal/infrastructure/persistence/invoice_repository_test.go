package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradeerp/backend/internal/domain/shared"
	"github.com/tradeerp/backend/internal/domain/trade"
	"github.com/tradeerp/backend/internal/infrastructure/persistence/models"
)

func TestGormInvoiceRepository_FindByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	po2 := seedPurchaseOrder(t, db, "PO-2", false, line(t, "A1", "1", "10"))
	po1 := seedPurchaseOrder(t, db, "PO-1", false, line(t, "B2", "1", "10"))
	inv := seedInvoice(t, db, "INV-1", uuid.New(), "2024-03-01", []uuid.UUID{po2.ID, po1.ID},
		line(t, "C3", "1", "3"), line(t, "A1", "2", "20"), line(t, "B2", "1", "5"))

	t.Run("loads lines and links in entry order", func(t *testing.T) {
		found, err := repo.FindByID(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, "INV-1", found.Number)
		require.Len(t, found.Items, 3)
		assert.Equal(t, "C3", found.Items[0].ItemName)
		assert.Equal(t, "A1", found.Items[1].ItemName)
		assert.Equal(t, "40", found.Items[1].Total.String())
		assert.Equal(t, []uuid.UUID{po2.ID, po1.ID}, found.RelatedPurchaseOrderIDs)
		assert.Equal(t, "48", found.Total.String())
	})

	t.Run("returns removed invoices", func(t *testing.T) {
		markRemoved(t, db, &models.InvoiceModel{}, inv.ID)
		found, err := repo.FindByID(ctx, inv.ID)
		require.NoError(t, err)
		assert.True(t, found.IsRemoved())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormInvoiceRepository_FindActiveByClientsWithItem(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	clientA, clientB, other := uuid.New(), uuid.New(), uuid.New()
	po := seedPurchaseOrder(t, db, "PO-1", false, line(t, "A1", "1", "10"))

	older := seedInvoice(t, db, "INV-OLD", clientA, "2024-01-10", []uuid.UUID{po.ID}, line(t, "A1", "1", "10"))
	sameDayFirst := seedInvoice(t, db, "INV-SAME-1", clientB, "2024-02-01", nil, line(t, "A1", "1", "10"))
	sameDaySecond := seedInvoice(t, db, "INV-SAME-2", clientA, "2024-02-01", nil, line(t, "A1", "1", "10"))
	seedInvoice(t, db, "INV-OTHER-ITEM", clientA, "2024-03-01", nil, line(t, "B2", "1", "10"))
	seedInvoice(t, db, "INV-OTHER-CLIENT", other, "2024-03-01", nil, line(t, "A1", "1", "10"))
	removed := seedInvoice(t, db, "INV-REMOVED", clientA, "2024-04-01", nil, line(t, "A1", "1", "10"))
	markRemoved(t, db, &models.InvoiceModel{}, removed.ID)

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Model(&models.InvoiceModel{}).Where("id = ?", sameDayFirst.ID).Update("created_at", base).Error)
	require.NoError(t, db.Model(&models.InvoiceModel{}).Where("id = ?", sameDaySecond.ID).Update("created_at", base.Add(time.Hour)).Error)

	found, err := repo.FindActiveByClientsWithItem(ctx, []uuid.UUID{clientA, clientB}, "A1")
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Equal(t, sameDaySecond.ID, found[0].ID)
	assert.Equal(t, sameDayFirst.ID, found[1].ID)
	assert.Equal(t, older.ID, found[2].ID)
	assert.Equal(t, []uuid.UUID{po.ID}, found[2].RelatedPurchaseOrderIDs)

	none, err := repo.FindActiveByClientsWithItem(ctx, nil, "A1")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGormInvoiceRepository_FindLatestSales(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormInvoiceRepository(gormDB)

	clientID, invoiceID, poID := uuid.New(), uuid.New(), uuid.New()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	columns := []string{
		"item_name", "sell_price", "invoice_id", "invoice_number", "invoice_date", "currency",
		"purchase_order_id", "purchase_order_number", "purchase_price",
	}

	t.Run("maps matched and unmatched rows", func(t *testing.T) {
		mock.ExpectQuery(`(?s)WITH latest AS \(.*AND i\.date >= \$5.*ORDER BY l\.item_name`).
			WithArgs(clientID, false, "A1", "B2", from, false).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("A1", "20.00", invoiceID.String(), "INV-1", date, "USD", poID.String(), "PO-1", "113.00").
				AddRow("B2", "5.00", invoiceID.String(), "INV-1", date, "USD", nil, nil, nil))

		sales, err := repo.FindLatestSales(context.Background(), trade.LatestSalesQuery{
			ClientID:  clientID,
			ItemNames: []string{"A1", "B2"},
			From:      &from,
		})

		require.NoError(t, err)
		require.Len(t, sales, 2)
		a1 := sales[0]
		assert.Equal(t, "20", a1.SellPrice.String())
		assert.Equal(t, invoiceID, a1.InvoiceID)
		assert.True(t, a1.HasPurchaseOrder())
		assert.Equal(t, poID, *a1.PurchaseOrderID)
		assert.Equal(t, "PO-1", a1.PurchaseOrderNumber)
		assert.Equal(t, "113", a1.PurchasePrice.Decimal.String())

		b2 := sales[1]
		assert.False(t, b2.HasPurchaseOrder())
		assert.False(t, b2.PurchasePrice.Valid)
		assert.Empty(t, b2.PurchaseOrderNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps query errors", func(t *testing.T) {
		mock.ExpectQuery(`WITH latest AS`).WillReturnError(errors.New("connection reset"))

		_, err := repo.FindLatestSales(context.Background(), trade.LatestSalesQuery{
			ClientID:  clientID,
			ItemNames: []string{"A1"},
		})

		assert.ErrorContains(t, err, "failed to query latest sales")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no items skips the query", func(t *testing.T) {
		sales, err := repo.FindLatestSales(context.Background(), trade.LatestSalesQuery{ClientID: clientID})
		require.NoError(t, err)
		assert.Empty(t, sales)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLatestSalesSQL_DateBounds(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	sql, args := latestSalesSQL(trade.LatestSalesQuery{ItemNames: []string{"A1"}, From: &from, To: &to})
	assert.Contains(t, sql, "AND i.date >= ? AND i.date <= ?")
	assert.Len(t, args, 6)

	sql, args = latestSalesSQL(trade.LatestSalesQuery{ItemNames: []string{"A1"}})
	assert.NotContains(t, sql, "i.date >=")
	assert.NotContains(t, sql, "i.date <=")
	assert.Len(t, args, 4)
}
