package persistence

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tradeerp/backend/internal/domain/shared/valueobject"
	"github.com/tradeerp/backend/internal/domain/trade"
	"github.com/tradeerp/backend/internal/infrastructure/persistence/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with every table migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

// newMockDB creates a GORM postgres connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gormDB, mock, mockDB
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func line(t *testing.T, name, qty, price string) trade.LineItem {
	t.Helper()
	item, err := trade.NewLineItem(name, decimal.RequireFromString(qty), decimal.RequireFromString(price))
	require.NoError(t, err)
	return item
}

func seedPurchaseOrder(t *testing.T, db *gorm.DB, number string, removed bool, items ...trade.LineItem) *trade.PurchaseOrder {
	t.Helper()
	po, err := trade.NewPurchaseOrder(number, uuid.New(), day(t, "2024-01-01"), items)
	require.NoError(t, err)
	po.Removed = removed
	require.NoError(t, db.Create(models.PurchaseOrderModelFromDomain(po)).Error)
	return po
}

func seedInvoice(t *testing.T, db *gorm.DB, number string, clientID uuid.UUID, date string, orderIDs []uuid.UUID, items ...trade.LineItem) *trade.Invoice {
	t.Helper()
	inv, err := trade.NewInvoice(number, clientID, day(t, date), valueobject.USD, items, decimal.Zero)
	require.NoError(t, err)
	for _, id := range orderIDs {
		inv.LinkPurchaseOrder(id)
	}
	require.NoError(t, db.Create(models.InvoiceModelFromDomain(inv)).Error)
	return inv
}

func markRemoved(t *testing.T, db *gorm.DB, model any, id uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Model(model).Where("id = ?", id).Update("removed", true).Error)
}

