package db

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *DB {
	database, err := OpenSQLite(":memory:", logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, RunMigrations(database))
	return database
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	database := setupTestDB(t)

	assert.NoError(t, RunMigrations(database))
	for _, table := range []string{"categories", "books", "customers", "orders", "order_items"} {
		assert.True(t, database.Migrator().HasTable(table), table)
	}
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := Connect("mysql", "dsn", logger.Silent)
	assert.Error(t, err)
}

func TestBookReferencedByOrderItemCannotBeDeleted(t *testing.T) {
	database := setupTestDB(t)

	category := Category{Name: "Fiction"}
	require.NoError(t, database.Create(&category).Error)
	book := Book{Title: "Kept", Author: "A", Price: decimal.NewFromInt(10), Stock: 1, CategoryID: category.ID}
	require.NoError(t, database.Create(&book).Error)
	order := Order{TotalAmount: decimal.NewFromInt(10)}
	require.NoError(t, database.Create(&order).Error)
	item := OrderItem{OrderID: order.ID, BookID: book.ID, Quantity: 1, Price: decimal.NewFromInt(10)}
	require.NoError(t, database.Create(&item).Error)

	err := database.Delete(&Book{}, book.ID).Error
	assert.Error(t, err)

	var count int64
	require.NoError(t, database.Model(&Book{}).Where("id = ?", book.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeletingCustomerKeepsOrders(t *testing.T) {
	database := setupTestDB(t)

	customer := Customer{Username: "reader", PasswordHash: "x"}
	require.NoError(t, database.Create(&customer).Error)
	order := Order{CustomerID: &customer.ID, TotalAmount: decimal.NewFromInt(5)}
	require.NoError(t, database.Create(&order).Error)

	require.NoError(t, database.Delete(&Customer{}, customer.ID).Error)

	var kept Order
	require.NoError(t, database.First(&kept, order.ID).Error)
	assert.Nil(t, kept.CustomerID)
	assert.False(t, kept.CreatedAt.IsZero())
}

func TestStockCannotGoNegative(t *testing.T) {
	database := setupTestDB(t)

	category := Category{Name: "Fiction"}
	require.NoError(t, database.Create(&category).Error)
	book := Book{Title: "T", Author: "A", Price: decimal.NewFromInt(1), Stock: 1, CategoryID: category.ID}
	require.NoError(t, database.Create(&book).Error)

	err := database.Model(&Book{}).Where("id = ?", book.ID).Update("stock", -1).Error
	assert.Error(t, err)
}

func TestUnitPriceFallsBackToListPrice(t *testing.T) {
	book := Book{Price: decimal.RequireFromString("20.00")}
	assert.True(t, book.UnitPrice().Equal(decimal.NewFromInt(20)))

	book.SalePrice = decimal.NewNullDecimal(decimal.RequireFromString("14.5"))
	assert.True(t, book.UnitPrice().Equal(decimal.RequireFromString("14.5")))
}

func TestLineTotal(t *testing.T) {
	item := OrderItem{Quantity: 3, Price: decimal.RequireFromString("9.90")}
	assert.True(t, item.LineTotal().Equal(decimal.RequireFromString("29.70")))
}
