package repo

import (
	"context"
	"testing"
	"time"

	"github.com/bookstore/storefront/internal/db"
	"github.com/bookstore/storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListByCustomerNewestFirst(t *testing.T) {
	database := setupTestDB(t)
	log := logger.NewLogger("test", "info")
	orders := NewOrderRepository(database, log)
	catalog := NewCatalogRepository(database, log)
	ctx := context.Background()

	category := newCategory(t, database, "Fiction", nil)
	book := &db.Book{Title: "To Live", Author: "Yu Hua", Price: decimal.NewFromInt(45), CategoryID: category.ID}
	require.NoError(t, catalog.CreateBook(ctx, book))

	customer := &db.Customer{Username: "reader"}
	require.NoError(t, database.Create(customer).Error)
	other := &db.Customer{Username: "other"}
	require.NoError(t, database.Create(other).Error)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, owner := range []*db.Customer{customer, customer, other} {
		order := &db.Order{CustomerID: &owner.ID, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, orders.CreateOrder(ctx, order))
		require.NoError(t, orders.AddItem(ctx, &db.OrderItem{OrderID: order.ID, BookID: book.ID, Quantity: i + 1, Price: decimal.NewFromInt(45)}))
		require.NoError(t, orders.SetTotal(ctx, order.ID, decimal.NewFromInt(int64(45*(i+1)))))
	}

	listed, err := orders.ListByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.True(t, listed[0].CreatedAt.After(listed[1].CreatedAt))
	assert.True(t, listed[0].TotalAmount.Equal(decimal.NewFromInt(90)))
	require.Len(t, listed[0].Items, 1)
	require.NotNil(t, listed[0].Items[0].Book)
	assert.Equal(t, "To Live", listed[0].Items[0].Book.Title)

	again, err := orders.ListByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, listed, again)

	total, err := orders.CountOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}
