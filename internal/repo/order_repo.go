package repo

import (
	"context"
	"fmt"

	"github.com/bookstore/storefront/internal/db"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository persists orders and their items
type OrderRepository struct {
	db  *db.DB
	log *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(database *db.DB, logger *zap.Logger) *OrderRepository {
	return &OrderRepository{
		db:  database,
		log: logger,
	}
}

// WithTx returns a repository whose statements run on tx.
func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: &db.DB{DB: tx}, log: r.log}
}

// CreateOrder inserts the order row alone and fills in its id
func (r *OrderRepository) CreateOrder(ctx context.Context, order *db.Order) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// AddItem inserts one order line
func (r *OrderRepository) AddItem(ctx context.Context, item *db.OrderItem) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create order item: %w", err)
	}
	return nil
}

// SetTotal records the final amount of an order
func (r *OrderRepository) SetTotal(ctx context.Context, orderID uint, total decimal.Decimal) error {
	err := r.db.WithContext(ctx).
		Model(&db.Order{}).
		Where("id = ?", orderID).
		Update("total_amount", total).Error
	if err != nil {
		return fmt.Errorf("failed to set order total: %w", err)
	}
	return nil
}

// ListByCustomer returns a customer's orders newest first, with items and
// their books loaded. Orders created in the same instant are ordered by id.
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*db.Order, error) {
	var orders []*db.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Items.Book").
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		r.log.Error("Failed to list orders", zap.Uint("customer_id", customerID), zap.Error(err))
		return nil, err
	}
	return orders, nil
}

// CountOrders returns the number of stored orders
func (r *OrderRepository) CountOrders(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&db.Order{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return total, nil
}
