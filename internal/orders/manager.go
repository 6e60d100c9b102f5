package orders

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bookstore/storefront/internal/db"
	"github.com/bookstore/storefront/internal/events"
	"github.com/bookstore/storefront/internal/metrics"
	"github.com/bookstore/storefront/internal/repo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const publishTimeout = 10 * time.Second

// CartItem is one requested line of an order.
type CartItem struct {
	BookID   uint `json:"id"`
	Quantity int  `json:"qty"`
}

// Receipt identifies a committed order.
type Receipt struct {
	OrderID     uint
	TotalAmount decimal.Decimal
}

// EventPublisher receives committed orders.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, placed events.OrderPlaced) error
}

// Manager places orders against the catalog in a single transaction.
type Manager struct {
	db        *db.DB
	catalog   *repo.CatalogRepository
	orders    *repo.OrderRepository
	publisher EventPublisher
	metrics   *metrics.Metrics
	log       *zap.Logger

	inflight sync.WaitGroup
}

// NewManager creates an order manager. publisher and m may be nil.
func NewManager(database *db.DB, catalog *repo.CatalogRepository, orders *repo.OrderRepository, publisher EventPublisher, m *metrics.Metrics, log *zap.Logger) *Manager {
	return &Manager{
		db:        database,
		catalog:   catalog,
		orders:    orders,
		publisher: publisher,
		metrics:   m,
		log:       log,
	}
}

// PlaceOrder creates an order for customerID from items. Every line
// decrements its book's stock and raises its sales count; the order, its
// items and all stock changes commit together or not at all.
func (m *Manager) PlaceOrder(ctx context.Context, customerID uint, items []CartItem) (*Receipt, error) {
	if err := validateCart(items); err != nil {
		m.metrics.ObserveOrderFailure(failureReason(err))
		return nil, err
	}

	var (
		receipt *Receipt
		lines   []events.OrderPlacedItem
	)

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		catalog := m.catalog.WithTx(tx)
		orders := m.orders.WithTx(tx)

		order := &db.Order{CustomerID: &customerID, TotalAmount: decimal.Zero}
		if err := orders.CreateOrder(ctx, order); err != nil {
			return err
		}

		total := decimal.Zero
		lines = make([]events.OrderPlacedItem, 0, len(items))

		for _, item := range items {
			book, err := catalog.GetBookForUpdate(ctx, item.BookID)
			if errors.Is(err, repo.ErrBookNotFound) {
				return &BookNotFoundError{BookID: item.BookID}
			}
			if err != nil {
				return fmt.Errorf("failed to load book %d: %w", item.BookID, err)
			}

			if book.Stock < item.Quantity {
				return &InsufficientStockError{BookID: book.ID, Title: book.Title, Available: book.Stock, Requested: item.Quantity}
			}

			taken, err := catalog.DecrementStock(ctx, book.ID, item.Quantity)
			if err != nil {
				return fmt.Errorf("failed to update stock of book %d: %w", book.ID, err)
			}
			if !taken {
				return &InsufficientStockError{BookID: book.ID, Title: book.Title, Available: book.Stock, Requested: item.Quantity}
			}

			line := &db.OrderItem{
				OrderID:  order.ID,
				BookID:   book.ID,
				Quantity: item.Quantity,
				Price:    book.UnitPrice(),
			}
			if err := orders.AddItem(ctx, line); err != nil {
				return err
			}

			total = total.Add(line.LineTotal())
			lines = append(lines, events.OrderPlacedItem{BookID: line.BookID, Quantity: line.Quantity, Price: line.Price})
		}

		if err := orders.SetTotal(ctx, order.ID, total); err != nil {
			return err
		}

		receipt = &Receipt{OrderID: order.ID, TotalAmount: total}
		return nil
	})
	if err != nil {
		m.metrics.ObserveOrderFailure(failureReason(err))
		if IsBusinessError(err) {
			m.log.Info("Order rejected", zap.Uint("customer_id", customerID), zap.Error(err))
		} else {
			m.log.Error("Failed to place order", zap.Uint("customer_id", customerID), zap.Error(err))
		}
		return nil, err
	}

	m.log.Info("Order placed",
		zap.Uint("order_id", receipt.OrderID),
		zap.Uint("customer_id", customerID),
		zap.String("total_amount", receipt.TotalAmount.StringFixed(2)),
		zap.Int("items", len(lines)),
	)
	m.metrics.ObserveOrder(receipt.TotalAmount.InexactFloat64())
	m.publishPlaced(ctx, events.OrderPlaced{
		OrderID:     receipt.OrderID,
		CustomerID:  customerID,
		TotalAmount: receipt.TotalAmount,
		Items:       lines,
	})

	return receipt, nil
}

func validateCart(items []CartItem) error {
	if len(items) == 0 {
		return ErrEmptyCart
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return &InvalidQuantityError{BookID: item.BookID, Quantity: item.Quantity}
		}
	}
	return nil
}

// publishPlaced sends the event in the background. The request's
// cancellation does not apply; its correlation id does.
func (m *Manager) publishPlaced(ctx context.Context, placed events.OrderPlaced) {
	if m.publisher == nil {
		return
	}

	pubCtx := events.WithCorrelationID(context.Background(), events.CorrelationID(ctx))

	m.inflight.Add(1)
	go func() {
		defer m.inflight.Done()

		ctx, cancel := context.WithTimeout(pubCtx, publishTimeout)
		defer cancel()

		if err := m.publisher.PublishOrderPlaced(ctx, placed); err != nil {
			m.log.Warn("Failed to publish order event", zap.Uint("order_id", placed.OrderID), zap.Error(err))
		}
	}()
}

// Wait blocks until background event publishing has finished.
func (m *Manager) Wait() {
	m.inflight.Wait()
}

// ListOrders returns the customer's orders newest first with their items.
func (m *Manager) ListOrders(ctx context.Context, customerID uint) ([]*db.Order, error) {
	return m.orders.ListByCustomer(ctx, customerID)
}
