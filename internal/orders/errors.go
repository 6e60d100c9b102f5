package orders

import (
	"errors"
	"fmt"

	"github.com/bookstore/storefront/internal/repo"
)

var (
	// ErrEmptyCart is returned when an order has no items
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInsufficientStock matches every InsufficientStockError
	ErrInsufficientStock = errors.New("insufficient stock")
)

// BookNotFoundError reports a cart line whose book does not exist.
type BookNotFoundError struct {
	BookID uint
}

func (e *BookNotFoundError) Error() string {
	return fmt.Sprintf("book %d not found", e.BookID)
}

func (e *BookNotFoundError) Unwrap() error {
	return repo.ErrBookNotFound
}

// InsufficientStockError reports a cart line asking for more copies than
// are in stock.
type InsufficientStockError struct {
	BookID    uint
	Title     string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: available %d, requested %d", e.Title, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// InvalidQuantityError reports a cart line with a quantity below one.
type InvalidQuantityError struct {
	BookID   uint
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d for book %d", e.Quantity, e.BookID)
}

// IsBusinessError reports whether err is a rejection the caller can act on,
// as opposed to an infrastructure failure.
func IsBusinessError(err error) bool {
	var invalid *InvalidQuantityError
	return errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, repo.ErrBookNotFound) ||
		errors.As(err, &invalid)
}

func failureReason(err error) string {
	var invalid *InvalidQuantityError
	switch {
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.As(err, &invalid):
		return "invalid_quantity"
	case errors.Is(err, repo.ErrBookNotFound):
		return "book_not_found"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "internal"
	}
}
