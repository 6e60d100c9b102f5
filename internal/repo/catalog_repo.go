package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bookstore/storefront/internal/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPageSize is the number of books on one catalog page.
const DefaultPageSize = 12

var (
	// ErrBookNotFound is returned when a book is not found
	ErrBookNotFound = errors.New("book not found")
)

// BookFilter narrows a catalog listing. Zero values disable a filter.
type BookFilter struct {
	Page       int
	PageSize   int
	CategoryID uint
	Keyword    string
	Publisher  string
	Year       int
}

// CatalogRepository handles book catalog operations
type CatalogRepository struct {
	db  *db.DB
	log *zap.Logger
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(database *db.DB, logger *zap.Logger) *CatalogRepository {
	return &CatalogRepository{
		db:  database,
		log: logger,
	}
}

// WithTx returns a repository whose statements run on tx.
func (r *CatalogRepository) WithTx(tx *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: &db.DB{DB: tx}, log: r.log}
}

// ListBooks returns one page of books matching the filter, ordered by id,
// together with the total number of matches.
func (r *CatalogRepository) ListBooks(ctx context.Context, filter BookFilter) ([]*db.Book, int64, error) {
	page, pageSize := normalizePage(filter.Page, filter.PageSize)

	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		r.log.Error("Failed to count books", zap.Error(err))
		return nil, 0, err
	}

	var books []*db.Book
	err := r.filtered(ctx, filter).
		Preload("Category").
		Order("id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&books).Error
	if err != nil {
		r.log.Error("Failed to list books", zap.Error(err))
		return nil, 0, err
	}

	return books, total, nil
}

func (r *CatalogRepository) filtered(ctx context.Context, filter BookFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&db.Book{})

	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		pattern := "%" + strings.ToLower(kw) + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(author) LIKE ?)", pattern, pattern)
	}
	if filter.Publisher != "" {
		query = query.Where("publisher = ?", filter.Publisher)
	}
	if filter.Year != 0 {
		from := time.Date(filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		query = query.Where("pub_date >= ? AND pub_date < ?", from, from.AddDate(1, 0, 0))
	}

	return query
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// TotalPages returns how many pages of pageSize are needed for total items.
func TotalPages(total int64, pageSize int) int {
	_, pageSize = normalizePage(1, pageSize)
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}

// GetBook retrieves a book by id
func (r *CatalogRepository) GetBook(ctx context.Context, id uint) (*db.Book, error) {
	return r.getBook(r.db.WithContext(ctx), id)
}

// GetBookForUpdate retrieves a book and locks its row until the surrounding
// transaction ends. Dialects without row locks ignore the lock clause.
func (r *CatalogRepository) GetBookForUpdate(ctx context.Context, id uint) (*db.Book, error) {
	return r.getBook(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *CatalogRepository) getBook(query *gorm.DB, id uint) (*db.Book, error) {
	var book db.Book
	if err := query.Where("id = ?", id).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		r.log.Error("Failed to get book", zap.Uint("book_id", id), zap.Error(err))
		return nil, err
	}

	return &book, nil
}

// DecrementStock takes quantity copies of a book out of stock and adds them
// to its sales count. It reports false, changing nothing, when fewer than
// quantity copies are left.
func (r *CatalogRepository) DecrementStock(ctx context.Context, id uint, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&db.Book{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Updates(map[string]interface{}{
			"stock":       gorm.Expr("stock - ?", quantity),
			"sales_count": gorm.Expr("sales_count + ?", quantity),
		})
	if result.Error != nil {
		r.log.Error("Failed to decrement stock", zap.Uint("book_id", id), zap.Int("quantity", quantity), zap.Error(result.Error))
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// CreateBook adds a book to the catalog
func (r *CatalogRepository) CreateBook(ctx context.Context, book *db.Book) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(book).Error; err != nil {
		r.log.Error("Failed to create book", zap.String("title", book.Title), zap.Error(err))
		return fmt.Errorf("failed to create book: %w", err)
	}

	r.log.Debug("Book created", zap.Uint("book_id", book.ID), zap.String("title", book.Title))
	return nil
}

// ListPublishers returns the distinct, non-empty publishers in the catalog
func (r *CatalogRepository) ListPublishers(ctx context.Context) ([]string, error) {
	var publishers []string
	err := r.db.WithContext(ctx).
		Model(&db.Book{}).
		Where("publisher IS NOT NULL AND publisher <> ''").
		Distinct().
		Order("publisher").
		Pluck("publisher", &publishers).Error
	if err != nil {
		r.log.Error("Failed to list publishers", zap.Error(err))
		return nil, err
	}

	return publishers, nil
}

// TopSellers returns the best selling books, most sold first
func (r *CatalogRepository) TopSellers(ctx context.Context, limit int) ([]*db.Book, error) {
	var books []*db.Book
	err := r.db.WithContext(ctx).
		Preload("Category").
		Order("sales_count DESC, id ASC").
		Limit(limit).
		Find(&books).Error
	if err != nil {
		r.log.Error("Failed to list top sellers", zap.Error(err))
		return nil, err
	}

	return books, nil
}

// CountBooks returns the number of books in the catalog
func (r *CatalogRepository) CountBooks(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&db.Book{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return total, nil
}
