package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bookstore/storefront/internal/db"
	"github.com/bookstore/storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *db.DB {
	database, err := db.OpenSQLite(":memory:", gormlogger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database))
	return database
}

func newCategory(t *testing.T, database *db.DB, name string, parent *uint) *db.Category {
	category := &db.Category{Name: name, ParentID: parent}
	require.NoError(t, database.Create(category).Error)
	return category
}

func pubDate(year int) *time.Time {
	d := time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestCreateAndGetBook(t *testing.T) {
	database := setupTestDB(t)
	repo := NewCatalogRepository(database, logger.NewLogger("test", "info"))
	ctx := context.Background()

	category := newCategory(t, database, "Programming", nil)
	book := &db.Book{
		Title:      "The Go Programming Language",
		Author:     "Donovan",
		Price:      decimal.RequireFromString("79.00"),
		SalePrice:  decimal.NewNullDecimal(decimal.RequireFromString("55.3")),
		Stock:      10,
		CategoryID: category.ID,
	}

	require.NoError(t, repo.CreateBook(ctx, book))
	assert.NotZero(t, book.ID)

	retrieved, err := repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Go Programming Language", retrieved.Title)
	assert.True(t, retrieved.Price.Equal(decimal.NewFromInt(79)))
	assert.True(t, retrieved.SalePrice.Valid)
	assert.True(t, retrieved.UnitPrice().Equal(decimal.RequireFromString("55.3")))
	assert.Equal(t, 10, retrieved.Stock)
}

func TestGetBookNotFound(t *testing.T) {
	database := setupTestDB(t)
	repo := NewCatalogRepository(database, logger.NewLogger("test", "info"))

	_, err := repo.GetBook(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookNotFound)

	_, err = repo.GetBookForUpdate(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func seedCatalog(t *testing.T, database *db.DB) (fiction, history *db.Category) {
	repo := NewCatalogRepository(database, logger.NewLogger("test", "info"))
	ctx := context.Background()

	fiction = newCategory(t, database, "Fiction", nil)
	history = newCategory(t, database, "History", nil)

	books := []*db.Book{
		{Title: "To Live", Author: "Yu Hua", Publisher: "October Press", PubDate: pubDate(2019), SalesCount: 50, CategoryID: fiction.ID},
		{Title: "Fortress Besieged", Author: "Qian Zhongshu", Publisher: "People's Literature", PubDate: pubDate(2020), SalesCount: 900, CategoryID: fiction.ID},
		{Title: "1587, A Year of No Significance", Author: "Ray Huang", Publisher: "Zhonghua", PubDate: pubDate(2019), SalesCount: 300, CategoryID: history.ID},
		{Title: "Sapiens", Author: "Harari", Publisher: "", SalesCount: 900, CategoryID: history.ID},
	}
	for _, book := range books {
		book.Price = decimal.NewFromInt(40)
		book.Stock = 5
		require.NoError(t, repo.CreateBook(ctx, book))
	}

	return fiction, history
}

func TestListBooksFilters(t *testing.T) {
	database := setupTestDB(t)
	repo := NewCatalogRepository(database, logger.NewLogger("test", "info"))
	ctx := context.Background()
	fiction, _ := seedCatalog(t, database)

	books, total, err := repo.ListBooks(ctx, BookFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, books, 4)
	require.NotNil(t, books[0].Category)
	assert.Equal(t, "Fiction", books[0].Category.Name)

	_, total, err = repo.ListBooks(ctx, BookFilter{CategoryID: fiction.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// keyword matches title or author, ignoring case
	books, total, err = repo.ListBooks(ctx, BookFilter{Keyword: "HUANG"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "1587, A Year of No Significance", books[0].Title)

	_, total, err = repo.ListBooks(ctx, BookFilter{Keyword: "live"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = repo.ListBooks(ctx, BookFilter{Publisher: "Zhonghua"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	books, total, err = repo.ListBooks(ctx, BookFilter{Year: 2019})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, b := range books {
		assert.Equal(t, 2019, b.PubDate.Year())
	}

	_, total, err = repo.ListBooks(ctx, BookFilter{Year: 2019, CategoryID: fiction.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestCreateBookDefaultStock(t *testing.T) {
	database := setupTestDB(t)
	repo := NewCatalogRepository(database, logger.NewLogger("test", "info"))
	ctx := context.Background()
	category := newCategory(t, database, "Fiction", nil)

	book := &db.Book{Title: "Unstocked", Author: "A", Price: decimal.NewFromInt(1), CategoryID: category.ID}
	require.NoError(t, repo.CreateBook(ctx, book))

	got, err := repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Stock)
	assert.Equal(t, 0, got.SalesCount)
}

func TestListBooksPagination(t *testing.T) {
	database := setupTestDB(t)
	repo := NewCatalogRepository(database, logger.NewLogger("test", "info"))
	ctx := context.Background()
	category := newCategory(t, database, "Fiction", nil)

	for i := 0; i < 15; i++ {
		require.NoError(t, repo.CreateBook(ctx, &db.Book{Title: "Book", Author: "A", Price: decimal.NewFromInt(1), CategoryID: category.ID}))
	}

	first, total, err := repo.ListBooks(ctx, BookFilter{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, first, DefaultPageSize)

	second, _, err := repo.ListBooks(ctx, BookFilter{Page: 2})
	require.NoError(t, err)
	assert.Len(t, second, 3)
	assert.Greater(t, second[0].ID, first[len(first)-1].ID)

	beyond, _, err := repo.ListBooks(ctx, BookFilter{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 12))
	assert.Equal(t, 1, TotalPages(12, 12))
	assert.Equal(t, 2, TotalPages(13, 12))
	assert.Equal(t, 5, TotalPages(60, 0))
}

func TestListPublishers(t *testing.T) {
	database := setupTestDB(t)
	repo := NewCatalogRepository(database, logger.NewLogger("test", "info"))
	seedCatalog(t, database)

	publishers, err := repo.ListPublishers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"October Press", "People's Literature", "Zhonghua"}, publishers)
}

func TestTopSellers(t *testing.T) {
	database := setupTestDB(t)
	repo := NewCatalogRepository(database, logger.NewLogger("test", "info"))
	seedCatalog(t, database)

	books, err := repo.TopSellers(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "Fortress Besieged", books[0].Title)
	assert.Equal(t, "Sapiens", books[1].Title)
	assert.Equal(t, "1587, A Year of No Significance", books[2].Title)
}

func TestDecrementStock(t *testing.T) {
	database := setupTestDB(t)
	repo := NewCatalogRepository(database, logger.NewLogger("test", "info"))
	ctx := context.Background()
	category := newCategory(t, database, "Fiction", nil)

	book := &db.Book{Title: "T", Author: "A", Price: decimal.NewFromInt(1), Stock: 5, SalesCount: 7, CategoryID: category.ID}
	require.NoError(t, repo.CreateBook(ctx, book))

	ok, err := repo.DecrementStock(ctx, book.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DecrementStock(ctx, book.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)
	assert.Equal(t, 10, got.SalesCount)
}

func TestWithTxRollsBack(t *testing.T) {
	database := setupTestDB(t)
	repo := NewCatalogRepository(database, logger.NewLogger("test", "info"))
	ctx := context.Background()
	category := newCategory(t, database, "Fiction", nil)

	book := &db.Book{Title: "T", Author: "A", Price: decimal.NewFromInt(1), Stock: 5, CategoryID: category.ID}
	require.NoError(t, repo.CreateBook(ctx, book))

	errAbort := errors.New("abort")
	err := database.Transaction(func(tx *gorm.DB) error {
		ok, err := repo.WithTx(tx).DecrementStock(ctx, book.ID, 5)
		require.NoError(t, err)
		require.True(t, ok)
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	got, err := repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)
}

func TestCountBooks(t *testing.T) {
	database := setupTestDB(t)
	repo := NewCatalogRepository(database, logger.NewLogger("test", "info"))
	seedCatalog(t, database)

	total, err := repo.CountBooks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}
