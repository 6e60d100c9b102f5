package seed

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"time"

	"github.com/bookstore/storefront/internal/auth"
	"github.com/bookstore/storefront/internal/db"
	"github.com/bookstore/storefront/internal/repo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	AdminUsername = "admin"
	AdminPassword = "123456"
	adminEmail    = "admin@test.com"

	bookLanguage = "English"
)

var unsafeFilenameChars = regexp.MustCompile(`[\\/:*?"<>|：·\s]`)

// ImageFilename derives a cover file name from a book title.
func ImageFilename(title string) string {
	return unsafeFilenameChars.ReplaceAllString(title, "") + ".jpg"
}

// Run fills an empty catalog with the demo categories, books and the admin
// account. It reports false without writing anything when books already
// exist.
func Run(ctx context.Context, database *db.DB, hasher *auth.PasswordHasher, rng *rand.Rand, log *zap.Logger) (bool, error) {
	existing, err := repo.NewCatalogRepository(database, log).CountBooks(ctx)
	if err != nil {
		return false, err
	}
	if existing > 0 {
		log.Info("Catalog already populated, skipping seed", zap.Int64("books", existing))
		return false, nil
	}

	hash, err := hasher.Hash(AdminPassword)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	err = database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scoped := &db.DB{DB: tx}

		categoryIDs, err := seedCategories(ctx, repo.NewCategoryRepository(scoped, log))
		if err != nil {
			return err
		}

		catalog := repo.NewCatalogRepository(scoped, log)
		for _, b := range books {
			book := newBook(b, categoryIDs[b.Category], rng)
			if err := catalog.CreateBook(ctx, book); err != nil {
				return err
			}
		}

		email := adminEmail
		return repo.NewAccountRepository(scoped, log).CreateCustomer(ctx, &db.Customer{
			Username:     AdminUsername,
			Email:        &email,
			PasswordHash: hash,
		})
	})
	if err != nil {
		return false, fmt.Errorf("failed to seed catalog: %w", err)
	}

	log.Info("Catalog seeded", zap.Int("books", len(books)), zap.Int("root_categories", len(categoryTree)))
	return true, nil
}

func seedCategories(ctx context.Context, categories *repo.CategoryRepository) (map[string]uint, error) {
	ids := make(map[string]uint)
	for _, root := range categoryTree {
		parent := &db.Category{Name: root.Name}
		if err := categories.CreateCategory(ctx, parent); err != nil {
			return nil, err
		}
		ids[root.Name] = parent.ID

		for _, name := range root.Children {
			child := &db.Category{Name: name, ParentID: &parent.ID}
			if err := categories.CreateCategory(ctx, child); err != nil {
				return nil, err
			}
			ids[name] = child.ID
		}
	}
	return ids, nil
}

// newBook fills in the randomised fields: a 60-90% sale price rounded to
// one decimal, a first-of-month publication date in 2018-2024, page count,
// sales and stock.
func newBook(b bookSeed, categoryID uint, rng *rand.Rand) *db.Book {
	price := decimal.NewFromFloat(b.Price)
	sale := price.Mul(decimal.NewFromFloat(0.6 + rng.Float64()*0.3)).Round(1)
	published := time.Date(2018+rng.Intn(7), time.Month(1+rng.Intn(12)), 1, 0, 0, 0, 0, time.UTC)

	return &db.Book{
		Title:      b.Title,
		Author:     b.Author,
		Price:      price,
		SalePrice:  decimal.NewNullDecimal(sale),
		Publisher:  b.Publisher,
		PubDate:    &published,
		Pages:      200 + rng.Intn(601),
		Language:   bookLanguage,
		ImageURL:   "/images/" + ImageFilename(b.Title),
		CategoryID: categoryID,
		SalesCount: rng.Intn(2001),
		Stock:      50 + rng.Intn(151),
	}
}
