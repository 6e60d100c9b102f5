package repo

import (
	"context"
	"fmt"

	"github.com/bookstore/storefront/internal/db"
	"go.uber.org/zap"
)

// CategoryRepository handles the category tree
type CategoryRepository struct {
	db  *db.DB
	log *zap.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(database *db.DB, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:  database,
		log: logger,
	}
}

// CreateCategory stores a category. Set ParentID to nest it.
func (r *CategoryRepository) CreateCategory(ctx context.Context, category *db.Category) error {
	if err := r.db.WithContext(ctx).Omit("Parent").Create(category).Error; err != nil {
		r.log.Error("Failed to create category", zap.String("name", category.Name), zap.Error(err))
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// ListCategories returns every category ordered by id
func (r *CategoryRepository) ListCategories(ctx context.Context) ([]db.Category, error) {
	var categories []db.Category
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		r.log.Error("Failed to list categories", zap.Error(err))
		return nil, err
	}
	return categories, nil
}

// Tree returns the root categories with their descendants attached
func (r *CategoryRepository) Tree(ctx context.Context) ([]*CategoryNode, error) {
	categories, err := r.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return BuildCategoryTree(categories, DefaultMaxCategoryDepth), nil
}
