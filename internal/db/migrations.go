package db

import (
	"gorm.io/gorm"
)

// RunMigrations creates or updates the schema. Tables are migrated parents
// first so foreign keys resolve.
func RunMigrations(db *DB) error {
	if err := db.AutoMigrate(&Category{}, &Book{}, &Customer{}, &Order{}, &OrderItem{}); err != nil {
		return err
	}

	if err := createIndexes(db.DB); err != nil {
		return err
	}

	return nil
}

func createIndexes(db *gorm.DB) error {
	// Statements must stay valid on both postgres and sqlite.
	indexes := []string{
		// Order history is read per customer, newest first
		`CREATE INDEX IF NOT EXISTS idx_orders_customer_created ON orders(customer_id, created_at)`,
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			return err
		}
	}

	return nil
}
