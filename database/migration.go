package database

import (
	"fmt"
	"log"

	"github.com/Sididaher/achat-app/models"
	"gorm.io/gorm"
)

// AutoMigrate creates all tables in dependency order. Foreign key
// constraints are intentionally absent (see connection.go): a supplier,
// category or product can be deleted while rows still reference it.
func AutoMigrate(db *gorm.DB) error {
	log.Println("Starting GORM AutoMigrate...")

	for _, model := range models.AllModels() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	log.Println("Creating indexes...")
	if err := CreateIndexes(db); err != nil {
		log.Printf("Warning: Some indexes could not be created: %v", err)
	}

	log.Println("GORM AutoMigrate completed successfully")
	return nil
}

// CreateIndexes creates performance indexes
func CreateIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		{"idx_products_category", "CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)"},
		{"idx_products_supplier", "CREATE INDEX IF NOT EXISTS idx_products_supplier ON products(supplier_id)"},
		{"idx_products_name", "CREATE INDEX IF NOT EXISTS idx_products_name ON products(name)"},

		{"idx_purchases_supplier", "CREATE INDEX IF NOT EXISTS idx_purchases_supplier ON purchases(supplier_id)"},
		{"idx_purchases_user", "CREATE INDEX IF NOT EXISTS idx_purchases_user ON purchases(user_id)"},
		{"idx_purchases_date", "CREATE INDEX IF NOT EXISTS idx_purchases_date ON purchases(purchase_date)"},

		{"idx_purchase_items_purchase", "CREATE INDEX IF NOT EXISTS idx_purchase_items_purchase ON purchase_items(purchase_id)"},
		{"idx_purchase_items_product", "CREATE INDEX IF NOT EXISTS idx_purchase_items_product ON purchase_items(product_id)"},
	}

	successCount := 0
	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			log.Printf("  ⚠ Failed to create index %s: %v", idx.name, err)
		} else {
			successCount++
		}
	}

	if successCount > 0 {
		log.Printf("Successfully created %d indexes", successCount)
	}

	return nil
}
