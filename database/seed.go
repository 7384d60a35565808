package database

import (
	"fmt"
	"log"
	"time"

	"github.com/Sididaher/achat-app/models"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedData seeds initial data into empty tables
func SeedData(db *gorm.DB) error {
	log.Println("Checking if database needs seeding...")

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Println("Database already has data. Skipping seed.")
		return nil
	}

	log.Println("Database is empty. Starting seed process...")

	return db.Transaction(func(tx *gorm.DB) error {
		users, err := seedUsers(tx)
		if err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}

		suppliers, err := seedSuppliers(tx)
		if err != nil {
			return fmt.Errorf("failed to seed suppliers: %w", err)
		}

		categories, err := seedCategories(tx)
		if err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}

		products, err := seedProducts(tx, categories, suppliers)
		if err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}

		if err := seedPurchases(tx, users, suppliers, products); err != nil {
			return fmt.Errorf("failed to seed purchases: %w", err)
		}

		log.Println("Seed completed successfully")
		return nil
	})
}

func seedUsers(tx *gorm.DB) ([]models.User, error) {
	users := []models.User{
		{Username: "admin", Email: "admin@achat.local", Role: models.RoleAdmin},
		{Username: "karim", Email: "karim@achat.local", Role: models.RoleEmployee},
	}
	for i := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		users[i].Password = string(hashed)
		if err := tx.Create(&users[i]).Error; err != nil {
			return nil, err
		}
	}
	log.Printf("  ✓ Seeded %d users (password: password123)", len(users))
	return users, nil
}

func seedSuppliers(tx *gorm.DB) ([]models.Supplier, error) {
	suppliers := []models.Supplier{
		{Name: "Acme", Contact: strPtr("Hassan El Amrani"), Phone: strPtr("0600000000"), Address: strPtr("12 Rue des Orangers, Casablanca")},
		{Name: "Globex Distribution", Contact: strPtr("Sara Benali"), Phone: strPtr("0611223344")},
		{Name: "Atlas Fournitures", Phone: strPtr("0522334455"), Address: strPtr("Zone Industrielle, Tanger")},
	}
	for i := range suppliers {
		if err := tx.Create(&suppliers[i]).Error; err != nil {
			return nil, err
		}
	}
	log.Printf("  ✓ Seeded %d suppliers", len(suppliers))
	return suppliers, nil
}

func seedCategories(tx *gorm.DB) ([]models.Category, error) {
	categories := []models.Category{
		{Name: "Outillage", Description: strPtr("Outils et quincaillerie")},
		{Name: "Électronique"},
		{Name: "Consommables", Description: strPtr("Fournitures à rotation rapide")},
	}
	for i := range categories {
		if err := tx.Create(&categories[i]).Error; err != nil {
			return nil, err
		}
	}
	log.Printf("  ✓ Seeded %d categories", len(categories))
	return categories, nil
}

func seedProducts(tx *gorm.DB, categories []models.Category, suppliers []models.Supplier) ([]models.Product, error) {
	products := []models.Product{
		{
			Name:          "Widget",
			PurchasePrice: decimal.RequireFromString("10.00"),
			Stock:         5,
			CategoryID:    &categories[0].ID,
			SupplierID:    &suppliers[0].ID,
		},
		{
			Name:          "Câble HDMI 2m",
			Description:   strPtr("Câble vidéo haute vitesse"),
			PurchasePrice: decimal.RequireFromString("45.50"),
			Stock:         30,
			CategoryID:    &categories[1].ID,
			SupplierID:    &suppliers[1].ID,
		},
		{
			Name:          "Ruban adhésif",
			PurchasePrice: decimal.RequireFromString("7.90"),
			Stock:         0,
			CategoryID:    &categories[2].ID,
		},
	}
	for i := range products {
		if err := tx.Create(&products[i]).Error; err != nil {
			return nil, err
		}
	}
	log.Printf("  ✓ Seeded %d products", len(products))
	return products, nil
}

func seedPurchases(tx *gorm.DB, users []models.User, suppliers []models.Supplier, products []models.Product) error {
	items := []models.PurchaseItem{
		{ProductID: products[1].ID, Quantity: 10, UnitPrice: decimal.RequireFromString("45.50")},
		{ProductID: products[2].ID, Quantity: 50, UnitPrice: decimal.RequireFromString("7.90")},
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	purchase := models.Purchase{
		UserID:       &users[0].ID,
		SupplierID:   &suppliers[1].ID,
		PurchaseDate: time.Now().AddDate(0, 0, -7),
		Total:        total,
	}
	if err := tx.Create(&purchase).Error; err != nil {
		return err
	}

	for i := range items {
		items[i].PurchaseID = purchase.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Product{}).
			Where("id = ?", items[i].ProductID).
			UpdateColumn("stock", gorm.Expr("stock + ?", items[i].Quantity)).Error; err != nil {
			return err
		}
	}

	log.Printf("  ✓ Seeded 1 purchase with %d items (total %s DH)", len(items), total.StringFixed(2))
	return nil
}

func strPtr(s string) *string {
	return &s
}
