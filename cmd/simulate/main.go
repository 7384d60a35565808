package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/Sididaher/achat-app/config"
	"github.com/Sididaher/achat-app/database"
	"github.com/Sididaher/achat-app/models"
	"github.com/shopspring/decimal"
)

// Generates purchase activity over a date range so the dashboard and
// purchase history have realistic data to show.
func main() {
	var (
		startDate  = flag.String("start", "2026-08-01", "Simulation start date (YYYY-MM-DD)")
		endDate    = flag.String("end", "2026-08-31", "Simulation end date (YYYY-MM-DD)")
		perDay     = flag.Int("per-day", 2, "Maximum purchases generated per day")
		seed       = flag.Bool("seed", false, "Run initial seed if database is empty")
		noQueryLog = flag.Bool("no-query-log", false, "Disable query logging during simulation")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := database.InitializeWithOptions(&cfg.Database, *noQueryLog); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	db := database.GetDB()
	log.Println("✅ Connected to database successfully")

	if *seed {
		var productCount int64
		db.Model(&models.Product{}).Count(&productCount)

		if productCount == 0 {
			log.Println("Database is empty, running initial seed...")
			if err := database.SeedData(db); err != nil {
				log.Fatalf("Failed to seed initial data: %v", err)
			}
			log.Println("✅ Initial seed completed")
		} else {
			log.Printf("Database already has %d products, skipping seed", productCount)
		}
	}

	start, err := time.Parse("2006-01-02", *startDate)
	if err != nil {
		log.Fatalf("Invalid start date: %v", err)
	}
	end, err := time.Parse("2006-01-02", *endDate)
	if err != nil {
		log.Fatalf("Invalid end date: %v", err)
	}
	if end.Before(start) {
		log.Fatalf("End date %s is before start date %s", *endDate, *startDate)
	}

	var products []models.Product
	if err := db.Find(&products).Error; err != nil {
		log.Fatalf("Failed to load products: %v", err)
	}
	var suppliers []models.Supplier
	if err := db.Find(&suppliers).Error; err != nil {
		log.Fatalf("Failed to load suppliers: %v", err)
	}
	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		log.Fatalf("Failed to load users: %v", err)
	}
	if len(products) == 0 || len(suppliers) == 0 || len(users) == 0 {
		log.Fatal("Need products, suppliers and users before simulating. Run with -seed first.")
	}

	purchases := models.NewPurchasesRepository(db)

	created := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		for i := 0; i < 1+rng.Intn(*perDay); i++ {
			supplier := suppliers[rng.Intn(len(suppliers))]
			user := users[rng.Intn(len(users))]

			itemCount := 1 + rng.Intn(3)
			items := make([]models.PurchaseItem, 0, itemCount)
			total := decimal.Zero
			for j := 0; j < itemCount; j++ {
				product := products[rng.Intn(len(products))]
				item := models.PurchaseItem{
					ProductID: product.ID,
					Quantity:  1 + rng.Intn(20),
					UnitPrice: product.PurchasePrice,
				}
				items = append(items, item)
				total = total.Add(item.Subtotal())
			}

			purchase := models.Purchase{
				UserID:       &user.ID,
				SupplierID:   &supplier.ID,
				PurchaseDate: day,
				Total:        total,
			}
			if err := purchases.CreateWithItems(&purchase, items); err != nil {
				log.Fatalf("Failed to create purchase on %s: %v", day.Format("2006-01-02"), err)
			}
			created++
		}
	}

	fmt.Printf("\n✨ Simulation complete: %d purchases created between %s and %s\n",
		created, *startDate, *endDate)
}
