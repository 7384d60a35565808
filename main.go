package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sididaher/achat-app/cache"
	"github.com/Sididaher/achat-app/config"
	"github.com/Sididaher/achat-app/database"
	"github.com/Sididaher/achat-app/storage"
	"github.com/Sididaher/achat-app/web"
)

func main() {
	// Command line flags
	var (
		migrate = flag.Bool("migrate", false, "Run database migration on startup")
		seed    = flag.Bool("seed", false, "Seed database with sample data")
		help    = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *help {
		showHelp()
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	if err := database.Initialize(&cfg.Database); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := database.CheckConnection(database.DB); err != nil {
		log.Fatalf("Database connection check failed: %v", err)
	}

	// Run migration if requested
	if *migrate {
		log.Println("Running database migration...")
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Println("Migration completed successfully")
	}

	// Seed database if requested
	if *seed {
		log.Println("Seeding database with sample data...")
		if err := database.SeedData(database.DB); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
		log.Println("Database seeded successfully")
	}

	// The cache is optional: without REDIS_ADDR the handlers run
	// straight against the database.
	var productCache *cache.Cache
	if cfg.Redis.Addr != "" {
		productCache, err = cache.New(cfg.Redis.Addr)
		if err != nil {
			log.Printf("Redis unavailable, continuing without cache: %v", err)
			productCache = nil
		}
	}

	fileStore, err := storage.NewLocalStore(cfg.Storage.Root, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}
	if err := fileStore.EnsureBucket(cfg.Storage.Bucket); err != nil {
		log.Fatalf("Failed to prepare storage bucket: %v", err)
	}

	// Create and start web server
	server := web.NewServer(cfg, productCache, fileStore)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

func showHelp() {
	log.Println(`
Purchasing & Inventory Server

Usage:
  go run main.go [options]

Options:
  -migrate  Run GORM AutoMigrate on startup
  -seed     Seed database with sample data
  -help     Show this help message

Examples:
  # Start server only
  go run main.go

  # Start server with migration
  go run main.go -migrate

  # Start server with migration and seed
  go run main.go -migrate -seed

For full migration control, use:
  go run cmd/migrate/main.go

For full seed control, use:
  go run cmd/seed/main.go`)
}
