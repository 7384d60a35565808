package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/Sididaher/achat-app/config"
	"github.com/Sididaher/achat-app/database"
)

func main() {
	// Command line flags
	var (
		drop = flag.Bool("drop", false, "Drop all tables before migration")
		help = flag.Bool("help", false, "Show help")
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

	fmt.Println("🚀 Starting Database Migration Tool")
	fmt.Printf("📊 Database: %s@%s:%s/%s\n",
		cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Initialize database connection
	if err := database.Initialize(&cfg.Database); err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Check connection
	if err := database.CheckConnection(database.DB); err != nil {
		log.Printf("⚠️  Warning: %v", err)
	}

	// Drop tables if requested
	if *drop {
		fmt.Println("⚠️  Dropping all application tables...")
		if err := dropAllTables(); err != nil {
			log.Fatalf("❌ Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped")
	}

	// Run AutoMigrate
	fmt.Println("🔄 Running GORM AutoMigrate...")
	if err := database.AutoMigrate(database.DB); err != nil {
		log.Fatalf("❌ Failed to run migration: %v", err)
	}

	fmt.Println("✅ Migration completed successfully!")

	// Show table count
	var tableCount int64
	err = database.DB.Raw(`
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_type = 'BASE TABLE'
	`).Scan(&tableCount).Error

	if err == nil {
		fmt.Printf("📊 Total tables: %d\n", tableCount)
	}
}

func dropAllTables() error {
	// Reverse dependency order, although no foreign keys are enforced
	tables := []string{
		"purchase_items",
		"purchases",
		"products",
		"categories",
		"suppliers",
		"users",
	}

	for _, table := range tables {
		fmt.Printf("  Dropping table: %s\n", table)
		if err := database.DB.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			log.Printf("  Warning: Failed to drop %s: %v", table, err)
		}
	}

	return nil
}

func showHelp() {
	fmt.Println(`
Database Migration Tool

Usage:
  go run cmd/migrate/main.go [options]

Options:
  -drop     Drop all tables before migration (WARNING: Data loss!)
  -help     Show this help message

Examples:
  # Run migration (create/update tables)
  go run cmd/migrate/main.go

  # Drop all tables and recreate
  go run cmd/migrate/main.go -drop

Environment:
  Requires .env file or environment variables for database configuration:
  - DB_HOST
  - DB_PORT
  - DB_USER
  - DB_PASSWORD
  - DB_NAME`)
}
