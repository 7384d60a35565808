package web

import (
	"fmt"
	"log"

	"github.com/Sididaher/achat-app/cache"
	"github.com/Sididaher/achat-app/config"
	"github.com/Sididaher/achat-app/database"
	"github.com/Sididaher/achat-app/models"
	"github.com/Sididaher/achat-app/storage"
	"github.com/Sididaher/achat-app/web/handlers"
	"github.com/Sididaher/achat-app/web/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Server wraps the Fiber application and its configuration.
type Server struct {
	app *fiber.App
	cfg *config.Config
}

// NewServer builds the application, wires repositories to handlers and
// registers all routes.
func NewServer(cfg *config.Config, productCache *cache.Cache, fileStore *storage.LocalStore) *Server {
	app := fiber.New(fiber.Config{
		AppName: "achat-app",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.Printf("request failed: %s %s: %v", c.Method(), c.Path(), err)
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${method} ${path}\n",
	}))
	app.Use(middleware.SQLDebug())

	app.Static(cfg.Storage.BaseURL, cfg.Storage.Root)

	db := database.GetDB()
	users := models.NewUsersRepository(db)
	suppliers := models.NewSuppliersRepository(db)
	categories := models.NewCategoriesRepository(db)
	products := models.NewProductsRepository(db)
	purchases := models.NewPurchasesRepository(db)
	stats := models.NewStatsRepository(db)

	authHandler := handlers.NewAuthHandler(users, cfg.App.JWTSecret)
	userHandler := handlers.NewUserHandler(users)
	supplierHandler := handlers.NewSupplierHandler(suppliers)
	categoryHandler := handlers.NewCategoryHandler(categories)
	productHandler := handlers.NewProductHandler(products, productCache)
	purchaseHandler := handlers.NewPurchaseHandler(purchases, productCache)
	uploadHandler := handlers.NewUploadHandler(fileStore, cfg.Storage.Bucket)
	homeHandler := handlers.NewHomeHandler(stats)

	app.Post("/auth/login", authHandler.Login)

	auth := middleware.RequireAuth(cfg.App.JWTSecret)

	app.Get("/", auth, homeHandler.Dashboard)
	app.Get("/auth/session", auth, authHandler.Session)
	app.Post("/auth/logout", auth, authHandler.Logout)

	userRoutes := app.Group("/users", auth)
	userRoutes.Get("/", userHandler.List)
	userRoutes.Post("/", userHandler.Create)
	userRoutes.Put("/:id", userHandler.Update)
	userRoutes.Delete("/:id", userHandler.Delete)

	supplierRoutes := app.Group("/suppliers", auth)
	supplierRoutes.Get("/", supplierHandler.List)
	supplierRoutes.Get("/:id", supplierHandler.Get)
	supplierRoutes.Post("/", supplierHandler.Create)
	supplierRoutes.Put("/:id", supplierHandler.Update)
	supplierRoutes.Delete("/:id", supplierHandler.Delete)

	categoryRoutes := app.Group("/categories", auth)
	categoryRoutes.Get("/", categoryHandler.List)
	categoryRoutes.Post("/", categoryHandler.Create)
	categoryRoutes.Put("/:id", categoryHandler.Update)
	categoryRoutes.Delete("/:id", categoryHandler.Delete)

	productRoutes := app.Group("/products", auth)
	productRoutes.Get("/", productHandler.List)
	productRoutes.Get("/:id", productHandler.Get)
	productRoutes.Post("/", productHandler.Create)
	productRoutes.Put("/:id", productHandler.Update)
	productRoutes.Delete("/:id", productHandler.Delete)

	purchaseRoutes := app.Group("/purchases", auth)
	purchaseRoutes.Get("/", purchaseHandler.List)
	purchaseRoutes.Get("/:id", purchaseHandler.Get)
	purchaseRoutes.Post("/", purchaseHandler.Create)
	purchaseRoutes.Delete("/:id", purchaseHandler.Delete)

	app.Post("/uploads", auth, uploadHandler.Upload)

	debug := app.Group("/api/debug")
	debug.Get("/sql", handlers.GetSQLLogs)
	debug.Delete("/sql", handlers.ClearSQLLogs)

	return &Server{app: app, cfg: cfg}
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.cfg.App.Port)
	log.Printf("Server listening on %s", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
