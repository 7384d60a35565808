package handlers

import (
	"github.com/Sididaher/achat-app/database"
	"github.com/Sididaher/achat-app/models"
	"github.com/gofiber/fiber/v2"
)

const lowStockThreshold = 10

// StatsStore is the aggregate surface of the dashboard.
type StatsStore interface {
	GetOverview() (*models.Overview, error)
	GetLowStock(threshold int) ([]models.Product, error)
	GetRecentPurchases(limit int) ([]models.Purchase, error)
}

type HomeHandler struct {
	store StatsStore
}

func NewHomeHandler(store StatsStore) *HomeHandler {
	return &HomeHandler{store: store}
}

// Dashboard serves the entity counts, cumulative spend, low stock
// products and latest purchases.
func (h *HomeHandler) Dashboard(c *fiber.Ctx) error {
	overview, err := h.store.GetOverview()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}

	lowStock, err := h.store.GetLowStock(lowStockThreshold)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch low stock products"})
	}

	recent, err := h.store.GetRecentPurchases(5)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch recent purchases"})
	}

	recentResponses := make([]PurchaseResponse, 0, len(recent))
	for _, purchase := range recent {
		recentResponses = append(recentResponses, toPurchaseResponse(purchase))
	}

	lowStockResponses := make([]ProductResponse, 0, len(lowStock))
	for _, product := range lowStock {
		lowStockResponses = append(lowStockResponses, toProductResponse(product))
	}

	return c.JSON(fiber.Map{
		"total_products":      overview.TotalProducts,
		"total_suppliers":     overview.TotalSuppliers,
		"total_categories":    overview.TotalCategories,
		"total_purchases":     overview.TotalPurchases,
		"total_spend":         overview.TotalSpend,
		"total_spend_display": formatDH(overview.TotalSpend),
		"low_stock":           lowStockResponses,
		"recent_purchases":    recentResponses,
	})
}

// GetSQLLogs returns recent SQL queries for debugging
func GetSQLLogs(c *fiber.Ctx) error {
	logs := database.SQLLogger.Recent(20)
	return c.JSON(fiber.Map{
		"queries": logs,
		"count":   len(logs),
		"total":   database.SQLLogger.Count(),
	})
}

// ClearSQLLogs empties the in-memory SQL query log
func ClearSQLLogs(c *fiber.Ctx) error {
	database.SQLLogger.Clear()
	return c.JSON(fiber.Map{"message": "SQL logs cleared"})
}
