package handlers

import (
	"strconv"
	"time"

	"github.com/Sididaher/achat-app/cache"
	"github.com/Sididaher/achat-app/models"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductStore is the persistence surface of the product screens.
type ProductStore interface {
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}

type ProductHandler struct {
	store ProductStore
	cache *cache.Cache
}

func NewProductHandler(store ProductStore, productCache *cache.Cache) *ProductHandler {
	return &ProductHandler{store: store, cache: productCache}
}

// ProductResponse is a product row expanded for display. Orphaned
// category/supplier references render as "-".
type ProductResponse struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	PriceDisplay  string          `json:"price_display"`
	Stock         int             `json:"stock"`
	CategoryID    *uint           `json:"category_id,omitempty"`
	SupplierID    *uint           `json:"supplier_id,omitempty"`
	CategoryName  string          `json:"category_name"`
	SupplierName  string          `json:"supplier_name"`
	ImageURL      string          `json:"image_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type productRequest struct {
	Name          string           `json:"name"`
	Description   *string          `json:"description"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	Stock         int              `json:"stock"`
	CategoryID    *uint            `json:"category_id"`
	SupplierID    *uint            `json:"supplier_id"`
	ImageURL      *string          `json:"image_url"`
}

func toProductResponse(p models.Product) ProductResponse {
	resp := ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   orDash(p.Description),
		PurchasePrice: p.PurchasePrice,
		PriceDisplay:  formatDH(p.PurchasePrice),
		Stock:         p.Stock,
		CategoryID:    p.CategoryID,
		SupplierID:    p.SupplierID,
		CategoryName:  "-",
		SupplierName:  "-",
		CreatedAt:     p.CreatedAt,
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	if p.Supplier != nil {
		resp.SupplierName = p.Supplier.Name
	}
	if p.ImageURL != nil {
		resp.ImageURL = *p.ImageURL
	}
	return resp
}

// List serves the full catalog, read through the cache when no search
// term is given, filtered in process otherwise.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	term := c.Query("q")

	var products []models.Product
	if term == "" {
		if cached, ok := h.cache.GetProducts(c.Context()); ok {
			products = cached
		}
	}
	if products == nil {
		fetched, err := h.store.GetAll()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch products"})
		}
		products = fetched
		if term == "" {
			h.cache.SetProducts(c.Context(), products)
		}
	}

	filtered := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		if matchesFilter(term, product.Name) {
			filtered = append(filtered, toProductResponse(product))
		}
	}

	return c.JSON(filtered)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.store.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	return c.JSON(toProductResponse(*product))
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON body"})
	}
	if req.Name == "" || req.PurchasePrice == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and purchase_price are required"})
	}
	if req.PurchasePrice.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "purchase_price must not be negative"})
	}

	product := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		PurchasePrice: *req.PurchasePrice,
		Stock:         req.Stock,
		CategoryID:    req.CategoryID,
		SupplierID:    req.SupplierID,
		ImageURL:      req.ImageURL,
	}
	if err := h.store.Create(&product); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create product"})
	}

	h.cache.InvalidateProducts(c.Context())
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(product))
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.store.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON body"})
	}
	if req.Name == "" || req.PurchasePrice == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and purchase_price are required"})
	}
	if req.PurchasePrice.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "purchase_price must not be negative"})
	}

	product.Name = req.Name
	product.Description = req.Description
	product.PurchasePrice = *req.PurchasePrice
	product.Stock = req.Stock
	product.CategoryID = req.CategoryID
	product.SupplierID = req.SupplierID
	product.ImageURL = req.ImageURL

	if err := h.store.Update(product); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update product"})
	}

	h.cache.InvalidateProducts(c.Context())
	return c.JSON(toProductResponse(*product))
}

// Delete removes the product immediately. Purchase items referencing it
// keep their stale product_id and render as "-".
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.store.Delete(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete product"})
	}

	h.cache.InvalidateProducts(c.Context())
	return c.SendStatus(fiber.StatusOK)
}
