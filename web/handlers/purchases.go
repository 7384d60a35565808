package handlers

import (
	"strconv"
	"time"

	"github.com/Sididaher/achat-app/cache"
	"github.com/Sididaher/achat-app/models"
	"github.com/Sididaher/achat-app/web/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// PurchaseStore is the persistence surface of the purchase screens.
type PurchaseStore interface {
	GetAll() ([]models.Purchase, error)
	GetByID(id uint) (*models.Purchase, error)
	GetItems(purchaseID uint) ([]models.PurchaseItem, error)
	CreateWithItems(purchase *models.Purchase, items []models.PurchaseItem) error
	Delete(id uint) error
}

type PurchaseHandler struct {
	store PurchaseStore
	cache *cache.Cache
}

func NewPurchaseHandler(store PurchaseStore, productCache *cache.Cache) *PurchaseHandler {
	return &PurchaseHandler{store: store, cache: productCache}
}

type purchaseItemRequest struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type createPurchaseRequest struct {
	SupplierID   uint                  `json:"supplier_id"`
	PurchaseDate string                `json:"purchase_date"`
	Items        []purchaseItemRequest `json:"items"`
}

// PurchaseResponse is a purchase header expanded for display.
type PurchaseResponse struct {
	ID           uint            `json:"id"`
	PurchaseDate string          `json:"purchase_date"`
	SupplierName string          `json:"supplier_name"`
	Username     string          `json:"username"`
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"total_display"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PurchaseItemResponse is a line item expanded with its product. The
// subtotal is derived per row; the displayed total always comes from
// the stored header value.
type PurchaseItemResponse struct {
	ID                 uint            `json:"id"`
	ProductID          uint            `json:"product_id"`
	ProductName        string          `json:"product_name"`
	ProductDescription string          `json:"product_description"`
	ProductImageURL    string          `json:"product_image_url,omitempty"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	SubtotalDisplay    string          `json:"subtotal_display"`
}

type purchaseDetailResponse struct {
	PurchaseResponse
	SupplierContact string                 `json:"supplier_contact"`
	SupplierPhone   string                 `json:"supplier_phone"`
	UserEmail       string                 `json:"user_email"`
	Items           []PurchaseItemResponse `json:"items"`
}

func toPurchaseResponse(p models.Purchase) PurchaseResponse {
	resp := PurchaseResponse{
		ID:           p.ID,
		PurchaseDate: p.PurchaseDate.Format("2006-01-02"),
		SupplierName: "-",
		Username:     "-",
		Total:        p.Total,
		TotalDisplay: formatDH(p.Total),
		CreatedAt:    p.CreatedAt,
	}
	if p.Supplier != nil {
		resp.SupplierName = p.Supplier.Name
	}
	if p.User != nil {
		resp.Username = p.User.Username
	}
	return resp
}

func toPurchaseItemResponse(item models.PurchaseItem) PurchaseItemResponse {
	resp := PurchaseItemResponse{
		ID:                 item.ID,
		ProductID:          item.ProductID,
		ProductName:        "-",
		ProductDescription: "-",
		Quantity:           item.Quantity,
		UnitPrice:          item.UnitPrice,
		Subtotal:           item.Subtotal(),
		SubtotalDisplay:    formatDH(item.Subtotal()),
	}
	if item.Product != nil {
		resp.ProductName = item.Product.Name
		resp.ProductDescription = orDash(item.Product.Description)
		if item.Product.ImageURL != nil {
			resp.ProductImageURL = *item.Product.ImageURL
		}
	}
	return resp
}

// List fetches all purchases expanded with supplier and user, filtered
// in process over supplier name and date.
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	purchases, err := h.store.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch purchases"})
	}

	term := c.Query("q")
	filtered := make([]PurchaseResponse, 0, len(purchases))
	for _, purchase := range purchases {
		resp := toPurchaseResponse(purchase)
		if matchesFilter(term, resp.SupplierName, resp.PurchaseDate) {
			filtered = append(filtered, resp)
		}
	}

	return c.JSON(filtered)
}

// Get fetches one purchase header and, separately, its line items.
func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid purchase ID"})
	}

	purchase, err := h.store.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Purchase not found"})
	}

	items, err := h.store.GetItems(purchase.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch purchase items"})
	}

	resp := purchaseDetailResponse{
		PurchaseResponse: toPurchaseResponse(*purchase),
		SupplierContact:  "-",
		SupplierPhone:    "-",
		UserEmail:        "-",
		Items:            make([]PurchaseItemResponse, 0, len(items)),
	}
	if purchase.Supplier != nil {
		resp.SupplierContact = orDash(purchase.Supplier.Contact)
		resp.SupplierPhone = orDash(purchase.Supplier.Phone)
	}
	if purchase.User != nil {
		resp.UserEmail = purchase.User.Email
	}
	for _, item := range items {
		resp.Items = append(resp.Items, toPurchaseItemResponse(item))
	}

	return c.JSON(resp)
}

// Create records a purchase: header, line items and stock adjustments
// committed together. Entries with product_id 0 are silently excluded;
// a submission with no included entries still creates a header with
// total 0.00 and no items.
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var req createPurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON body"})
	}
	if req.SupplierID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "supplier_id is required"})
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "purchase_date must be in YYYY-MM-DD format"})
		}
		purchaseDate = parsed
	}

	items := make([]models.PurchaseItem, 0, len(req.Items))
	total := decimal.Zero
	for _, entry := range req.Items {
		if entry.ProductID == 0 {
			continue
		}
		if entry.Quantity <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "quantity must be greater than zero"})
		}
		if entry.UnitPrice.IsNegative() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unit_price must not be negative"})
		}
		item := models.PurchaseItem{
			ProductID: entry.ProductID,
			Quantity:  entry.Quantity,
			UnitPrice: entry.UnitPrice,
		}
		items = append(items, item)
		total = total.Add(item.Subtotal())
	}

	purchase := models.Purchase{
		SupplierID:   &req.SupplierID,
		PurchaseDate: purchaseDate,
		Total:        total,
	}
	if userID, ok := middleware.CurrentUserID(c); ok {
		purchase.UserID = &userID
	}

	if err := h.store.CreateWithItems(&purchase, items); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create purchase"})
	}

	// Stock changed, the cached catalog is stale
	h.cache.InvalidateProducts(c.Context())

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":            purchase.ID,
		"purchase_date": purchase.PurchaseDate.Format("2006-01-02"),
		"total":         purchase.Total,
		"total_display": formatDH(purchase.Total),
		"item_count":    len(items),
	})
}

// Delete removes a purchase and its items. Stock is left as is.
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid purchase ID"})
	}

	if err := h.store.Delete(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete purchase"})
	}

	return c.SendStatus(fiber.StatusOK)
}
