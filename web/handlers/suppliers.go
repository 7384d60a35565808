package handlers

import (
	"strconv"

	"github.com/Sididaher/achat-app/models"
	"github.com/gofiber/fiber/v2"
)

// SupplierStore is the persistence surface of the supplier screens.
type SupplierStore interface {
	GetAll() ([]models.Supplier, error)
	GetByID(id uint) (*models.Supplier, error)
	Create(supplier *models.Supplier) error
	Update(supplier *models.Supplier) error
	Delete(id uint) error
}

type SupplierHandler struct {
	store SupplierStore
}

func NewSupplierHandler(store SupplierStore) *SupplierHandler {
	return &SupplierHandler{store: store}
}

type supplierRequest struct {
	Name    string  `json:"name"`
	Contact *string `json:"contact"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// List fetches all suppliers and applies the in-memory search filter
// over name and phone.
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	suppliers, err := h.store.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch suppliers"})
	}

	term := c.Query("q")
	filtered := make([]models.Supplier, 0, len(suppliers))
	for _, supplier := range suppliers {
		var phone string
		if supplier.Phone != nil {
			phone = *supplier.Phone
		}
		if matchesFilter(term, supplier.Name, phone) {
			filtered = append(filtered, supplier)
		}
	}

	return c.JSON(filtered)
}

func (h *SupplierHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	supplier, err := h.store.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Supplier not found"})
	}

	return c.JSON(supplier)
}

func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var req supplierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	supplier := models.Supplier{
		Name:    req.Name,
		Contact: req.Contact,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := h.store.Create(&supplier); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create supplier"})
	}

	return c.Status(fiber.StatusCreated).JSON(supplier)
}

func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	supplier, err := h.store.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Supplier not found"})
	}

	var req supplierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	supplier.Name = req.Name
	supplier.Contact = req.Contact
	supplier.Phone = req.Phone
	supplier.Address = req.Address

	if err := h.store.Update(supplier); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update supplier"})
	}

	return c.JSON(supplier)
}

// Delete removes the supplier immediately. Products and purchases that
// reference it are left untouched.
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	if err := h.store.Delete(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete supplier"})
	}

	return c.SendStatus(fiber.StatusOK)
}
