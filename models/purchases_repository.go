package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrPurchaseNotFound is returned when a purchase is not found.
var ErrPurchaseNotFound = errors.New("purchase not found")

type PurchasesRepository struct {
	db *gorm.DB
}

func NewPurchasesRepository(db *gorm.DB) *PurchasesRepository {
	return &PurchasesRepository{db: db}
}

// GetAll fetches every purchase header expanded with supplier and user,
// newest first.
func (r *PurchasesRepository) GetAll() ([]Purchase, error) {
	var purchases []Purchase
	if err := r.db.
		Preload("Supplier").
		Preload("User").
		Order("created_at DESC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *PurchasesRepository) GetByID(id uint) (*Purchase, error) {
	var purchase Purchase
	if err := r.db.
		Preload("Supplier").
		Preload("User").
		First(&purchase, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// GetItems fetches all line items of one purchase expanded with their
// product. A deleted product leaves the relation nil.
func (r *PurchasesRepository) GetItems(purchaseID uint) ([]PurchaseItem, error) {
	var items []PurchaseItem
	if err := r.db.
		Preload("Product").
		Where("purchase_id = ?", purchaseID).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateWithItems persists the purchase header, its line items and the
// stock adjustments in a single transaction. Stock is bumped with an
// atomic SQL increment so concurrent purchases of the same product
// cannot lose an update. A failure at any step rolls everything back.
func (r *PurchasesRepository) CreateWithItems(purchase *Purchase, items []PurchaseItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(purchase).Error; err != nil {
			return err
		}

		if len(items) == 0 {
			return nil
		}

		for i := range items {
			items[i].PurchaseID = purchase.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		for _, item := range items {
			if err := tx.Model(&Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes the purchase items then the header in one transaction.
// Stock is not decremented: no decrement path exists in this system.
func (r *PurchasesRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_id = ?", id).Delete(&PurchaseItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Purchase{}, id).Error
	})
}
