package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{db: db}
}

// GetAll fetches every product expanded with its category and supplier.
// Orphaned references simply leave the relation nil.
func (r *ProductsRepository) GetAll() ([]Product, error) {
	var products []Product
	if err := r.db.
		Preload("Category").
		Preload("Supplier").
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) GetByID(id uint) (*Product, error) {
	var product Product
	if err := r.db.
		Preload("Category").
		Preload("Supplier").
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductsRepository) Create(product *Product) error {
	return r.db.Create(product).Error
}

func (r *ProductsRepository) Update(product *Product) error {
	return r.db.Save(product).Error
}

func (r *ProductsRepository) Delete(id uint) error {
	return r.db.Delete(&Product{}, id).Error
}
