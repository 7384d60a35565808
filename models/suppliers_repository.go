package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrSupplierNotFound is returned when a supplier is not found.
var ErrSupplierNotFound = errors.New("supplier not found")

type SuppliersRepository struct {
	db *gorm.DB
}

func NewSuppliersRepository(db *gorm.DB) *SuppliersRepository {
	return &SuppliersRepository{db: db}
}

func (r *SuppliersRepository) GetAll() ([]Supplier, error) {
	var suppliers []Supplier
	if err := r.db.Order("name").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *SuppliersRepository) GetByID(id uint) (*Supplier, error) {
	var supplier Supplier
	if err := r.db.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

func (r *SuppliersRepository) Create(supplier *Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *SuppliersRepository) Update(supplier *Supplier) error {
	return r.db.Save(supplier).Error
}

// Delete removes the supplier row only. Products and purchases keep
// their supplier_id; views render the orphaned reference as "-".
func (r *SuppliersRepository) Delete(id uint) error {
	return r.db.Delete(&Supplier{}, id).Error
}
