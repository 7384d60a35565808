package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents products table. CategoryID and SupplierID are
// nullable and unconstrained: the referenced row may have been deleted,
// in which case the relation stays nil and views render "-".
type Product struct {
	ID            uint            `gorm:"primaryKey;column:id" json:"id"`
	Name          string          `gorm:"type:varchar(200);not null" json:"name"`
	Description   *string         `gorm:"type:text" json:"description,omitempty"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"purchase_price"`
	Stock         int             `gorm:"not null;default:0" json:"stock"`
	CategoryID    *uint           `json:"category_id,omitempty"`
	SupplierID    *uint           `json:"supplier_id,omitempty"`
	ImageURL      *string         `gorm:"type:text" json:"image_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}
