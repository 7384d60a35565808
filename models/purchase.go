package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase represents purchases table. A purchase is created together
// with its items and is immutable afterwards except for deletion.
type Purchase struct {
	ID           uint            `gorm:"primaryKey;column:id" json:"id"`
	UserID       *uint           `json:"user_id,omitempty"`
	SupplierID   *uint           `json:"supplier_id,omitempty"`
	PurchaseDate time.Time       `gorm:"type:date;not null" json:"purchase_date"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total"`
	CreatedAt    time.Time       `json:"created_at"`

	// Relationships
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// TableName specifies the table name for Purchase
func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseItem represents purchase_items table
type PurchaseItem struct {
	ID         uint            `gorm:"primaryKey;column:id" json:"id"`
	PurchaseID uint            `gorm:"not null" json:"purchase_id"`
	ProductID  uint            `gorm:"not null" json:"product_id"`
	Quantity   int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName specifies the table name for PurchaseItem
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// Subtotal returns quantity × unit price. It is derived, never stored.
func (i PurchaseItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
