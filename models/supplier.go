package models

import "time"

// Supplier represents suppliers table
type Supplier struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	Contact   *string   `gorm:"type:varchar(100)" json:"contact,omitempty"`
	Phone     *string   `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Address   *string   `gorm:"type:text" json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Supplier
func (Supplier) TableName() string {
	return "suppliers"
}
