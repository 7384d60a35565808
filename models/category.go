package models

// Category represents categories table
type Category struct {
	ID          uint    `gorm:"primaryKey;column:id" json:"id"`
	Name        string  `gorm:"type:varchar(100);not null" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}
