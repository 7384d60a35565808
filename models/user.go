package models

import "time"

// UserRole type for user roles
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
)

// Valid reports whether the role is one of the closed set.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User represents users table
type User struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	Username  string    `gorm:"type:varchar(100);not null" json:"username"`
	Email     string    `gorm:"type:varchar(100);not null;unique" json:"email"`
	Password  string    `gorm:"type:varchar(100);not null" json:"-"`
	Role      UserRole  `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
