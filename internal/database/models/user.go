package models

import (
	"time"
)

// User is the account that owns every recipe, tag and ingredient.
// Email is the login identifier; there is no username.
type User struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Email       string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password    string    `gorm:"size:255;not null" json:"-"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	IsStaff     bool      `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser bool      `gorm:"not null;default:false" json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}
