package models

import (
	"time"
)

// Ingredient follows the same (user_id, name) natural-key discipline as Tag.
type Ingredient struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:uq_ingredients_user_name;not null" json:"-"`
	Name      string    `gorm:"uniqueIndex:uq_ingredients_user_name;size:255;not null" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name
func (Ingredient) TableName() string {
	return "ingredients"
}
