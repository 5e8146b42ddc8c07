package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe is the central domain entity. Tags and ingredients attach through
// join tables; the join rows go away with the recipe, the rows themselves
// stay (they may be shared with the owner's other recipes).
type Recipe struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	UserID      uint            `gorm:"index;not null" json:"-"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description string          `gorm:"type:text;not null;default:''" json:"description"`
	TimeMinutes int             `gorm:"not null" json:"time_minutes"`
	Price       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"price"`
	Link        string          `gorm:"size:255;not null;default:''" json:"link"`
	Image       *string         `gorm:"size:255" json:"image"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	User        User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE" json:"ingredients"`
}

// TableName overrides the table name
func (Recipe) TableName() string {
	return "recipes"
}
