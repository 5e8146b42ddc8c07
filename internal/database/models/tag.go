package models

import (
	"time"
)

// Tag labels recipes for filtering. (user_id, name) is the natural key used
// by the recipe write path's get-or-create.
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:uq_tags_user_name;not null" json:"-"`
	Name      string    `gorm:"uniqueIndex:uq_tags_user_name;size:255;not null" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name
func (Tag) TableName() string {
	return "tags"
}
