package models

import (
	"time"
)

// AuthToken is the opaque bearer token issued on login. One row per user;
// the same key is handed back on every subsequent login.
type AuthToken struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Key       string    `gorm:"uniqueIndex;size:255;not null" json:"key"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name
func (AuthToken) TableName() string {
	return "auth_tokens"
}
