package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxUsernameLength is the width of users.username, in characters.
const MaxUsernameLength = 50

// User represents a registered account
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"size:50;not null;uniqueIndex:idx_users_username_active,where:deleted_at IS NULL" json:"username"`
	Salt         string         `gorm:"size:64;not null" json:"-"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Favorites []Favorite `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"favorites,omitempty"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// UserSummary is the public projection of a user; it never carries
// credential material.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}
