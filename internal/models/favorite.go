package models

import "time"

// MaxLocationLength is the width of favorites.location, in characters.
const MaxLocationLength = 255

// Favorite is a location a user has bookmarked. (user_id, location) is unique.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uq_favorites_user_location,priority:1" json:"-"`
	Location  string    `gorm:"size:255;not null;uniqueIndex:uq_favorites_user_location,priority:2" json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Favorite model
func (Favorite) TableName() string {
	return "favorites"
}
