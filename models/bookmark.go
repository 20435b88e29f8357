package models

import (
	"time"

	"gorm.io/gorm"
)

// Bookmark is a saved recipe reference with cached display fields. Signed-out
// users get rows keyed by device only (UserID null); those are adopted by the
// user on login, without clobbering bookmarks the account already has.
type Bookmark struct {
	gorm.Model
	UserID    *uint  `gorm:"index"`         // nil for guest rows
	DeviceKey string `gorm:"size:64;index"` // set for guest rows
	RecipeID  int64  `gorm:"index;not null"`
	Title     string
	Image     string
	Calories  float64
	SavedAt   time.Time
}
