package models

import "time"

// Favorite is a user's bookmarked catalog item.
type Favorite struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint `gorm:"index;not null;uniqueIndex:idx_user_item" json:"user_id"`
	User      User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ItemID    uint `gorm:"not null;uniqueIndex:idx_user_item" json:"item_id"`
	Item      Item `gorm:"foreignKey:ItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
