package models

import "time"

// MarketPrice is one observed listing for an item on one world (server).
type MarketPrice struct {
	ID           uint `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ItemID       uint      `gorm:"index:idx_item_world;not null" json:"item_id"`
	Item         Item      `gorm:"foreignKey:ItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	World        string    `gorm:"size:32;index:idx_item_world;not null" json:"world"`
	PricePerUnit int64     `gorm:"not null" json:"price_per_unit"`
	Quantity     int       `gorm:"not null;default:1" json:"quantity"`
	HQ           bool      `gorm:"default:false" json:"hq"`
	RecordedAt   time.Time `gorm:"index;not null" json:"recorded_at"`
}
