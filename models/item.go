package models

import "time"

// Item is one entry of the game item catalog. Names are CJK, short, trimmed;
// duplicate names across ids are legal (the game reuses names across variants).
type Item struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string `gorm:"size:64;not null;index" json:"name"`
	NameEn    string `gorm:"size:128" json:"name_en"`
	Category  string `gorm:"size:64;index" json:"category"`
	ItemLevel int    `gorm:"default:0" json:"item_level"`
	// Marketable items have price records; untradable catalog entries don't.
	Marketable bool `gorm:"default:true;index" json:"marketable"`
}
