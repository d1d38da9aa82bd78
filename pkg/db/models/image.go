package models

import "time"

// Image represents a gallery image registered by its absolute file path.
// Images are never deleted through the store; the description and the
// processed flag are overwritten once the analysis gateway has answered.
type Image struct {
	ID          uint   `gorm:"primaryKey"`
	Path        string `gorm:"type:text;not null;uniqueIndex"`
	Description string `gorm:"type:text;default:''"`
	Processed   bool   `gorm:"default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
