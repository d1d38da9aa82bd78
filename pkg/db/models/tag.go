package models

// Tag represents a searchable label. Names are case-sensitive and unique;
// tags are created lazily on first use and never deleted, even when no image
// references them anymore.
type Tag struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"type:text;not null;uniqueIndex"`
}
