package models

// ImageTag associates one image with one tag. The composite primary key
// guarantees at most one join row per pair; deleting either side cascades.
type ImageTag struct {
	ImageID uint `gorm:"primaryKey;autoIncrement:false"`
	TagID   uint `gorm:"primaryKey;autoIncrement:false"`

	// Relationships
	Image Image `gorm:"foreignKey:ImageID;references:ID;constraint:OnDelete:CASCADE"`
	Tag   Tag   `gorm:"foreignKey:TagID;references:ID;constraint:OnDelete:CASCADE"`
}
