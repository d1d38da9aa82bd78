package store

import (
	"context"

	"github.com/smartgallery/smartgallery/pkg/db/models"
)

// SortOrder selects the creation-time ordering for listings and searches.
type SortOrder string

const (
	OrderNewestFirst SortOrder = "desc"
	OrderOldestFirst SortOrder = "asc"
)

// ImageDetails is a single image row together with its tag names.
type ImageDetails struct {
	Image models.Image
	Tags  []string
}

// GalleryStore defines the interface for database operations
type GalleryStore interface {
	// Lifecycle
	Connect(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
	Health(ctx context.Context) error

	// Image operations
	AddImage(ctx context.Context, path, description string, processed bool) (uint, error)
	UpdateImageMetadata(ctx context.Context, imageID uint, description string, processed bool) error
	ListImages(ctx context.Context, limit, offset int, order SortOrder) ([]models.Image, error)
	SearchImages(ctx context.Context, query string, limit, offset int, order SortOrder) ([]models.Image, error)
	ImageDetails(ctx context.Context, imageID uint) (*ImageDetails, error)

	// Tag operations
	UpsertTags(ctx context.Context, names []string) ([]uint, error)
	LinkTags(ctx context.Context, imageID uint, tagIDs []uint) error
	ClearTags(ctx context.Context, imageID uint) error
	TagsForImage(ctx context.Context, imageID uint) ([]string, error)
}
