package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/smartgallery/smartgallery/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SQLiteStore implements GalleryStore using SQLite
type SQLiteStore struct {
	db   *gorm.DB
	path string
}

// DB returns the underlying GORM database instance
func (s *SQLiteStore) DB() *gorm.DB {
	return s.db
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path         string
	MaxOpenConns int
	LogLevel     logger.LogLevel
}

// NewSQLiteStore creates a new SQLite-backed gallery store
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	// Default to silent logging
	if cfg.LogLevel == 0 {
		cfg.LogLevel = logger.Silent
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(cfg.LogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &SQLiteStore{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Connect initializes the database connection
func (s *SQLiteStore) Connect(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(1) // SQLite only supports 1 writer
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Cascade deletes on the join table depend on foreign key enforcement
	if err := s.db.WithContext(ctx).Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// Migrate creates the schema if it is missing. Idempotent, safe to call on
// every startup.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&models.Image{},
		&models.Tag{},
		&models.ImageTag{},
	)
}

// Health checks database connectivity
func (s *SQLiteStore) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Image operations

// AddImage inserts a new image row or, when the path is already registered,
// returns the existing id without modifying the row.
func (s *SQLiteStore) AddImage(ctx context.Context, path, description string, processed bool) (uint, error) {
	image := models.Image{
		Path:        path,
		Description: description,
		Processed:   processed,
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "path"}},
			DoNothing: true,
		}).
		Create(&image)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		return image.ID, nil
	}

	// Duplicate path, resolve by lookup
	var existing models.Image
	err := s.db.WithContext(ctx).
		Select("id").
		Where("path = ?", path).
		First(&existing).Error
	if err != nil {
		return 0, err
	}
	return existing.ID, nil
}

// UpdateImageMetadata overwrites description and processed flag for an
// existing id. A no-op when the id does not exist.
func (s *SQLiteStore) UpdateImageMetadata(ctx context.Context, imageID uint, description string, processed bool) error {
	return s.db.WithContext(ctx).
		Model(&models.Image{}).
		Where("id = ?", imageID).
		Updates(map[string]any{
			"description": description,
			"processed":   processed,
		}).Error
}

func (s *SQLiteStore) ListImages(ctx context.Context, limit, offset int, order SortOrder) ([]models.Image, error) {
	var images []models.Image
	query := s.db.WithContext(ctx).Order(orderClause(order))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&images).Error
	return images, err
}

// SearchImages matches the query as a substring against the description or
// any associated tag name. SQLite LIKE is case-insensitive for ASCII; `%`
// and `_` in the query act as wildcards.
func (s *SQLiteStore) SearchImages(ctx context.Context, query string, limit, offset int, order SortOrder) ([]models.Image, error) {
	pattern := "%" + strings.TrimSpace(query) + "%"

	var images []models.Image
	q := s.db.WithContext(ctx).
		Model(&models.Image{}).
		Distinct("images.*").
		Joins("LEFT JOIN image_tags ON image_tags.image_id = images.id").
		Joins("LEFT JOIN tags ON tags.id = image_tags.tag_id").
		Where("images.description LIKE ? OR tags.name LIKE ?", pattern, pattern).
		Order(orderClause(order))

	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	err := q.Find(&images).Error
	return images, err
}

// ImageDetails returns the image row with its tag names, or nil when the id
// is unknown.
func (s *SQLiteStore) ImageDetails(ctx context.Context, imageID uint) (*ImageDetails, error) {
	var image models.Image
	err := s.db.WithContext(ctx).Where("id = ?", imageID).First(&image).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	tags, err := s.TagsForImage(ctx, imageID)
	if err != nil {
		return nil, err
	}

	return &ImageDetails{
		Image: image,
		Tags:  tags,
	}, nil
}

// Tag operations

// UpsertTags trims and drops empty names, creates missing tag rows and
// returns the ids in first-occurrence order of the cleaned input.
func (s *SQLiteStore) UpsertTags(ctx context.Context, names []string) ([]uint, error) {
	var tagIDs []uint
	seen := make(map[string]bool)

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		tag := models.Tag{Name: name}
		result := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).
			Create(&tag)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected > 0 {
			tagIDs = append(tagIDs, tag.ID)
			continue
		}

		var existing models.Tag
		err := s.db.WithContext(ctx).
			Select("id").
			Where("name = ?", name).
			First(&existing).Error
		if err != nil {
			return nil, err
		}
		tagIDs = append(tagIDs, existing.ID)
	}

	return tagIDs, nil
}

// LinkTags associates tags with an image. Existing pairs are silently
// ignored, leaving at most one join row per pair.
func (s *SQLiteStore) LinkTags(ctx context.Context, imageID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}

	rows := make([]models.ImageTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, models.ImageTag{
			ImageID: imageID,
			TagID:   tagID,
		})
	}

	return s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

// ClearTags removes all join rows for the image. Tag rows themselves are
// kept, orphaned tags persist.
func (s *SQLiteStore) ClearTags(ctx context.Context, imageID uint) error {
	return s.db.WithContext(ctx).
		Where("image_id = ?", imageID).
		Delete(&models.ImageTag{}).Error
}

func (s *SQLiteStore) TagsForImage(ctx context.Context, imageID uint) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Model(&models.Tag{}).
		Joins("JOIN image_tags ON image_tags.tag_id = tags.id").
		Where("image_tags.image_id = ?", imageID).
		Order("tags.name ASC").
		Pluck("tags.name", &names).Error
	return names, err
}

func orderClause(order SortOrder) string {
	if order == OrderOldestFirst {
		return "images.created_at ASC, images.id ASC"
	}
	return "images.created_at DESC, images.id DESC"
}
