package gallery

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/smartgallery/smartgallery/internal/analysis"
	"github.com/smartgallery/smartgallery/pkg/db/models"
	"github.com/smartgallery/smartgallery/pkg/db/store"
	"github.com/smartgallery/smartgallery/pkg/log"
)

// Service implements the gallery workflows on top of the metadata store and
// the analysis gateway: importing new images, browsing, and editing metadata.
type Service struct {
	store    store.GalleryStore
	analyzer analysis.Analyzer
	log      log.Logger
}

func NewService(galleryStore store.GalleryStore, analyzer analysis.Analyzer, logger log.Logger) *Service {
	return &Service{
		store:    galleryStore,
		analyzer: analyzer,
		log:      logger,
	}
}

// ImportResult reports the outcome of importing a single file.
type ImportResult struct {
	ImageID     uint
	Path        string
	Description string
	Tags        []string
	NSFW        bool
}

// Import registers each file, obtains an analysis result and stores the
// description and tag associations. Re-importing a known path reuses its
// image id.
//
// The register-then-link sequence is not wrapped in a transaction; a crash
// in between leaves an image without tags. Kept as-is, see DESIGN.md.
func (s *Service) Import(ctx context.Context, paths []string) ([]ImportResult, error) {
	results := make([]ImportResult, 0, len(paths))

	for _, path := range paths {
		imageID, err := s.store.AddImage(ctx, path, "", false)
		if err != nil {
			return results, fmt.Errorf("failed to register image %s: %w", path, err)
		}

		data := s.analyzer.AnalyzeImage(ctx, path)

		if err := s.store.UpdateImageMetadata(ctx, imageID, data.Description, true); err != nil {
			return results, fmt.Errorf("failed to update metadata for image %d: %w", imageID, err)
		}

		tagIDs, err := s.store.UpsertTags(ctx, data.Tags)
		if err != nil {
			return results, fmt.Errorf("failed to upsert tags for image %d: %w", imageID, err)
		}
		if err := s.store.LinkTags(ctx, imageID, tagIDs); err != nil {
			return results, fmt.Errorf("failed to link tags for image %d: %w", imageID, err)
		}

		s.log.Info("Imported %s as image %d", path, imageID)

		tags, err := s.store.TagsForImage(ctx, imageID)
		if err != nil {
			return results, fmt.Errorf("failed to read tags for image %d: %w", imageID, err)
		}

		results = append(results, ImportResult{
			ImageID:     imageID,
			Path:        path,
			Description: data.Description,
			Tags:        tags,
			NSFW:        data.NSFW,
		})
	}

	return results, nil
}

// Retag overwrites the description and replaces the tag set of an image.
// Clearing the old associations and relinking is the only supported replace
// mode, there is no partial diff update.
func (s *Service) Retag(ctx context.Context, imageID uint, description string, tags []string) error {
	if err := s.store.UpdateImageMetadata(ctx, imageID, description, true); err != nil {
		return fmt.Errorf("failed to update metadata for image %d: %w", imageID, err)
	}

	if err := s.store.ClearTags(ctx, imageID); err != nil {
		return fmt.Errorf("failed to clear tags for image %d: %w", imageID, err)
	}

	tagIDs, err := s.store.UpsertTags(ctx, tags)
	if err != nil {
		return fmt.Errorf("failed to upsert tags for image %d: %w", imageID, err)
	}
	if err := s.store.LinkTags(ctx, imageID, tagIDs); err != nil {
		return fmt.Errorf("failed to link tags for image %d: %w", imageID, err)
	}

	return nil
}

// Browse lists images, or searches when the trimmed query is non-empty.
func (s *Service) Browse(ctx context.Context, query string, limit, offset int, order store.SortOrder) ([]models.Image, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.store.ListImages(ctx, limit, offset, order)
	}
	return s.store.SearchImages(ctx, query, limit, offset, order)
}

// Details returns an image with its tags, or nil for an unknown id.
func (s *Service) Details(ctx context.Context, imageID uint) (*store.ImageDetails, error) {
	return s.store.ImageDetails(ctx, imageID)
}

// FolderGroup is a set of images sharing a parent directory name.
type FolderGroup struct {
	Folder string
	Images []models.Image
}

// GroupByFolder groups images by the name of their parent directory, with
// folders sorted alphabetically. Images without a parent directory name are
// grouped under "Uncategorized".
func GroupByFolder(images []models.Image) []FolderGroup {
	grouped := make(map[string][]models.Image)
	for _, image := range images {
		folder := filepath.Base(filepath.Dir(image.Path))
		if folder == "." || folder == string(filepath.Separator) {
			folder = "Uncategorized"
		}
		grouped[folder] = append(grouped[folder], image)
	}

	folders := make([]string, 0, len(grouped))
	for folder := range grouped {
		folders = append(folders, folder)
	}
	sort.Strings(folders)

	groups := make([]FolderGroup, 0, len(folders))
	for _, folder := range folders {
		groups = append(groups, FolderGroup{
			Folder: folder,
			Images: grouped[folder],
		})
	}
	return groups
}
