package store

import (
	"context"
	"testing"

	"github.com/smartgallery/smartgallery/pkg/db/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(SQLiteConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	ctx := context.Background()
	if err := s.Connect(ctx); err != nil {
		t.Fatalf("failed to connect store: %v", err)
	}
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate store: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func countRows(t *testing.T, s *SQLiteStore, model any) int64 {
	t.Helper()

	var count int64
	if err := s.DB().Model(model).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}

func TestAddImage_DuplicatePathReturnsSameID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.AddImage(ctx, "/photos/cat.jpg", "a cat", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := s.AddImage(ctx, "/photos/cat.jpg", "something else", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("ids differ: first = %d, second = %d", first, second)
	}
	if n := countRows(t, s, &models.Image{}); n != 1 {
		t.Errorf("image rows = %d, want 1", n)
	}

	// The existing row must not be modified by the duplicate add
	details, err := s.ImageDetails(ctx, first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.Image.Description != "a cat" {
		t.Errorf("Description = %q, want %q", details.Image.Description, "a cat")
	}
	if !details.Image.Processed {
		t.Error("Processed = false, want true")
	}
}

func TestUpdateImageMetadata(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.AddImage(ctx, "/photos/dog.jpg", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.UpdateImageMetadata(ctx, id, "a dog on a beach", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	details, err := s.ImageDetails(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.Image.Description != "a dog on a beach" {
		t.Errorf("Description = %q, want %q", details.Image.Description, "a dog on a beach")
	}
	if !details.Image.Processed {
		t.Error("Processed = false, want true")
	}
}

func TestUpdateImageMetadata_UnknownIDIsNoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpdateImageMetadata(ctx, 9999, "ghost", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := countRows(t, s, &models.Image{}); n != 0 {
		t.Errorf("image rows = %d, want 0", n)
	}
}

func TestUpsertTags_TrimsAndCaseSensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ids, err := s.UpsertTags(ctx, []string{"a", "  ", "A"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ids) != 2 {
		t.Fatalf("len(ids) = %d, want 2", len(ids))
	}
	if ids[0] == ids[1] {
		t.Errorf("ids for %q and %q are equal: %d", "a", "A", ids[0])
	}
	if n := countRows(t, s, &models.Tag{}); n != 2 {
		t.Errorf("tag rows = %d, want 2", n)
	}
}

func TestUpsertTags_ReturnsIDsInFirstOccurrenceOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.UpsertTags(ctx, []string{"beach", "cat"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Repeated and whitespace-padded names collapse onto the existing ids
	second, err := s.UpsertTags(ctx, []string{" cat ", "beach", "cat"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(second) != 2 {
		t.Fatalf("len(ids) = %d, want 2", len(second))
	}
	if second[0] != first[1] || second[1] != first[0] {
		t.Errorf("ids = %v, want [%d %d]", second, first[1], first[0])
	}
}

func TestLinkTags_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	imageID, err := s.AddImage(ctx, "/photos/cat.jpg", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tagIDs, err := s.UpsertTags(ctx, []string{"cat"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.LinkTags(ctx, imageID, tagIDs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.LinkTags(ctx, imageID, tagIDs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := countRows(t, s, &models.ImageTag{}); n != 1 {
		t.Errorf("join rows = %d, want 1", n)
	}
}

func TestClearTags_KeepsTagRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	imageID, err := s.AddImage(ctx, "/photos/cat.jpg", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tagIDs, err := s.UpsertTags(ctx, []string{"cat", "indoors"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.LinkTags(ctx, imageID, tagIDs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.ClearTags(ctx, imageID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.LinkTags(ctx, imageID, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tags, err := s.TagsForImage(ctx, imageID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("tags = %v, want none", tags)
	}

	// Orphaned tag rows persist
	if n := countRows(t, s, &models.Tag{}); n != 2 {
		t.Errorf("tag rows = %d, want 2", n)
	}
}

func TestTagsForImage_SortedAlphabetically(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	imageID, err := s.AddImage(ctx, "/photos/cat.jpg", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tagIDs, err := s.UpsertTags(ctx, []string{"indoors", "cat", "blanket"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.LinkTags(ctx, imageID, tagIDs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tags, err := s.TagsForImage(ctx, imageID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"blanket", "cat", "indoors"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, tags[i], want[i])
		}
	}
}

func TestListImages_Ordering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var ids []uint
	for _, path := range []string{"/photos/1.jpg", "/photos/2.jpg", "/photos/3.jpg"} {
		id, err := s.AddImage(ctx, path, "", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids = append(ids, id)
	}

	newest, err := s.ListImages(ctx, 0, 0, OrderNewestFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(newest) != 3 {
		t.Fatalf("len(images) = %d, want 3", len(newest))
	}
	if newest[0].ID != ids[2] || newest[2].ID != ids[0] {
		t.Errorf("newest-first order = [%d %d %d], want [%d %d %d]",
			newest[0].ID, newest[1].ID, newest[2].ID, ids[2], ids[1], ids[0])
	}

	oldest, err := s.ListImages(ctx, 0, 0, OrderOldestFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if oldest[0].ID != ids[0] {
		t.Errorf("oldest-first starts with %d, want %d", oldest[0].ID, ids[0])
	}

	limited, err := s.ListImages(ctx, 1, 1, OrderOldestFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != ids[1] {
		t.Errorf("limit/offset result = %v, want single image %d", limited, ids[1])
	}
}

func TestSearchImages_MatchesDescriptionOrTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	catDesc, err := s.AddImage(ctx, "/photos/a.jpg", "A fluffy cat indoors", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	catTag, err := s.AddImage(ctx, "/photos/b.jpg", "Golden hour at the pier", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.AddImage(ctx, "/photos/c.jpg", "A dog on a beach", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tagIDs, err := s.UpsertTags(ctx, []string{"cat"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.LinkTags(ctx, catTag, tagIDs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Description and tag both matching must not duplicate the image
	if err := s.LinkTags(ctx, catDesc, tagIDs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	images, err := s.SearchImages(ctx, "CAT", 0, 0, OrderNewestFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(images) != 2 {
		t.Fatalf("len(images) = %d, want 2", len(images))
	}
	if images[0].ID != catTag || images[1].ID != catDesc {
		t.Errorf("order = [%d %d], want newest first [%d %d]",
			images[0].ID, images[1].ID, catTag, catDesc)
	}
}

func TestSearchImages_NoMatches(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.AddImage(ctx, "/photos/a.jpg", "A dog", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	images, err := s.SearchImages(ctx, "zebra", 0, 0, OrderNewestFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(images) != 0 {
		t.Errorf("len(images) = %d, want 0", len(images))
	}
}

func TestImageDetails_UnknownIDReturnsNil(t *testing.T) {
	s := newTestStore(t)

	details, err := s.ImageDetails(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details != nil {
		t.Errorf("details = %v, want nil", details)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
	if err := s.Health(ctx); err != nil {
		t.Fatalf("health check failed: %v", err)
	}
}
