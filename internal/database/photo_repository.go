package database

import (
	"context"
	"fmt"
)

// PhotoRepository caches Telegram file ids for uploaded images
type PhotoRepository struct {
	store *Store
}

// NewPhotoRepository creates a new repository instance
func NewPhotoRepository(store *Store) *PhotoRepository {
	return &PhotoRepository{store: store}
}

// GetFileID returns the cached Telegram file id for a local image path,
// or an empty string when the image has not been uploaded yet
func (r *PhotoRepository) GetFileID(ctx context.Context, path string) (string, error) {
	row, err := r.store.SelectOne(ctx, "photos", []string{"file_id"}, Fields{"photo": path})
	if err != nil {
		return "", fmt.Errorf("failed to get cached photo: %v", err)
	}
	if row == nil {
		return "", nil
	}
	return row.String("file_id"), nil
}

// Save stores the Telegram file id assigned to an uploaded image.
// Saving an already cached path is a no-op.
func (r *PhotoRepository) Save(ctx context.Context, path, fileID string) error {
	existing, err := r.GetFileID(ctx, path)
	if err != nil {
		return err
	}
	if existing != "" {
		return nil
	}

	_, err = r.store.Insert(ctx, "photos", Fields{"photo": path, "file_id": fileID})
	if err != nil {
		return fmt.Errorf("failed to cache photo: %v", err)
	}
	return nil
}
