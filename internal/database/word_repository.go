package database

import (
	"context"
	"fmt"

	"github.com/example/hangbot/pkg/models"
)

// WordRepository handles database operations for the word catalog
type WordRepository struct {
	store *Store
}

// NewWordRepository creates a new repository instance
func NewWordRepository(store *Store) *WordRepository {
	return &WordRepository{store: store}
}

// Count returns the total number of words in the catalog
func (r *WordRepository) Count(ctx context.Context) (int, error) {
	row, err := r.store.SelectOne(ctx, "words", []string{"count(*) AS total"}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count words: %v", err)
	}
	return int(row.Int64("total")), nil
}

// GetByID returns a catalog word, or nil when the id is unknown
func (r *WordRepository) GetByID(ctx context.Context, id int64) (*models.Word, error) {
	row, err := r.store.SelectOne(ctx, "words", []string{"id", "cat_id", "name"}, Fields{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to get word by ID: %v", err)
	}
	if row == nil {
		return nil, nil
	}
	return &models.Word{
		ID:         row.Int64("id"),
		CategoryID: row.Int64("cat_id"),
		Name:       row.String("name"),
	}, nil
}

// IDs returns every word id in the catalog. Random selection samples
// from this explicit list, so the catalog may contain gaps.
func (r *WordRepository) IDs(ctx context.Context) ([]int64, error) {
	rows, err := r.store.SelectAll(ctx, "words", []string{"id"}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list word ids: %v", err)
	}
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.Int64("id"))
	}
	return ids, nil
}

// GetCategoryByID returns a category, or nil when the id is unknown
func (r *WordRepository) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	row, err := r.store.SelectOne(ctx, "categories", []string{"id", "name"}, Fields{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to get category by ID: %v", err)
	}
	if row == nil {
		return nil, nil
	}
	return &models.Category{ID: row.Int64("id"), Name: row.String("name")}, nil
}

// GetCategoryByName returns a category by its name, or nil when absent
func (r *WordRepository) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	row, err := r.store.SelectOne(ctx, "categories", []string{"id", "name"}, Fields{"name": name})
	if err != nil {
		return nil, fmt.Errorf("failed to get category by name: %v", err)
	}
	if row == nil {
		return nil, nil
	}
	return &models.Category{ID: row.Int64("id"), Name: row.String("name")}, nil
}

// CreateCategory inserts a new category and returns its id
func (r *WordRepository) CreateCategory(ctx context.Context, name string) (int64, error) {
	return r.store.Insert(ctx, "categories", Fields{"name": name})
}

// GetByNameAndCategory returns a word by its text within a category, or nil
func (r *WordRepository) GetByNameAndCategory(ctx context.Context, name string, categoryID int64) (*models.Word, error) {
	row, err := r.store.SelectOne(ctx, "words", []string{"id", "cat_id", "name"},
		Fields{"name": name, "cat_id": categoryID})
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %v", err)
	}
	if row == nil {
		return nil, nil
	}
	return &models.Word{
		ID:         row.Int64("id"),
		CategoryID: row.Int64("cat_id"),
		Name:       row.String("name"),
	}, nil
}

// Create inserts a new word and returns its id
func (r *WordRepository) Create(ctx context.Context, word *models.Word) (int64, error) {
	return r.store.Insert(ctx, "words", Fields{"name": word.Name, "cat_id": word.CategoryID})
}
