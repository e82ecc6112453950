package game

import (
	"context"
	"fmt"

	"github.com/example/hangbot/internal/database"
	"github.com/example/hangbot/pkg/models"
)

// Store is the narrow persistence contract the game core relies on.
// Filters are equality-only conjunctions over named columns; the
// implementation binds all values as query parameters.
type Store interface {
	Insert(ctx context.Context, table string, data database.Fields) (int64, error)
	SelectOne(ctx context.Context, table string, columns []string, where database.Fields) (database.Row, error)
	SelectAll(ctx context.Context, table string, columns []string, where database.Fields) ([]database.Row, error)
	Update(ctx context.Context, table string, data, where database.Fields) error
}

// Directory locates a user's currently active game session.
// At most one in-progress session per user exists; the games table
// carries a partial unique index making that structural.
type Directory struct {
	store Store
}

// NewDirectory creates a directory over the given store
func NewDirectory(store Store) *Directory {
	return &Directory{store: store}
}

// FindActive returns the user's in-progress session, or nil when the
// user has no running game
func (d *Directory) FindActive(ctx context.Context, userID int64) (*models.GameSession, error) {
	row, err := d.store.SelectOne(ctx, "games",
		[]string{"id", "word_id", "lost_health", "time_start", "input_letters"},
		database.Fields{"user_id": userID, "status": models.StatusInProgress})
	if err != nil {
		return nil, fmt.Errorf("failed to find active game: %v", err)
	}
	if row == nil {
		return nil, nil
	}

	return &models.GameSession{
		ID:             row.Int64("id"),
		UserID:         userID,
		WordID:         row.Int64("word_id"),
		LivesRemaining: int(row.Int64("lost_health")),
		GuessedLetters: row.String("input_letters"),
		StartedAt:      row.Int64("time_start"),
		Status:         models.StatusInProgress,
	}, nil
}
