package database

import (
	"context"
	"database/sql"
	"fmt"
)

// LeaderboardEntry is one row of the top-scores table
type LeaderboardEntry struct {
	Name   string `db:"name"`
	Points int64  `db:"points"`
}

// GameRepository handles aggregate queries over finished and running games.
// Row-level access during gameplay goes through the generic store instead.
type GameRepository struct {
	store *Store
}

// NewGameRepository creates a new repository instance
func NewGameRepository(store *Store) *GameRepository {
	return &GameRepository{store: store}
}

// TotalPoints returns the sum of points a user earned across all games
func (r *GameRepository) TotalPoints(ctx context.Context, userID int64) (int64, error) {
	db := r.store.DB()

	query := "SELECT COALESCE(SUM(point), 0) FROM games WHERE user_id = ?"
	var total int64
	err := db.QueryRowContext(ctx, db.Rebind(query), userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to get total points: %v", err)
	}
	return total, nil
}

// TopScores returns the leaderboard, best players first
func (r *GameRepository) TopScores(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	db := r.store.DB()

	query := `
		SELECT COALESCE(users.name, '') AS name, SUM(games.point) AS points
		FROM games
		LEFT JOIN users ON users.user_id = games.user_id
		GROUP BY games.user_id, users.name
		ORDER BY SUM(games.point) DESC
		LIMIT ?
	`

	var entries []LeaderboardEntry
	err := db.SelectContext(ctx, &entries, db.Rebind(query), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top scores: %v", err)
	}
	return entries, nil
}

// StaleSessions returns user ids with an in-progress game started
// before the given cutoff (seconds since epoch)
func (r *GameRepository) StaleSessions(ctx context.Context, cutoff int64) ([]int64, error) {
	db := r.store.DB()

	query := "SELECT user_id FROM games WHERE status = 0 AND time_start < ?"
	var userIDs []int64
	err := db.SelectContext(ctx, &userIDs, db.Rebind(query), cutoff)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get stale sessions: %v", err)
	}
	return userIDs, nil
}
