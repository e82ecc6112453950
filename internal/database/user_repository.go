package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/hangbot/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new repository instance
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// GetByTelegramID returns a user by their Telegram id, or nil when
// the user has never talked to the bot
func (r *UserRepository) GetByTelegramID(ctx context.Context, userID int64) (*models.User, error) {
	row, err := r.store.SelectOne(ctx, "users", []string{"id", "user_id", "name", "referer"},
		Fields{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	if row == nil {
		return nil, nil
	}

	user := &models.User{
		ID:     row.Int64("id"),
		UserID: row.Int64("user_id"),
		Name:   row.String("name"),
	}
	if _, ok := row["referer"]; ok && row["referer"] != nil {
		user.Referer = sql.NullInt64{Int64: row.Int64("referer"), Valid: true}
	}
	return user, nil
}

// Create registers a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	data := Fields{"user_id": user.UserID, "name": user.Name}
	if user.Referer.Valid {
		data["referer"] = user.Referer.Int64
	}

	id, err := r.store.Insert(ctx, "users", data)
	if err != nil {
		return fmt.Errorf("failed to create user: %v", err)
	}
	user.ID = id
	return nil
}

// UpdateName refreshes the stored display name for a user
func (r *UserRepository) UpdateName(ctx context.Context, userID int64, name string) error {
	return r.store.Update(ctx, "users", Fields{"name": name}, Fields{"user_id": userID})
}

// Exists reports whether a user with the given Telegram id is registered
func (r *UserRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	user, err := r.GetByTelegramID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}
