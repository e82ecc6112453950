package models

import "database/sql"

// User represents a Telegram user playing the game
type User struct {
	ID        int64         `json:"id" db:"id"`
	UserID    int64         `json:"user_id" db:"user_id"` // Telegram user ID
	Name      string        `json:"name" db:"name"`
	Referer   sql.NullInt64 `json:"referer" db:"referer"` // Telegram ID of the user who invited this one
	CreatedAt sql.NullTime  `json:"created_at" db:"created_at"`
}
