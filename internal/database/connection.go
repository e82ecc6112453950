package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Connect establishes a connection to the database.
// When DATABASE_URL is set a PostgreSQL connection is used,
// otherwise a local SQLite file under data/ is opened.
func Connect() (*sqlx.DB, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %v", err)
		}
		if err := InitSchema(db); err != nil {
			return nil, err
		}
		return db, nil
	}

	// Create data directory if it doesn't exist
	dataDir := "data"
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "hangbot.db")
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %v", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := InitSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

// InitSchema creates necessary tables if they don't exist
func InitSchema(db *sqlx.DB) error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == "postgres" {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	// Create users table
	_, err := db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS users (
			id %s,
			user_id INTEGER UNIQUE NOT NULL,
			name TEXT,
			referer INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, serial))
	if err != nil {
		return fmt.Errorf("failed to create users table: %v", err)
	}

	// Create categories table
	_, err = db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS categories (
			id %s,
			name TEXT NOT NULL UNIQUE
		)
	`, serial))
	if err != nil {
		return fmt.Errorf("failed to create categories table: %v", err)
	}

	// Create words table
	_, err = db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS words (
			id %s,
			cat_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			FOREIGN KEY (cat_id) REFERENCES categories(id),
			UNIQUE(name, cat_id)
		)
	`, serial))
	if err != nil {
		return fmt.Errorf("failed to create words table: %v", err)
	}

	// Create games table
	_, err = db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS games (
			id %s,
			user_id INTEGER NOT NULL,
			word_id INTEGER NOT NULL,
			lost_health INTEGER NOT NULL DEFAULT 7,
			input_letters TEXT NOT NULL DEFAULT '',
			time_start INTEGER NOT NULL,
			time_finish INTEGER NOT NULL DEFAULT 0,
			status INTEGER NOT NULL DEFAULT 0,
			point INTEGER NOT NULL DEFAULT 0
		)
	`, serial))
	if err != nil {
		return fmt.Errorf("failed to create games table: %v", err)
	}

	// At most one in-progress game per user
	_, err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_games_active
		ON games(user_id) WHERE status = 0
	`)
	if err != nil {
		return fmt.Errorf("failed to create active games index: %v", err)
	}

	// Create photos table
	_, err = db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS photos (
			id %s,
			photo TEXT NOT NULL UNIQUE,
			file_id TEXT NOT NULL
		)
	`, serial))
	if err != nil {
		return fmt.Errorf("failed to create photos table: %v", err)
	}

	return nil
}
