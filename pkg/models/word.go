package models

// Word represents a single catalog entry available for the game
type Word struct {
	ID         int64  `json:"id" db:"id"`
	CategoryID int64  `json:"category_id" db:"cat_id"`
	Name       string `json:"name" db:"name"`
}

// Category represents a word category
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
