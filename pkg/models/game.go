package models

// Game session status codes
const (
	StatusInProgress = 0
	StatusWon        = 2
	StatusLost       = -2
)

// GameSession represents one player's attempt at guessing one word
type GameSession struct {
	ID             int64  `json:"id" db:"id"`
	UserID         int64  `json:"user_id" db:"user_id"`
	WordID         int64  `json:"word_id" db:"word_id"`
	LivesRemaining int    `json:"lives_remaining" db:"lost_health"`
	GuessedLetters string `json:"guessed_letters" db:"input_letters"`
	StartedAt      int64  `json:"started_at" db:"time_start"`
	FinishedAt     int64  `json:"finished_at" db:"time_finish"`
	Status         int    `json:"status" db:"status"`
	Score          int    `json:"score" db:"point"`
}

// Terminal reports whether the session has reached a final status
func (g *GameSession) Terminal() bool {
	return g.Status != StatusInProgress
}
