package game

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/example/hangbot/internal/database"
	"github.com/example/hangbot/pkg/models"
)

// DefaultLives is the number of wrong guesses a player may make
const DefaultLives = 7

// Scoring constants: each remaining life is worth 25 points, plus a
// time bonus that melts away one point per second and never goes below zero.
const (
	pointsPerLife  = 25
	timeBonusLimit = 150
)

// Transition codes returned by SubmitLetter
const (
	CodeRepeated = 0  // letter was already guessed, nothing changed
	CodeRevealed = 1  // letter is in the word, game continues
	CodeWon      = 2  // letter completed the word
	CodeMissed   = -1 // letter is not in the word, a life was lost
	CodeLost     = -2 // letter is not in the word and no lives remain
)

// Catalog is the read-only word lookup the session draws from
type Catalog interface {
	GetByID(ctx context.Context, id int64) (*models.Word, error)
	IDs(ctx context.Context) ([]int64, error)
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
}

// Deps bundles the collaborators a session needs. Now and Intn default
// to the wall clock and math/rand when left nil.
type Deps struct {
	Store   Store
	Catalog Catalog
	Now     func() int64
	Intn    func(n int) int
}

// Session owns a single player's attempt at one word: lives, guessed
// letters, score and terminal status. Every accepted guess is persisted
// before the in-memory state is committed.
type Session struct {
	store   Store
	catalog Catalog
	now     func() int64
	record  models.GameSession
	word    string // normalized
	category string
}

// State is a render-ready snapshot of the session
type State struct {
	DisplayWord string
	Revealed    map[rune]bool
	Status      int
	Score       int
}

// NewSession resumes the user's active game or starts a fresh one.
// A fresh game picks a word uniformly from the catalog's id list and is
// persisted immediately, before any guess is taken.
func NewSession(ctx context.Context, deps Deps, userID int64) (*Session, error) {
	now := deps.Now
	if now == nil {
		now = func() int64 { return time.Now().Unix() }
	}
	intn := deps.Intn
	if intn == nil {
		intn = rand.Intn
	}

	directory := NewDirectory(deps.Store)
	record, err := directory.FindActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	if record == nil {
		ids, err := deps.Catalog.IDs(ctx)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, fmt.Errorf("%w: catalog is empty", ErrCatalogIntegrity)
		}

		record = &models.GameSession{
			UserID:         userID,
			WordID:         ids[intn(len(ids))],
			LivesRemaining: DefaultLives,
			StartedAt:      now(),
			Status:         models.StatusInProgress,
		}

		id, err := deps.Store.Insert(ctx, "games", database.Fields{
			"user_id":    record.UserID,
			"word_id":    record.WordID,
			"time_start": record.StartedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create game: %v", err)
		}
		record.ID = id
	}

	word, err := deps.Catalog.GetByID(ctx, record.WordID)
	if err != nil {
		return nil, err
	}
	if word == nil {
		return nil, fmt.Errorf("%w: word %d not found", ErrCatalogIntegrity, record.WordID)
	}

	category, err := deps.Catalog.GetCategoryByID(ctx, word.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: category %d not found", ErrCatalogIntegrity, word.CategoryID)
	}

	return &Session{
		store:    deps.Store,
		catalog:  deps.Catalog,
		now:      now,
		record:   *record,
		word:     NormalizeWord(word.Name),
		category: category.Name,
	}, nil
}

// SubmitLetter runs one guess through the state machine and returns the
// transition code with a player-facing message. The persisted row is
// updated before the in-memory state, so a persistence failure leaves
// the session unchanged.
func (s *Session) SubmitLetter(ctx context.Context, letter string) (int, string, error) {
	if s.record.Terminal() {
		return 0, "", ErrSessionTerminal
	}

	guess, err := NormalizeLetter(letter)
	if err != nil {
		return 0, "", err
	}

	if strings.ContainsRune(s.record.GuessedLetters, guess) {
		return CodeRepeated, "Вы уже выбирали эту букву", nil
	}
	guessed := s.record.GuessedLetters + string(guess)

	if strings.ContainsRune(s.word, guess) {
		if covered(s.word, guessed) {
			finish := s.now()
			score := s.record.LivesRemaining * pointsPerLife
			if bonus := timeBonusLimit - int(finish-s.record.StartedAt); bonus > 0 {
				score += bonus
			}

			err := s.store.Update(ctx, "games", database.Fields{
				"status":        models.StatusWon,
				"input_letters": guessed,
				"time_finish":   finish,
				"point":         score,
			}, database.Fields{"id": s.record.ID})
			if err != nil {
				return 0, "", err
			}

			s.record.GuessedLetters = guessed
			s.record.FinishedAt = finish
			s.record.Score = score
			s.record.Status = models.StatusWon
			return CodeWon, "Слово полностью отгадано!", nil
		}

		err := s.store.Update(ctx, "games",
			database.Fields{"input_letters": guessed},
			database.Fields{"id": s.record.ID})
		if err != nil {
			return 0, "", err
		}

		s.record.GuessedLetters = guessed
		return CodeRevealed, "Вы отгадали букву!", nil
	}

	lives := s.record.LivesRemaining - 1
	if lives == 0 {
		finish := s.now()
		err := s.store.Update(ctx, "games", database.Fields{
			"status":        models.StatusLost,
			"input_letters": guessed,
			"lost_health":   lives,
			"time_finish":   finish,
		}, database.Fields{"id": s.record.ID})
		if err != nil {
			return 0, "", err
		}

		s.record.GuessedLetters = guessed
		s.record.LivesRemaining = lives
		s.record.FinishedAt = finish
		s.record.Status = models.StatusLost
		return CodeLost, "Неверная буква! Вы проиграли", nil
	}

	err = s.store.Update(ctx, "games", database.Fields{
		"input_letters": guessed,
		"lost_health":   lives,
	}, database.Fields{"id": s.record.ID})
	if err != nil {
		return 0, "", err
	}

	s.record.GuessedLetters = guessed
	s.record.LivesRemaining = lives
	return CodeMissed, "Неверная буква!", nil
}

// RenderState is a pure read of the current puzzle: each position shows
// its letter when guessed, a placeholder otherwise
func (s *Session) RenderState() State {
	var display strings.Builder
	revealed := make(map[rune]bool)
	for _, r := range s.word {
		if strings.ContainsRune(s.record.GuessedLetters, r) {
			display.WriteRune(r)
			revealed[r] = true
		} else {
			display.WriteString(Placeholder)
		}
	}
	return State{
		DisplayWord: display.String(),
		Revealed:    revealed,
		Status:      s.record.Status,
		Score:       s.record.Score,
	}
}

// Word returns the normalized word being guessed
func (s *Session) Word() string { return s.word }

// Category returns the display name of the word's category
func (s *Session) Category() string { return s.category }

// LivesRemaining returns how many wrong guesses the player has left
func (s *Session) LivesRemaining() int { return s.record.LivesRemaining }

// GuessedLetters returns every letter the player has submitted
func (s *Session) GuessedLetters() string { return s.record.GuessedLetters }

// Status returns the session status code
func (s *Session) Status() int { return s.record.Status }

// Score returns the points earned, set only on a winning transition
func (s *Session) Score() int { return s.record.Score }
