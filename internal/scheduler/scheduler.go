package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/hangbot/internal/database"
	"github.com/go-co-op/gocron"
)

// DefaultStaleAfterHours is how long an in-progress game may sit
// untouched before the player gets a reminder
const DefaultStaleAfterHours = 24

// Notifier interface for sending notifications
type Notifier interface {
	SendReminder(userID int64) error
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler  *gocron.Scheduler
	games      *database.GameRepository
	notifier   Notifier
	staleAfter time.Duration
}

// New creates a new scheduler instance
func New(games *database.GameRepository, notifier Notifier) *Scheduler {
	staleAfter := time.Duration(DefaultStaleAfterHours) * time.Hour
	if hoursStr := os.Getenv("STALE_GAME_HOURS"); hoursStr != "" {
		if h, err := strconv.Atoi(hoursStr); err == nil && h > 0 {
			staleAfter = time.Duration(h) * time.Hour
		}
	}

	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.UTC),
		games:      games,
		notifier:   notifier,
		staleAfter: staleAfter,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Hourly sweep for games the player walked away from
	s.scheduler.Every(1).Hour().Do(s.checkStaleGames)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkStaleGames finds abandoned in-progress games and nudges their players
func (s *Scheduler) checkStaleGames() {
	ctx := context.Background()
	cutoff := time.Now().Add(-s.staleAfter).Unix()

	userIDs, err := s.games.StaleSessions(ctx, cutoff)
	if err != nil {
		log.Printf("Error getting stale sessions: %v", err)
		return
	}

	for _, userID := range userIDs {
		if err := s.notifier.SendReminder(userID); err != nil {
			log.Printf("Error sending reminder to user %d: %v", userID, err)
		}
	}
}

// RunManualCheck forces a stale-game sweep, regardless of schedule
func (s *Scheduler) RunManualCheck() {
	s.checkStaleGames()
}
