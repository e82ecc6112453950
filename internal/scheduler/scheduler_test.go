package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/example/hangbot/internal/database"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type recordingNotifier struct {
	reminded []int64
}

func (n *recordingNotifier) SendReminder(userID int64) error {
	n.reminded = append(n.reminded, userID)
	return nil
}

func TestStaleGameSweep(t *testing.T) {
	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.InitSchema(db); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}
	store := database.NewStore(db)
	ctx := context.Background()

	// One game abandoned long ago, one started just now
	if _, err := store.Insert(ctx, "games", database.Fields{
		"user_id": int64(1), "word_id": int64(1), "time_start": int64(0),
	}); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if _, err := store.Insert(ctx, "games", database.Fields{
		"user_id": int64(2), "word_id": int64(2), "time_start": time.Now().Unix(),
	}); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	notifier := &recordingNotifier{}
	s := New(database.NewGameRepository(store), notifier)
	s.RunManualCheck()

	if len(notifier.reminded) != 1 || notifier.reminded[0] != 1 {
		t.Fatalf("expected a reminder for user 1 only, got %v", notifier.reminded)
	}
}
