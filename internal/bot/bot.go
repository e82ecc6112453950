package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/example/hangbot/internal/database"
	"github.com/example/hangbot/internal/game"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
)

// Bot represents the Telegram bot application
type Bot struct {
	api       *tgbotapi.BotAPI
	store     *database.Store
	userRepo  *database.UserRepository
	wordRepo  *database.WordRepository
	gameRepo  *database.GameRepository
	photoRepo *database.PhotoRepository
	config    *Config

	// Guesses for the same user must run one at a time
	mu        sync.Mutex
	userLocks map[int64]*sync.Mutex
}

// New creates a new bot instance over an established database connection
func New(db *sqlx.DB) (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %v", err)
	}

	store := database.NewStore(db)
	config := DefaultConfig()
	if config.Username == "" {
		config.Username = api.Self.UserName
	}

	return &Bot{
		api:       api,
		store:     store,
		userRepo:  database.NewUserRepository(store),
		wordRepo:  database.NewWordRepository(store),
		gameRepo:  database.NewGameRepository(store),
		photoRepo: database.NewPhotoRepository(store),
		config:    config,
		userLocks: make(map[int64]*sync.Mutex),
	}, nil
}

// Start runs the update loop until the context is cancelled
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	log.Printf("Authorized on account %s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

// Stop shuts down the update loop
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	var err error
	switch {
	case update.CallbackQuery != nil:
		err = b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		err = b.handleMessage(ctx, update.Message)
	}
	if err != nil {
		log.Printf("Error handling update: %v", err)
	}
}

// userLock returns the mutex serializing game actions for one user
func (b *Bot) userLock(userID int64) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()
	lock, ok := b.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		b.userLocks[userID] = lock
	}
	return lock
}

func (b *Bot) gameDeps() game.Deps {
	return game.Deps{
		Store:   b.store,
		Catalog: b.wordRepo,
	}
}

// SendReminder nudges a user about an unfinished game. Used by the
// scheduler for stale sessions.
func (b *Bot) SendReminder(userID int64) error {
	msg := tgbotapi.NewMessage(userID,
		"☠️ У вас есть незаконченная игра!\n\nНажмите *"+menuPlay+"*, чтобы вернуться к ней.")
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %v", err)
	}
	return nil
}
