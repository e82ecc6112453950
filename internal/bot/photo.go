package bot

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// welcomeImage is the cover picture shown on the welcome screen
func (b *Bot) welcomeImage() string {
	return filepath.Join(b.config.ImageDir, "hangman.png")
}

// stageImage maps remaining lives to the gallows drawing: 1.png for a
// fresh game through 8.png for the final state
func (b *Bot) stageImage(lives int) string {
	return filepath.Join(b.config.ImageDir, fmt.Sprintf("%d.png", 8-lives))
}

// photoFile resolves a local path to the Telegram upload payload,
// preferring a cached file_id over a fresh upload
func (b *Bot) photoFile(ctx context.Context, path string) (tgbotapi.RequestFileData, bool) {
	fileID, err := b.photoRepo.GetFileID(ctx, path)
	if err != nil {
		log.Printf("Error reading photo cache: %v", err)
	}
	if fileID != "" {
		return tgbotapi.FileID(fileID), true
	}
	return tgbotapi.FilePath(path), false
}

// cachePhoto remembers the file_id Telegram assigned to an upload
func (b *Bot) cachePhoto(ctx context.Context, path string, sent tgbotapi.Message) {
	if len(sent.Photo) == 0 {
		return
	}
	fileID := sent.Photo[len(sent.Photo)-1].FileID
	if err := b.photoRepo.Save(ctx, path, fileID); err != nil {
		log.Printf("Error caching photo %s: %v", path, err)
	}
}

// sendPhoto sends an image message, caching the uploaded file
func (b *Bot) sendPhoto(ctx context.Context, chatID int64, path, caption string, keyboard interface{}) error {
	file, cached := b.photoFile(ctx, path)

	msg := tgbotapi.NewPhoto(chatID, file)
	msg.Caption = caption
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = keyboard

	sent, err := b.api.Send(msg)
	if err != nil {
		return fmt.Errorf("failed to send photo: %v", err)
	}
	if !cached {
		b.cachePhoto(ctx, path, sent)
	}
	return nil
}

// editPhoto swaps the image and caption of an already sent game message
func (b *Bot) editPhoto(ctx context.Context, chatID int64, messageID int, path, caption string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	file, cached := b.photoFile(ctx, path)

	media := tgbotapi.NewInputMediaPhoto(file)
	media.Caption = caption
	media.ParseMode = tgbotapi.ModeMarkdown

	edit := tgbotapi.EditMessageMediaConfig{
		BaseEdit: tgbotapi.BaseEdit{
			ChatID:      chatID,
			MessageID:   messageID,
			ReplyMarkup: keyboard,
		},
		Media: media,
	}

	sent, err := b.api.Send(edit)
	if err != nil {
		return fmt.Errorf("failed to edit photo: %v", err)
	}
	if !cached {
		b.cachePhoto(ctx, path, sent)
	}
	return nil
}
