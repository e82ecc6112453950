package bot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/example/hangbot/internal/game"
	"github.com/example/hangbot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Main menu buttons
const (
	menuPlay    = "☠️ Играть"
	menuRecords = "🏆 Рекорды"
	menuFriends = "👥 Позвать друзей"
)

// Callback data prefix for letter buttons
const callbackLetterPrefix = "let:"

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) error {
	if message.From == nil || message.Chat == nil {
		return fmt.Errorf("invalid message: required fields are missing")
	}

	if err := b.ensureUser(ctx, message.From, message); err != nil {
		return err
	}

	switch message.Text {
	case menuPlay:
		return b.handleGame(ctx, message.Chat.ID, message.From.ID)
	case menuRecords:
		return b.handleRecords(ctx, message)
	case menuFriends:
		return b.handleFriends(message)
	default:
		// /start and any unrecognized text both land on the welcome screen
		return b.handleWelcome(ctx, message)
	}
}

// ensureUser registers a first-time user, resolving the referral payload
// of /start, and refreshes the stored name for returning users
func (b *Bot) ensureUser(ctx context.Context, from *tgbotapi.User, message *tgbotapi.Message) error {
	name := strings.TrimSpace(from.FirstName + " " + from.LastName)

	existing, err := b.userRepo.GetByTelegramID(ctx, from.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		if name != "" && name != existing.Name {
			return b.userRepo.UpdateName(ctx, from.ID, name)
		}
		return nil
	}

	user := &models.User{UserID: from.ID, Name: name}

	// A /start deep link carries the referer's Telegram id
	if message != nil && message.IsCommand() && message.Command() == "start" {
		payload := strings.TrimSpace(message.CommandArguments())
		if refererID, err := strconv.ParseInt(payload, 10, 64); err == nil && refererID != from.ID {
			registered, err := b.userRepo.Exists(ctx, refererID)
			if err != nil {
				return err
			}
			if registered {
				user.Referer = sql.NullInt64{Int64: refererID, Valid: true}
				go b.notifyReferer(refererID, name)
			}
		}
	}

	if err := b.userRepo.Create(ctx, user); err != nil {
		return err
	}
	log.Printf("New user: %s (%d), referer: %v", user.Name, user.UserID, user.Referer.Int64)
	return nil
}

// notifyReferer tells a user that somebody joined through their link
func (b *Bot) notifyReferer(refererID int64, name string) {
	msg := tgbotapi.NewMessage(refererID,
		"👋 По вашей реферальной ссылке зарегистрировался новый участник\n\n*"+name+"*")
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error notifying referer %d: %v", refererID, err)
	}
}

func (b *Bot) handleWelcome(ctx context.Context, message *tgbotapi.Message) error {
	text := "*Добро пожаловать в игру ☠️ виселица!*\n\n" +
		"Ваша задача в игре угадывать слова, делая как можно меньше ошибок.\n" +
		"Нажимай *" + menuPlay + "*, чтобы начать!"

	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuPlay),
			tgbotapi.NewKeyboardButton(menuRecords),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuFriends),
		),
	)
	keyboard.ResizeKeyboard = true

	return b.sendPhoto(ctx, message.Chat.ID, b.welcomeImage(), text, keyboard)
}

// handleGame resumes or starts the user's game and sends the board
func (b *Bot) handleGame(ctx context.Context, chatID, userID int64) error {
	lock := b.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	session, err := game.NewSession(ctx, b.gameDeps(), userID)
	if err != nil {
		return fmt.Errorf("failed to start game for user %d: %v", userID, err)
	}

	keyboard := letterKeyboard(session)
	return b.sendPhoto(ctx, chatID, b.stageImage(session.LivesRemaining()), gameCaption(session), keyboard)
}

func (b *Bot) handleRecords(ctx context.Context, message *tgbotapi.Message) error {
	total, err := b.gameRepo.TotalPoints(ctx, message.From.ID)
	if err != nil {
		return err
	}

	entries, err := b.gameRepo.TopScores(ctx, b.config.TopScoresLimit)
	if err != nil {
		return err
	}

	var text strings.Builder
	fmt.Fprintf(&text, "*%s*\n\nУ вас: *%d* 💎 очков\n", menuRecords, total)
	for i, entry := range entries {
		fmt.Fprintf(&text, "\n%d. %s - *%d* 💎", i+1, entry.Name, entry.Points)
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, text.String())
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err = b.api.Send(msg)
	return err
}

func (b *Bot) handleFriends(message *tgbotapi.Message) error {
	link := fmt.Sprintf("https://t.me/%s?start=%d", b.config.Username, message.From.ID)
	text := "Вы можете пригласить своих друзей в игру виселица\n" +
		"Для этого просто отправьте им ссылку:\n\n" + link

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	_, err := b.api.Send(msg)
	return err
}

// handleCallback processes a letter button press
func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	if callback.From == nil || callback.Message == nil || !strings.HasPrefix(callback.Data, callbackLetterPrefix) {
		return nil
	}
	letter := strings.TrimPrefix(callback.Data, callbackLetterPrefix)
	userID := callback.From.ID

	if err := b.ensureUser(ctx, callback.From, nil); err != nil {
		return err
	}

	lock := b.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	// A button from an already finished board has no game behind it
	directory := game.NewDirectory(b.store)
	active, err := directory.FindActive(ctx, userID)
	if err != nil {
		return err
	}
	if active == nil {
		return b.answerCallback(callback.ID, "Нет найденных игр")
	}

	session, err := game.NewSession(ctx, b.gameDeps(), userID)
	if err != nil {
		return err
	}

	code, note, err := session.SubmitLetter(ctx, letter)
	if err != nil {
		switch {
		case errors.Is(err, game.ErrInvalidLetter):
			return b.answerCallback(callback.ID, "Некорректная буква")
		case errors.Is(err, game.ErrSessionTerminal):
			return b.answerCallback(callback.ID, "Нет найденных игр")
		}
		return err
	}

	if code == game.CodeRepeated {
		return b.answerCallback(callback.ID, note)
	}
	if err := b.answerCallback(callback.ID, ""); err != nil {
		log.Printf("Error answering callback: %v", err)
	}

	caption := gameCaption(session)
	keyboard := letterKeyboard(session)
	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID

	switch code {
	case game.CodeLost:
		return b.editPhoto(ctx, chatID, messageID, b.stageImage(session.LivesRemaining()), caption, nil)
	case game.CodeMissed:
		return b.editPhoto(ctx, chatID, messageID, b.stageImage(session.LivesRemaining()), caption, &keyboard)
	case game.CodeRevealed:
		edit := tgbotapi.NewEditMessageCaption(chatID, messageID, caption)
		edit.ParseMode = tgbotapi.ModeMarkdown
		edit.ReplyMarkup = &keyboard
		_, err = b.api.Send(edit)
		return err
	case game.CodeWon:
		edit := tgbotapi.NewEditMessageCaption(chatID, messageID, caption)
		edit.ParseMode = tgbotapi.ModeMarkdown
		_, err = b.api.Send(edit)
		return err
	}
	return nil
}

func (b *Bot) answerCallback(callbackID, text string) error {
	_, err := b.api.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}

// gameCaption builds the board text: category, masked (or, once the
// game is over, full) word and the outcome line
func gameCaption(session *game.Session) string {
	state := session.RenderState()

	word := state.DisplayWord
	if session.Status() != models.StatusInProgress {
		word = session.Word()
	}

	text := fmt.Sprintf("*Категория:* %s\n\n*Слово:*\n%s", session.Category(), word)
	switch session.Status() {
	case models.StatusLost:
		text += "\n\n❌ Игра закончена! Вы проиграли 😔"
	case models.StatusWon:
		text += fmt.Sprintf("\n\n✅ Победа!\n\nВы получили: *%d* 💎 очков", session.Score())
	}
	return text
}
