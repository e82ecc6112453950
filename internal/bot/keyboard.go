package bot

import (
	"strings"

	"github.com/example/hangbot/internal/game"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const lettersPerRow = 8

// letterKeyboard builds the inline alphabet keyboard for a running
// game, marking every letter the player has already tried
func letterKeyboard(session *game.Session) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for _, letter := range game.Alphabet() {
		row = append(row, letterButton(session, letter))
		if len(row) == lettersPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func letterButton(session *game.Session, letter rune) tgbotapi.InlineKeyboardButton {
	// The filler keeps untouched buttons the same width as marked ones
	text := "ᅠ" + string(letter)
	if strings.ContainsRune(session.GuessedLetters(), letter) {
		if strings.ContainsRune(session.Word(), letter) {
			text = "✅" + string(letter)
		} else {
			text = "❌" + string(letter)
		}
	}
	return tgbotapi.NewInlineKeyboardButtonData(text, callbackLetterPrefix+string(letter))
}
