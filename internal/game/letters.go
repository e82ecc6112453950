package game

import "strings"

// The game is played over the 32-letter Russian alphabet with Ё folded
// into Е, so a player never has to distinguish the two.

const (
	firstLetter = 'А'
	lastLetter  = 'Я'
)

// Placeholder is the glyph shown for letters not yet guessed
const Placeholder = "◻️"

// Alphabet returns the playable letters in alphabetical order
func Alphabet() []rune {
	letters := make([]rune, 0, lastLetter-firstLetter+1)
	for r := firstLetter; r <= lastLetter; r++ {
		letters = append(letters, r)
	}
	return letters
}

// NormalizeWord uppercases a catalog word and folds Ё into Е.
// All gameplay comparisons run over this normalized form.
func NormalizeWord(word string) string {
	return strings.ReplaceAll(strings.ToUpper(word), "Ё", "Е")
}

// NormalizeLetter validates a player's guess and maps it onto the game
// alphabet. Anything that is not a single Russian letter is rejected.
func NormalizeLetter(letter string) (rune, error) {
	runes := []rune(strings.ToUpper(strings.TrimSpace(letter)))
	if len(runes) != 1 {
		return 0, ErrInvalidLetter
	}
	r := runes[0]
	if r == 'Ё' {
		r = 'Е'
	}
	if r < firstLetter || r > lastLetter {
		return 0, ErrInvalidLetter
	}
	return r, nil
}

// covered reports whether every distinct letter of word is present in
// guessed. Duplicate letters in the word only need one guess.
func covered(word, guessed string) bool {
	for _, r := range word {
		if !strings.ContainsRune(guessed, r) {
			return false
		}
	}
	return true
}
