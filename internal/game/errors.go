package game

import "errors"

var (
	// ErrCatalogIntegrity means a stored or sampled word id has no
	// catalog entry. The catalog is malformed; not recoverable.
	ErrCatalogIntegrity = errors.New("word catalog is malformed")

	// ErrSessionTerminal means a guess was submitted against a
	// finished session. The caller must start a new game.
	ErrSessionTerminal = errors.New("game session already finished")

	// ErrInvalidLetter means the input is not a single letter of the
	// game alphabet. Rejected before any state mutation.
	ErrInvalidLetter = errors.New("invalid letter")
)
