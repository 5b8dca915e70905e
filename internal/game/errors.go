// internal/game/errors.go
//
// Sentinel errors shared across the engine.

package game

import "errors"

// Engine errors. Guess rejections are soft: they never consume a turn and
// never mutate guess history.
var (
	ErrInvalidConfig      = errors.New("invalid round configuration")
	ErrGuessLength        = errors.New("not enough letters")
	ErrUnknownWord        = errors.New("not in word list")
	ErrHoleResolved       = errors.New("hole already resolved")
	ErrHoleLocked         = errors.New("hole is not available yet")
	ErrWordPending        = errors.New("target word not yet available")
	ErrEmptyWordPool      = errors.New("no words available for this length")
	ErrStartWordCollision = errors.New("start word pool exhausted without avoiding target")
)
