// internal/store/store.go
//
// Persistence port for the golf-wordle core. The engine holds no process-wide
// state: users, games, word assignments, and round results are loaded and
// saved through this interface. Implementations may be backed by memory
// (development/tests) or SQLite (durable).
//
// Word and start-word assignments are persisted separately from game
// configuration so upcoming answers never ride along in a game payload.

package store

import (
	"context"
	"errors"
	"time"

	"wordlegolf/internal/game"
)

// ErrNotFound is returned when a keyed entity does not exist.
var ErrNotFound = errors.New("not found")

// User is an account row. PasswordHash is a bcrypt hash.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Store is the full persistence surface. No two writers race on the same key
// without external synchronization; in this domain each player writes only
// their own results and only a game's creator writes its assignments.
type Store interface {
	// Users
	SaveUser(ctx context.Context, u *User) error
	UserByID(ctx context.Context, id string) (*User, error)
	UserByUsername(ctx context.Context, username string) (*User, error)

	// Games (config + roster; rounds are append-only)
	SaveGame(ctx context.Context, g *game.Game) error
	GameByID(ctx context.Context, id string) (*game.Game, error)
	ListGames(ctx context.Context) ([]*game.Game, error)
	DeleteGame(ctx context.Context, id string) error

	// Word assignments, keyed by (game, round). Written once at round
	// creation and read-only thereafter; classic-mode pending slots may be
	// filled in by a later save of the same key.
	SaveWords(ctx context.Context, gameID string, roundNumber int, words []string) error
	Words(ctx context.Context, gameID string, roundNumber int) ([]string, error)
	SaveStartWords(ctx context.Context, gameID string, roundNumber int, words []string) error
	StartWords(ctx context.Context, gameID string, roundNumber int) ([]string, error)

	// Round results, keyed by (game, round, user)
	SaveRoundResult(ctx context.Context, r *game.RoundResult) error
	RoundResult(ctx context.Context, gameID string, roundNumber int, userID string) (*game.RoundResult, error)
	ResultsForGame(ctx context.Context, gameID string) ([]*game.RoundResult, error)
	ResultsForUser(ctx context.Context, userID string) ([]*game.RoundResult, error)
}
