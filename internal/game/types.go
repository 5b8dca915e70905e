// internal/game/types.go
//
// Core type definitions for the golf-wordle engine.
// Defines:
//   - LetterStatus / GuessRow: per-letter feedback for a guess.
//   - Par / HoleConfig / RoundConfig: immutable round configuration.
//   - Game: a shared game with roster and append-only rounds.
//   - HoleResult / RoundResult: per-player outcomes.

package game

import (
	"fmt"
	"strings"
	"time"

	"wordlegolf/internal/words"
)

// LetterStatus is the evaluation result for a single letter in a guess.
type LetterStatus string

const (
	StatusCorrect LetterStatus = "correct" // right letter, right position
	StatusPresent LetterStatus = "present" // right letter, wrong position
	StatusAbsent  LetterStatus = "absent"  // letter not in target (or already consumed)
	StatusEmpty   LetterStatus = "empty"   // placeholder cell
	StatusUnused  LetterStatus = "unused"  // keyboard key not yet guessed
)

// LetterGuess pairs one guessed letter with its status.
type LetterGuess struct {
	Letter string       `json:"letter"`
	Status LetterStatus `json:"status"`
}

// GuessRow is the feedback for one full guess, exactly wordLength cells.
// Rows are produced only by Evaluate and never mutated afterwards.
type GuessRow []LetterGuess

// KeyboardKey is the aggregate status of one letter across all guesses so far.
type KeyboardKey struct {
	Key    string       `json:"key"`
	Status LetterStatus `json:"status"`
}

// Par is a hole's difficulty tier. It fixes the word length and guess budget.
type Par int

const (
	Par3 Par = 3 // 4-letter word, 5 guesses
	Par4 Par = 4 // 5-letter word, 6 guesses
	Par5 Par = 5 // 6-letter word, 7 guesses
)

// Valid reports whether p is one of the playable par tiers.
func (p Par) Valid() bool { return p == Par3 || p == Par4 || p == Par5 }

// StartWordMode controls how a forced first guess is chosen for a nine.
type StartWordMode string

const (
	StartWordNone   StartWordMode = "none"
	StartWordTheme  StartWordMode = "theme"
	StartWordCustom StartWordMode = "custom"
)

// WordMode selects where target words come from.
type WordMode string

const (
	// WordModeThemed draws targets from the themed catalog (seeded, deterministic).
	WordModeThemed WordMode = "themed"
	// WordModeClassic resolves each hole's target from the remote word-of-the-day
	// source for the hole's calendar date; holes stay pending until fetched.
	WordModeClassic WordMode = "classic"
)

// Visibility controls who can discover and join a game.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// HoleConfig is one hole's fixed configuration. Immutable once a round starts.
type HoleConfig struct {
	HoleNumber      int    `json:"holeNumber"` // 1..18
	Par             Par    `json:"par"`
	CustomWord      string `json:"customWord,omitempty"`      // verbatim target, overrides selection
	CustomStartWord string `json:"customStartWord,omitempty"` // verbatim forced first guess
}

// RoundConfig describes one full round. Rounds are append-only on a game;
// nothing here mutates after the round's words are generated.
type RoundConfig struct {
	RoundNumber         int           `json:"roundNumber"`
	Holes               []HoleConfig  `json:"holes"`
	WordMode            WordMode      `json:"wordMode,omitempty"`
	FrontNineTheme      words.Theme   `json:"frontNineTheme,omitempty"`
	BackNineTheme       words.Theme   `json:"backNineTheme,omitempty"`
	StartDate           string        `json:"startDate"` // ISO date anchoring the unlock schedule
	StartWordModeFront  StartWordMode `json:"startWordModeFront,omitempty"`
	StartWordModeBack   StartWordMode `json:"startWordModeBack,omitempty"`
	StartWordThemeFront words.Theme   `json:"startWordThemeFront,omitempty"`
	StartWordThemeBack  words.Theme   `json:"startWordThemeBack,omitempty"`
}

// themeForHole returns the target theme for the idx-th hole (0-based):
// front-nine theme for the first nine, back-nine theme after.
func (c RoundConfig) themeForHole(idx int) words.Theme {
	if idx < 9 {
		if c.FrontNineTheme != "" {
			return c.FrontNineTheme
		}
		return words.ThemeGolf
	}
	if c.BackNineTheme != "" {
		return c.BackNineTheme
	}
	return words.ThemeGolf
}

// startWordPlan returns the start-word mode and theme for the idx-th hole.
func (c RoundConfig) startWordPlan(idx int) (StartWordMode, words.Theme) {
	mode, theme := c.StartWordModeFront, c.StartWordThemeFront
	if idx >= 9 {
		mode, theme = c.StartWordModeBack, c.StartWordThemeBack
	}
	if mode == "" {
		mode = StartWordNone
	}
	if theme == "" {
		theme = c.themeForHole(idx)
	}
	return mode, theme
}

// Game is a shared game: roster, invitations, and its rounds to date.
type Game struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	CreatorID      string        `json:"creatorId"`
	Visibility     Visibility    `json:"visibility"`
	Password       string        `json:"-"`
	InvitedUserIDs []string      `json:"invitedUserIds"`
	PlayerIDs      []string      `json:"playerIds"`
	Rounds         []RoundConfig `json:"rounds"`
	CurrentRound   int           `json:"currentRound"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// Round returns the configuration for roundNumber, or nil if absent.
func (g *Game) Round(roundNumber int) *RoundConfig {
	for i := range g.Rounds {
		if g.Rounds[i].RoundNumber == roundNumber {
			return &g.Rounds[i]
		}
	}
	return nil
}

// HasPlayer reports whether userID is on the roster.
func (g *Game) HasPlayer(userID string) bool {
	for _, id := range g.PlayerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsInvited reports whether userID is on the invite list.
func (g *Game) IsInvited(userID string) bool {
	for _, id := range g.InvitedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HoleResult is a player's terminal outcome for one hole. Immutable once
// created: a resolved hole cannot be replayed.
type HoleResult struct {
	HoleNumber int        `json:"holeNumber"`
	Guesses    []GuessRow `json:"guesses"`
	TargetWord string     `json:"targetWord"`
	Solved     bool       `json:"solved"`
	Score      int        `json:"score"`
}

// RoundResult accumulates one player's hole results for one round of a game.
// Owned by the (game, round, user) triple; written only by that player.
type RoundResult struct {
	GameID      string       `json:"gameId"`
	RoundNumber int          `json:"roundNumber"`
	UserID      string       `json:"userId"`
	Holes       []HoleResult `json:"holes"`
	TotalScore  int          `json:"totalScore"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
}

// ValidateRoundConfig rejects malformed configuration before any word
// assignment runs. Configuration errors are creation-time faults, never
// play-time faults.
func ValidateRoundConfig(c RoundConfig) error {
	if c.RoundNumber < 1 {
		return fmt.Errorf("%w: round number %d", ErrInvalidConfig, c.RoundNumber)
	}
	if len(c.Holes) == 0 || len(c.Holes) > 18 {
		return fmt.Errorf("%w: %d holes", ErrInvalidConfig, len(c.Holes))
	}
	switch c.WordMode {
	case "", WordModeThemed, WordModeClassic:
	default:
		return fmt.Errorf("%w: word mode %q", ErrInvalidConfig, c.WordMode)
	}
	seen := make(map[int]struct{}, len(c.Holes))
	for i, h := range c.Holes {
		if h.HoleNumber < 1 || h.HoleNumber > 18 {
			return fmt.Errorf("%w: hole number %d", ErrInvalidConfig, h.HoleNumber)
		}
		if _, dup := seen[h.HoleNumber]; dup {
			return fmt.Errorf("%w: duplicate hole number %d", ErrInvalidConfig, h.HoleNumber)
		}
		seen[h.HoleNumber] = struct{}{}
		if !h.Par.Valid() {
			return fmt.Errorf("%w: hole %d par %d", ErrInvalidConfig, h.HoleNumber, h.Par)
		}
		want := WordLengthForPar(h.Par)
		if h.CustomWord != "" {
			cw := Normalize(h.CustomWord)
			if len(cw) != want {
				return fmt.Errorf("%w: hole %d custom word %q is not %d letters",
					ErrInvalidConfig, h.HoleNumber, h.CustomWord, want)
			}
			if !isLetters(cw) {
				return fmt.Errorf("%w: hole %d custom word %q has non-letter characters",
					ErrInvalidConfig, h.HoleNumber, h.CustomWord)
			}
		}
		if h.CustomStartWord != "" {
			if len(h.CustomStartWord) != want {
				return fmt.Errorf("%w: hole %d custom start word %q is not %d letters",
					ErrInvalidConfig, h.HoleNumber, h.CustomStartWord, want)
			}
			if !words.IsValid(h.CustomStartWord) {
				return fmt.Errorf("%w: hole %d custom start word %q is not in the word list",
					ErrInvalidConfig, h.HoleNumber, h.CustomStartWord)
			}
		}
		mode, _ := c.startWordPlan(i)
		if mode == StartWordCustom && h.CustomStartWord == "" {
			return fmt.Errorf("%w: hole %d has custom start-word mode but no word",
				ErrInvalidConfig, h.HoleNumber)
		}
		if mode != StartWordNone && mode != StartWordTheme && mode != StartWordCustom {
			return fmt.Errorf("%w: start word mode %q", ErrInvalidConfig, mode)
		}
	}
	if _, err := ParseLocalDate(c.StartDate); err != nil {
		return fmt.Errorf("%w: start date %q", ErrInvalidConfig, c.StartDate)
	}
	return nil
}

// Normalize uppercases a raw guess or word for comparison.
func Normalize(w string) string {
	return strings.ToUpper(strings.TrimSpace(w))
}

// isLetters reports whether s is entirely uppercase ASCII letters.
func isLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return len(s) > 0
}
