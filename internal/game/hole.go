// internal/game/hole.go
//
// Per-player play state for a single hole.
// State transitions: unstarted → in_progress → solved | failed.
// Terminal states are final; guess rejections (length, dictionary) never
// consume a turn or touch the history.

package game

import (
	"wordlegolf/internal/words"
)

// HoleState is the lifecycle state of one player's attempt at one hole.
type HoleState string

const (
	HoleUnstarted  HoleState = "unstarted"
	HoleInProgress HoleState = "in_progress"
	HoleSolved     HoleState = "solved"
	HoleFailed     HoleState = "failed"
)

// HolePlay tracks one player's in-progress attempt at one hole. Guess history
// is append-only; once a terminal state is reached no further guesses apply.
type HolePlay struct {
	HoleNumber int        `json:"holeNumber"`
	Par        Par        `json:"par"`
	Target     string     `json:"-"`
	StartWord  string     `json:"-"`
	Guesses    []GuessRow `json:"guesses"`
	Solved     bool       `json:"solved"`
	Finished   bool       `json:"finished"`
}

// NewHolePlay starts an attempt at a hole. target may be empty in classic
// word mode before the day's word has been fetched; guessing is rejected
// until it resolves.
func NewHolePlay(cfg HoleConfig, target, startWord string) *HolePlay {
	return &HolePlay{
		HoleNumber: cfg.HoleNumber,
		Par:        cfg.Par,
		Target:     Normalize(target),
		StartWord:  Normalize(startWord),
	}
}

// State reports the current lifecycle state.
func (h *HolePlay) State() HoleState {
	switch {
	case h.Finished && h.Solved:
		return HoleSolved
	case h.Finished:
		return HoleFailed
	case len(h.Guesses) == 0:
		return HoleUnstarted
	default:
		return HoleInProgress
	}
}

// ApplyGuess validates and scores one guess, mutating the play state.
//
// Rejections (no turn consumed):
//   - ErrWordPending: target not yet resolved (classic mode).
//   - ErrHoleResolved: hole already terminal.
//   - ErrGuessLength: guess is not exactly the hole's word length.
//   - ErrUnknownWord: guess is not in the word catalog.
//
// Transitions:
//   - All letters correct → solved, score = guesses used.
//   - Guess budget spent without solving → failed, score = budget + 1.
func (h *HolePlay) ApplyGuess(guess string) (GuessRow, HoleState, error) {
	if h.Target == "" {
		return nil, h.State(), ErrWordPending
	}
	if h.Finished {
		return nil, h.State(), ErrHoleResolved
	}
	guess = Normalize(guess)
	if len(guess) != WordLengthForPar(h.Par) {
		return nil, h.State(), ErrGuessLength
	}
	if !words.IsValid(guess) {
		return nil, h.State(), ErrUnknownWord
	}

	row := Evaluate(guess, h.Target)
	h.Guesses = append(h.Guesses, row)

	if IsGuessCorrect(row) {
		h.Finished, h.Solved = true, true
	} else if len(h.Guesses) >= MaxGuessesForPar(h.Par) {
		h.Finished = true
	}
	return row, h.State(), nil
}

// AutoPlayStartWord submits the configured start word as guess #1, through
// the normal evaluation path. It applies only when a start word is configured
// and no guess has been made yet; otherwise it reports false with no effect.
// Collision avoidance at assignment time makes an instant solve all but
// impossible, but if it happens the hole resolves solved-in-one like any
// other correct guess.
func (h *HolePlay) AutoPlayStartWord() (GuessRow, bool, error) {
	if h.StartWord == "" || len(h.Guesses) > 0 || h.Finished {
		return nil, false, nil
	}
	row, _, err := h.ApplyGuess(h.StartWord)
	if err != nil {
		return nil, false, err
	}
	return row, true, nil
}

// Keyboard returns the aggregate keyboard state over all guesses so far.
func (h *HolePlay) Keyboard() []KeyboardKey {
	return BuildKeyboardState(h.Guesses)
}

// Result converts a terminal play into its immutable HoleResult. The second
// return is false while the hole is still in progress.
func (h *HolePlay) Result() (HoleResult, bool) {
	if !h.Finished {
		return HoleResult{}, false
	}
	return HoleResult{
		HoleNumber: h.HoleNumber,
		Guesses:    h.Guesses,
		TargetWord: h.Target,
		Solved:     h.Solved,
		Score:      HoleScore(h.Solved, len(h.Guesses), h.Par),
	}, true
}
