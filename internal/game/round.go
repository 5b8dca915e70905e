// internal/game/round.go
//
// RoundResult accumulation: hole results land one at a time as each hole
// resolves; the round completes exactly when every configured hole has a
// result. Completed rounds are informally immutable: resubmitting a
// resolved hole is rejected.

package game

import (
	"fmt"
	"sort"
	"time"
)

// NewRoundResult starts an empty result for one player in one round.
func NewRoundResult(gameID string, roundNumber int, userID string) *RoundResult {
	return &RoundResult{
		GameID:      gameID,
		RoundNumber: roundNumber,
		UserID:      userID,
	}
}

// HoleByNumber returns the result for holeNumber, or nil if not yet resolved.
func (r *RoundResult) HoleByNumber(holeNumber int) *HoleResult {
	for i := range r.Holes {
		if r.Holes[i].HoleNumber == holeNumber {
			return &r.Holes[i]
		}
	}
	return nil
}

// AddHole records a resolved hole, recomputes the total, and stamps
// CompletedAt once the result holds one hole per configured hole. A hole that
// already has a result is rejected; resolved holes are immutable.
func (r *RoundResult) AddHole(h HoleResult, totalHoles int, now time.Time) error {
	if r.CompletedAt != nil {
		return fmt.Errorf("round %d: %w", r.RoundNumber, ErrHoleResolved)
	}
	if r.HoleByNumber(h.HoleNumber) != nil {
		return fmt.Errorf("hole %d: %w", h.HoleNumber, ErrHoleResolved)
	}

	r.Holes = append(r.Holes, h)
	sort.Slice(r.Holes, func(i, j int) bool {
		return r.Holes[i].HoleNumber < r.Holes[j].HoleNumber
	})

	r.TotalScore = 0
	for _, hr := range r.Holes {
		r.TotalScore += hr.Score
	}

	if len(r.Holes) == totalHoles {
		t := now
		r.CompletedAt = &t
	}
	return nil
}

// Complete reports whether every configured hole has a result.
func (r *RoundResult) Complete() bool {
	return r != nil && r.CompletedAt != nil
}

// RoundCompleteForAll reports whether every player on the roster has a
// completed result. Each player's result is written only by that player, so
// this is a plain poll over persisted state.
func RoundCompleteForAll(playerIDs []string, results map[string]*RoundResult) bool {
	if len(playerIDs) == 0 {
		return false
	}
	for _, id := range playerIDs {
		if !results[id].Complete() {
			return false
		}
	}
	return true
}
