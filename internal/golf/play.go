// internal/golf/play.go
//
// Per-player hole play. In-progress guesses live in an in-memory session map
// (keyed by user|game|round|hole); only terminal outcomes persist, as
// HoleResults inside the player's RoundResult. Availability gates new
// attempts only; resolved holes stay viewable on any day.

package golf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wordlegolf/internal/game"
	"wordlegolf/internal/store"
)

// ErrHoleExpired rejects new attempts on a hole whose day has passed.
var ErrHoleExpired = errors.New("hole is no longer available")

// HoleView is the player's full picture of one hole mid-round.
type HoleView struct {
	HoleNumber   int                `json:"holeNumber"`
	Par          game.Par           `json:"par"`
	WordLength   int                `json:"wordLength"`
	MaxGuesses   int                `json:"maxGuesses"`
	Availability game.Availability  `json:"availability"`
	State        game.HoleState     `json:"state"`
	Guesses      []game.GuessRow    `json:"guesses"`
	Keyboard     []game.KeyboardKey `json:"keyboard,omitempty"`
	StartWordSet bool               `json:"startWordSet"`
	WordPending  bool               `json:"wordPending"`

	// Set only once the hole is terminal.
	Solved     bool   `json:"solved,omitempty"`
	Score      int    `json:"score,omitempty"`
	ScoreName  string `json:"scoreName,omitempty"`
	TargetWord string `json:"targetWord,omitempty"`
}

func sessionKey(userID, gameID string, round, hole int) string {
	return fmt.Sprintf("%s|%s|%d|%d", userID, gameID, round, hole)
}

// roundContext loads everything needed to play or view a hole.
func (s *Service) roundContext(ctx context.Context, gameID string, roundNumber int, userID string) (*game.Game, *game.RoundConfig, []string, []string, error) {
	g, err := s.Game(ctx, gameID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if !g.HasPlayer(userID) {
		return nil, nil, nil, nil, ErrNotPlayer
	}
	cfg := g.Round(roundNumber)
	if cfg == nil {
		return nil, nil, nil, nil, ErrRoundNotFound
	}
	targets, err := s.store.Words(ctx, gameID, roundNumber)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load word assignment: %w", err)
	}
	starts, err := s.store.StartWords(ctx, gameID, roundNumber)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, nil, nil, nil, err
	}
	return g, cfg, targets, starts, nil
}

// holeIndex locates holeNumber inside the round config.
func holeIndex(cfg *game.RoundConfig, holeNumber int) (int, error) {
	for i, h := range cfg.Holes {
		if h.HoleNumber == holeNumber {
			return i, nil
		}
	}
	return 0, ErrRoundNotFound
}

// SubmitGuess plays one guess on a hole. On the player's first interaction
// with an available hole, a configured start word is auto-submitted as guess
// #1 through the same evaluation path before the player's own guess applies.
// Terminal outcomes are persisted into the player's RoundResult; the session
// is then discarded.
func (s *Service) SubmitGuess(ctx context.Context, gameID string, roundNumber, holeNumber int, userID, guess string, now time.Time) (*HoleView, error) {
	_, cfg, targets, starts, err := s.roundContext(ctx, gameID, roundNumber, userID)
	if err != nil {
		return nil, err
	}
	idx, err := holeIndex(cfg, holeNumber)
	if err != nil {
		return nil, err
	}
	hole := cfg.Holes[idx]

	result, err := s.loadResult(ctx, gameID, roundNumber, userID)
	if err != nil {
		return nil, err
	}
	if result.HoleByNumber(holeNumber) != nil {
		return nil, game.ErrHoleResolved
	}

	avail, err := game.HoleAvailabilityOn(cfg.StartDate, holeNumber, now)
	if err != nil {
		return nil, err
	}
	switch avail {
	case game.AvailabilityLocked:
		return nil, game.ErrHoleLocked
	case game.AvailabilityPast:
		return nil, ErrHoleExpired
	}

	target := ""
	if idx < len(targets) {
		target = targets[idx]
	}
	startWord := ""
	if idx < len(starts) {
		startWord = starts[idx]
	}

	key := sessionKey(userID, gameID, roundNumber, holeNumber)
	s.mu.Lock()
	play, ok := s.sessions[key]
	if !ok {
		play = game.NewHolePlay(hole, target, startWord)
		s.sessions[key] = play
	} else if play.Target == "" && target != "" {
		// Classic-mode target resolved after this session was opened.
		play.Target = target
		play.StartWord = startWord
	}
	s.mu.Unlock()

	if _, _, err := play.AutoPlayStartWord(); err != nil {
		return nil, err
	}
	if _, _, err := play.ApplyGuess(guess); err != nil && !errors.Is(err, game.ErrHoleResolved) {
		// A start word that instantly solved the hole still resolves it;
		// anything else is a real rejection.
		return nil, err
	}

	if hr, done := play.Result(); done {
		if err := result.AddHole(hr, len(cfg.Holes), now); err != nil {
			return nil, err
		}
		if err := s.store.SaveRoundResult(ctx, result); err != nil {
			return nil, fmt.Errorf("save round result: %w", err)
		}
		s.mu.Lock()
		delete(s.sessions, key)
		s.mu.Unlock()
	}

	return holeViewFromPlay(hole, play, avail, startWord != ""), nil
}

// HoleState returns the player's view of one hole: an in-flight session, a
// persisted result (always viewable, whatever the schedule says), or a blank
// board.
func (s *Service) HoleState(ctx context.Context, gameID string, roundNumber, holeNumber int, userID string, now time.Time) (*HoleView, error) {
	_, cfg, targets, starts, err := s.roundContext(ctx, gameID, roundNumber, userID)
	if err != nil {
		return nil, err
	}
	idx, err := holeIndex(cfg, holeNumber)
	if err != nil {
		return nil, err
	}
	hole := cfg.Holes[idx]

	avail, err := game.HoleAvailabilityOn(cfg.StartDate, holeNumber, now)
	if err != nil {
		return nil, err
	}

	result, err := s.loadResult(ctx, gameID, roundNumber, userID)
	if err != nil {
		return nil, err
	}
	if hr := result.HoleByNumber(holeNumber); hr != nil {
		return holeViewFromResult(hole, *hr, avail), nil
	}

	s.mu.Lock()
	play, ok := s.sessions[sessionKey(userID, gameID, roundNumber, holeNumber)]
	s.mu.Unlock()
	if !ok {
		target := ""
		if idx < len(targets) {
			target = targets[idx]
		}
		startWord := ""
		if idx < len(starts) {
			startWord = starts[idx]
		}
		play = game.NewHolePlay(hole, target, startWord)
	}
	return holeViewFromPlay(hole, play, avail, play.StartWord != ""), nil
}

// loadResult returns the player's RoundResult, creating an empty one if none
// is persisted yet.
func (s *Service) loadResult(ctx context.Context, gameID string, roundNumber int, userID string) (*game.RoundResult, error) {
	r, err := s.store.RoundResult(ctx, gameID, roundNumber, userID)
	if errors.Is(err, store.ErrNotFound) {
		return game.NewRoundResult(gameID, roundNumber, userID), nil
	}
	return r, err
}

func holeViewFromPlay(cfg game.HoleConfig, play *game.HolePlay, avail game.Availability, hasStart bool) *HoleView {
	v := &HoleView{
		HoleNumber:   cfg.HoleNumber,
		Par:          cfg.Par,
		WordLength:   game.WordLengthForPar(cfg.Par),
		MaxGuesses:   game.MaxGuessesForPar(cfg.Par),
		Availability: avail,
		State:        play.State(),
		Guesses:      play.Guesses,
		Keyboard:     play.Keyboard(),
		StartWordSet: hasStart,
		WordPending:  play.Target == "",
	}
	if hr, done := play.Result(); done {
		v.Solved = hr.Solved
		v.Score = hr.Score
		v.ScoreName = game.ScoreName(hr.Score, cfg.Par)
		v.TargetWord = hr.TargetWord
	}
	return v
}

func holeViewFromResult(cfg game.HoleConfig, hr game.HoleResult, avail game.Availability) *HoleView {
	state := game.HoleFailed
	if hr.Solved {
		state = game.HoleSolved
	}
	return &HoleView{
		HoleNumber:   cfg.HoleNumber,
		Par:          cfg.Par,
		WordLength:   game.WordLengthForPar(cfg.Par),
		MaxGuesses:   game.MaxGuessesForPar(cfg.Par),
		Availability: avail,
		State:        state,
		Guesses:      hr.Guesses,
		Keyboard:     game.BuildKeyboardState(hr.Guesses),
		Solved:       hr.Solved,
		Score:        hr.Score,
		ScoreName:    game.ScoreName(hr.Score, cfg.Par),
		TargetWord:   hr.TargetWord,
	}
}

// ScorecardHole is one line of a player's scorecard.
type ScorecardHole struct {
	HoleNumber   int               `json:"holeNumber"`
	Par          game.Par          `json:"par"`
	Availability game.Availability `json:"availability"`
	UnlocksOn    string            `json:"unlocksOn"`
	Resolved     bool              `json:"resolved"`
	Solved       bool              `json:"solved,omitempty"`
	Score        int               `json:"score,omitempty"`
	Relative     string            `json:"relative,omitempty"`
}

// Scorecard summarizes a round for one player: per-hole availability and any
// resolved scores, plus the running total.
func (s *Service) Scorecard(ctx context.Context, gameID string, roundNumber int, userID string, now time.Time) ([]ScorecardHole, *game.RoundResult, error) {
	_, cfg, _, _, err := s.roundContext(ctx, gameID, roundNumber, userID)
	if err != nil {
		return nil, nil, err
	}
	result, err := s.loadResult(ctx, gameID, roundNumber, userID)
	if err != nil {
		return nil, nil, err
	}

	out := make([]ScorecardHole, 0, len(cfg.Holes))
	for _, hole := range cfg.Holes {
		avail, err := game.HoleAvailabilityOn(cfg.StartDate, hole.HoleNumber, now)
		if err != nil {
			return nil, nil, err
		}
		line := ScorecardHole{
			HoleNumber:   hole.HoleNumber,
			Par:          hole.Par,
			Availability: avail,
			UnlocksOn:    game.FormatHoleDate(cfg.StartDate, hole.HoleNumber),
		}
		if hr := result.HoleByNumber(hole.HoleNumber); hr != nil {
			line.Resolved = true
			line.Solved = hr.Solved
			line.Score = hr.Score
			line.Relative = game.ScoreRelativeToPar(hr.Score, hole.Par)
		}
		out = append(out, line)
	}
	return out, result, nil
}
