// internal/golf/results.go
//
// Read-side aggregation over persisted round results: round completion,
// comparative reveal gating, and leaderboard statistics.

package golf

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"wordlegolf/internal/game"
	"wordlegolf/internal/store"
)

// RoundStanding is one player's completion state for a round. TotalScore and
// Relative are populated only once comparative results are revealed.
type RoundStanding struct {
	UserID     string `json:"userId"`
	Complete   bool   `json:"complete"`
	TotalScore int    `json:"totalScore,omitempty"`
	Relative   string `json:"relative,omitempty"`
}

// RoundStandings reports each roster player's completion state for a round.
// Comparative scores are revealed only when every player has completed the
// round; until then only the completion flags are visible.
func (s *Service) RoundStandings(ctx context.Context, gameID string, roundNumber int) ([]RoundStanding, bool, error) {
	g, err := s.Game(ctx, gameID)
	if err != nil {
		return nil, false, err
	}
	cfg := g.Round(roundNumber)
	if cfg == nil {
		return nil, false, ErrRoundNotFound
	}

	results := make(map[string]*game.RoundResult, len(g.PlayerIDs))
	for _, uid := range g.PlayerIDs {
		r, err := s.store.RoundResult(ctx, gameID, roundNumber, uid)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, false, err
		}
		results[uid] = r
	}
	allDone := game.RoundCompleteForAll(g.PlayerIDs, results)

	standings := make([]RoundStanding, 0, len(g.PlayerIDs))
	for _, uid := range g.PlayerIDs {
		st := RoundStanding{UserID: uid, Complete: results[uid].Complete()}
		if allDone {
			r := results[uid]
			st.TotalScore = r.TotalScore
			rel := game.RoundScoreRelativeToPar(r.Holes, cfg.Holes)
			st.Relative = relativeString(rel)
		}
		standings = append(standings, st)
	}
	if allDone {
		sort.SliceStable(standings, func(i, j int) bool {
			return standings[i].TotalScore < standings[j].TotalScore
		})
	}
	return standings, allDone, nil
}

// ResultsForUser lists all of a user's round results across games.
func (s *Service) ResultsForUser(ctx context.Context, userID string) ([]*game.RoundResult, error) {
	return s.store.ResultsForUser(ctx, userID)
}

// LeaderboardEntry aggregates a player's results across all completed rounds.
type LeaderboardEntry struct {
	UserID       string  `json:"userId"`
	RoundsPlayed int     `json:"roundsPlayed"`
	HolesPlayed  int     `json:"holesPlayed"`
	TotalScore   int     `json:"totalScore"`
	AverageScore float64 `json:"averageScore"` // per completed round
	BestRound    int     `json:"bestRoundScore"`
	HolesInOne   int     `json:"holesInOne"`
	Eagles       int     `json:"eagles"`
	Birdies      int     `json:"birdies"`
}

// Leaderboard folds every player's completed rounds in a game into aggregate
// statistics, best total first.
func (s *Service) Leaderboard(ctx context.Context, gameID string) ([]LeaderboardEntry, error) {
	g, err := s.Game(ctx, gameID)
	if err != nil {
		return nil, err
	}
	results, err := s.store.ResultsForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	pars := make(map[int]map[int]game.Par, len(g.Rounds)) // round -> hole -> par
	for _, cfg := range g.Rounds {
		m := make(map[int]game.Par, len(cfg.Holes))
		for _, h := range cfg.Holes {
			m[h.HoleNumber] = h.Par
		}
		pars[cfg.RoundNumber] = m
	}

	byUser := make(map[string]*LeaderboardEntry)
	for _, r := range results {
		if !r.Complete() {
			continue
		}
		e, ok := byUser[r.UserID]
		if !ok {
			e = &LeaderboardEntry{UserID: r.UserID, BestRound: r.TotalScore}
			byUser[r.UserID] = e
		}
		e.RoundsPlayed++
		e.TotalScore += r.TotalScore
		if r.TotalScore < e.BestRound {
			e.BestRound = r.TotalScore
		}
		for _, h := range r.Holes {
			e.HolesPlayed++
			if !h.Solved {
				continue
			}
			par, ok := pars[r.RoundNumber][h.HoleNumber]
			if !ok {
				continue
			}
			switch {
			case h.Score == 1:
				e.HolesInOne++
			case h.Score-int(par) == -2:
				e.Eagles++
			case h.Score-int(par) == -1:
				e.Birdies++
			}
		}
	}

	out := make([]LeaderboardEntry, 0, len(byUser))
	for _, e := range byUser {
		if e.RoundsPlayed > 0 {
			e.AverageScore = float64(e.TotalScore) / float64(e.RoundsPlayed)
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalScore != out[j].TotalScore {
			return out[i].TotalScore < out[j].TotalScore
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func relativeString(diff int) string {
	switch {
	case diff == 0:
		return "E"
	case diff > 0:
		return "+" + strconv.Itoa(diff)
	default:
		return strconv.Itoa(diff)
	}
}
