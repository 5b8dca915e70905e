// internal/game/scoring.go
//
// Golf-scoring conversion: par drives word length and guess budget, stroke
// counts map to the usual golf score names.

package game

import "fmt"

// WordLengthForPar maps par to target word length: 3→4, 4→5, 5→6.
func WordLengthForPar(p Par) int {
	return int(p) + 1
}

// MaxGuessesForPar is the guess budget for a hole: par + 2.
func MaxGuessesForPar(p Par) int {
	return int(p) + 2
}

// ScoreName returns the golf name for a stroke count on a given par.
// A single stroke is always "Hole in One!" regardless of par.
func ScoreName(strokes int, p Par) string {
	if strokes == 1 {
		return "Hole in One!"
	}
	switch diff := strokes - int(p); diff {
	case -3:
		return "Albatross"
	case -2:
		return "Eagle"
	case -1:
		return "Birdie"
	case 0:
		return "Par"
	case 1:
		return "Bogey"
	case 2:
		return "Double Bogey"
	case 3:
		return "Triple Bogey"
	default:
		return fmt.Sprintf("+%d", diff)
	}
}

// ScoreRelativeToPar formats strokes relative to par for display:
// "E" at par, "+n" over, "-n" under.
func ScoreRelativeToPar(strokes int, p Par) string {
	diff := strokes - int(p)
	switch {
	case diff == 0:
		return "E"
	case diff > 0:
		return fmt.Sprintf("+%d", diff)
	default:
		return fmt.Sprintf("%d", diff)
	}
}

// HoleScore is the stroke count recorded for a finished hole: the number of
// guesses used when solved, otherwise one worse than the guess budget (DNF).
func HoleScore(solved bool, guessCount int, p Par) int {
	if solved {
		return guessCount
	}
	return MaxGuessesForPar(p) + 1
}

// RoundScoreRelativeToPar totals a set of hole results against their pars.
// Results and configs are matched by hole number; holes without a config
// count against par 4.
func RoundScoreRelativeToPar(holes []HoleResult, configs []HoleConfig) int {
	pars := make(map[int]Par, len(configs))
	for _, c := range configs {
		pars[c.HoleNumber] = c.Par
	}
	total := 0
	for _, h := range holes {
		par, ok := pars[h.HoleNumber]
		if !ok {
			par = Par4
		}
		total += h.Score - int(par)
	}
	return total
}
