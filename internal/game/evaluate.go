// internal/game/evaluate.go
//
// Guess evaluation: the classic two-pass Wordle feedback algorithm.
//
// Pass 1:
//   - Mark exact matches as correct.
//   - Count remaining (non-correct) target letters by letter index.
//
// Pass 2:
//   - For each non-correct guess letter: if there is remaining count for that
//     letter, mark present and decrement the count; otherwise mark absent.
//
// This ordering is what gets duplicate letters right: guess "ALLOY" against
// target "LEVEL" must not double-count the Ls.

package game

// Evaluate scores guess against target and returns the per-letter feedback
// row. Both inputs are uppercase-normalized internally; the caller must
// guarantee equal lengths; that is a contract precondition, not a runtime
// branch. Pure function, no side effects.
func Evaluate(guess, target string) GuessRow {
	guess = Normalize(guess)
	target = Normalize(target)
	n := len(guess)
	row := make(GuessRow, n)

	// Letter frequency for the non-correct target positions (A–Z).
	var counts [26]int

	for i := 0; i < n; i++ {
		row[i].Letter = string(guess[i])
		if guess[i] == target[i] {
			row[i].Status = StatusCorrect
		} else if j := idx(target[i]); j >= 0 && j < 26 {
			counts[j]++
		}
	}

	for i := 0; i < n; i++ {
		if row[i].Status == StatusCorrect {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			row[i].Status = StatusPresent
			counts[j]--
		} else {
			row[i].Status = StatusAbsent
		}
	}
	return row
}

// idx maps an uppercase ASCII letter to 0..25.
func idx(b byte) int { return int(b - 'A') }

// IsGuessCorrect reports whether every cell in the row is correct.
func IsGuessCorrect(row GuessRow) bool {
	if len(row) == 0 {
		return false
	}
	for _, c := range row {
		if c.Status != StatusCorrect {
			return false
		}
	}
	return true
}

// EmptyRow returns a placeholder row of the given length for display.
func EmptyRow(length int) GuessRow {
	row := make(GuessRow, length)
	for i := range row {
		row[i] = LetterGuess{Letter: "", Status: StatusEmpty}
	}
	return row
}

// BuildKeyboardState folds all guesses so far into a per-letter aggregate over
// the 26-letter alphabet. Priority: correct > present > absent > unused; a
// letter never downgrades once a stronger status is known.
func BuildKeyboardState(guesses []GuessRow) []KeyboardKey {
	state := make(map[string]LetterStatus, 26)
	for b := byte('A'); b <= 'Z'; b++ {
		state[string(b)] = StatusUnused
	}

	for _, row := range guesses {
		for _, cell := range row {
			cur := state[cell.Letter]
			switch cell.Status {
			case StatusCorrect:
				state[cell.Letter] = StatusCorrect
			case StatusPresent:
				if cur != StatusCorrect {
					state[cell.Letter] = StatusPresent
				}
			case StatusAbsent:
				if cur == StatusUnused {
					state[cell.Letter] = StatusAbsent
				}
			}
		}
	}

	keys := make([]KeyboardKey, 0, 26)
	for b := byte('A'); b <= 'Z'; b++ {
		k := string(b)
		keys = append(keys, KeyboardKey{Key: k, Status: state[k]})
	}
	return keys
}
