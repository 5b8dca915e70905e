// internal/words/words.go
//
// Word catalog for the golf-wordle engine.
//
// Responsibilities:
//   - Load themed word lists from embedded data files (one file per theme,
//     words of mixed lengths, bucketed by length at load time).
//   - Load the extra allowed-guess dictionary and merge it with every themed
//     list so any target word is always a legal guess.
//   - Supply lookups: ByTheme, ByLength, IsValid, Stats.
//
// Word constraints:
//   • 4–6 lowercase ASCII letters in the data files.
//   • Normalized to uppercase in memory; all comparisons are uppercase.
//   • Initialization runs once (sync.Once) and fails hard if any playable
//     length ends up with an empty target pool.

package words

import (
	"bufio"
	"embed"
	"fmt"
	"strings"
	"sync"
)

//go:embed data/*.txt
var dataFS embed.FS

// Theme is a word-list category used when assigning target and start words.
type Theme string

const (
	ThemeGolf    Theme = "golf"
	ThemeSports  Theme = "sports"
	ThemeNature  Theme = "nature"
	ThemeFood    Theme = "food"
	ThemeAnimals Theme = "animals"

	// ThemeRandom draws from the full catalog for the requested length.
	ThemeRandom Theme = "random"
)

// themeOrder fixes iteration order so the full-catalog pool is stable
// across runs (word assignment must be deterministic).
var themeOrder = []Theme{ThemeGolf, ThemeSports, ThemeNature, ThemeFood, ThemeAnimals}

const (
	MinLength = 4
	MaxLength = 6
)

var (
	initOnce   sync.Once
	initialErr error

	themed  map[Theme]map[int][]string   // theme -> length -> words
	full    map[int][]string             // length -> union of themed lists, stable order
	allowed map[int]map[string]struct{}  // length -> guess dictionary (superset of full)
)

// Init loads the embedded catalog exactly once.
func Init() error {
	initOnce.Do(func() {
		themed = make(map[Theme]map[int][]string)
		full = make(map[int][]string)
		allowed = make(map[int]map[string]struct{})
		for l := MinLength; l <= MaxLength; l++ {
			allowed[l] = make(map[string]struct{})
		}

		seen := make(map[string]struct{})
		for _, th := range themeOrder {
			list, err := readLines("data/" + string(th) + ".txt")
			if err != nil {
				initialErr = fmt.Errorf("load theme %s: %w", th, err)
				return
			}
			buckets := make(map[int][]string)
			for _, w := range list {
				l := len(w)
				buckets[l] = append(buckets[l], w)
				allowed[l][w] = struct{}{}
				if _, dup := seen[w]; !dup {
					seen[w] = struct{}{}
					full[l] = append(full[l], w)
				}
			}
			themed[th] = buckets
		}

		extras, err := readLines("data/allowed.txt")
		if err != nil {
			initialErr = fmt.Errorf("load allowed list: %w", err)
			return
		}
		for _, w := range extras {
			allowed[len(w)][w] = struct{}{}
		}

		for l := MinLength; l <= MaxLength; l++ {
			if len(full[l]) == 0 {
				initialErr = fmt.Errorf("words: no %d-letter target words in catalog", l)
				return
			}
		}
	})
	return initialErr
}

// readLines loads one word per line, uppercases, and keeps only words of a
// playable length made of ASCII letters. Blank lines and #-comments skipped.
func readLines(name string) ([]string, error) {
	f, err := dataFS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.ToUpper(strings.TrimSpace(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if len(w) < MinLength || len(w) > MaxLength || !isAlpha(w) {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// ByTheme returns the target-word pool for a theme and length.
// ThemeRandom (or an unknown theme) falls back to the full catalog.
func ByTheme(theme Theme, length int) []string {
	if buckets, ok := themed[theme]; ok {
		return buckets[length]
	}
	return ByLength(length)
}

// ByLength returns the full target-word pool for a length, in stable order.
func ByLength(length int) []string {
	return full[length]
}

// IsValid reports whether w is a recognized guess word of its own length.
func IsValid(w string) bool {
	w = strings.ToUpper(strings.TrimSpace(w))
	set, ok := allowed[len(w)]
	if !ok {
		return false
	}
	_, ok = set[w]
	return ok
}

// Themes lists the selectable themed categories (excludes random).
func Themes() []Theme {
	out := make([]Theme, len(themeOrder))
	copy(out, themeOrder)
	return out
}

// Stats returns per-length counts: targets (full pool) and allowed guesses.
func Stats() (targets map[int]int, guesses map[int]int) {
	targets = make(map[int]int)
	guesses = make(map[int]int)
	for l := MinLength; l <= MaxLength; l++ {
		targets[l] = len(full[l])
		guesses[l] = len(allowed[l])
	}
	return targets, guesses
}
