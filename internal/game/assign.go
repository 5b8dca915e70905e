// internal/game/assign.go
//
// Deterministic word assignment. Target and start words are chosen from the
// themed catalog by reducing a seed string to a unit interval. No external
// randomness, so regenerating with the same inputs is idempotent.
//
// Seed namespaces:
//   targets:     "<seedDate>-<gameID>-<holeNumber>"
//   start words: "startword-<gameID>-<holeNumber>"
//
// Pool fallback chain for targets: themed pool minus used words → full
// catalog minus used words → accept a themed repeat (logged, not fatal).
// Start words only probe the themed pool; they deliberately do not fall back
// to the broader catalog the way targets do.

package game

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"wordlegolf/internal/words"
)

// SeededUnit reduces a seed string to a float in [0,1). The hash is the
// classic accumulate-times-31 string hash kept in signed 32-bit range; any
// deterministic hash would do, determinism per seed string is the only
// contract. Note the hash is not avalanching: seeds differing only in a
// trailing character land on nearly identical units, so near-identical game
// IDs can draw the same words. Game IDs are UUIDs in practice, which keeps
// seeds far apart.
func SeededUnit(seed string) float64 {
	var hash int32
	for i := 0; i < len(seed); i++ {
		hash = hash*31 + int32(seed[i])
	}
	abs := int64(hash)
	if abs < 0 {
		abs = -abs
	}
	u := float64(abs) / float64(math.MaxInt32)
	if u >= 1 {
		u = 0
	}
	return u
}

// seededIndex picks an index into a pool of size n from a seed string.
func seededIndex(seed string, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(SeededUnit(seed) * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// TargetSeed is the seed string for a hole's target word.
func TargetSeed(seedDate, gameID string, holeNumber int) string {
	return fmt.Sprintf("%s-%s-%d", seedDate, gameID, holeNumber)
}

// StartWordSeed is the seed string for a hole's start word. Distinct
// namespace from target seeds so the two draws are independent.
func StartWordSeed(gameID string, holeNumber int) string {
	return fmt.Sprintf("startword-%s-%d", gameID, holeNumber)
}

// PickWordForHole selects the target word for one hole.
//
// A configured custom word wins verbatim (its length was validated at config
// time). Otherwise the themed pool for the hole's word length is filtered
// against used and drawn from with the seed. An exhausted themed pool falls
// back to the full catalog; if that is exhausted too, a themed repeat is
// accepted and logged. Only a completely empty catalog is an error.
func PickWordForHole(theme words.Theme, par Par, used map[string]struct{}, customWord, seed string) (string, error) {
	if customWord != "" {
		return Normalize(customWord), nil
	}

	length := WordLengthForPar(par)
	pool := words.ByTheme(theme, length)
	if len(pool) == 0 {
		pool = words.ByLength(length)
	}
	if len(pool) == 0 {
		return "", fmt.Errorf("%w: length %d", ErrEmptyWordPool, length)
	}

	if w, ok := drawExcluding(pool, used, seed); ok {
		return w, nil
	}

	// Themed pool used up: fall back to the full catalog, still excluding.
	if w, ok := drawExcluding(words.ByLength(length), used, seed); ok {
		log.Warn().Str("theme", string(theme)).Int("length", length).
			Msg("themed word pool exhausted, fell back to full catalog")
		return w, nil
	}

	// Last resort: repeat a themed word. Known edge case for long games on
	// narrow themes.
	w := pool[seededIndex(seed, len(pool))]
	log.Warn().Str("theme", string(theme)).Int("length", length).Str("word", w).
		Msg("word pools exhausted, accepting repeated word")
	return w, nil
}

// drawExcluding makes a seeded draw from pool minus used.
func drawExcluding(pool []string, used map[string]struct{}, seed string) (string, bool) {
	available := make([]string, 0, len(pool))
	for _, w := range pool {
		if _, taken := used[w]; !taken {
			available = append(available, w)
		}
	}
	if len(available) == 0 {
		return "", false
	}
	return available[seededIndex(seed, len(available))], true
}

// GenerateRoundWords resolves the ordered target-word list for a round, one
// word per hole. previouslyUsed carries every word assigned to earlier rounds
// of the same game; words chosen here are added to the running set so no word
// repeats within the round either. In classic word mode, holes without a
// custom word are left empty: they resolve later from the word-of-the-day
// source.
//
// Deterministic: same (config, gameID, seedDate, previouslyUsed) → same list.
func GenerateRoundWords(cfg RoundConfig, gameID, seedDate string, previouslyUsed []string) ([]string, error) {
	used := make(map[string]struct{}, len(previouslyUsed))
	for _, w := range previouslyUsed {
		used[Normalize(w)] = struct{}{}
	}

	out := make([]string, 0, len(cfg.Holes))
	for i, hole := range cfg.Holes {
		if cfg.WordMode == WordModeClassic && hole.CustomWord == "" {
			out = append(out, "")
			continue
		}
		seed := TargetSeed(seedDate, gameID, hole.HoleNumber)
		w, err := PickWordForHole(cfg.themeForHole(i), hole.Par, used, hole.CustomWord, seed)
		if err != nil {
			return nil, fmt.Errorf("hole %d: %w", hole.HoleNumber, err)
		}
		out = append(out, w)
		used[w] = struct{}{}
	}
	return out, nil
}

// PickStartWord selects the forced first guess for one hole. The draw comes
// from the themed pool in the start-word seed namespace; if it lands on the
// hole's target word, the index probes forward (wrapping) until it differs.
// When the whole pool is the target word, the collision is returned alongside
// ErrStartWordCollision rather than swallowed; the word is still usable.
func PickStartWord(theme words.Theme, par Par, target, customStartWord, seed string) (string, error) {
	if customStartWord != "" {
		return Normalize(customStartWord), nil
	}

	length := WordLengthForPar(par)
	pool := words.ByTheme(theme, length)
	if len(pool) == 0 {
		pool = words.ByLength(length)
	}
	if len(pool) == 0 {
		return "", fmt.Errorf("%w: length %d", ErrEmptyWordPool, length)
	}

	target = Normalize(target)
	i := seededIndex(seed, len(pool))
	w := pool[i]
	for probes := 0; w == target && probes < len(pool); probes++ {
		i = (i + 1) % len(pool)
		w = pool[i]
	}
	if w == target {
		log.Warn().Str("theme", string(theme)).Str("target", target).
			Msg("start word pool exhausted without avoiding target")
		return w, ErrStartWordCollision
	}
	return w, nil
}

// GenerateStartWords resolves the optional start-word list for a round,
// parallel to targets. Holes whose nine is in start-word mode "none" get an
// empty entry. Pending targets (classic mode, not yet fetched) also stay
// empty; their start word resolves once the target exists so collision
// avoidance can run.
func GenerateStartWords(cfg RoundConfig, gameID string, targets []string) ([]string, error) {
	out := make([]string, len(cfg.Holes))
	for i, hole := range cfg.Holes {
		mode, theme := cfg.startWordPlan(i)
		if mode == StartWordNone {
			continue
		}
		if mode == StartWordCustom {
			out[i] = Normalize(hole.CustomStartWord)
			continue
		}
		if i >= len(targets) || targets[i] == "" {
			continue
		}
		w, err := PickStartWord(theme, hole.Par, targets[i], "", StartWordSeed(gameID, hole.HoleNumber))
		if err != nil && err != ErrStartWordCollision {
			return nil, fmt.Errorf("hole %d: %w", hole.HoleNumber, err)
		}
		out[i] = w
	}
	return out, nil
}
