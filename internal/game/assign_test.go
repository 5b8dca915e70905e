package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordlegolf/internal/words"
)

func nineHoles() []HoleConfig {
	holes := make([]HoleConfig, 9)
	for i := range holes {
		par := Par3 + Par(i%3)
		holes[i] = HoleConfig{HoleNumber: i + 1, Par: par}
	}
	return holes
}

func TestSeededUnitDeterministicAndBounded(t *testing.T) {
	for i := 0; i < 200; i++ {
		seed := fmt.Sprintf("2024-01-01-game-%d", i)
		u := SeededUnit(seed)
		assert.Equal(t, u, SeededUnit(seed), "same seed, same value")
		assert.GreaterOrEqual(t, u, 0.0)
		assert.Less(t, u, 1.0)
	}
}

func TestSeedNamespaces(t *testing.T) {
	assert.Equal(t, "2024-01-01-g1-3", TargetSeed("2024-01-01", "g1", 3))
	assert.Equal(t, "startword-g1-3", StartWordSeed("g1", 3))
	// Distinct namespaces: the two seeds never collide for the same hole.
	assert.NotEqual(t, TargetSeed("2024-01-01", "g1", 3), StartWordSeed("g1", 3))
}

func TestGenerateRoundWordsDeterministic(t *testing.T) {
	cfg := RoundConfig{
		RoundNumber:    1,
		Holes:          nineHoles(),
		FrontNineTheme: words.ThemeGolf,
		StartDate:      "2024-01-01",
	}
	a, err := GenerateRoundWords(cfg, "c7f2a9d4-3e81-4b06-9f5a-1d8e6c024b73", "2024-01-01", nil)
	require.NoError(t, err)
	b, err := GenerateRoundWords(cfg, "c7f2a9d4-3e81-4b06-9f5a-1d8e6c024b73", "2024-01-01", nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// A different game gets (in general) a different assignment. The seed
	// hash is not avalanching, so the IDs must genuinely differ (UUIDs do);
	// IDs differing only in a trailing character hash too close together.
	c, err := GenerateRoundWords(cfg, "5b9e0c17-62af-48d3-b2e4-7a0f9d315c88", "2024-01-01", nil)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerateRoundWordsNoRepeats(t *testing.T) {
	cfg := RoundConfig{
		RoundNumber:    1,
		Holes:          nineHoles(),
		FrontNineTheme: words.ThemeSports,
		StartDate:      "2024-01-01",
	}
	out, err := GenerateRoundWords(cfg, "game-1", "2024-01-01", nil)
	require.NoError(t, err)
	require.Len(t, out, 9)

	seen := make(map[string]struct{})
	for i, w := range out {
		require.NotEmpty(t, w)
		assert.Len(t, w, WordLengthForPar(cfg.Holes[i].Par))
		_, dup := seen[w]
		assert.False(t, dup, "word %s repeated within round", w)
		seen[w] = struct{}{}
	}
}

func TestGenerateRoundWordsExcludesPreviousRounds(t *testing.T) {
	cfg := RoundConfig{
		RoundNumber:    1,
		Holes:          nineHoles(),
		FrontNineTheme: words.ThemeNature,
		StartDate:      "2024-01-01",
	}
	first, err := GenerateRoundWords(cfg, "game-1", "2024-01-01", nil)
	require.NoError(t, err)

	second, err := GenerateRoundWords(cfg, "game-1", "2024-01-02", first)
	require.NoError(t, err)
	for _, w := range second {
		assert.NotContains(t, first, w)
	}
}

func TestGenerateRoundWordsCustomWordVerbatim(t *testing.T) {
	cfg := RoundConfig{
		RoundNumber: 1,
		Holes: []HoleConfig{
			{HoleNumber: 1, Par: Par4, CustomWord: "crane"},
			{HoleNumber: 2, Par: Par4},
		},
		StartDate: "2024-01-01",
	}
	out, err := GenerateRoundWords(cfg, "game-1", "2024-01-01", nil)
	require.NoError(t, err)
	assert.Equal(t, "CRANE", out[0])
	assert.NotEmpty(t, out[1])
}

func TestGenerateRoundWordsClassicLeavesPending(t *testing.T) {
	cfg := RoundConfig{
		RoundNumber: 1,
		WordMode:    WordModeClassic,
		Holes: []HoleConfig{
			{HoleNumber: 1, Par: Par4},
			{HoleNumber: 2, Par: Par4, CustomWord: "SLATE"},
		},
		StartDate: "2024-01-01",
	}
	out, err := GenerateRoundWords(cfg, "game-1", "2024-01-01", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "SLATE"}, out)
}

func TestPickStartWordAvoidsTarget(t *testing.T) {
	// Whatever the target, the start word must differ from it.
	pool := words.ByTheme(words.ThemeGolf, 5)
	require.NotEmpty(t, pool)
	for _, target := range pool {
		w, err := PickStartWord(words.ThemeGolf, Par4, target, "", StartWordSeed("game-1", 1))
		require.NoError(t, err)
		assert.NotEqual(t, target, w)
	}
}

func TestPickStartWordCustomVerbatim(t *testing.T) {
	w, err := PickStartWord(words.ThemeGolf, Par4, "CRANE", "slate", "ignored")
	require.NoError(t, err)
	assert.Equal(t, "SLATE", w)
}

func TestGenerateStartWords(t *testing.T) {
	cfg := RoundConfig{
		RoundNumber:        1,
		FrontNineTheme:     words.ThemeGolf,
		StartWordModeFront: StartWordTheme,
		Holes:              nineHoles(),
		StartDate:          "2024-01-01",
	}
	targets, err := GenerateRoundWords(cfg, "game-1", "2024-01-01", nil)
	require.NoError(t, err)

	starts, err := GenerateStartWords(cfg, "game-1", targets)
	require.NoError(t, err)
	require.Len(t, starts, len(targets))
	for i, s := range starts {
		require.NotEmpty(t, s)
		assert.NotEqual(t, targets[i], s, "hole %d start word equals target", i+1)
		assert.Len(t, s, len(targets[i]))
	}

	// Deterministic too.
	again, err := GenerateStartWords(cfg, "game-1", targets)
	require.NoError(t, err)
	assert.Equal(t, starts, again)
}

func TestGenerateStartWordsModeNone(t *testing.T) {
	cfg := RoundConfig{
		RoundNumber: 1,
		Holes:       nineHoles(),
		StartDate:   "2024-01-01",
	}
	targets, err := GenerateRoundWords(cfg, "game-1", "2024-01-01", nil)
	require.NoError(t, err)

	starts, err := GenerateStartWords(cfg, "game-1", targets)
	require.NoError(t, err)
	for _, s := range starts {
		assert.Empty(t, s)
	}
}

func TestGenerateStartWordsSkipsPendingTargets(t *testing.T) {
	cfg := RoundConfig{
		RoundNumber:        1,
		WordMode:           WordModeClassic,
		StartWordModeFront: StartWordTheme,
		Holes: []HoleConfig{
			{HoleNumber: 1, Par: Par4},
			{HoleNumber: 2, Par: Par4},
		},
		StartDate: "2024-01-01",
	}
	starts, err := GenerateStartWords(cfg, "game-1", []string{"", "CRANE"})
	require.NoError(t, err)
	assert.Empty(t, starts[0], "pending target cannot have a start word yet")
	assert.NotEmpty(t, starts[1])
	assert.NotEqual(t, "CRANE", starts[1])
}
