package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordlegolf/internal/game"
)

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, err := m.UserByID(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	u := &User{ID: "u1", Username: "Alice", CreatedAt: time.Now()}
	require.NoError(t, m.SaveUser(ctx, u))

	got, err := m.UserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Username)

	// Username lookup is case-insensitive.
	got, err = m.UserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	_, err = m.UserByUsername(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryGames(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	g := &game.Game{ID: "g1", Name: "Sunday league", PlayerIDs: []string{"u1"}}
	require.NoError(t, m.SaveGame(ctx, g))

	got, err := m.GameByID(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "Sunday league", got.Name)

	all, err := m.ListGames(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, m.DeleteGame(ctx, "g1"))
	_, err = m.GameByID(ctx, "g1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryWordAssignments(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, err := m.Words(ctx, "g1", 1)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.SaveWords(ctx, "g1", 1, []string{"CRANE", "SLATE"}))
	require.NoError(t, m.SaveStartWords(ctx, "g1", 1, []string{"", "GREEN"}))

	ws, err := m.Words(ctx, "g1", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"CRANE", "SLATE"}, ws)

	// Stored slices are copies: mutating the returned slice must not leak back.
	ws[0] = "WEDGE"
	again, err := m.Words(ctx, "g1", 1)
	require.NoError(t, err)
	assert.Equal(t, "CRANE", again[0])

	starts, err := m.StartWords(ctx, "g1", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "GREEN"}, starts)

	// Keys are per (game, round).
	_, err = m.Words(ctx, "g1", 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRoundResults(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, err := m.RoundResult(ctx, "g1", 1, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	r1 := &game.RoundResult{GameID: "g1", RoundNumber: 1, UserID: "u1", TotalScore: 12}
	r2 := &game.RoundResult{GameID: "g1", RoundNumber: 1, UserID: "u2", TotalScore: 15}
	r3 := &game.RoundResult{GameID: "g2", RoundNumber: 1, UserID: "u1", TotalScore: 9}
	for _, r := range []*game.RoundResult{r1, r2, r3} {
		require.NoError(t, m.SaveRoundResult(ctx, r))
	}

	got, err := m.RoundResult(ctx, "g1", 1, "u1")
	require.NoError(t, err)
	assert.Equal(t, 12, got.TotalScore)

	forGame, err := m.ResultsForGame(ctx, "g1")
	require.NoError(t, err)
	assert.Len(t, forGame, 2)

	forUser, err := m.ResultsForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, forUser, 2)

	// Saving the same key overwrites.
	r1b := &game.RoundResult{GameID: "g1", RoundNumber: 1, UserID: "u1", TotalScore: 10}
	require.NoError(t, m.SaveRoundResult(ctx, r1b))
	got, err = m.RoundResult(ctx, "g1", 1, "u1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.TotalScore)
}
