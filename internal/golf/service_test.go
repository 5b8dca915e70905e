package golf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordlegolf/internal/game"
	"wordlegolf/internal/store"
	"wordlegolf/internal/words"
)

func newTestService() *Service {
	return NewService(store.NewMemoryStore(), nil)
}

// threeHoleRound is a par-4 round with fixed answers so tests control play.
func threeHoleRound() game.RoundConfig {
	return game.RoundConfig{
		Holes: []game.HoleConfig{
			{HoleNumber: 1, Par: game.Par4, CustomWord: "CRANE"},
			{HoleNumber: 2, Par: game.Par4, CustomWord: "SLATE"},
			{HoleNumber: 3, Par: game.Par4, CustomWord: "GREEN"},
		},
		StartDate: "2024-01-01",
	}
}

func TestCreateGame(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	g, err := s.CreateGame(ctx, "creator", CreateGameParams{
		Name:  "Sunday league",
		Round: threeHoleRound(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, game.VisibilityPublic, g.Visibility)
	assert.Equal(t, []string{"creator"}, g.PlayerIDs)
	assert.Equal(t, 1, g.CurrentRound)
	require.Len(t, g.Rounds, 1)
	assert.Equal(t, 1, g.Rounds[0].RoundNumber)

	// Word assignments were generated and persisted at creation.
	targets, err := s.store.Words(ctx, g.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"CRANE", "SLATE", "GREEN"}, targets)

	starts, err := s.store.StartWords(ctx, g.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "", ""}, starts, "start-word mode defaults to none")
}

func TestCreateGameRejectsInvalidConfig(t *testing.T) {
	s := newTestService()
	cfg := threeHoleRound()
	cfg.Holes[0].CustomWord = "PUTT" // wrong length for par 4

	_, err := s.CreateGame(context.Background(), "creator", CreateGameParams{Round: cfg})
	assert.ErrorIs(t, err, game.ErrInvalidConfig)
}

func TestJoinGameVisibilityRules(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	public, err := s.CreateGame(ctx, "creator", CreateGameParams{Round: threeHoleRound()})
	require.NoError(t, err)
	require.NoError(t, s.JoinGame(ctx, public.ID, "stranger", ""))
	// Joining twice is a no-op.
	require.NoError(t, s.JoinGame(ctx, public.ID, "stranger", ""))
	g, err := s.Game(ctx, public.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"creator", "stranger"}, g.PlayerIDs)

	private, err := s.CreateGame(ctx, "creator", CreateGameParams{
		Visibility:     game.VisibilityPrivate,
		Password:       "secret",
		InvitedUserIDs: []string{"friend"},
		Round:          threeHoleRound(),
	})
	require.NoError(t, err)

	assert.NoError(t, s.JoinGame(ctx, private.ID, "friend", ""), "invited users skip the password")
	assert.ErrorIs(t, s.JoinGame(ctx, private.ID, "stranger", "wrong"), ErrWrongPassword)
	assert.NoError(t, s.JoinGame(ctx, private.ID, "stranger", "secret"))

	noPassword, err := s.CreateGame(ctx, "creator", CreateGameParams{
		Visibility: game.VisibilityPrivate,
		Round:      threeHoleRound(),
	})
	require.NoError(t, err)
	assert.ErrorIs(t, s.JoinGame(ctx, noPassword.ID, "stranger", ""), ErrNotInvited)
}

func TestInvitations(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	g, err := s.CreateGame(ctx, "creator", CreateGameParams{
		Visibility:     game.VisibilityPrivate,
		InvitedUserIDs: []string{"friend", "flake"},
		Round:          threeHoleRound(),
	})
	require.NoError(t, err)

	invites, err := s.InvitationsForUser(ctx, "friend")
	require.NoError(t, err)
	require.Len(t, invites, 1)

	require.NoError(t, s.AcceptInvitation(ctx, g.ID, "friend"))
	got, err := s.Game(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, got.HasPlayer("friend"))
	assert.False(t, got.IsInvited("friend"))

	require.NoError(t, s.DeclineInvitation(ctx, g.ID, "flake"))
	got, err = s.Game(ctx, g.ID)
	require.NoError(t, err)
	assert.False(t, got.IsInvited("flake"))
	assert.False(t, got.HasPlayer("flake"))

	assert.ErrorIs(t, s.AcceptInvitation(ctx, g.ID, "stranger"), ErrNotInvited)
}

func TestDeleteGameCreatorOnly(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	g, err := s.CreateGame(ctx, "creator", CreateGameParams{Round: threeHoleRound()})
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteGame(ctx, g.ID, "stranger"), ErrNotCreator)
	require.NoError(t, s.DeleteGame(ctx, g.ID, "creator"))
	_, err = s.Game(ctx, g.ID)
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestStartRoundSequencing(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	g, err := s.CreateGame(ctx, "creator", CreateGameParams{Round: threeHoleRound()})
	require.NoError(t, err)

	next := game.RoundConfig{
		Holes: []game.HoleConfig{
			{HoleNumber: 1, Par: game.Par4},
			{HoleNumber: 2, Par: game.Par4},
		},
		FrontNineTheme: words.ThemeSports,
		StartDate:      "2024-01-10",
	}

	_, err = s.StartRound(ctx, g.ID, "stranger", next)
	assert.ErrorIs(t, err, ErrNotCreator)

	bad := next
	bad.RoundNumber = 5
	_, err = s.StartRound(ctx, g.ID, "creator", bad)
	assert.ErrorIs(t, err, ErrRoundSequence)

	got, err := s.StartRound(ctx, g.ID, "creator", next)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentRound)
	require.Len(t, got.Rounds, 2)
	assert.Equal(t, 2, got.Rounds[1].RoundNumber)
}

func TestStartRoundExcludesEarlierWords(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	first := game.RoundConfig{
		Holes: []game.HoleConfig{
			{HoleNumber: 1, Par: game.Par4},
			{HoleNumber: 2, Par: game.Par4},
			{HoleNumber: 3, Par: game.Par4},
		},
		FrontNineTheme: words.ThemeGolf,
		StartDate:      "2024-01-01",
	}
	g, err := s.CreateGame(ctx, "creator", CreateGameParams{Round: first})
	require.NoError(t, err)
	round1, err := s.store.Words(ctx, g.ID, 1)
	require.NoError(t, err)

	second := first
	second.StartDate = "2024-01-10"
	_, err = s.StartRound(ctx, g.ID, "creator", second)
	require.NoError(t, err)

	round2, err := s.store.Words(ctx, g.ID, 2)
	require.NoError(t, err)
	for _, w := range round2 {
		assert.NotContains(t, round1, w, "round 2 reused a round 1 word")
	}
}
