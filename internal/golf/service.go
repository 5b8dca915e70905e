// internal/golf/service.go
//
// Game lifecycle orchestration: creating games, joining, invitations, and
// starting rounds. Word assignments are generated exactly once per round at
// creation time and persisted separately from the game configuration; after
// that every player treats them as read-only.

package golf

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"wordlegolf/internal/daily"
	"wordlegolf/internal/game"
	"wordlegolf/internal/store"
)

// Service errors surfaced to transport as soft rejections.
var (
	ErrGameNotFound  = errors.New("game not found")
	ErrRoundNotFound = errors.New("round not found")
	ErrNotInvited    = errors.New("you are not invited to this game")
	ErrWrongPassword = errors.New("incorrect game password")
	ErrNotCreator    = errors.New("only the game creator can do this")
	ErrNotPlayer     = errors.New("you are not a player in this game")
	ErrRoundSequence = errors.New("rounds are append-only, expected next round number")
)

// Service coordinates the core engine against the persistence port. All
// cross-player state lives in the store; the only in-memory state is the
// active hole sessions (guesses before a terminal state).
type Service struct {
	store store.Store
	daily *daily.Client

	mu       sync.Mutex
	sessions map[string]*game.HolePlay // keyed by userID|gameID|round|hole
}

// NewService builds a Service. dailyClient may be nil when classic word mode
// is not needed (tests, themed-only deployments).
func NewService(st store.Store, dailyClient *daily.Client) *Service {
	return &Service{
		store:    st,
		daily:    dailyClient,
		sessions: make(map[string]*game.HolePlay),
	}
}

// CreateGameParams is the creator's input for a new game.
type CreateGameParams struct {
	Name           string
	Visibility     game.Visibility
	Password       string
	InvitedUserIDs []string
	Round          game.RoundConfig // round 1 configuration
}

// CreateGame validates the first round's configuration, generates its word
// and start-word assignments, and persists everything. The creator is the
// first player on the roster.
func (s *Service) CreateGame(ctx context.Context, creatorID string, p CreateGameParams) (*game.Game, error) {
	cfg := p.Round
	cfg.RoundNumber = 1
	if cfg.StartDate == "" {
		cfg.StartDate = game.DateString(time.Now())
	}
	if cfg.WordMode == "" {
		cfg.WordMode = game.WordModeThemed
	}
	if err := game.ValidateRoundConfig(cfg); err != nil {
		return nil, err
	}
	if p.Visibility == "" {
		p.Visibility = game.VisibilityPublic
	}

	g := &game.Game{
		ID:             uuid.NewString(),
		Name:           p.Name,
		CreatorID:      creatorID,
		Visibility:     p.Visibility,
		Password:       p.Password,
		InvitedUserIDs: p.InvitedUserIDs,
		PlayerIDs:      []string{creatorID},
		Rounds:         []game.RoundConfig{cfg},
		CurrentRound:   1,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.generateAssignments(ctx, g, cfg, nil); err != nil {
		return nil, err
	}
	if err := s.store.SaveGame(ctx, g); err != nil {
		return nil, fmt.Errorf("save game: %w", err)
	}
	log.Info().Str("gameId", g.ID).Str("creator", creatorID).Msg("game created")
	return g, nil
}

// generateAssignments resolves and persists the target and start-word lists
// for one round. previouslyUsed carries all words from the game's earlier
// rounds (anti-repetition across rounds).
func (s *Service) generateAssignments(ctx context.Context, g *game.Game, cfg game.RoundConfig, previouslyUsed []string) error {
	seedDate := game.DateString(mustLocalDate(cfg.StartDate))
	targets, err := game.GenerateRoundWords(cfg, g.ID, seedDate, previouslyUsed)
	if err != nil {
		return fmt.Errorf("generate words: %w", err)
	}
	starts, err := game.GenerateStartWords(cfg, g.ID, targets)
	if err != nil {
		return fmt.Errorf("generate start words: %w", err)
	}
	if err := s.store.SaveWords(ctx, g.ID, cfg.RoundNumber, targets); err != nil {
		return fmt.Errorf("save words: %w", err)
	}
	if err := s.store.SaveStartWords(ctx, g.ID, cfg.RoundNumber, starts); err != nil {
		return fmt.Errorf("save start words: %w", err)
	}
	return nil
}

// mustLocalDate parses a date already accepted by ValidateRoundConfig.
func mustLocalDate(s string) time.Time {
	t, _ := game.ParseLocalDate(s)
	return t
}

// Game loads a game by ID.
func (s *Service) Game(ctx context.Context, id string) (*game.Game, error) {
	g, err := s.store.GameByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	return g, err
}

// PublicGames lists games anyone may join.
func (s *Service) PublicGames(ctx context.Context) ([]*game.Game, error) {
	all, err := s.store.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	var out []*game.Game
	for _, g := range all {
		if g.Visibility == game.VisibilityPublic {
			out = append(out, g)
		}
	}
	return out, nil
}

// GamesForUser lists games the user plays in.
func (s *Service) GamesForUser(ctx context.Context, userID string) ([]*game.Game, error) {
	all, err := s.store.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	var out []*game.Game
	for _, g := range all {
		if g.HasPlayer(userID) {
			out = append(out, g)
		}
	}
	return out, nil
}

// InvitationsForUser lists games the user is invited to but not yet playing.
func (s *Service) InvitationsForUser(ctx context.Context, userID string) ([]*game.Game, error) {
	all, err := s.store.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	var out []*game.Game
	for _, g := range all {
		if g.IsInvited(userID) && !g.HasPlayer(userID) {
			out = append(out, g)
		}
	}
	return out, nil
}

// JoinGame adds the user to the roster, enforcing visibility rules: private
// games require an invitation or the game password. Joining twice is a no-op.
func (s *Service) JoinGame(ctx context.Context, gameID, userID, password string) error {
	g, err := s.Game(ctx, gameID)
	if err != nil {
		return err
	}
	if g.HasPlayer(userID) {
		return nil
	}
	if g.Visibility == game.VisibilityPrivate && !g.IsInvited(userID) {
		if g.Password == "" {
			return ErrNotInvited
		}
		if password != g.Password {
			return ErrWrongPassword
		}
	}
	g.PlayerIDs = append(g.PlayerIDs, userID)
	return s.store.SaveGame(ctx, g)
}

// AcceptInvitation moves the user from the invite list onto the roster.
func (s *Service) AcceptInvitation(ctx context.Context, gameID, userID string) error {
	g, err := s.Game(ctx, gameID)
	if err != nil {
		return err
	}
	if !g.IsInvited(userID) {
		return ErrNotInvited
	}
	if !g.HasPlayer(userID) {
		g.PlayerIDs = append(g.PlayerIDs, userID)
	}
	g.InvitedUserIDs = remove(g.InvitedUserIDs, userID)
	return s.store.SaveGame(ctx, g)
}

// DeclineInvitation drops the user from the invite list.
func (s *Service) DeclineInvitation(ctx context.Context, gameID, userID string) error {
	g, err := s.Game(ctx, gameID)
	if err != nil {
		return err
	}
	g.InvitedUserIDs = remove(g.InvitedUserIDs, userID)
	return s.store.SaveGame(ctx, g)
}

// DeleteGame removes a game; only its creator may do so.
func (s *Service) DeleteGame(ctx context.Context, gameID, userID string) error {
	g, err := s.Game(ctx, gameID)
	if err != nil {
		return err
	}
	if g.CreatorID != userID {
		return ErrNotCreator
	}
	return s.store.DeleteGame(ctx, gameID)
}

// StartRound appends a new round to the game and generates its assignments.
// Rounds are append-only: the new round number must be the next in sequence,
// and existing rounds are never touched. Every word assigned in earlier
// rounds is excluded from the new round's pool.
func (s *Service) StartRound(ctx context.Context, gameID, userID string, cfg game.RoundConfig) (*game.Game, error) {
	g, err := s.Game(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.CreatorID != userID {
		return nil, ErrNotCreator
	}
	if cfg.RoundNumber == 0 {
		cfg.RoundNumber = len(g.Rounds) + 1
	}
	if cfg.RoundNumber != len(g.Rounds)+1 {
		return nil, fmt.Errorf("%w: got %d", ErrRoundSequence, cfg.RoundNumber)
	}
	if cfg.StartDate == "" {
		cfg.StartDate = game.DateString(time.Now())
	}
	if cfg.WordMode == "" {
		cfg.WordMode = game.WordModeThemed
	}
	if err := game.ValidateRoundConfig(cfg); err != nil {
		return nil, err
	}

	var used []string
	for _, prev := range g.Rounds {
		ws, err := s.store.Words(ctx, g.ID, prev.RoundNumber)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		for _, w := range ws {
			if w != "" {
				used = append(used, w)
			}
		}
	}

	if err := s.generateAssignments(ctx, g, cfg, used); err != nil {
		return nil, err
	}
	g.Rounds = append(g.Rounds, cfg)
	g.CurrentRound = cfg.RoundNumber
	if err := s.store.SaveGame(ctx, g); err != nil {
		return nil, err
	}
	log.Info().Str("gameId", g.ID).Int("round", cfg.RoundNumber).Msg("round started")
	return g, nil
}

// ResolveClassicWords fills pending target words for a classic-mode round
// from the word-of-the-day source, one fetch per unlocked hole date.
// Best-effort and idempotent: failures leave the affected holes pending and
// persist nothing for them; successes are saved immediately so later calls
// skip them.
func (s *Service) ResolveClassicWords(ctx context.Context, gameID string, roundNumber int, now time.Time) error {
	if s.daily == nil {
		return nil
	}
	g, err := s.Game(ctx, gameID)
	if err != nil {
		return err
	}
	cfg := g.Round(roundNumber)
	if cfg == nil {
		return ErrRoundNotFound
	}
	if cfg.WordMode != game.WordModeClassic {
		return nil
	}
	targets, err := s.store.Words(ctx, gameID, roundNumber)
	if err != nil {
		return err
	}

	changed := false
	for i, hole := range cfg.Holes {
		if i >= len(targets) || targets[i] != "" {
			continue
		}
		date, err := game.HoleAvailableDate(cfg.StartDate, hole.HoleNumber)
		if err != nil {
			return err
		}
		if date.After(now) {
			continue // future holes stay pending on purpose
		}
		w, err := s.daily.WordOfDay(ctx, game.DateString(date))
		if err != nil {
			log.Warn().Err(err).Str("gameId", gameID).Int("hole", hole.HoleNumber).
				Msg("word of day not available yet")
			continue
		}
		if len(w) != game.WordLengthForPar(hole.Par) {
			log.Warn().Str("word", w).Int("hole", hole.HoleNumber).
				Msg("word of day length does not match hole par, leaving pending")
			continue
		}
		targets[i] = w
		changed = true
	}
	if !changed {
		return nil
	}
	if err := s.store.SaveWords(ctx, gameID, roundNumber, targets); err != nil {
		return err
	}

	// Start words for newly resolved holes can now be drawn with collision
	// avoidance against the real target.
	starts, err := s.store.StartWords(ctx, gameID, roundNumber)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	regenerated, err := game.GenerateStartWords(*cfg, g.ID, targets)
	if err != nil {
		return err
	}
	for i := range regenerated {
		if i < len(starts) && starts[i] != "" {
			regenerated[i] = starts[i]
		}
	}
	return s.store.SaveStartWords(ctx, gameID, roundNumber, regenerated)
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
