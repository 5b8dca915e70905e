// internal/store/memory.go
//
// In-memory implementation of the Store interface, used in development and
// tests. Concurrency-safe via RWMutex; state is lost on restart.
//
// Aliasing contract: GameByID, ListGames, and the round-result getters return
// the stored pointers, not copies. Callers that mutate a returned value must
// call the corresponding Save to make the change durable across both store
// implementations. Word lists are copied on both save and load.

package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"wordlegolf/internal/game"
)

type memory struct {
	mu         sync.RWMutex
	users      map[string]*User             // by ID
	games      map[string]*game.Game        // by ID
	words      map[string][]string          // by gameID|round
	startWords map[string][]string          // by gameID|round
	results    map[string]*game.RoundResult // by gameID|round|userID
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{
		users:      make(map[string]*User),
		games:      make(map[string]*game.Game),
		words:      make(map[string][]string),
		startWords: make(map[string][]string),
		results:    make(map[string]*game.RoundResult),
	}
}

func wordsKey(gameID string, round int) string {
	return fmt.Sprintf("%s|%d", gameID, round)
}

func resultKey(gameID string, round int, userID string) string {
	return fmt.Sprintf("%s|%d|%s", gameID, round, userID)
}

func (m *memory) SaveUser(ctx context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *memory) UserByID(ctx context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func (m *memory) UserByUsername(ctx context.Context, username string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memory) SaveGame(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

func (m *memory) GameByID(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}

func (m *memory) ListGames(ctx context.Context) ([]*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*game.Game, 0, len(m.games))
	for _, g := range m.games {
		out = append(out, g)
	}
	return out, nil
}

func (m *memory) DeleteGame(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *memory) SaveWords(ctx context.Context, gameID string, round int, words []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.words[wordsKey(gameID, round)] = append([]string(nil), words...)
	return nil
}

func (m *memory) Words(ctx context.Context, gameID string, round int) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if w, ok := m.words[wordsKey(gameID, round)]; ok {
		return append([]string(nil), w...), nil
	}
	return nil, ErrNotFound
}

func (m *memory) SaveStartWords(ctx context.Context, gameID string, round int, words []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startWords[wordsKey(gameID, round)] = append([]string(nil), words...)
	return nil
}

func (m *memory) StartWords(ctx context.Context, gameID string, round int) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if w, ok := m.startWords[wordsKey(gameID, round)]; ok {
		return append([]string(nil), w...), nil
	}
	return nil, ErrNotFound
}

func (m *memory) SaveRoundResult(ctx context.Context, r *game.RoundResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[resultKey(r.GameID, r.RoundNumber, r.UserID)] = r
	return nil
}

func (m *memory) RoundResult(ctx context.Context, gameID string, round int, userID string) (*game.RoundResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.results[resultKey(gameID, round, userID)]; ok {
		return r, nil
	}
	return nil, ErrNotFound
}

func (m *memory) ResultsForGame(ctx context.Context, gameID string) ([]*game.RoundResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*game.RoundResult
	for _, r := range m.results {
		if r.GameID == gameID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memory) ResultsForUser(ctx context.Context, userID string) ([]*game.RoundResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*game.RoundResult
	for _, r := range m.results {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}
