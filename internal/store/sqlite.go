// internal/store/sqlite.go
//
// SQLite implementation of the Store interface.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying in-code migrations (idempotent, recorded in _migrations).
//   - Row <-> entity mapping; nested structures (rounds, guesses) are stored
//     as JSON columns, scalar and keyed fields as real columns.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"wordlegolf/internal/game"
)

type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if missing) a SQLite database file, applies
// migrations, and returns a Store backed by it.
func OpenSQLite(dsn string) (Store, *sql.DB, error) {
	// Ensure directory exists for ./data/app.db, etc.
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		return nil, nil, fmt.Errorf("set pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		return nil, nil, err
	}
	return &sqliteStore{db: db}, db, nil
}

// migrations are applied in order, each exactly once.
var migrations = []struct {
	name string
	stmt string
}{
	{"001_users", `
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE COLLATE NOCASE,
			password_hash TEXT NOT NULL,
			created_at    TEXT NOT NULL
		);`},
	{"002_games", `
		CREATE TABLE IF NOT EXISTS games (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			creator_id    TEXT NOT NULL,
			visibility    TEXT NOT NULL,
			password      TEXT NOT NULL DEFAULT '',
			invited_ids   TEXT NOT NULL DEFAULT '[]',
			player_ids    TEXT NOT NULL DEFAULT '[]',
			rounds        TEXT NOT NULL DEFAULT '[]',
			current_round INTEGER NOT NULL DEFAULT 1,
			created_at    TEXT NOT NULL
		);`},
	{"003_word_assignments", `
		CREATE TABLE IF NOT EXISTS word_assignments (
			game_id      TEXT NOT NULL,
			round_number INTEGER NOT NULL,
			kind         TEXT NOT NULL, -- 'target' | 'start'
			words        TEXT NOT NULL,
			PRIMARY KEY (game_id, round_number, kind)
		);`},
	{"004_round_results", `
		CREATE TABLE IF NOT EXISTS round_results (
			game_id      TEXT NOT NULL,
			round_number INTEGER NOT NULL,
			user_id      TEXT NOT NULL,
			holes        TEXT NOT NULL DEFAULT '[]',
			total_score  INTEGER NOT NULL DEFAULT 0,
			completed_at TEXT,
			PRIMARY KEY (game_id, round_number, user_id)
		);`},
}

// migrate applies pending migrations inside dedicated transactions, recording
// each in _migrations so reruns are no-ops.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}
	for _, m := range migrations {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, m.name).Scan(&done)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(m.stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.name, err)
		}
		log.Info().Str("migration", m.name).Msg("applied")
	}
	return nil
}

/* ------------------------------- users --------------------------------- */

func (s *sqliteStore) SaveUser(ctx context.Context, u *User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES (?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET username=excluded.username,
			password_hash=excluded.password_hash`,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt.UTC().Format(time.RFC3339))
	return err
}

func (s *sqliteStore) UserByID(ctx context.Context, id string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE id=?`, id)
	return scanUser(row)
}

func (s *sqliteStore) UserByUsername(ctx context.Context, username string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username=? COLLATE NOCASE`, username)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &u, nil
}

/* ------------------------------- games --------------------------------- */

func (s *sqliteStore) SaveGame(ctx context.Context, g *game.Game) error {
	invited, err := json.Marshal(g.InvitedUserIDs)
	if err != nil {
		return err
	}
	players, err := json.Marshal(g.PlayerIDs)
	if err != nil {
		return err
	}
	rounds, err := json.Marshal(g.Rounds)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO games (id, name, creator_id, visibility, password,
			invited_ids, player_ids, rounds, current_round, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, visibility=excluded.visibility,
			password=excluded.password, invited_ids=excluded.invited_ids,
			player_ids=excluded.player_ids, rounds=excluded.rounds,
			current_round=excluded.current_round`,
		g.ID, g.Name, g.CreatorID, string(g.Visibility), g.Password,
		string(invited), string(players), string(rounds), g.CurrentRound,
		g.CreatedAt.UTC().Format(time.RFC3339))
	return err
}

func (s *sqliteStore) GameByID(ctx context.Context, id string) (*game.Game, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, creator_id, visibility, password, invited_ids,
		       player_ids, rounds, current_round, created_at
		FROM games WHERE id=?`, id)
	g, err := scanGame(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return g, err
}

func (s *sqliteStore) ListGames(ctx context.Context) ([]*game.Game, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, creator_id, visibility, password, invited_ids,
		       player_ids, rounds, current_round, created_at
		FROM games ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*game.Game
	for rows.Next() {
		g, err := scanGame(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *sqliteStore) DeleteGame(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id=?`, id)
	return err
}

func scanGame(scan func(...any) error) (*game.Game, error) {
	var g game.Game
	var visibility, invited, players, rounds, created string
	if err := scan(&g.ID, &g.Name, &g.CreatorID, &visibility, &g.Password,
		&invited, &players, &rounds, &g.CurrentRound, &created); err != nil {
		return nil, err
	}
	g.Visibility = game.Visibility(visibility)
	if err := json.Unmarshal([]byte(invited), &g.InvitedUserIDs); err != nil {
		return nil, fmt.Errorf("decode invited_ids: %w", err)
	}
	if err := json.Unmarshal([]byte(players), &g.PlayerIDs); err != nil {
		return nil, fmt.Errorf("decode player_ids: %w", err)
	}
	if err := json.Unmarshal([]byte(rounds), &g.Rounds); err != nil {
		return nil, fmt.Errorf("decode rounds: %w", err)
	}
	g.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &g, nil
}

/* --------------------------- word assignments --------------------------- */

func (s *sqliteStore) saveWords(ctx context.Context, gameID string, round int, kind string, words []string) error {
	blob, err := json.Marshal(words)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO word_assignments (game_id, round_number, kind, words)
		VALUES (?,?,?,?)
		ON CONFLICT(game_id, round_number, kind) DO UPDATE SET words=excluded.words`,
		gameID, round, kind, string(blob))
	return err
}

func (s *sqliteStore) loadWords(ctx context.Context, gameID string, round int, kind string) ([]string, error) {
	var blob string
	err := s.db.QueryRowContext(ctx, `
		SELECT words FROM word_assignments
		WHERE game_id=? AND round_number=? AND kind=?`, gameID, round, kind).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var out []string
	if err := json.Unmarshal([]byte(blob), &out); err != nil {
		return nil, fmt.Errorf("decode words: %w", err)
	}
	return out, nil
}

func (s *sqliteStore) SaveWords(ctx context.Context, gameID string, round int, words []string) error {
	return s.saveWords(ctx, gameID, round, "target", words)
}

func (s *sqliteStore) Words(ctx context.Context, gameID string, round int) ([]string, error) {
	return s.loadWords(ctx, gameID, round, "target")
}

func (s *sqliteStore) SaveStartWords(ctx context.Context, gameID string, round int, words []string) error {
	return s.saveWords(ctx, gameID, round, "start", words)
}

func (s *sqliteStore) StartWords(ctx context.Context, gameID string, round int) ([]string, error) {
	return s.loadWords(ctx, gameID, round, "start")
}

/* ----------------------------- round results ---------------------------- */

func (s *sqliteStore) SaveRoundResult(ctx context.Context, r *game.RoundResult) error {
	holes, err := json.Marshal(r.Holes)
	if err != nil {
		return err
	}
	var completed any
	if r.CompletedAt != nil {
		completed = r.CompletedAt.UTC().Format(time.RFC3339)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO round_results (game_id, round_number, user_id, holes, total_score, completed_at)
		VALUES (?,?,?,?,?,?)
		ON CONFLICT(game_id, round_number, user_id) DO UPDATE SET
			holes=excluded.holes, total_score=excluded.total_score,
			completed_at=excluded.completed_at`,
		r.GameID, r.RoundNumber, r.UserID, string(holes), r.TotalScore, completed)
	return err
}

func (s *sqliteStore) RoundResult(ctx context.Context, gameID string, round int, userID string) (*game.RoundResult, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT game_id, round_number, user_id, holes, total_score, completed_at
		FROM round_results WHERE game_id=? AND round_number=? AND user_id=?`,
		gameID, round, userID)
	r, err := scanResult(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return r, err
}

func (s *sqliteStore) ResultsForGame(ctx context.Context, gameID string) ([]*game.RoundResult, error) {
	return s.queryResults(ctx, `
		SELECT game_id, round_number, user_id, holes, total_score, completed_at
		FROM round_results WHERE game_id=? ORDER BY round_number, user_id`, gameID)
}

func (s *sqliteStore) ResultsForUser(ctx context.Context, userID string) ([]*game.RoundResult, error) {
	return s.queryResults(ctx, `
		SELECT game_id, round_number, user_id, holes, total_score, completed_at
		FROM round_results WHERE user_id=? ORDER BY game_id, round_number`, userID)
}

func (s *sqliteStore) queryResults(ctx context.Context, q string, arg any) ([]*game.RoundResult, error) {
	rows, err := s.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*game.RoundResult
	for rows.Next() {
		r, err := scanResult(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanResult(scan func(...any) error) (*game.RoundResult, error) {
	var r game.RoundResult
	var holes string
	var completed sql.NullString
	if err := scan(&r.GameID, &r.RoundNumber, &r.UserID, &holes, &r.TotalScore, &completed); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(holes), &r.Holes); err != nil {
		return nil, fmt.Errorf("decode holes: %w", err)
	}
	if completed.Valid {
		t, err := time.Parse(time.RFC3339, completed.String)
		if err == nil {
			r.CompletedAt = &t
		}
	}
	return &r, nil
}
