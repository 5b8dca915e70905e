// internal/httpserver/routes_games.go
//
// Game lifecycle and play endpoints, all gated behind auth:
//   - POST   /games                                   → create game (round 1)
//   - GET    /games                                   → list public games
//   - GET    /games/mine                              → games I play in
//   - GET    /games/invitations                       → games I'm invited to
//   - GET    /games/{gameID}                          → game detail
//   - POST   /games/{gameID}/join                     → join (password for private)
//   - POST   /games/{gameID}/invitations/accept       → accept invite
//   - POST   /games/{gameID}/invitations/decline      → decline invite
//   - DELETE /games/{gameID}                          → delete (creator only)
//   - POST   /games/{gameID}/rounds                   → start next round (creator only)
//   - GET    /games/{gameID}/rounds/{round}/scorecard → my scorecard
//   - GET    /games/{gameID}/rounds/{round}/holes/{hole}        → hole state
//   - POST   /games/{gameID}/rounds/{round}/holes/{hole}/guess  → submit guess
//   - GET    /games/{gameID}/rounds/{round}/results   → round standings
//   - GET    /games/{gameID}/leaderboard              → cross-round leaderboard

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"wordlegolf/internal/game"
	"wordlegolf/internal/golf"
)

// mountGameRoutes registers all /games endpoints.
func (s *Server) mountGameRoutes() {
	s.r.Route("/games", func(r chi.Router) {
		r.Use(s.requireAuth())

		r.Post("/", s.handleCreateGame)
		r.Get("/", s.handleListPublic)
		r.Get("/mine", s.handleListMine)
		r.Get("/invitations", s.handleListInvitations)

		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Delete("/", s.handleDeleteGame)
			r.Post("/join", s.handleJoinGame)
			r.Post("/invitations/accept", s.handleAcceptInvitation)
			r.Post("/invitations/decline", s.handleDeclineInvitation)
			r.Post("/rounds", s.handleStartRound)
			r.Get("/leaderboard", s.handleLeaderboard)

			r.Route("/rounds/{round}", func(r chi.Router) {
				r.Get("/scorecard", s.handleScorecard)
				r.Get("/results", s.handleRoundResults)
				r.Get("/holes/{hole}", s.handleHoleState)
				r.Post("/holes/{hole}/guess", s.handleGuess)
			})
		})
	})
}

// ------------------------------- lifecycle ---------------------------------

type createGameReq struct {
	Name           string           `json:"name"`
	Visibility     game.Visibility  `json:"visibility"`
	Password       string           `json:"password"`
	InvitedUserIDs []string         `json:"invitedUserIds"`
	Round          game.RoundConfig `json:"round"`
}

// handleCreateGame creates a new game with its first round configuration.
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	var body createGameReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	g, err := s.svc.CreateGame(r.Context(), me.ID, golf.CreateGameParams{
		Name:           body.Name,
		Visibility:     body.Visibility,
		Password:       body.Password,
		InvitedUserIDs: body.InvitedUserIDs,
		Round:          body.Round,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(g)
}

func (s *Server) handleListPublic(w http.ResponseWriter, r *http.Request) {
	games, err := s.svc.PublicGames(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(games)
}

func (s *Server) handleListMine(w http.ResponseWriter, r *http.Request) {
	games, err := s.svc.GamesForUser(r.Context(), currentUser(r).ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(games)
}

func (s *Server) handleListInvitations(w http.ResponseWriter, r *http.Request) {
	games, err := s.svc.InvitationsForUser(r.Context(), currentUser(r).ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(games)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.svc.Game(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(g)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteGame(r.Context(), chi.URLParam(r, "gameID"), currentUser(r).ID); err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

type joinReq struct {
	Password string `json:"password"`
}

func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	var body joinReq
	_ = json.NewDecoder(r.Body).Decode(&body)
	if err := s.svc.JoinGame(r.Context(), chi.URLParam(r, "gameID"), currentUser(r).ID, body.Password); err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (s *Server) handleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.AcceptInvitation(r.Context(), chi.URLParam(r, "gameID"), currentUser(r).ID); err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (s *Server) handleDeclineInvitation(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeclineInvitation(r.Context(), chi.URLParam(r, "gameID"), currentUser(r).ID); err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleStartRound appends the next round to a game.
func (s *Server) handleStartRound(w http.ResponseWriter, r *http.Request) {
	var cfg game.RoundConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	g, err := s.svc.StartRound(r.Context(), chi.URLParam(r, "gameID"), currentUser(r).ID, cfg)
	if err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(g)
}

// --------------------------------- play ------------------------------------

// roundHoleParams parses the {round} and {hole} URL params.
func roundHoleParams(r *http.Request) (int, int, bool) {
	round, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil || round < 1 {
		return 0, 0, false
	}
	hole, err := strconv.Atoi(chi.URLParam(r, "hole"))
	if err != nil || hole < 1 {
		return 0, 0, false
	}
	return round, hole, true
}

// resolvePending fills any pending classic-mode words before play. Best
// effort: a failing word source must not block viewing or guessing.
func (s *Server) resolvePending(r *http.Request, gameID string, round int) {
	if err := s.svc.ResolveClassicWords(r.Context(), gameID, round, time.Now()); err != nil {
		log.Warn().Err(err).Str("gameId", gameID).Int("round", round).Msg("resolve classic words")
	}
}

// handleHoleState returns the caller's current view of one hole.
func (s *Server) handleHoleState(w http.ResponseWriter, r *http.Request) {
	round, hole, ok := roundHoleParams(r)
	if !ok {
		http.Error(w, `{"error":"invalid round or hole"}`, http.StatusBadRequest)
		return
	}
	gameID := chi.URLParam(r, "gameID")
	s.resolvePending(r, gameID, round)
	view, err := s.svc.HoleState(r.Context(), gameID, round, hole, currentUser(r).ID, time.Now())
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(view)
}

type guessReq struct {
	Guess string `json:"guess"`
}

// handleGuess submits one guess on a hole.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	round, hole, ok := roundHoleParams(r)
	if !ok {
		http.Error(w, `{"error":"invalid round or hole"}`, http.StatusBadRequest)
		return
	}
	var body guessReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	gameID := chi.URLParam(r, "gameID")
	s.resolvePending(r, gameID, round)
	view, err := s.svc.SubmitGuess(r.Context(), gameID, round, hole, currentUser(r).ID, body.Guess, time.Now())
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(view)
}

// handleScorecard returns the caller's scorecard for a round.
func (s *Server) handleScorecard(w http.ResponseWriter, r *http.Request) {
	round, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil || round < 1 {
		http.Error(w, `{"error":"invalid round"}`, http.StatusBadRequest)
		return
	}
	gameID := chi.URLParam(r, "gameID")
	holes, result, err := s.svc.Scorecard(r.Context(), gameID, round, currentUser(r).ID, time.Now())
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"holes":      holes,
		"totalScore": result.TotalScore,
		"complete":   result.Complete(),
	})
}

// handleRoundResults returns round standings. Comparative scores appear only
// once every player has completed the round.
func (s *Server) handleRoundResults(w http.ResponseWriter, r *http.Request) {
	round, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil || round < 1 {
		http.Error(w, `{"error":"invalid round"}`, http.StatusBadRequest)
		return
	}
	standings, complete, err := s.svc.RoundStandings(r.Context(), chi.URLParam(r, "gameID"), round)
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"standings": standings,
		"complete":  complete,
	})
}

// handleLeaderboard returns aggregate statistics across a game's rounds.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.Leaderboard(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(entries)
}
