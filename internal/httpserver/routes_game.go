// internal/httpserver/routes_game.go
//
// HTTP routes for playing a game session.
//   - POST   /api/sessions                     → start a session (returns token + state)
//   - GET    /api/sessions/{id}                → current state
//   - DELETE /api/sessions/{id}                → close the session
//   - POST   /api/sessions/{id}/mode           → {mode: "normal"|"level"}
//   - POST   /api/sessions/{id}/puzzle         → {size} new Normal puzzle
//   - POST   /api/sessions/{id}/level/restart, /run/restart, /highlights/reset, /level/advance
//   - POST   /api/sessions/{id}/pointer/down|enter {row,col}, /pointer/up
//   - PUT    /api/sessions/{id}/player         → {name}
//
// Every mutation is turned into a game.Event and applied on the session loop;
// the response is always the resulting snapshot.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/puzzle"
)

func (s *Server) mountSessions(r chi.Router) {
	r.Post("/api/sessions", s.handleCreate)
	r.Route("/api/sessions/{id}", func(r chi.Router) {
		r.Use(s.requireSession())
		r.Get("/", s.handleState)
		r.Delete("/", s.handleClose)
		r.Post("/mode", s.handleMode)
		r.Post("/puzzle", s.handlePuzzle)
		r.Post("/level/restart", s.handleEvent(game.RestartLevel{}))
		r.Post("/run/restart", s.handleEvent(game.RestartRun{}))
		r.Post("/highlights/reset", s.handleEvent(game.ResetHighlights{}))
		r.Post("/level/advance", s.handleEvent(game.AdvanceLevel{}))
		r.Post("/pointer/down", s.handlePointer(func(p puzzle.Position) game.Event { return game.PointerDown{Pos: p} }))
		r.Post("/pointer/enter", s.handlePointer(func(p puzzle.Position) game.Event { return game.PointerEnter{Pos: p} }))
		r.Post("/pointer/up", s.handleEvent(game.PointerUp{}))
		r.Put("/player", s.handlePlayer)
	})
}

type createReq struct {
	Player string `json:"player"`
}

type createRes struct {
	SessionID string        `json:"sessionId"`
	Token     string        `json:"token"`
	ExpiresAt int64         `json:"expiresAt"` // unix seconds
	State     game.Snapshot `json:"state"`
}

// handleCreate starts a Normal-mode game and returns a token scoped to it.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if !decodeOptional(w, r, &req) {
		return
	}

	opts := game.Options{
		Bank:      s.bank,
		TimeLimit: s.cfg.TimeLimit,
		Player:    req.Player,
	}
	if s.board != nil {
		opts.Scoreboard = s.board
	}
	ctrl, err := game.NewController(opts)
	if err != nil {
		log.Error().Err(err).Msg("create controller")
		writeError(w, http.StatusInternalServerError, "create_failed")
		return
	}
	sess := s.sessions.add(ctrl)

	tok, exp, err := signToken(s.cfg.JWTSecret, sess.id, s.cfg.SessionTTL)
	if err != nil {
		s.sessions.remove(sess.id)
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "token_failed")
		return
	}
	snap, err := sess.loop.Snapshot(r.Context())
	if err != nil {
		writeDispatchError(w, err)
		return
	}
	log.Info().Str("session", sess.id).Msg("session started")
	writeJSON(w, http.StatusCreated, createRes{SessionID: sess.id, Token: tok, ExpiresAt: exp.Unix(), State: snap})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, nil)
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	s.sessions.remove(sess.id)
	log.Info().Str("session", sess.id).Msg("session closed")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if !decode(w, r, &req) {
		return
	}
	mode, err := game.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.dispatch(w, r, game.SetMode{Mode: mode})
}

func (s *Server) handlePuzzle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Size int `json:"size"`
	}
	if !decodeOptional(w, r, &req) {
		return
	}
	s.dispatch(w, r, game.NewPuzzle{Size: req.Size})
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &req) {
		return
	}
	s.dispatch(w, r, game.SetPlayer{Name: req.Name})
}

// handleEvent serves routes whose event carries no payload.
func (s *Server) handleEvent(ev game.Event) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.dispatch(w, r, ev)
	}
}

func (s *Server) handlePointer(mk func(puzzle.Position) game.Event) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pos puzzle.Position
		if !decode(w, r, &pos) {
			return
		}
		s.dispatch(w, r, mk(pos))
	}
}

// dispatch applies ev to the session in the request context and writes the
// resulting snapshot.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, ev game.Event) {
	sess := sessionFrom(r)
	snap, err := sess.loop.Dispatch(r.Context(), ev)
	if err != nil {
		writeDispatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func writeDispatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrBadSize), errors.Is(err, game.ErrOffGrid), errors.Is(err, game.ErrUnknownMode):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrClosed):
		writeError(w, http.StatusNotFound, "session_not_found")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "timeout")
	default:
		log.Error().Err(err).Msg("dispatch")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

// decode reads a required JSON body.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return false
	}
	return true
}

// decodeOptional is decode but accepts an empty body.
func decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return false
	}
	return true
}
