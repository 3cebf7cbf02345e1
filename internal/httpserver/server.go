// internal/httpserver/server.go
//
// HTTP server wiring for the word search backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", GET /api/leaderboard, daily puzzle.
//   - Session endpoints (bearer token): mounted under /api/sessions/{id}.
//   - Session janitor that closes games idle for longer than the TTL.
//
// Notes:
//   - CORS is origin-aware; the allowed origin comes from config (CLIENT_ORIGIN).
//   - Every session owns a game.Loop; handlers only ever talk to it via Dispatch.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/config"
	"github.com/robalobadob/wordsearch/internal/leaderboard"
)

// Server bundles the router, live sessions and the shared leaderboard.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	bank     []string
	board    *leaderboard.Board
	sessions *registry
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, bank []string, board *leaderboard.Board) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		bank:     bank,
		board:    board,
		sessions: newRegistry(cfg.SessionTTL),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordsearch","endpoints":["/health","POST /api/sessions","/api/sessions/{id}/*","GET /api/leaderboard","GET /api/puzzles/daily"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.sessions.len()})
	})

	s.r.Get("/api/leaderboard", s.handleLeaderboard)
	s.mountDaily(s.r)
	s.mountSessions(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start serves HTTP on addr and runs the session janitor until the listener fails.
func (s *Server) Start(addr string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.sessions.janitor(ctx, janitorEvery(s.cfg.SessionTTL))
	defer s.Close()
	return http.ListenAndServe(addr, s.r)
}

// Close stops every live session.
func (s *Server) Close() { s.sessions.closeAll() }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries := []leaderboard.Entry{}
	if s.board != nil {
		entries = append(entries, s.board.Entries()...)
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors allows a single browser origin to call the API with bearer tokens.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// janitorEvery sweeps a few times per TTL, but at least once a minute.
func janitorEvery(ttl time.Duration) time.Duration {
	return min(max(ttl/4, time.Second), time.Minute)
}
