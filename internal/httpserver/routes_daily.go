// internal/httpserver/routes_daily.go
//
// HTTP route for the "puzzle of the day".
//   - GET /api/puzzles/daily?size=N[&date=YYYY-MM-DD]
//
// Every caller asking for the same date and size gets the same grid: the
// generator is seeded from HMAC(DAILY_SALT, date|size). The puzzle is
// stateless; play it by starting a session.

package httpserver

import (
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/puzzle"
)

const dailyDefaultSize = 15

type dailyRes struct {
	Date     string   `json:"date"`
	Size     int      `json:"size"`
	Grid     []string `json:"grid"`
	Words    []string `json:"words"`
	Fallback bool     `json:"fallback"`
}

// mountDaily registers the daily puzzle route.
func (s *Server) mountDaily(r chi.Router) {
	r.Get("/api/puzzles/daily", s.handleDaily)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	size := dailyDefaultSize
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || !slices.Contains(game.DefaultNormalSizes, n) {
			writeError(w, http.StatusBadRequest, "bad_size")
			return
		}
		size = n
	}

	date := time.Now().UTC()
	if v := r.URL.Query().Get("date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_date")
			return
		}
		date = d
	}

	p := puzzle.NewSeededGenerator(daily.Seed(date, s.cfg.DailySalt, size)).Generate(size, s.bank)
	log.Debug().Str("date", daily.DateKey(date)).Int("size", size).Msg("daily puzzle")
	writeJSON(w, http.StatusOK, dailyRes{
		Date:     daily.DateKey(date),
		Size:     size,
		Grid:     p.Rows(),
		Words:    p.Words,
		Fallback: p.Fallback,
	})
}
