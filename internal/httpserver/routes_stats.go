package httpserver

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordmatch/internal/history"
)

// statsRes is returned by GET /stats.
type statsRes struct {
	Enabled     bool                 `json:"enabled"`
	LiveGames   int                  `json:"liveGames"`
	Completions int                  `json:"completions"`
	Recent      []history.Completion `json:"recent"`
}

// handleStats summarizes the completion log. ?limit=N bounds the recent list.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	res := statsRes{LiveGames: s.store.Len(), Recent: []history.Completion{}}
	if s.history == nil {
		writeJSON(w, http.StatusOK, res)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	n, err := s.history.Count(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("count completions")
		jsonError(w, http.StatusInternalServerError, "db_error")
		return
	}
	recent, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("recent completions")
		jsonError(w, http.StatusInternalServerError, "db_error")
		return
	}
	res.Enabled = true
	res.Completions = n
	res.Recent = recent
	writeJSON(w, http.StatusOK, res)
}
