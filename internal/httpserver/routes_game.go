package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordmatch/internal/game"
	"github.com/robalobadob/wordmatch/internal/history"
	"github.com/robalobadob/wordmatch/internal/metrics"
	"github.com/robalobadob/wordmatch/internal/render"
)

// ------------------------------ transitions --------------------------------
// Shared by the JSON API and the websocket so both paths log, count and
// record identically.

// createGame builds a fresh board and registers it.
func (s *Server) createGame(ctx context.Context) (*game.Game, error) {
	g := game.New(s.opts.Bank, s.opts.Shuffler)
	if err := s.store.Save(ctx, g); err != nil {
		return nil, err
	}
	s.metrics.GamesCreated.Inc()
	log.Ctx(ctx).Info().Str("gameId", g.ID).Int("words", len(s.opts.Bank)).Msg("game created")
	return g, nil
}

// drop applies a match attempt and handles its side effects.
func (s *Server) drop(ctx context.Context, g *game.Game, name, target string) (game.Outcome, error) {
	logger := log.Ctx(ctx).With().Str("gameId", g.ID).Str("name", name).Str("target", target).Logger()

	out, err := g.AttemptMatch(name, target)
	switch {
	case err != nil:
		s.metrics.ObserveAttempt(metrics.ResultUnknown)
		logger.Warn().Err(err).Msg("drop outside word bank")
		return out, err
	case out.Matched:
		s.metrics.ObserveAttempt(metrics.ResultMatched)
		logger.Debug().Int("solved", out.Snapshot.Solved).Msg("match")
	case out.AlreadySolved:
		s.metrics.ObserveAttempt(metrics.ResultRepeat)
	default:
		s.metrics.ObserveAttempt(metrics.ResultMismatch)
	}

	if out.Completed {
		s.metrics.Completions.Inc()
		logger.Info().
			Int("attempts", out.Snapshot.Attempts).
			Int("misses", out.Snapshot.Misses).
			Dur("elapsed", out.Elapsed).
			Msg("game complete")
		s.recordCompletion(ctx, out)
	}
	return out, nil
}

// recordCompletion appends to the completion log. Best effort: a failed
// write never affects play.
func (s *Server) recordCompletion(ctx context.Context, out game.Outcome) {
	if s.history == nil {
		return
	}
	err := s.history.Record(context.WithoutCancel(ctx), history.Completion{
		GameID:    out.Snapshot.ID,
		Attempts:  out.Snapshot.Attempts,
		Misses:    out.Snapshot.Misses,
		ElapsedMs: out.Elapsed.Milliseconds(),
	})
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("gameId", out.Snapshot.ID).Msg("record completion")
	}
}

func (s *Server) reset(ctx context.Context, g *game.Game) game.Snapshot {
	snap := g.Reset()
	s.metrics.Resets.Inc()
	log.Ctx(ctx).Info().Str("gameId", g.ID).Msg("game reset")
	return snap
}

// --------------------------------- page ------------------------------------

// handlePage serves the board, resuming the session's game when it exists.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	g, err := s.sessionGame(r)
	if err != nil {
		if g, err = s.createGame(r.Context()); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("save game")
			http.Error(w, "could not start a game", http.StatusInternalServerError)
			return
		}
		tok, exp, err := s.signToken(g.ID)
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("sign token")
			http.Error(w, "could not start a game", http.StatusInternalServerError)
			return
		}
		s.setSessionCookie(w, tok, exp)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(render.Page(g.Snapshot())))
}

// ------------------------------ JSON API -----------------------------------

type newGameRes struct {
	GameID string        `json:"gameId"`
	Token  string        `json:"token"`
	State  game.Snapshot `json:"state"`
}

// handleNewGame creates a game and binds it to the caller's session.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.createGame(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save game")
		jsonError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signToken(g.ID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign token")
		jsonError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setSessionCookie(w, tok, exp)
	writeJSON(w, http.StatusCreated, newGameRes{GameID: g.ID, Token: tok, State: g.Snapshot()})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, gameFrom(r).Snapshot())
}

type dropReq struct {
	Name   string `json:"name"`
	Target string `json:"target"`
}

type dropRes struct {
	Matched       bool          `json:"matched"`
	AlreadySolved bool          `json:"alreadySolved,omitempty"`
	Completed     bool          `json:"completed"`
	Message       string        `json:"message,omitempty"`
	State         game.Snapshot `json:"state"`
}

// handleDrop applies one match attempt; mismatches are 200 with matched=false.
func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	var req dropReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g := gameFrom(r)
	out, err := s.drop(r.Context(), g, req.Name, req.Target)
	if err != nil {
		if errors.Is(err, game.ErrUnknownWord) {
			jsonError(w, http.StatusBadRequest, "unknown_word")
			return
		}
		jsonError(w, http.StatusInternalServerError, "drop_failed")
		return
	}
	res := dropRes{
		Matched:       out.Matched,
		AlreadySolved: out.AlreadySolved,
		Completed:     out.Completed,
		State:         out.Snapshot,
	}
	if out.Completed {
		res.Message = game.CompletionMessage
	}
	if out.Matched {
		s.publishBoard(g.ID, out.Snapshot, res.Message, nil)
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	g := gameFrom(r)
	snap := s.reset(r.Context(), g)
	s.publishBoard(g.ID, snap, "", nil)
	writeJSON(w, http.StatusOK, snap)
}

// handleSubmit reports progress without changing state.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, gameFrom(r).Check())
}
