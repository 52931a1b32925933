package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordmatch/internal/game"
	"github.com/robalobadob/wordmatch/internal/store"
)

const sessionCookieName = "wordmatch_session"

var errNoGameClaim = errors.New("token has no game id")

// ctxGameKey is the context key type for the resolved *game.Game.
type ctxGameKey struct{}

// signToken creates an HS256 token binding the bearer to one game.
func (s *Server) signToken(gameID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"gid": gameID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.opts.JWTSecret))
	return ss, exp, err
}

// parseToken verifies tok and returns the game it is bound to.
func (s *Server) parseToken(tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !t.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	gid, _ := claims["gid"].(string)
	if gid == "" {
		return "", errNoGameClaim
	}
	return gid, nil
}

// setSessionCookie writes the session cookie with appropriate security attributes.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.opts.Secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a token from the Authorization header or session cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// sessionGame resolves the caller's game from its token, if any.
func (s *Server) sessionGame(r *http.Request) (*game.Game, error) {
	tok := bearerOrCookie(r)
	if tok == "" {
		return nil, errNoGameClaim
	}
	gid, err := s.parseToken(tok)
	if err != nil {
		return nil, err
	}
	return s.store.Get(r.Context(), gid)
}

// requireGame enforces that the token's game matches {id} and injects the game.
func (s *Server) requireGame(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		tok := bearerOrCookie(r)
		if tok == "" {
			jsonError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		gid, err := s.parseToken(tok)
		if err != nil || gid != id {
			hlog.FromRequest(r).Debug().Err(err).Str("gameId", id).Msg("rejected session token")
			jsonError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		g, err := s.store.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				jsonError(w, http.StatusNotFound, "not_found")
				return
			}
			hlog.FromRequest(r).Error().Err(err).Msg("load game")
			jsonError(w, http.StatusInternalServerError, "store_failed")
			return
		}
		ctx := context.WithValue(r.Context(), ctxGameKey{}, g)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func gameFrom(r *http.Request) *game.Game {
	g, _ := r.Context().Value(ctxGameKey{}).(*game.Game)
	return g
}
