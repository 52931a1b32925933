// internal/httpserver/server.go
//
// HTTP server wiring for the word match game.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, access log, CORS).
//   - Page + static assets: "/", "/static/*".
//   - Game API (session token required): /game/{id}, drop, reset, submit.
//   - Live gesture websocket: /game/{id}/ws.
//   - Diagnostics: /health, /stats, /metrics, /debug/words.
//   - Idle game expiry (sweep.go).
//
// Notes:
//   - Each game is bound to one browser session by a signed token carried in
//     a cookie or an Authorization: Bearer header.
//   - Handler timeouts apply to the JSON API only; websockets are long-lived.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordmatch/assets"
	"github.com/robalobadob/wordmatch/internal/game"
	"github.com/robalobadob/wordmatch/internal/history"
	"github.com/robalobadob/wordmatch/internal/live"
	"github.com/robalobadob/wordmatch/internal/metrics"
	"github.com/robalobadob/wordmatch/internal/store"
)

// Options carries the server's collaborators and settings.
type Options struct {
	Bank         []string       // fixed vocabulary for every new game
	Shuffler     game.Shuffler  // nil → uniform
	Store        store.Store    // nil → in-memory
	History      *history.Store // nil disables the completion log
	Metrics      *metrics.Metrics
	JWTSecret    string
	SessionTTL   time.Duration
	ClientOrigin string
	Secure       bool // production cookies
}

// Server bundles the router and the game dependencies.
type Server struct {
	r        *chi.Mux
	opts     Options
	store    store.Store
	history  *history.Store
	metrics  *metrics.Metrics
	hub      *live.Hub
	upgrader websocket.Upgrader
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if opts.JWTSecret == "" {
		opts.JWTSecret = "dev_secret_change_me"
	}
	s := &Server{
		r:       chi.NewRouter(),
		opts:    opts,
		store:   opts.Store,
		history: opts.History,
		metrics: opts.Metrics,
		hub:     live.NewHub(),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{opts.ClientOrigin},
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
	}).Handler)

	// --- page + assets ---
	s.r.Get("/", s.handlePage)
	s.r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(assets.Static()))))

	// --- diagnostics ---
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	s.r.With(chimw.Timeout(10*time.Second)).Get("/stats", s.handleStats)
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"count": len(s.opts.Bank), "words": s.opts.Bank})
	})

	// --- game ---
	s.r.With(chimw.Timeout(10*time.Second)).Post("/game/new", s.handleNewGame)
	s.r.Route("/game/{id}", func(r chi.Router) {
		r.Use(s.requireGame)
		r.Get("/ws", s.handleSocket)
		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(10 * time.Second))
			r.Get("/", s.handleGetGame)
			r.Post("/drop", s.handleDrop)
			r.Post("/reset", s.handleReset)
			r.Post("/submit", s.handleSubmit)
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// ServeHTTP lets the Server be used directly as a handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// ----------------------------- helpers -------------------------------------

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Str("req_id", chimw.GetReqID(r.Context())).
		Msg("request")
}

// checkOrigin accepts same-host pages and the configured client origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == s.opts.ClientOrigin {
		return true
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
