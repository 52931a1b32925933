package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Match attempt results.
const (
	ResultMatched  = "matched"
	ResultMismatch = "mismatch"
	ResultRepeat   = "repeat"
	ResultUnknown  = "unknown_word"
)

// Metrics holds all Prometheus metrics for the game server.
type Metrics struct {
	registry *prometheus.Registry

	GamesCreated  prometheus.Counter
	GamesExpired  prometheus.Counter
	MatchAttempts *prometheus.CounterVec
	Completions   prometheus.Counter
	Resets        prometheus.Counter
	LiveSockets   prometheus.Gauge
}

// New creates and registers all metrics on a private registry, so several
// servers (tests) can coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		GamesCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "wordmatch_games_created_total",
			Help: "Total number of boards created",
		}),
		GamesExpired: f.NewCounter(prometheus.CounterOpts{
			Name: "wordmatch_games_expired_total",
			Help: "Idle boards dropped from memory",
		}),
		MatchAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wordmatch_match_attempts_total",
			Help: "Drops onto a target, by result",
		}, []string{"result"}),
		Completions: f.NewCounter(prometheus.CounterOpts{
			Name: "wordmatch_completions_total",
			Help: "Boards where every target was solved",
		}),
		Resets: f.NewCounter(prometheus.CounterOpts{
			Name: "wordmatch_resets_total",
			Help: "Explicit board resets",
		}),
		LiveSockets: f.NewGauge(prometheus.GaugeOpts{
			Name: "wordmatch_live_sockets",
			Help: "Open gesture websocket connections",
		}),
	}
}

// ObserveAttempt counts one drop by result.
func (m *Metrics) ObserveAttempt(result string) {
	m.MatchAttempts.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
