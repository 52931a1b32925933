package httpserver

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// SweepIdle forgets games nobody has touched for the session TTL, so their
// tokens have already expired. Games with an open socket are kept.
// It returns how many games were removed.
func (s *Server) SweepIdle(ctx context.Context, now time.Time) int {
	removed := 0
	for _, id := range s.store.Idle(ctx, now.Add(-s.opts.SessionTTL)) {
		if s.hub.Count(id) > 0 {
			continue
		}
		if err := s.store.Delete(ctx, id); err != nil {
			log.Warn().Err(err).Str("gameId", id).Msg("expire game")
			continue
		}
		removed++
	}
	if removed > 0 {
		s.metrics.GamesExpired.Add(float64(removed))
		log.Info().Int("expired", removed).Int("live", s.store.Len()).Msg("swept idle games")
	}
	return removed
}

// RunSweeper calls SweepIdle every interval until ctx is done.
func (s *Server) RunSweeper(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = 10 * time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.SweepIdle(ctx, now)
		}
	}
}
