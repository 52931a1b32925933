package httpserver

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepExpiresAbandonedVisitors(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	for i := 0; i < 5; i++ {
		w := do(t, s, http.MethodGet, "/", "", "")
		require.Equal(t, http.StatusOK, w.Code)
	}
	g := startGame(t, s)
	require.Equal(t, 6, s.store.Len())

	assert.Zero(t, s.SweepIdle(ctx, time.Now()), "fresh games stay")
	assert.Equal(t, 6, s.SweepIdle(ctx, time.Now().Add(s.opts.SessionTTL+time.Minute)))
	assert.Zero(t, s.store.Len())
	assert.Equal(t, 6.0, testutil.ToFloat64(s.metrics.GamesExpired))

	w := do(t, s, http.MethodGet, "/game/"+g.GameID, g.Token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSweepKeepsGamesWithOpenSockets(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)
	watched := startGame(t, s)
	startGame(t, s)

	sub := s.hub.Subscribe(watched.GameID)
	defer s.hub.Unsubscribe(sub)

	later := time.Now().Add(s.opts.SessionTTL + time.Minute)
	assert.Equal(t, 1, s.SweepIdle(ctx, later))
	assert.Equal(t, 1, s.store.Len())

	w := do(t, s, http.MethodGet, "/game/"+watched.GameID, watched.Token, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSweepSparesRecentlyPlayedGames(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)
	g := startGame(t, s)
	created := time.Now()

	// Activity after creation moves the idle window forward.
	time.Sleep(10 * time.Millisecond)
	dropWord(t, s, g, "SUP", "SUP")

	assert.Zero(t, s.SweepIdle(ctx, created.Add(s.opts.SessionTTL)))
	assert.Equal(t, 1, s.store.Len())
}

func TestRunSweeperStopsWithContext(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.RunSweeper(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
