package history

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db))
	return NewStore(db)
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openTestDB(t)
	require.NoError(t, Migrate(s.db))

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestMigrateFailureRollsBack(t *testing.T) {
	s := openTestDB(t)
	bad := fstest.MapFS{"m/002_bad.sql": {Data: []byte("CREATE TABLE broken (;")}}

	err := migrateFS(s.db, bad, "m")
	require.Error(t, err)

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(1) FROM _migrations WHERE name='m/002_bad.sql'`).Scan(&n))
	assert.Zero(t, n)
}

func TestRecordAndQuery(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, s.Record(ctx, Completion{GameID: "a", Attempts: 4, ElapsedMs: 1500}))
	require.NoError(t, s.Record(ctx, Completion{GameID: "b", Attempts: 6, Misses: 2, ElapsedMs: 900}))

	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	recent, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "b", recent[0].GameID)
	assert.Equal(t, 2, recent[0].Misses)
	assert.False(t, recent[0].CompletedAt.IsZero())
	assert.Equal(t, "a", recent[1].GameID)

	recent, err = s.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	recent, err = s.Recent(ctx, 1_000_000)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestRecentLogsUnparseableTimes(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO completions(game_id, attempts, misses, elapsed_ms, completed_at) VALUES('x', 4, 0, 10, 'yesterday')`)
	require.NoError(t, err)

	recent, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.True(t, recent[0].CompletedAt.IsZero())
	assert.Contains(t, buf.String(), "unparseable completion time")
	assert.Contains(t, buf.String(), `"completed_at":"yesterday"`)
}
