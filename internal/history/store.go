package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog/log"
)

// Completion is one finished board. Rows are append-only and are never
// used to restore a game.
type Completion struct {
	GameID      string    `json:"gameId"`
	Attempts    int       `json:"attempts"`
	Misses      int       `json:"misses"`
	ElapsedMs   int64     `json:"elapsedMs"`
	CompletedAt time.Time `json:"completedAt"`
}

// Store reads and writes the completions table.
type Store struct{ db *sql.DB }

// NewStore wraps a migrated database.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record appends a completion.
func (s *Store) Record(ctx context.Context, c Completion) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO completions(game_id, attempts, misses, elapsed_ms) VALUES(?,?,?,?)`,
		c.GameID, c.Attempts, c.Misses, c.ElapsedMs,
	)
	return err
}

// Count returns the number of recorded completions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM completions`).Scan(&n)
	return n, err
}

const maxRecent = 100

// completedAtLayout matches the column default strftime('%Y-%m-%dT%H:%M:%fZ').
const completedAtLayout = "2006-01-02T15:04:05.000Z"

// Recent returns up to limit completions, newest first. limit <= 0 means 20;
// larger requests are capped at maxRecent.
func (s *Store) Recent(ctx context.Context, limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = 20
	}
	limit = min(limit, maxRecent)
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, attempts, misses, elapsed_ms, completed_at
		FROM completions
		ORDER BY id DESC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Completion, 0, limit)
	for rows.Next() {
		var (
			c       Completion
			created string
		)
		if err := rows.Scan(&c.GameID, &c.Attempts, &c.Misses, &c.ElapsedMs, &created); err != nil {
			return nil, err
		}
		if c.CompletedAt, err = time.Parse(completedAtLayout, created); err != nil {
			log.Warn().Err(err).Str("gameId", c.GameID).Str("completed_at", created).
				Msg("history: unparseable completion time")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
