// internal/game/engine.go
//
// Game Controller for a single match board.
// Responsibilities:
//   - Create boards from a word bank (pool = shuffled bank, all targets unsolved).
//   - Apply match attempts: exact string equality moves a word from the pool
//     to its solved target; anything else is a silent no-op.
//   - Detect completion inside the match transition, exactly once per run.
//   - Reset to the canonical initial shape with a fresh shuffle.
//   - Track the last player activity so idle boards can be expired.
//
// Notes:
//   - Words outside the bank are a caller bug and surface as ErrUnknownWord.
//   - Snapshots are deep copies; callers never alias internal slices.
package game

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// ErrUnknownWord is returned when a drop names a word outside the bank.
var ErrUnknownWord = errors.New("game: word not in bank")

// New constructs a game over bank. bank must be non-empty with unique
// entries (words.Load guarantees both). A nil shuffler means Uniform.
func New(bank []string, sh Shuffler) *Game {
	if sh == nil {
		sh = NewUniform(nil)
	}
	g := &Game{
		ID:       uuid.NewString(),
		bank:     slices.Clone(bank),
		index:    make(map[string]int, len(bank)),
		shuffler: sh,
		now:      time.Now,
	}
	for i, w := range g.bank {
		g.index[w] = i
	}
	g.resetLocked()
	return g
}

// AttemptMatch handles a drop of the dragged word name onto the target label.
func (g *Game) AttemptMatch(name, target string) (Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touched = g.now()

	_, knownName := g.index[name]
	ti, knownTarget := g.index[target]
	if !knownName || !knownTarget {
		return Outcome{Snapshot: g.snapshotLocked()},
			fmt.Errorf("%w: dropped %q onto %q", ErrUnknownWord, name, target)
	}

	g.attempts++
	if name != target {
		g.misses++
		return Outcome{Snapshot: g.snapshotLocked()}, nil
	}
	if g.entries[ti].Solved {
		return Outcome{AlreadySolved: true, Snapshot: g.snapshotLocked()}, nil
	}

	g.pool = slices.DeleteFunc(g.pool, func(w string) bool { return w == name })
	g.entries[ti].Solved = true

	out := Outcome{Matched: true}
	if g.solvedLocked() == len(g.entries) {
		out.Completed = true
		out.Elapsed = g.now().Sub(g.startedAt)
	}
	out.Snapshot = g.snapshotLocked()
	return out, nil
}

// Reset restores the initial shape: full shuffled pool, every target unsolved.
func (g *Game) Reset() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetLocked()
	return g.snapshotLocked()
}

// Check is the submit action: it reports progress without changing state.
func (g *Game) Check() Report {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touched = g.now()
	r := Report{Solved: g.solvedLocked(), Total: len(g.entries)}
	if r.Solved == r.Total {
		r.Complete = true
		r.Message = CompletionMessage
	}
	return r
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touched = g.now()
	return g.snapshotLocked()
}

// InPool reports whether w is still waiting to be placed.
func (g *Game) InPool(w string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touched = g.now()
	return slices.Contains(g.pool, w)
}

// LastActive returns when a player last read or changed the game.
func (g *Game) LastActive() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.touched
}

func (g *Game) resetLocked() {
	pool := slices.Clone(g.bank)
	g.shuffler.Shuffle(pool)
	g.pool = pool

	g.entries = make([]Entry, len(g.bank))
	for i, w := range g.bank {
		g.entries[i] = Entry{Word: w}
	}
	g.attempts, g.misses = 0, 0
	g.startedAt = g.now()
	g.touched = g.startedAt
}

func (g *Game) solvedLocked() int {
	n := 0
	for _, e := range g.entries {
		if e.Solved {
			n++
		}
	}
	return n
}

func (g *Game) snapshotLocked() Snapshot {
	solved := g.solvedLocked()
	status := StatusInProgress
	if solved == len(g.entries) {
		status = StatusComplete
	}
	return Snapshot{
		ID:        g.ID,
		Pool:      slices.Clone(g.pool),
		Entries:   slices.Clone(g.entries),
		Solved:    solved,
		Total:     len(g.entries),
		Status:    status,
		Attempts:  g.attempts,
		Misses:    g.misses,
		StartedAt: g.startedAt,
	}
}

// checkInvariants verifies the pool/mapping relationship. Used by tests.
func (g *Game) checkInvariants() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.entries) != len(g.bank) {
		return fmt.Errorf("mapping has %d keys, bank has %d", len(g.entries), len(g.bank))
	}
	inPool := make(map[string]bool, len(g.pool))
	for _, w := range g.pool {
		if _, ok := g.index[w]; !ok {
			return fmt.Errorf("pool word %q not in bank", w)
		}
		if inPool[w] {
			return fmt.Errorf("pool word %q repeated", w)
		}
		inPool[w] = true
	}
	for i, e := range g.entries {
		if e.Word != g.bank[i] {
			return fmt.Errorf("mapping key %d is %q, want %q", i, e.Word, g.bank[i])
		}
		if e.Solved == inPool[e.Word] {
			return fmt.Errorf("word %q solved=%v but inPool=%v", e.Word, e.Solved, inPool[e.Word])
		}
	}
	return nil
}
