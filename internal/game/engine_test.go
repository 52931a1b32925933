package game

import (
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bank = []string{"SUP", "HOW", "U", "DÜ"}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	return New(bank, NewUniform(rand.New(rand.NewPCG(1, 2))))
}

func assertInitial(t *testing.T, s Snapshot) {
	t.Helper()
	assert.ElementsMatch(t, bank, s.Pool)
	require.Len(t, s.Entries, len(bank))
	for i, e := range s.Entries {
		assert.Equal(t, bank[i], e.Word)
		assert.False(t, e.Solved, e.Word)
	}
	assert.Equal(t, StatusInProgress, s.Status)
	assert.Zero(t, s.Solved)
	assert.Equal(t, len(bank), s.Total)
}

func TestNewGameInitialShape(t *testing.T) {
	g := newTestGame(t)
	assert.NotEmpty(t, g.ID)
	assertInitial(t, g.Snapshot())
	require.NoError(t, g.checkInvariants())
}

func TestCorrectMatch(t *testing.T) {
	g := newTestGame(t)

	out, err := g.AttemptMatch("SUP", "SUP")
	require.NoError(t, err)
	assert.True(t, out.Matched)
	assert.False(t, out.Completed)

	s := out.Snapshot
	assert.Len(t, s.Pool, 3)
	assert.NotContains(t, s.Pool, "SUP")
	assert.Equal(t, []Entry{{"SUP", true}, {"HOW", false}, {"U", false}, {"DÜ", false}}, s.Entries)
	assert.Equal(t, 1, s.Solved)
	assert.False(t, g.InPool("SUP"))
	require.NoError(t, g.checkInvariants())
}

func TestMismatchIsSilentNoop(t *testing.T) {
	g := newTestGame(t)
	before := g.Snapshot()

	out, err := g.AttemptMatch("SUP", "HOW")
	require.NoError(t, err)
	assert.False(t, out.Matched)
	assert.Equal(t, before.Pool, out.Snapshot.Pool)
	assert.Equal(t, before.Entries, out.Snapshot.Entries)
	assert.Equal(t, 1, out.Snapshot.Misses)
	require.NoError(t, g.checkInvariants())
}

func TestMatchIsCaseAndDiacriticSensitive(t *testing.T) {
	g := New([]string{"DÜ", "DU", "sup", "SUP"}, nil)

	for _, pair := range [][2]string{{"DU", "DÜ"}, {"sup", "SUP"}} {
		out, err := g.AttemptMatch(pair[0], pair[1])
		require.NoError(t, err)
		assert.False(t, out.Matched, "%q onto %q", pair[0], pair[1])
	}
	assert.Zero(t, g.Snapshot().Solved)
}

func TestUnknownWordIsRejected(t *testing.T) {
	g := newTestGame(t)

	_, err := g.AttemptMatch("NOPE", "SUP")
	assert.ErrorIs(t, err, ErrUnknownWord)
	_, err = g.AttemptMatch("SUP", "NOPE")
	assert.ErrorIs(t, err, ErrUnknownWord)

	s := g.Snapshot()
	assert.Zero(t, s.Attempts)
	assertInitial(t, s)
}

func TestRepeatedCorrectDropIsNoop(t *testing.T) {
	g := newTestGame(t)
	_, err := g.AttemptMatch("U", "U")
	require.NoError(t, err)

	out, err := g.AttemptMatch("U", "U")
	require.NoError(t, err)
	assert.False(t, out.Matched)
	assert.True(t, out.AlreadySolved)
	assert.Len(t, out.Snapshot.Pool, 3)
}

func TestCompletionFiresOnce(t *testing.T) {
	g := newTestGame(t)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return start }
	g.Reset()
	g.now = func() time.Time { return start.Add(42 * time.Second) }

	completions := 0
	for _, w := range bank {
		out, err := g.AttemptMatch(w, w)
		require.NoError(t, err)
		assert.True(t, out.Matched)
		if out.Completed {
			completions++
			assert.Equal(t, 42*time.Second, out.Elapsed)
			assert.Equal(t, "DÜ", w, "completion should fire on the last match")
		}
	}
	assert.Equal(t, 1, completions)

	s := g.Snapshot()
	assert.Empty(t, s.Pool)
	assert.Equal(t, StatusComplete, s.Status)
	for _, e := range s.Entries {
		assert.True(t, e.Solved)
	}

	// Further drops after completion never re-fire.
	out, err := g.AttemptMatch("SUP", "SUP")
	require.NoError(t, err)
	assert.False(t, out.Completed)
	require.NoError(t, g.checkInvariants())
}

func TestResetFromAnyState(t *testing.T) {
	g := newTestGame(t)
	for _, w := range bank {
		_, err := g.AttemptMatch(w, w)
		require.NoError(t, err)
	}

	s := g.Reset()
	assertInitial(t, s)
	assert.Zero(t, s.Attempts)
	require.NoError(t, g.checkInvariants())

	// Reset is idempotent.
	assertInitial(t, g.Reset())
	_, err := g.AttemptMatch("HOW", "HOW")
	require.NoError(t, err)
	assertInitial(t, g.Reset())
}

func TestCheckDoesNotMutate(t *testing.T) {
	g := newTestGame(t)
	_, err := g.AttemptMatch("HOW", "HOW")
	require.NoError(t, err)
	before := g.Snapshot()

	r := g.Check()
	assert.Equal(t, Report{Solved: 1, Total: 4}, r)
	assert.Equal(t, before, g.Snapshot())

	for _, w := range []string{"SUP", "U", "DÜ"} {
		_, err := g.AttemptMatch(w, w)
		require.NoError(t, err)
	}
	r = g.Check()
	assert.True(t, r.Complete)
	assert.Equal(t, CompletionMessage, r.Message)
}

func TestSnapshotIsACopy(t *testing.T) {
	g := newTestGame(t)
	s := g.Snapshot()
	s.Pool[0] = "mutated"
	s.Entries[0].Solved = true

	require.NoError(t, g.checkInvariants())
	assert.NotContains(t, g.Snapshot().Pool, "mutated")
}

func TestConcurrentDropsSerialize(t *testing.T) {
	g := New(bank, nil)

	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		matched     int
		completions int
	)
	for i := 0; i < 50; i++ {
		for _, w := range bank {
			wg.Add(1)
			go func(w string) {
				defer wg.Done()
				out, err := g.AttemptMatch(w, w)
				if err != nil {
					return
				}
				mu.Lock()
				defer mu.Unlock()
				if out.Matched {
					matched++
				}
				if out.Completed {
					completions++
				}
			}(w)
		}
	}
	wg.Wait()

	assert.Equal(t, len(bank), matched)
	assert.Equal(t, 1, completions)
	require.NoError(t, g.checkInvariants())
}

func TestLastActiveFollowsPlayerCalls(t *testing.T) {
	g := newTestGame(t)
	clock := g.LastActive()
	g.now = func() time.Time { return clock }
	tick := func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	want := tick()
	_, err := g.AttemptMatch("SUP", "HOW")
	require.NoError(t, err)
	assert.Equal(t, want, g.LastActive())

	want = tick()
	g.Check()
	assert.Equal(t, want, g.LastActive())

	want = tick()
	g.Reset()
	assert.Equal(t, want, g.LastActive())

	want = tick()
	g.Snapshot()
	assert.Equal(t, want, g.LastActive())

	tick()
	g.LastActive()
	assert.Equal(t, want, g.LastActive(), "reading the activity time is not activity")
}
