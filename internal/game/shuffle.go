package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
)

// ErrUnknownShuffle is returned by NewShuffler for an unrecognized mode.
var ErrUnknownShuffle = errors.New("game: unknown shuffle mode")

// Shuffler reorders a word list in place.
type Shuffler interface {
	Shuffle(words []string)
}

// NewShuffler returns the shuffler for mode ("uniform" or "comparator").
// A nil rng gets a randomly seeded source.
func NewShuffler(mode string, rng *rand.Rand) (Shuffler, error) {
	switch mode {
	case "", "uniform":
		return NewUniform(rng), nil
	case "comparator":
		return NewComparator(rng), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShuffle, mode)
	}
}

func seeded(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Uniform is a Fisher–Yates shuffle: every permutation is equally likely.
type Uniform struct {
	mu  sync.Mutex // *rand.Rand is not safe for concurrent use
	rng *rand.Rand
}

// NewUniform returns a Uniform shuffler. A nil rng is seeded randomly.
func NewUniform(rng *rand.Rand) *Uniform { return &Uniform{rng: seeded(rng)} }

// Shuffle permutes words in place.
func (u *Uniform) Shuffle(words []string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.rng.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })
}

// Comparator sorts with a comparator that answers each pairwise comparison
// with a fresh draw from [-0.5, 0.5). The resulting order is biased toward
// the input order; it exists to reproduce the classic browser-game shuffle.
type Comparator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewComparator returns a Comparator shuffler. A nil rng is seeded randomly.
func NewComparator(rng *rand.Rand) *Comparator { return &Comparator{rng: seeded(rng)} }

// Shuffle reorders words in place.
func (c *Comparator) Shuffle(words []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sort.SliceStable(words, func(i, j int) bool { return c.rng.Float64()-0.5 < 0 })
}
