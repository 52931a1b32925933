// internal/game/types.go
//
// Core type definitions for the match game controller.
// Defines:
//   - Status: coarse game state (in progress / complete).
//   - Entry: one slot of the Solved-State Mapping.
//   - Game: the single owner of the Available Pool and the mapping.
//   - Snapshot / Outcome / Report: read-only views handed to callers.

package game

import (
	"sync"
	"time"
)

// Status is the coarse state of a game.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
)

// CompletionMessage is the notification raised when every target is solved.
const CompletionMessage = "YOU DID THE THING!"

// Entry is one target label and whether it has been correctly matched.
type Entry struct {
	Word   string `json:"word"`
	Solved bool   `json:"solved"`
}

// Game owns all mutable state of one board. Every exported method takes mu,
// so transitions from concurrent input sources are applied one at a time.
type Game struct {
	ID string

	mu        sync.Mutex
	bank      []string       // fixed vocabulary, in configured order
	index     map[string]int // word -> position in entries
	shuffler  Shuffler
	pool      []string // Available Pool, display order
	entries   []Entry  // Solved-State Mapping, bank order
	attempts  int      // drops carrying a known pair since the last reset
	misses    int      // of which mismatched
	startedAt time.Time
	touched   time.Time // last call from a player
	now       func() time.Time
}

// Snapshot is a copy of a game's state at one instant.
type Snapshot struct {
	ID        string    `json:"id"`
	Pool      []string  `json:"pool"`
	Entries   []Entry   `json:"entries"`
	Solved    int       `json:"solved"`
	Total     int       `json:"total"`
	Status    Status    `json:"status"`
	Attempts  int       `json:"attempts"`
	Misses    int       `json:"misses"`
	StartedAt time.Time `json:"startedAt"`
}

// Outcome reports the effect of one match attempt.
type Outcome struct {
	Matched       bool          // state changed
	AlreadySolved bool          // correct pair, but the word was already placed
	Completed     bool          // this attempt solved the last entry
	Elapsed       time.Duration // set when Completed
	Snapshot      Snapshot
}

// Report is the result of the non-mutating submit check.
type Report struct {
	Solved   int    `json:"solved"`
	Total    int    `json:"total"`
	Complete bool   `json:"complete"`
	Message  string `json:"message,omitempty"`
}
