// Package live fans board updates out to every websocket connected to the
// same game, so two tabs on one session stay in sync.
package live

import (
	"sync"

	"github.com/rs/zerolog/log"
)

const subscriberBuffer = 16

// Subscriber is one connection's outbound queue.
type Subscriber struct {
	C      chan []byte
	gameID string
}

// Hub manages subscribers grouped by game ID.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscriber]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscriber]struct{})}
}

// Subscribe registers a new subscriber for gameID.
func (h *Hub) Subscribe(gameID string) *Subscriber {
	s := &Subscriber{C: make(chan []byte, subscriberBuffer), gameID: gameID}
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[gameID]
	if !ok {
		set = make(map[*Subscriber]struct{})
		h.subs[gameID] = set
	}
	set[s] = struct{}{}
	return s
}

// Unsubscribe removes s and closes its channel. Safe to call twice.
func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.subs[s.gameID]
	if _, ok := set[s]; !ok {
		return
	}
	delete(set, s)
	close(s.C)
	if len(set) == 0 {
		delete(h.subs, s.gameID)
	}
}

// Publish queues msg for every subscriber of gameID except skip (which may
// be nil) and returns how many queues took it. Every message is a full board
// state, so a full queue gives up its oldest entry to make room for msg.
func (h *Hub) Publish(gameID string, msg []byte, skip *Subscriber) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sent := 0
	for s := range h.subs[gameID] {
		if s == skip {
			continue
		}
		if s.offer(msg) {
			sent++
		}
	}
	return sent
}

func (s *Subscriber) offer(msg []byte) bool {
	select {
	case s.C <- msg:
		return true
	default:
	}
	select {
	case <-s.C:
		log.Debug().Str("gameId", s.gameID).Msg("live: slow subscriber, dropped oldest update")
	default:
	}
	select {
	case s.C <- msg:
		return true
	default:
		log.Debug().Str("gameId", s.gameID).Msg("live: slow subscriber, dropped update")
		return false
	}
}

// Count returns the number of subscribers for gameID.
func (h *Hub) Count(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[gameID])
}
