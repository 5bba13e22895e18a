// internal/events/hub.go
//
// Hub fans session events out to stream subscribers (SSE and WebSocket).
// Publish never blocks the caller: it runs while the session lock is held,
// so a subscriber whose buffer is full misses the event instead.

package events

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vaultcrack/internal/game"
)

// BufferSize is the per-subscriber channel capacity.
const BufferSize = 32

// Hub holds subscriber channels per session ID.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan game.Event]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan game.Event]struct{})}
}

// Subscribe registers a subscriber for sessionID. The returned cancel func
// unregisters it and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(sessionID string) (<-chan game.Event, func()) {
	ch := make(chan game.Event, BufferSize)
	h.mu.Lock()
	set, ok := h.subs[sessionID]
	if !ok {
		set = make(map[chan game.Event]struct{})
		h.subs[sessionID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() { h.remove(sessionID, ch) })
	}
}

func (h *Hub) remove(sessionID string, ch chan game.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[sessionID]
	if !ok {
		return
	}
	if _, ok := set[ch]; !ok {
		return // already closed by Close
	}
	delete(set, ch)
	close(ch)
	if len(set) == 0 {
		delete(h.subs, sessionID)
	}
}

// Publish delivers e to every subscriber of e.SessionID without blocking.
func (h *Hub) Publish(e game.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sent := 0
	for ch := range h.subs[e.SessionID] {
		select {
		case ch <- e:
			sent++
		default:
			log.Debug().Str("session", e.SessionID).Str("event", string(e.Kind)).Msg("subscriber full, event dropped")
		}
	}
	log.Debug().Str("session", e.SessionID).Str("event", string(e.Kind)).Int("delivered", sent).Msg("publish")
}

// Listener adapts the hub to a game.Listener.
func (h *Hub) Listener() game.Listener {
	return h.Publish
}

// Close closes every subscriber channel of sessionID, ending their streams.
func (h *Hub) Close(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[sessionID] {
		close(ch)
	}
	delete(h.subs, sessionID)
}

// Subscribers reports how many subscribers sessionID has.
func (h *Hub) Subscribers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[sessionID])
}
