// internal/store/memory.go
//
// In-memory implementation of the session Store.
//
// Characteristics:
//   - Stores *game.Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Tracks last access so idle sessions can be swept.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/vaultcrack/internal/game"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the interface for holding live game sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a session by ID and marks it as recently used.
	Get(ctx context.Context, id string) (*game.Session, error)

	// Delete drops a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Sweep drops sessions idle for longer than idle and returns their IDs.
	Sweep(ctx context.Context, idle time.Duration) []string

	// Len reports how many sessions are held.
	Len() int
}

type entry struct {
	sess     *game.Session
	lastSeen time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex      // guards sessions
	sessions map[string]*entry // keyed by Session.ID()
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return newMemory(time.Now)
}

func newMemory(now func() time.Time) *memory {
	return &memory{sessions: make(map[string]*entry), now: now}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = &entry{sess: s, lastSeen: m.now()}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Session, error) {
	// Write lock: lastSeen is updated on every read.
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = m.now()
	return e.sess, nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, idle time.Duration) []string {
	cutoff := m.now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	var dropped []string
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			dropped = append(dropped, id)
		}
	}
	return dropped
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
