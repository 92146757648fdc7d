package session

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
)

// Manager is a registry of sessions keyed by ULID.
type Manager struct {
	mu       sync.Mutex
	counter  Counter
	entropy  *ulid.MonotonicEntropy
	sessions map[string]*entry
}

type entry struct {
	session  *Session
	lastUsed time.Time
}

// NewManager creates a registry whose sessions count with counter.
func NewManager(counter Counter) *Manager {
	return &Manager{
		counter:  counter,
		entropy:  ulid.Monotonic(rand.Reader, 0),
		sessions: make(map[string]*entry),
	}
}

// Create registers a new session and returns its ID.
func (m *Manager) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	id := ulid.MustNew(ulid.Timestamp(now), m.entropy).String()
	m.sessions[id] = &entry{session: New(m.counter), lastUsed: now}
	return id
}

// With runs fn on the session with the given ID while holding the registry
// lock, so concurrent requests against one session are serialized.
func (m *Manager) With(id string, fn func(*Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("session %s: %w", id, internalerr.ErrNotFound)
	}
	e.lastUsed = time.Now()
	return fn(e.session)
}

// Delete removes a session. Unknown IDs return ErrNotFound.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, internalerr.ErrNotFound)
	}
	delete(m.sessions, id)
	return nil
}

// Expire drops sessions idle for longer than ttl and returns how many were
// removed.
func (m *Manager) Expire(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	removed := 0
	for id, e := range m.sessions {
		if e.lastUsed.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
