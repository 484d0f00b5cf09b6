package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/google/uuid"

	"lanewars/internal/battle"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many sessions")
)

type entry struct {
	session *Session
	cancel  context.CancelFunc
	done    chan struct{}
}

// Manager owns the running sessions and their tick loops.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entry
	limit    int
	tickRate int
	opts     []battle.Option
}

// NewManager creates a manager that allows at most limit sessions. opts are
// applied to every new match.
func NewManager(limit, tickRate int, opts ...battle.Option) *Manager {
	return &Manager{
		sessions: make(map[string]*entry),
		limit:    limit,
		tickRate: tickRate,
		opts:     opts,
	}
}

// Create starts a new session loop.
func (m *Manager) Create() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sessions) >= m.limit {
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManySessions, m.limit)
	}

	s := New(uuid.NewString(), m.tickRate, m.opts...)
	ctx, cancel := context.WithCancel(context.Background())
	e := &entry{session: s, cancel: cancel, done: make(chan struct{})}
	m.sessions[s.ID] = e

	go func() {
		defer close(e.done)
		s.Run(ctx)
	}()
	log.Printf("[SESSION] created %s (%d active)", s.ID, len(m.sessions))
	return s, nil
}

// Get looks up a session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return e.session, nil
}

// Remove stops a session and waits for its loop to exit.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	e.cancel()
	<-e.done
	log.Printf("[SESSION] removed %s", id)
	return nil
}

// List returns the ids of all sessions, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Close stops every session.
func (m *Manager) Close() {
	m.mu.Lock()
	entries := m.sessions
	m.sessions = make(map[string]*entry)
	m.mu.Unlock()

	for _, e := range entries {
		e.cancel()
	}
	for _, e := range entries {
		<-e.done
	}
	log.Printf("[SESSION] closed %d sessions", len(entries))
}
