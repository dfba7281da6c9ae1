package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Davg883/Vibe-AI-Canvas/internal/scribe"
)

// StatusCallback is a function that is called when a session changes.
// It receives a snapshot that is safe to keep.
type StatusCallback func(snapshot Session)

// Manager owns all sessions. Every mutation goes through a Session
// transition under the manager lock.
type Manager struct {
	sessions   map[string]*Session
	mu         sync.RWMutex
	callbacks  map[string][]StatusCallback
	callbackMu sync.RWMutex
	holds      map[string]int
	idleTTL    time.Duration
	now        func() time.Time
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewManager creates a new session manager. Sessions not seen for idleTTL
// are evicted in the background until Shutdown.
func NewManager(idleTTL time.Duration) *Manager {
	return newManager(idleTTL, time.Now)
}

func newManager(idleTTL time.Duration, now func() time.Time) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	m := &Manager{
		sessions:  make(map[string]*Session),
		callbacks: make(map[string][]StatusCallback),
		holds:     make(map[string]int),
		idleTTL:   idleTTL,
		now:       now,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	go m.janitor()

	return m
}

// CreateSession creates a new idle session
func (m *Manager) CreateSession() Session {
	s := newSession(uuid.New().String(), m.now())

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return *s
}

// GetSession retrieves a snapshot of a session by ID
func (m *Manager) GetSession(id string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}

	return *s, nil
}

// Touch marks a session as seen so it is not evicted
func (m *Manager) Touch(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	s.LastSeenAt = m.now()
	return nil
}

// Hold keeps a session from being evicted until the returned release is
// called, for as long as a client stays connected to it. Release is
// idempotent and restarts the idle clock.
func (m *Manager) Hold(id string) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return nil, ErrSessionNotFound
	}
	m.holds[id]++

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()

			if m.holds[id]--; m.holds[id] <= 0 {
				delete(m.holds, id)
			}
			if s, ok := m.sessions[id]; ok {
				s.LastSeenAt = m.now()
			}
		})
	}, nil
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// BeginWeave accepts a submission and returns its cycle
func (m *Manager) BeginWeave(id, idea string) (int, error) {
	var cycle int
	err := m.update(id, func(s *Session) (bool, error) {
		if err := s.BeginWeave(idea, m.now()); err != nil {
			return false, err
		}
		cycle = s.Cycle
		return true, nil
	})
	return cycle, err
}

// CompleteWeave records the outcome of the weave request of cycle
func (m *Manager) CompleteWeave(id string, cycle int, result *scribe.Result, err error) error {
	return m.update(id, func(s *Session) (bool, error) {
		return s.CompleteWeave(cycle, result, err, m.now()), nil
	})
}

// SelectView switches tabs and returns a ticket when an explain request
// must be started
func (m *Manager) SelectView(id string, view View) (*ExplainTicket, error) {
	var ticket *ExplainTicket
	err := m.update(id, func(s *Session) (bool, error) {
		before := s.Version
		ticket = s.SelectView(view, m.now())
		return s.Version != before, nil
	})
	return ticket, err
}

// CompleteExplain records the outcome of the explain request of cycle
func (m *Manager) CompleteExplain(id string, cycle int, text string, err error) error {
	return m.update(id, func(s *Session) (bool, error) {
		return s.CompleteExplain(cycle, text, err, m.now()), nil
	})
}

// update runs a transition under the lock and notifies subscribers with
// the resulting snapshot when it changed the session.
func (m *Manager) update(id string, fn func(s *Session) (bool, error)) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return ErrSessionNotFound
	}

	changed, err := fn(s)
	snapshot := *s
	m.mu.Unlock()

	if err != nil {
		return err
	}
	if changed {
		m.notifyCallbacks(snapshot)
	}
	return nil
}

// Subscribe subscribes to session updates
func (m *Manager) Subscribe(id string, callback StatusCallback) error {
	m.callbackMu.Lock()
	defer m.callbackMu.Unlock()

	// Check if session exists
	m.mu.RLock()
	_, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return ErrSessionNotFound
	}

	m.callbacks[id] = append(m.callbacks[id], callback)
	return nil
}

// notifyCallbacks notifies all callbacks for a session. Callbacks run on
// the caller's goroutine, outside the session lock.
func (m *Manager) notifyCallbacks(snapshot Session) {
	m.callbackMu.RLock()
	callbacks := m.callbacks[snapshot.ID]
	m.callbackMu.RUnlock()

	for _, callback := range callbacks {
		callback(snapshot)
	}
}

// EvictIdle removes sessions not seen within the idle TTL. Sessions with
// a request in flight or a held connection are kept.
func (m *Manager) EvictIdle() int {
	cutoff := m.now().Add(-m.idleTTL)

	var evicted []string
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.Weave.IsPending() || s.Explain.IsPending() || m.holds[id] > 0 {
			continue
		}
		if s.LastSeenAt.Before(cutoff) {
			delete(m.sessions, id)
			evicted = append(evicted, id)
		}
	}
	m.mu.Unlock()

	if len(evicted) > 0 {
		m.callbackMu.Lock()
		for _, id := range evicted {
			delete(m.callbacks, id)
		}
		m.callbackMu.Unlock()
	}

	return len(evicted)
}

// janitor evicts idle sessions until the manager shuts down
func (m *Manager) janitor() {
	defer close(m.done)

	interval := m.idleTTL / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.EvictIdle()
		}
	}
}

// Shutdown stops the background eviction
func (m *Manager) Shutdown() {
	m.cancel()
	<-m.done
}
