package session

import (
	"sync"

	"github.com/llehouerou/qss/internal/sequence"
)

// Manager creates and looks up sessions by opaque client identity.
// Two distinct identifiers always yield causally independent state over
// the same shared sequence.
type Manager struct {
	mu       sync.RWMutex
	seq      *sequence.Sequence
	opts     Options
	sessions map[string]*Session
}

// NewManager creates a manager that instantiates sessions with the given
// defaults over the shared sequence.
func NewManager(seq *sequence.Sequence, opts Options) *Manager {
	return &Manager{
		seq:      seq,
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Create instantiates a fresh session for id, replacing any existing one.
func (m *Manager) Create(id string) *Session {
	s := New(m.seq, m.opts)
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	return s
}

// Get returns the session for id, if any.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// GetOrCreate returns the existing session for id or creates one.
func (m *Manager) GetOrCreate(id string) *Session {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s = New(m.seq, m.opts)
	m.sessions[id] = s
	return s
}

// Remove evicts the session for id.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sequence returns the shared, read-only item sequence.
func (m *Manager) Sequence() *sequence.Sequence {
	return m.seq
}
