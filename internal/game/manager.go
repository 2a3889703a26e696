package game

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Manager owns the live sessions, one per connected client. Sessions are
// independent; nothing is shared between them beyond the image source and
// the score sink.
type Manager struct {
	cfg    Config
	clock  clockwork.Clock
	images ImageSource
	scores ScoreSink

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(cfg Config, clock clockwork.Clock, images ImageSource, scores ScoreSink) *Manager {
	return &Manager{
		cfg:      cfg,
		clock:    clock,
		images:   images,
		scores:   scores,
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Create(emit Emitter) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	s := NewSession(id, m.cfg, m.clock, m.images, m.scores, emit)
	m.sessions[id] = s
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.sessions[id]
	if s == nil {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove tears down a session, cancelling any outstanding timers.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if s != nil {
		s.Reset()
	}
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
