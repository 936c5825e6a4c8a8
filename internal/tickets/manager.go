package tickets

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Manager owns one ticket store per browser session. Stores are
// created lazily with the synthetic seed on first touch and live for
// the life of the process; there is no durable storage.
type Manager struct {
	mu     sync.RWMutex
	stores map[string]*Store
	logger *logrus.Logger
}

func NewManager(logger *logrus.Logger) *Manager {
	return &Manager{
		stores: make(map[string]*Store),
		logger: logger,
	}
}

// NewSessionID mints an identifier for a session that arrived without one.
func NewSessionID() string {
	return uuid.NewString()
}

// ForSession returns the store for the given session, seeding a new
// one if the session has not been seen before.
func (m *Manager) ForSession(sessionID string) *Store {
	m.mu.RLock()
	store, ok := m.stores[sessionID]
	m.mu.RUnlock()
	if ok {
		return store
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Re-check under the write lock
	if store, ok := m.stores[sessionID]; ok {
		return store
	}

	store = NewStore(SeedTickets())
	m.stores[sessionID] = store

	m.logger.WithFields(logrus.Fields{
		"session": sessionID,
		"seeded":  seedCount,
	}).Debug("Created ticket store for new session")

	return store
}

// Sessions reports how many session stores are live.
func (m *Manager) Sessions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stores)
}
