package session

import (
	"sync"

	"github.com/rs/zerolog"
)

// CacheFactory builds the namespaced Cache for one client key.
type CacheFactory func(clientKey string) Cache

// Manager hands out one Store per client key, creating it on first use. The
// HTTP layer uses it to give each authenticated client its own session holder.
type Manager struct {
	factory CacheFactory
	log     zerolog.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager(factory CacheFactory, log zerolog.Logger) *Manager {
	return &Manager{
		factory: factory,
		log:     log,
		stores:  make(map[string]*Store),
	}
}

// For returns the Store bound to clientKey, creating it if needed.
func (m *Manager) For(clientKey string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, ok := m.stores[clientKey]
	if !ok {
		store = NewStore(m.factory(clientKey), m.log)
		m.stores[clientKey] = store
	}
	return store
}
