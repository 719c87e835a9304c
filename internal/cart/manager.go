package cart

import "sync"

const storePrefix = "glamour-cart"

// Manager hands out one Store per browsing session. Stores are created
// lazily and survive for the life of the process; persisted snapshots
// survive restarts.
type Manager struct {
	mu        sync.Mutex
	stores    map[string]*Store
	persister Persister
}

func NewManager(persister Persister) *Manager {
	return &Manager{
		stores:    make(map[string]*Store),
		persister: persister,
	}
}

// StoreFor returns the cart for the given session owner (user id or
// anonymous session id), creating it on first use.
func (m *Manager) StoreFor(owner string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[owner]; ok {
		return s
	}

	s := NewStore(storePrefix+"-"+owner, m.persister)
	m.stores[owner] = s
	return s
}
