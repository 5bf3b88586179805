package history

import (
	"context"
	"sync"

	"github.com/agenthands/agentflow/internal/driver"
	"github.com/agenthands/agentflow/internal/logging"
	"go.uber.org/zap"
)

// Manager hands out one Store per owner, all sharing a backend.
type Manager struct {
	mu      sync.Mutex
	kv      driver.KV
	baseKey string
	stores  map[string]*Store
	logger  *zap.Logger
}

func NewManager(kv driver.KV, baseKey string, logger *zap.Logger) *Manager {
	if baseKey == "" {
		baseKey = DefaultKey
	}
	return &Manager{
		kv:      kv,
		baseKey: baseKey,
		stores:  make(map[string]*Store),
		logger:  logging.OrNop(logger),
	}
}

// KeyFor is the storage key of owner; the empty owner uses the base key.
func (m *Manager) KeyFor(owner string) string {
	if owner == "" {
		return m.baseKey
	}
	return m.baseKey + ":" + owner
}

// For returns the Store of owner, loading it on first use.
func (m *Manager) For(ctx context.Context, owner string) *Store {
	key := m.KeyFor(owner)

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[key]; ok {
		return s
	}
	s := Open(ctx, m.kv, key, m.logger)
	m.stores[key] = s
	return s
}

// Forget drops the cached Store of owner; its snapshot stays persisted.
func (m *Manager) Forget(owner string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, m.KeyFor(owner))
}
