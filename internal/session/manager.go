package session

import (
	"context"
	"sync"
	"time"

	"github.com/agenthands/agentflow/internal/chat"
	"github.com/agenthands/agentflow/internal/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager keeps one State per browser id and evicts idle ones.
type Manager struct {
	mu      sync.Mutex
	states  map[string]*State
	ttl     time.Duration
	newChat func() *chat.Session
	now     func() time.Time
	logger  *zap.Logger

	// OnEvict, when set, is called with the id of each evicted state.
	OnEvict func(id string)
}

func NewManager(ttl time.Duration, newChat func() *chat.Session, logger *zap.Logger) *Manager {
	return &Manager{
		states:  make(map[string]*State),
		ttl:     ttl,
		newChat: newChat,
		now:     time.Now,
		logger:  logging.OrNop(logger),
	}
}

// Get returns the state of id, creating one (with a fresh id if id is empty
// or unknown) when needed. created reports whether a new state was made.
func (m *Manager) Get(id string) (st *State, created bool) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.states[id]; ok && id != "" {
		st.touch(now)
		return st, false
	}
	if id == "" {
		id = uuid.NewString()
	}
	st = NewState(id, m.newChat())
	st.lastSeen = now
	m.states[id] = st
	m.logger.Debug("Session created", zap.String("session", id))
	return st, true
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.states)
}

// Sweep evicts states idle for longer than the TTL and returns how many.
func (m *Manager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	now := m.now()

	m.mu.Lock()
	var evicted []string
	for id, st := range m.states {
		if st.idleSince(now) > m.ttl {
			delete(m.states, id)
			evicted = append(evicted, id)
		}
	}
	m.mu.Unlock()

	for _, id := range evicted {
		if m.OnEvict != nil {
			m.OnEvict(id)
		}
	}
	if len(evicted) > 0 {
		m.logger.Info("Evicted idle sessions", zap.Int("count", len(evicted)))
	}
	return len(evicted)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			m.Sweep()
		}
	}
}
