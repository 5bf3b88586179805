package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/agenthands/agentflow/internal/driver"
	"github.com/agenthands/agentflow/internal/logging"
	"go.uber.org/zap"
)

// DefaultKey is the storage key of the history snapshot.
const DefaultKey = "agent_history"

// ClearPrompt is the question put to the Confirmer before a bulk clear.
const ClearPrompt = "Are you sure you want to clear your entire history?"

// PersistenceError reports a snapshot that could not be read, decoded or written.
type PersistenceError struct {
	Key string
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("history %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Confirmer asks the user a blocking yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Answer is a Confirmer with a fixed reply, for callers that asked up front.
func Answer(yes bool) Confirmer {
	return ConfirmFunc(func(context.Context, string) (bool, error) { return yes, nil })
}

// Store is the in-memory sequence for one key plus its persisted snapshot.
type Store struct {
	mu     sync.Mutex
	kv     driver.KV
	key    string
	items  []Record
	logger *zap.Logger
}

// Open loads the snapshot stored under key. A missing or unreadable snapshot
// yields an empty store.
func Open(ctx context.Context, kv driver.KV, key string, logger *zap.Logger) *Store {
	s := &Store{kv: kv, key: key, logger: logging.OrNop(logger)}
	s.items = s.read(ctx)
	return s
}

func (s *Store) Key() string { return s.key }

func (s *Store) read(ctx context.Context) []Record {
	data, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, driver.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.logger.Warn("History snapshot unreadable, starting empty",
			zap.Error(&PersistenceError{Key: s.key, Op: "read", Err: err}))
		return nil
	}

	var items []Record
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("History snapshot malformed, starting empty",
			zap.Error(&PersistenceError{Key: s.key, Op: "decode", Err: err}))
		return nil
	}
	return items
}

// Record prepends item and persists the whole sequence. Memory is updated even
// when the write fails.
func (s *Store) Record(ctx context.Context, item Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Record, 0, len(s.items)+1)
	next = append(next, item)
	s.items = append(next, s.items...)

	data, err := json.Marshal(s.items)
	if err != nil {
		return &PersistenceError{Key: s.key, Op: "encode", Err: err}
	}
	if err := s.kv.Put(ctx, s.key, data); err != nil {
		return &PersistenceError{Key: s.key, Op: "write", Err: err}
	}
	return nil
}

// LoadAll re-reads the persisted snapshot, replaces the in-memory sequence and
// returns it. It never fails; bad snapshots read as empty.
func (s *Store) LoadAll(ctx context.Context) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = s.read(ctx)
	return s.copyItems()
}

// Items returns the in-memory sequence, most recent first.
func (s *Store) Items() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems()
}

func (s *Store) copyItems() []Record {
	out := make([]Record, len(s.items))
	copy(out, s.items)
	return out
}

// ClearAll discards memory and the persisted snapshot once confirm agrees.
// It reports whether anything was cleared.
func (s *Store) ClearAll(ctx context.Context, confirm Confirmer) (bool, error) {
	ok, err := confirm.Confirm(ctx, ClearPrompt)
	if err != nil {
		return false, fmt.Errorf("confirm clear: %w", err)
	}
	if !ok {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return true, &PersistenceError{Key: s.key, Op: "delete", Err: err}
	}
	s.logger.Info("History cleared", zap.String("key", s.key))
	return true, nil
}
