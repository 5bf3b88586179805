package history

import (
	"context"
	"errors"

	"github.com/agenthands/agentflow/internal/driver"
)

// FailingKV wraps a MemoryKV and fails selected operations.
type FailingKV struct {
	*driver.MemoryKV
	FailGet bool
	FailPut bool
}

var errBackend = errors.New("backend unavailable")

func (f *FailingKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.FailGet {
		return nil, errBackend
	}
	return f.MemoryKV.Get(ctx, key)
}

func (f *FailingKV) Put(ctx context.Context, key string, value []byte) error {
	if f.FailPut {
		return errBackend
	}
	return f.MemoryKV.Put(ctx, key, value)
}
