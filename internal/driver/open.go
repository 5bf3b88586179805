package driver

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/agentflow/internal/config"
	"go.uber.org/zap"
)

// Open builds the backend named by cfg.Backend.
func Open(ctx context.Context, cfg config.HistoryConfig, logger *zap.Logger) (KV, error) {
	switch strings.ToLower(cfg.Backend) {
	case "memory":
		return NewMemoryKV(), nil
	case "file":
		return NewFileKV(cfg.Path)
	case "sqlite":
		return NewSQLiteKV(cfg.Path)
	case "memgraph":
		d, err := NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password)
		if err != nil {
			return nil, err
		}
		kv := NewMemgraphKV(d, logger)
		kv.BuildIndices(ctx)
		return kv, nil
	default:
		return nil, fmt.Errorf("unsupported history backend: %s", cfg.Backend)
	}
}
