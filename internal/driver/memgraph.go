package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// GraphDriver is the query surface MemgraphKV needs; tests substitute it.
type GraphDriver interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error)
	Close(ctx context.Context) error
}

type MemgraphDriver struct {
	Driver neo4j.DriverWithContext
}

func NewMemgraphDriver(ctx context.Context, uri, username, password string) (*MemgraphDriver, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("connect to memgraph: %w", err)
	}
	return &MemgraphDriver{Driver: driver}, nil
}

func (d *MemgraphDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *MemgraphDriver) ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

// MemgraphKV keeps snapshots as :Snapshot nodes keyed by key.
type MemgraphKV struct {
	graph  GraphDriver
	logger *zap.Logger
}

func NewMemgraphKV(graph GraphDriver, logger *zap.Logger) *MemgraphKV {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemgraphKV{graph: graph, logger: logger}
}

// BuildIndices creates the key index. An existing index is not an error.
func (m *MemgraphKV) BuildIndices(ctx context.Context) {
	if _, err := m.graph.ExecuteQuery(ctx, SnapshotIndexQuery, nil); err != nil {
		m.logger.Warn("Failed to create snapshot index", zap.Error(err))
	}
}

func (m *MemgraphKV) Get(ctx context.Context, key string) ([]byte, error) {
	res, err := m.graph.ExecuteQuery(ctx, GetSnapshotQuery, map[string]any{"key": key})
	if err != nil {
		return nil, err
	}
	if len(res.Records) == 0 {
		return nil, ErrNotFound
	}

	raw, ok := res.Records[0].Get("value")
	if !ok || raw == nil {
		return nil, ErrNotFound
	}
	value, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("snapshot %s has unexpected type %T", key, raw)
	}
	return []byte(value), nil
}

func (m *MemgraphKV) Put(ctx context.Context, key string, value []byte) error {
	_, err := m.graph.ExecuteQuery(ctx, PutSnapshotQuery, map[string]any{
		"key":        key,
		"value":      string(value),
		"updated_at": time.Now().UnixMilli(),
	})
	return err
}

func (m *MemgraphKV) Delete(ctx context.Context, key string) error {
	_, err := m.graph.ExecuteQuery(ctx, DeleteSnapshotQuery, map[string]any{"key": key})
	return err
}

func (m *MemgraphKV) Close(ctx context.Context) error {
	return m.graph.Close(ctx)
}
