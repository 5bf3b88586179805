package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// MockGraph is an in-memory stand-in for Memgraph that understands the snapshot queries.
type MockGraph struct {
	Nodes   map[string]string
	Queries []string
	Err     error
}

func (m *MockGraph) ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	m.Queries = append(m.Queries, query)
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	if m.Nodes == nil {
		m.Nodes = map[string]string{}
	}

	key, _ := params["key"].(string)
	switch query {
	case PutSnapshotQuery:
		m.Nodes[key] = params["value"].(string)
	case DeleteSnapshotQuery:
		delete(m.Nodes, key)
	case GetSnapshotQuery:
		v, ok := m.Nodes[key]
		if !ok {
			return neo4j.EagerResult{}, nil
		}
		return neo4j.EagerResult{
			Keys:    []string{"value"},
			Records: []*neo4j.Record{{Keys: []string{"value"}, Values: []any{v}}},
		}, nil
	}
	return neo4j.EagerResult{}, nil
}

func (m *MockGraph) Close(ctx context.Context) error {
	return nil
}
