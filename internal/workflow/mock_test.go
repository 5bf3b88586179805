package workflow

import (
	"context"
	"sync"

	"github.com/agenthands/agentflow/internal/generation"
	"github.com/agenthands/agentflow/internal/history"
)

type generateCall struct {
	SystemPrompt string
	Input        string
	Options      int
}

type MockGenerator struct {
	mu       sync.Mutex
	Response string
	Err      error
	Calls    []generateCall
}

func (m *MockGenerator) Generate(ctx context.Context, systemPrompt, userInput string, opts ...generation.CallOption) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, generateCall{SystemPrompt: systemPrompt, Input: userInput, Options: len(opts)})
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

type FailingRecorder struct {
	Err error
}

func (f FailingRecorder) Record(ctx context.Context, item history.Record) error {
	return f.Err
}
