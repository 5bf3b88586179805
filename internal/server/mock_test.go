package server

import (
	"context"
	"strings"
	"sync"

	"github.com/agenthands/agentflow/internal/generation"
	"github.com/agenthands/agentflow/internal/llm"
)

// MockGenerator answers every prompt with a fixed prefix plus the input.
type MockGenerator struct {
	mu    sync.Mutex
	calls int
	Err   error
	// Release, when set, is waited on before answering.
	Release chan struct{}
	Entered chan struct{}
}

func (m *MockGenerator) Generate(ctx context.Context, systemPrompt, userInput string, opts ...generation.CallOption) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.Entered != nil {
		m.Entered <- struct{}{}
	}
	if m.Release != nil {
		<-m.Release
	}
	if m.Err != nil {
		return "", m.Err
	}
	if strings.HasPrefix(userInput, "Perform a multi-step analysis") {
		return `{"output":"verified","confidence":77}`, nil
	}
	return "answer: " + userInput, nil
}

func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type MockReplier struct {
	Response string
}

func (m *MockReplier) Chat(ctx context.Context, history []llm.Message) (string, error) {
	return m.Response, nil
}
