package session

import (
	"context"
	"sync"

	"github.com/agenthands/agentflow/internal/agent"
	"github.com/agenthands/agentflow/internal/history"
	"github.com/agenthands/agentflow/internal/llm"
)

// MockRunner echoes the input; when Release is set each call waits on it.
type MockRunner struct {
	mu      sync.Mutex
	Modes   []agent.Mode
	Entered chan struct{}
	Release chan struct{}
	Err     error
}

func (m *MockRunner) RunTask(ctx context.Context, mode agent.Mode, input string) (history.Record, error) {
	m.mu.Lock()
	m.Modes = append(m.Modes, mode)
	m.mu.Unlock()
	if m.Entered != nil {
		m.Entered <- struct{}{}
	}
	if m.Release != nil {
		<-m.Release
	}
	if m.Err != nil {
		return history.Record{}, m.Err
	}
	c := 90
	return history.Record{ID: "r-" + input, Mode: mode, Input: input, Output: mode.String() + ": " + input, Confidence: &c}, nil
}

type nopReplier struct{}

func (nopReplier) Chat(context.Context, []llm.Message) (string, error) { return "ok", nil }
