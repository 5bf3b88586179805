package chat

import (
	"context"

	"github.com/agenthands/agentflow/internal/llm"
)

type MockReplier struct {
	Response string
	Err      error
	// Release, when set, is waited on before answering.
	Release chan struct{}
	Entered chan struct{}

	Received [][]llm.Message
}

func (m *MockReplier) Chat(ctx context.Context, history []llm.Message) (string, error) {
	m.Received = append(m.Received, history)
	if m.Entered != nil {
		close(m.Entered)
	}
	if m.Release != nil {
		<-m.Release
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
