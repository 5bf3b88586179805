package generation

import (
	"context"

	"github.com/agenthands/agentflow/internal/llm"
)

type MockLLM struct {
	Response string
	Err      error
	// Block, when set, makes calls wait for ctx to end.
	Block bool

	Generated []llm.GenerateRequest
	Chats     []llm.ChatRequest
}

func (m *MockLLM) Generate(ctx context.Context, req llm.GenerateRequest) (string, error) {
	m.Generated = append(m.Generated, req)
	if m.Block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *MockLLM) Chat(ctx context.Context, req llm.ChatRequest) (string, error) {
	m.Chats = append(m.Chats, req)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
