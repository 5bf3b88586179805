package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned by providers when the model produced no text.
var ErrEmptyResponse = errors.New("empty response from model")

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one prior turn of a conversation.
type Message struct {
	Role    Role
	Content string
}

// GenerateRequest is a single-shot completion. Model falls back to the client default.
type GenerateRequest struct {
	Model             string
	SystemInstruction string
	Prompt            string
	Temperature       *float32
	Schema            *ResponseSchema
}

// ChatRequest sends Message on top of History under a fixed system instruction.
type ChatRequest struct {
	Model             string
	SystemInstruction string
	History           []Message
	Message           string
	Temperature       *float32
}

type LLMClient interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

func pick(model, fallback string) string {
	if model != "" {
		return model
	}
	return fallback
}
