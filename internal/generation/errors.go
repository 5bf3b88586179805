package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/agenthands/agentflow/internal/llm"
)

type ErrorKind int

const (
	KindFailed ErrorKind = iota
	KindTimeout
	KindEmpty
)

// GenerationError wraps any failure of a provider call.
type GenerationError struct {
	Kind  ErrorKind
	Op    string
	Model string
	Err   error
}

func (e *GenerationError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return fmt.Sprintf("%s timed out waiting for %s", e.Op, e.Model)
	case KindEmpty:
		return "No response received from agent."
	default:
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
}

func (e *GenerationError) Unwrap() error { return e.Err }

func classify(op, model string, err error) *GenerationError {
	kind := KindFailed
	switch {
	case errors.Is(err, llm.ErrEmptyResponse):
		kind = KindEmpty
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	}
	return &GenerationError{Kind: kind, Op: op, Model: model, Err: err}
}
