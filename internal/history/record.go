// Package history keeps the most-recent-first list of task results.
package history

import (
	"github.com/agenthands/agentflow/internal/agent"
)

// Record is one completed or failed task invocation. Timestamp is Unix milliseconds.
type Record struct {
	ID         string     `json:"id"`
	Mode       agent.Mode `json:"mode"`
	Input      string     `json:"input"`
	Output     string     `json:"output"`
	Timestamp  int64      `json:"timestamp"`
	Confidence *int       `json:"confidence,omitempty"`
}
