// Package chat holds the NeuroFedge conversation of one session.
package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/agenthands/agentflow/internal/generation"
	"github.com/agenthands/agentflow/internal/llm"
	"github.com/agenthands/agentflow/internal/logging"
	"github.com/agenthands/agentflow/internal/validation"
	"go.uber.org/zap"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleModel  Role = "model"
	RoleSystem Role = "system"
)

const (
	Greeting       = "Hello! I am NeuroFedge, your technical second brain. How can I help you think through your project today?"
	EmptyReply     = "NeuroFedge is contemplating..."
	InterruptedMsg = "My cognitive link was interrupted. Please try again."
)

// ErrBusy is returned while a previous message is still awaiting its reply.
var ErrBusy = errors.New("a message is already being answered")

// Message is one entry of the conversation. Timestamp is Unix milliseconds.
type Message struct {
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

type Replier interface {
	Chat(ctx context.Context, history []llm.Message) (string, error)
}

// Session is append-only and lives only in memory.
type Session struct {
	mu       sync.Mutex
	replier  Replier
	messages []Message
	busy     bool
	now      func() time.Time
	logger   *zap.Logger
}

func NewSession(r Replier, logger *zap.Logger) *Session {
	s := &Session{replier: r, now: time.Now, logger: logging.OrNop(logger)}
	s.messages = []Message{{Role: RoleSystem, Content: Greeting, Timestamp: s.now().UnixMilli()}}
	return s
}

// Messages returns a copy of the conversation so far.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Send appends text as a user message, asks the replier and appends its
// answer. Reply failures are turned into visible messages, not errors.
func (s *Session) Send(ctx context.Context, text string) (Message, error) {
	if err := validation.Text("message", text); err != nil {
		return Message{}, err
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return Message{}, ErrBusy
	}
	s.busy = true
	s.messages = append(s.messages, Message{Role: RoleUser, Content: text, Timestamp: s.now().UnixMilli()})
	turns := toTurns(s.messages)
	s.mu.Unlock()

	reply := s.answer(ctx, turns)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	reply.Timestamp = s.now().UnixMilli()
	s.messages = append(s.messages, reply)
	return reply, nil
}

func (s *Session) answer(ctx context.Context, turns []llm.Message) Message {
	text, err := s.replier.Chat(ctx, turns)
	if err == nil {
		return Message{Role: RoleModel, Content: text}
	}

	var gerr *generation.GenerationError
	if errors.As(err, &gerr) && gerr.Kind == generation.KindEmpty {
		return Message{Role: RoleModel, Content: EmptyReply}
	}
	s.logger.Warn("NeuroFedge reply failed", zap.Error(err))
	return Message{Role: RoleSystem, Content: InterruptedMsg}
}

// toTurns drops system messages, which are never shown to the model. A user
// turn left unanswered (its reply failed) is replaced by the next user turn so
// roles keep alternating.
func toTurns(msgs []Message) []llm.Message {
	turns := make([]llm.Message, 0, len(msgs))
	for _, m := range msgs {
		var role llm.Role
		switch m.Role {
		case RoleUser:
			role = llm.RoleUser
		case RoleModel:
			role = llm.RoleModel
		default:
			continue
		}
		if n := len(turns); n > 0 && turns[n-1].Role == role {
			turns[n-1] = llm.Message{Role: role, Content: m.Content}
			continue
		}
		turns = append(turns, llm.Message{Role: role, Content: m.Content})
	}
	return turns
}
