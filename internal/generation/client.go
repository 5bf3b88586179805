// Package generation is the boundary between the workflow and the model provider.
package generation

import (
	"context"
	"strings"
	"time"

	"github.com/agenthands/agentflow/internal/agent"
	"github.com/agenthands/agentflow/internal/llm"
	"github.com/agenthands/agentflow/internal/logging"
	"go.uber.org/zap"
)

type Options struct {
	Model       string
	ChatModel   string
	Temperature float32
	Timeout     time.Duration
	// WindowMessages and WindowChars bound the chat history resent per turn.
	WindowMessages int
	WindowChars    int
}

type Client struct {
	llm    llm.LLMClient
	opts   Options
	logger *zap.Logger
}

func NewClient(provider llm.LLMClient, opts Options, logger *zap.Logger) *Client {
	if opts.ChatModel == "" {
		opts.ChatModel = opts.Model
	}
	if opts.WindowMessages <= 0 {
		opts.WindowMessages = 20
	}
	return &Client{llm: provider, opts: opts, logger: logging.OrNop(logger)}
}

type callConfig struct {
	temperature float32
	schema      *llm.ResponseSchema
}

type CallOption func(*callConfig)

func WithTemperature(t float32) CallOption {
	return func(c *callConfig) { c.temperature = t }
}

// WithSchema asks the provider for a structured JSON response.
func WithSchema(s *llm.ResponseSchema) CallOption {
	return func(c *callConfig) { c.schema = s }
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.opts.Timeout)
}

// Generate runs one completion of userInput under systemPrompt.
func (c *Client) Generate(ctx context.Context, systemPrompt, userInput string, opts ...CallOption) (string, error) {
	cc := callConfig{temperature: c.opts.Temperature}
	for _, o := range opts {
		o(&cc)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	text, err := c.llm.Generate(ctx, llm.GenerateRequest{
		Model:             c.opts.Model,
		SystemInstruction: systemPrompt,
		Prompt:            userInput,
		Temperature:       &cc.temperature,
		Schema:            cc.schema,
	})
	if err == nil && strings.TrimSpace(text) == "" {
		err = llm.ErrEmptyResponse
	}
	if err != nil {
		gerr := classify("generate", c.opts.Model, err)
		c.logger.Warn("Generation failed",
			zap.String("model", c.opts.Model),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", gerr
	}

	c.logger.Debug("Generation complete",
		zap.String("model", c.opts.Model),
		zap.Bool("structured", cc.schema != nil),
		zap.Int("chars", len(text)),
		zap.Duration("elapsed", time.Since(start)))
	return text, nil
}

// Chat answers the last user message of history as NeuroFedge. Earlier turns are
// resent inside a bounded window.
func (c *Client) Chat(ctx context.Context, history []llm.Message) (string, error) {
	if len(history) == 0 || history[len(history)-1].Role != llm.RoleUser {
		return "", classify("chat", c.opts.ChatModel, llm.ErrEmptyResponse)
	}

	last := history[len(history)-1]
	var prior []llm.Message
	if budget := c.opts.WindowChars; budget <= 0 || budget > len(last.Content) {
		if budget > 0 {
			budget -= len(last.Content)
		}
		prior = Window(history[:len(history)-1], c.opts.WindowMessages-1, budget)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	text, err := c.llm.Chat(ctx, llm.ChatRequest{
		Model:             c.opts.ChatModel,
		SystemInstruction: agent.NeuroFedgePrompt,
		History:           prior,
		Message:           last.Content,
	})
	if err == nil && strings.TrimSpace(text) == "" {
		err = llm.ErrEmptyResponse
	}
	if err != nil {
		c.logger.Warn("NeuroFedge chat failed", zap.String("model", c.opts.ChatModel), zap.Error(err))
		return "", classify("chat", c.opts.ChatModel, err)
	}
	return text, nil
}

// Window keeps the most recent turns that fit maxMessages and maxChars
// (maxChars <= 0 means unbounded), and drops leading model turns so the
// window opens on a user turn.
func Window(history []llm.Message, maxMessages, maxChars int) []llm.Message {
	if maxMessages <= 0 {
		return nil
	}

	start := len(history)
	chars := 0
	for i := len(history) - 1; i >= 0; i-- {
		if len(history)-i > maxMessages {
			break
		}
		chars += len(history[i].Content)
		if maxChars > 0 && chars > maxChars {
			break
		}
		start = i
	}

	for start < len(history) && history[start].Role != llm.RoleUser {
		start++
	}

	out := make([]llm.Message, len(history)-start)
	copy(out, history[start:])
	return out
}
