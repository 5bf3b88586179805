package llm

import (
	"context"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"
)

type ClaudeClient struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

func NewClaudeClient(apiKey string, model string, baseURL string, maxTokens int) *ClaudeClient {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	return &ClaudeClient{
		client:    anthropic.NewClient(apiKey, opts...),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (c *ClaudeClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	// No native schema mode; the schema is spelled out in the system prompt.
	system := req.SystemInstruction
	if req.Schema != nil {
		system = strings.TrimSpace(system + "\n\n" + req.Schema.Instruction())
	}
	return c.send(ctx, pick(req.Model, c.model), system, req.Temperature, []anthropic.Message{
		anthropic.NewUserTextMessage(req.Prompt),
	})
}

func (c *ClaudeClient) Chat(ctx context.Context, req ChatRequest) (string, error) {
	msgs := make([]anthropic.Message, 0, len(req.History)+1)
	for _, m := range req.History {
		if m.Role == RoleModel {
			msgs = append(msgs, anthropic.NewAssistantTextMessage(m.Content))
			continue
		}
		msgs = append(msgs, anthropic.NewUserTextMessage(m.Content))
	}
	msgs = append(msgs, anthropic.NewUserTextMessage(req.Message))
	return c.send(ctx, pick(req.Model, c.model), req.SystemInstruction, req.Temperature, msgs)
}

func (c *ClaudeClient) send(ctx context.Context, model, system string, temperature *float32, msgs []anthropic.Message) (string, error) {
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(model),
		System:      system,
		Messages:    msgs,
		MaxTokens:   c.maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, content := range resp.Content {
		if content.Text != nil {
			b.WriteString(*content.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}
