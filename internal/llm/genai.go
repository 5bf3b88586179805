package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GenAIClient talks to Gemini through the unified SDK, which also reaches Vertex AI.
type GenAIClient struct {
	client *genai.Client
	model  string
}

type GenAIOptions struct {
	APIKey   string
	Model    string
	Vertex   bool
	Project  string
	Location string
}

func NewGenAIClient(ctx context.Context, opts GenAIOptions) (*GenAIClient, error) {
	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.Vertex {
		cc = &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  opts.Project,
			Location: opts.Location,
		}
	} else if opts.APIKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAIClient{client: client, model: opts.Model}, nil
}

func genaiConfig(system string, temperature *float32) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{Temperature: temperature}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	return cfg
}

func (c *GenAIClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	cfg := genaiConfig(req.SystemInstruction, req.Temperature)
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = genaiSchema(req.Schema)
	}

	resp, err := c.client.Models.GenerateContent(ctx, pick(req.Model, c.model), genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	return genaiText(resp)
}

func (c *GenAIClient) Chat(ctx context.Context, req ChatRequest) (string, error) {
	history := make([]*genai.Content, 0, len(req.History))
	for _, m := range req.History {
		content := genai.NewContentFromText(m.Content, genai.RoleUser)
		if m.Role == RoleModel {
			content = genai.NewContentFromText(m.Content, genai.RoleModel)
		}
		history = append(history, content)
	}

	chat, err := c.client.Chats.Create(ctx, pick(req.Model, c.model), genaiConfig(req.SystemInstruction, req.Temperature), history)
	if err != nil {
		return "", fmt.Errorf("GenAI chat create failed: %w", err)
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: req.Message})
	if err != nil {
		return "", fmt.Errorf("GenAI chat send failed: %w", err)
	}
	return genaiText(resp)
}

func genaiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrEmptyResponse
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func genaiSchema(s *ResponseSchema) *genai.Schema {
	props := make(map[string]*genai.Schema, len(s.Fields))
	for _, f := range s.Fields {
		t := genai.TypeString
		if f.Type == TypeInteger {
			t = genai.TypeInteger
		}
		props[f.Name] = &genai.Schema{Type: t, Description: f.Description}
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   s.required(),
	}
}
