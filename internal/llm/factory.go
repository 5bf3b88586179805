package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/agentflow/internal/config"
	"go.uber.org/zap"
)

func NewClient(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (LLMClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)

	case "genai":
		return NewGenAIClient(ctx, GenAIOptions{
			APIKey:   cfg.APIKey,
			Model:    cfg.Model,
			Vertex:   cfg.Vertex,
			Project:  cfg.Project,
			Location: cfg.Location,
		})

	case "claude":
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens), nil

	case "ollama":
		// Ollama is reached through its OpenAI-compatible API
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
		if logger != nil {
			logger.Info("Initializing Ollama via OpenAI-compatible API", zap.String("base_url", baseURL))
		}

		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama" // ignored by Ollama, required by the client
		}
		return NewOpenAIClient(apiKey, cfg.Model, baseURL), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
