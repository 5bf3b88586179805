package main

import (
	"context"
	"fmt"
	"io"

	"github.com/agenthands/agentflow/internal/config"
	"github.com/agenthands/agentflow/internal/driver"
	"github.com/agenthands/agentflow/internal/generation"
	"github.com/agenthands/agentflow/internal/llm"
	"go.uber.org/zap"
)

// app is the wiring shared by every command that talks to the model.
type app struct {
	gen *generation.Client
	kv  driver.KV
	llm llm.LLMClient
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	provider, err := llm.NewClient(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	kv, err := driver.Open(ctx, cfg.History, logger)
	if err != nil {
		closeProvider(provider, logger)
		return nil, fmt.Errorf("failed to open history backend: %w", err)
	}

	gen := generation.NewClient(provider, generation.Options{
		Model:          cfg.LLM.Model,
		ChatModel:      cfg.LLM.ChatModel,
		Temperature:    cfg.LLM.Temperature,
		Timeout:        cfg.LLM.Timeout.Duration,
		WindowMessages: cfg.Chat.WindowMessages,
		WindowChars:    cfg.Chat.WindowChars,
	}, logger)

	return &app{gen: gen, kv: kv, llm: provider}, nil
}

func (a *app) Close(ctx context.Context, logger *zap.Logger) {
	if err := a.kv.Close(ctx); err != nil {
		logger.Warn("Failed to close history backend", zap.Error(err))
	}
	closeProvider(a.llm, logger)
}

func closeProvider(p llm.LLMClient, logger *zap.Logger) {
	if c, ok := p.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Warn("Failed to close LLM client", zap.Error(err))
		}
	}
}
