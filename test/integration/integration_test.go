//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/agentflow/internal/agent"
	"github.com/agenthands/agentflow/internal/config"
	"github.com/agenthands/agentflow/internal/driver"
	"github.com/agenthands/agentflow/internal/generation"
	"github.com/agenthands/agentflow/internal/history"
	"github.com/agenthands/agentflow/internal/llm"
	"github.com/agenthands/agentflow/internal/workflow"
	"github.com/joho/godotenv"
)

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	_ = godotenv.Load("../../.env")

	cfg, err := config.Load("../../config/config.toml")
	if err != nil {
		t.Logf("Config not found, using default: %v", err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()
	return cfg
}

func newGenerator(t *testing.T, cfg *config.Config) *generation.Client {
	t.Helper()
	if cfg.LLM.APIKey == "" && cfg.LLM.Provider != "ollama" && !cfg.LLM.Vertex {
		t.Skip("Skipping integration test: no LLM API key set")
	}
	provider, err := llm.NewClient(context.Background(), cfg.LLM, nil)
	require.NoError(t, err)
	return generation.NewClient(provider, generation.Options{
		Model:          cfg.LLM.Model,
		ChatModel:      cfg.LLM.ChatModel,
		Temperature:    cfg.LLM.Temperature,
		Timeout:        cfg.LLM.Timeout.Duration,
		WindowMessages: cfg.Chat.WindowMessages,
		WindowChars:    cfg.Chat.WindowChars,
	}, nil)
}

func TestMemgraphHistory(t *testing.T) {
	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}
	ctx := context.Background()

	d, err := driver.NewMemgraphDriver(ctx, uri, os.Getenv("MEMGRAPH_USER"), os.Getenv("MEMGRAPH_PASSWORD"))
	require.NoError(t, err)
	kv := driver.NewMemgraphKV(d, nil)
	defer kv.Close(ctx)
	kv.BuildIndices(ctx)

	key := fmt.Sprintf("agent_history:test-%s", uuid.NewString())
	store := history.Open(ctx, kv, key, nil)
	require.NoError(t, store.Record(ctx, history.Record{ID: "1", Mode: agent.Coder, Input: "in", Output: "out", Timestamp: time.Now().UnixMilli()}))

	reloaded := history.Open(ctx, kv, key, nil)
	require.Len(t, reloaded.Items(), 1)
	assert.Equal(t, "out", reloaded.Items()[0].Output)

	cleared, err := reloaded.ClearAll(ctx, history.Answer(true))
	require.NoError(t, err)
	assert.True(t, cleared)
	require.NoError(t, kv.Delete(ctx, key))
}

func TestProviderRoundTrip(t *testing.T) {
	cfg := loadConfig(t)
	gen := newGenerator(t, cfg)
	ctx := context.Background()

	store := history.Open(ctx, driver.NewMemoryKV(), history.DefaultKey, nil)
	ctrl := workflow.NewController(gen, store, workflow.WithSupervisorTemperature(cfg.LLM.SupervisorTemperature))

	rec, err := ctrl.RunTask(ctx, agent.Coder, "Write a Go function that reverses a string.")
	require.NoError(t, err)
	assert.NotContains(t, rec.Output, workflow.ErrorPrefix)
	assert.Nil(t, rec.Confidence)

	rec, err = ctrl.RunTask(ctx, agent.Supervisor, "func div(a, b int) int { return a / b }")
	require.NoError(t, err)
	require.NotNil(t, rec.Confidence)
	t.Logf("Supervisor confidence: %d", *rec.Confidence)
	assert.Len(t, store.Items(), 2)
}

func TestChatRoundTrip(t *testing.T) {
	cfg := loadConfig(t)
	gen := newGenerator(t, cfg)

	reply, err := gen.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "In one sentence, what is a race condition?"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
}
