package llm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/agenthands/agentflow/internal/config"
	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var verdictSchema = &ResponseSchema{
	Name: "verdict",
	Fields: []SchemaField{
		{Name: "output", Type: TypeString, Description: "final answer"},
		{Name: "confidence", Type: TypeInteger, Description: "0-100"},
	},
}

func TestJSONSchema(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal(verdictSchema.JSONSchema(), &doc))

	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, []any{"output", "confidence"}, doc["required"])
	props := doc["properties"].(map[string]any)
	assert.Equal(t, "integer", props["confidence"].(map[string]any)["type"])
	assert.Equal(t, false, doc["additionalProperties"])
}

func TestInstruction(t *testing.T) {
	text := verdictSchema.Instruction()
	assert.Contains(t, text, `"output" (string)`)
	assert.Contains(t, text, `"confidence" (integer)`)
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(verdictSchema)
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, genai.TypeInteger, s.Properties["confidence"].Type)
	assert.Equal(t, genai.TypeString, s.Properties["output"].Type)
	assert.Equal(t, []string{"output", "confidence"}, s.Required)
}

func TestGeminiTextEmpty(t *testing.T) {
	_, err := geminiText(nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = geminiText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}})
	assert.ErrorIs(t, err, ErrEmptyResponse)

	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []genai.Part{genai.Text("a"), genai.Text("b")}},
	}}}
	text, err := geminiText(resp)
	require.NoError(t, err)
	assert.Equal(t, "ab", text)
}

func TestOpenAIMessages(t *testing.T) {
	msgs := openaiMessages("be terse", []Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleModel, Content: "hello"},
	}, "next")

	require.Len(t, msgs, 4)
	assert.Equal(t, openai.ChatMessageRoleSystem, msgs[0].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, msgs[1].Role)
	assert.Equal(t, openai.ChatMessageRoleAssistant, msgs[2].Role)
	assert.Equal(t, "next", msgs[3].Content)

	assert.Len(t, openaiMessages("", nil, "only"), 1)
}

func TestNewClientProviders(t *testing.T) {
	ctx := context.Background()

	c, err := NewClient(ctx, config.LLMConfig{Provider: "OpenAI", APIKey: "k", Model: "gpt"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	c, err = NewClient(ctx, config.LLMConfig{Provider: "ollama", Model: "llama3"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	c, err = NewClient(ctx, config.LLMConfig{Provider: "claude", APIKey: "k", Model: "claude"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &ClaudeClient{}, c)

	_, err = NewClient(ctx, config.LLMConfig{Provider: "genai"}, nil)
	assert.Error(t, err, "genai without key or vertex")

	_, err = NewClient(ctx, config.LLMConfig{Provider: "bard"}, nil)
	assert.Error(t, err)
}
