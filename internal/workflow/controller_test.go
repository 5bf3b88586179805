package workflow

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agenthands/agentflow/internal/agent"
	"github.com/agenthands/agentflow/internal/driver"
	"github.com/agenthands/agentflow/internal/generation"
	"github.com/agenthands/agentflow/internal/history"
	"github.com/agenthands/agentflow/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.UnixMilli(1760000000000)

func newController(gen Generator) (*Controller, *history.Store) {
	store := history.Open(context.Background(), driver.NewMemoryKV(), history.DefaultKey, nil)
	c := NewController(gen, store,
		WithClock(func() time.Time { return fixedNow }),
		WithIDs(func() string { return "rec-1" }),
	)
	return c, store
}

func TestNonSupervisorModesCallOnceWithoutConfidence(t *testing.T) {
	for _, mode := range agent.Modes() {
		if mode == agent.Supervisor {
			continue
		}
		t.Run(mode.String(), func(t *testing.T) {
			gen := &MockGenerator{Response: "done. Confidence: 12"}
			c, store := newController(gen)

			rec, err := c.RunTask(context.Background(), mode, "some input")
			require.NoError(t, err)

			require.Len(t, gen.Calls, 1)
			assert.Equal(t, agent.ConfigFor(mode).SystemPrompt, gen.Calls[0].SystemPrompt)
			assert.Equal(t, "some input", gen.Calls[0].Input)
			assert.Zero(t, gen.Calls[0].Options)
			assert.Nil(t, rec.Confidence)
			assert.Len(t, store.Items(), 1)
		})
	}
}

func TestCoderScenario(t *testing.T) {
	gen := &MockGenerator{Response: "function reverse(s){...}"}
	c, store := newController(gen)

	rec, err := c.RunTask(context.Background(), agent.Coder, "reverse a string")
	require.NoError(t, err)

	want := history.Record{
		ID:        "rec-1",
		Mode:      agent.Coder,
		Input:     "reverse a string",
		Output:    "function reverse(s){...}",
		Timestamp: fixedNow.UnixMilli(),
	}
	assert.Equal(t, want, rec)
	assert.Equal(t, want, store.Items()[0])
}

const quotedJSONReply = "The handler logs the wrong field.\nCorrected config:\n```json\n{\"output\": \"stdout\"}\n```\nConfidence: 70"

func TestSupervisorConfidence(t *testing.T) {
	cases := []struct {
		name     string
		response string
		output   string
		want     int
	}{
		{"legacy text", "Looks fine.\nConfidence: 73", "Looks fine.\nConfidence: 73", 73},
		{"case insensitive", "...CONFIDENCE:88...", "...CONFIDENCE:88...", 88},
		{"missing", "No score given.", "No score given.", DefaultConfidence},
		{"braces in text", "function reverse(s){...}\nConfidence: 88", "function reverse(s){...}\nConfidence: 88", 88},
		{"structured", `{"output":"Use a parameterized query.","confidence":64}`, "Use a parameterized query.", 64},
		{"structured zero", `{"output":"Unsafe.","confidence":0}`, "Unsafe.", 0},
		{"structured clamps", `{"output":"Sure.","confidence":250}`, "Sure.", 100},
		{"structured without score", `{"output":"Confidence: 41"}`, "Confidence: 41", 41},
		{"legacy clamps", "Confidence: 900", "Confidence: 900", 100},
		{"legacy overflow clamps", "Confidence: 99999999999999999999", "Confidence: 99999999999999999999", 100},
		{"prose quoting json", quotedJSONReply, quotedJSONReply, 70},
		{"fenced structured", "```json\n{\"output\":\"Add a mutex.\",\"confidence\":81}\n```", "Add a mutex.", 81},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &MockGenerator{Response: tc.response}
			c, _ := newController(gen)

			rec, err := c.RunTask(context.Background(), agent.Supervisor, "audit this snippet")
			require.NoError(t, err)

			require.Len(t, gen.Calls, 1)
			require.NotNil(t, rec.Confidence)
			assert.Equal(t, tc.want, *rec.Confidence)
			assert.Equal(t, tc.output, rec.Output)
		})
	}
}

func TestSupervisorPrompt(t *testing.T) {
	gen := &MockGenerator{Response: "ok"}
	c, _ := newController(gen)

	_, err := c.RunTask(context.Background(), agent.Supervisor, "audit this snippet")
	require.NoError(t, err)

	call := gen.Calls[0]
	assert.Equal(t, agent.ConfigFor(agent.Supervisor).SystemPrompt, call.SystemPrompt)
	assert.Contains(t, call.Input, "Identify potential performance or security risks.")
	assert.True(t, strings.HasSuffix(call.Input, "Input: audit this snippet"))
	assert.Equal(t, 2, call.Options, "temperature and schema")
}

func TestEmptyInputIsRejected(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t "} {
		gen := &MockGenerator{Response: "x"}
		c, store := newController(gen)

		_, err := c.RunTask(context.Background(), agent.Coder, input)
		var verr *validation.Error
		assert.True(t, errors.As(err, &verr))
		assert.Empty(t, gen.Calls)
		assert.Empty(t, store.Items())
	}
}

func TestFailedGenerationStillRecords(t *testing.T) {
	for _, mode := range []agent.Mode{agent.Debugger, agent.Supervisor} {
		t.Run(mode.String(), func(t *testing.T) {
			gen := &MockGenerator{Err: &generation.GenerationError{Kind: generation.KindFailed, Op: "generate", Err: errors.New("quota exceeded")}}
			c, store := newController(gen)

			rec, err := c.RunTask(context.Background(), mode, "why does this deadlock?")
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(rec.Output, ErrorPrefix))
			assert.Contains(t, rec.Output, "quota exceeded")
			assert.Nil(t, rec.Confidence)

			items := store.Items()
			require.Len(t, items, 1)
			assert.Equal(t, rec, items[0])
		})
	}
}

func TestPersistenceFailureDoesNotFailRun(t *testing.T) {
	gen := &MockGenerator{Response: "ok"}
	c := NewController(gen, FailingRecorder{Err: errors.New("disk full")})

	rec, err := c.RunTask(context.Background(), agent.Answerer, "what is a mutex?")
	require.NoError(t, err)
	assert.Equal(t, "ok", rec.Output)
	assert.NotEmpty(t, rec.ID)
	assert.NotZero(t, rec.Timestamp)
}

func TestRecordsArePrepended(t *testing.T) {
	gen := &MockGenerator{Response: "ok"}
	store := history.Open(context.Background(), driver.NewMemoryKV(), history.DefaultKey, nil)
	c := NewController(gen, store)

	first, err := c.RunTask(context.Background(), agent.Coder, "one")
	require.NoError(t, err)
	second, err := c.RunTask(context.Background(), agent.Critic, "two")
	require.NoError(t, err)

	items := store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
	assert.NotEqual(t, first.ID, second.ID)
}
