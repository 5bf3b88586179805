// Package workflow turns a mode and user input into a history record.
package workflow

import (
	"context"
	"time"

	"github.com/agenthands/agentflow/internal/agent"
	"github.com/agenthands/agentflow/internal/generation"
	"github.com/agenthands/agentflow/internal/history"
	"github.com/agenthands/agentflow/internal/logging"
	"github.com/agenthands/agentflow/internal/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrorPrefix starts the output of a record whose generation failed.
const ErrorPrefix = "Error: "

// Generator is the part of generation.Client the controller needs.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userInput string, opts ...generation.CallOption) (string, error)
}

// Recorder receives every record the controller produces.
type Recorder interface {
	Record(ctx context.Context, item history.Record) error
}

type Controller struct {
	gen                   Generator
	history               Recorder
	supervisorTemperature float32
	now                   func() time.Time
	newID                 func() string
	logger                *zap.Logger
}

type Option func(*Controller)

func WithSupervisorTemperature(t float32) Option {
	return func(c *Controller) { c.supervisorTemperature = t }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithIDs(newID func() string) Option {
	return func(c *Controller) { c.newID = newID }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = logging.OrNop(l) }
}

func NewController(gen Generator, rec Recorder, opts ...Option) *Controller {
	c := &Controller{
		gen:                   gen,
		history:               rec,
		supervisorTemperature: 0.1,
		now:                   time.Now,
		newID:                 uuid.NewString,
		logger:                zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// RunTask executes input in mode and prepends the result to history. Generation
// failures become records with an error output rather than errors; only
// invalid input is returned as an error, and then nothing is recorded.
func (c *Controller) RunTask(ctx context.Context, mode agent.Mode, input string) (history.Record, error) {
	if err := validation.Text("input", input); err != nil {
		return history.Record{}, err
	}

	rec := history.Record{
		ID:    c.newID(),
		Mode:  mode,
		Input: input,
	}

	start := time.Now()
	var err error
	if mode == agent.Supervisor {
		err = c.supervise(ctx, input, &rec)
	} else {
		rec.Output, err = c.gen.Generate(ctx, agent.ConfigFor(mode).SystemPrompt, input)
	}
	if err != nil {
		rec.Output = ErrorPrefix + err.Error()
		rec.Confidence = nil
	}
	rec.Timestamp = c.now().UnixMilli()

	c.logger.Info("Agent task finished",
		zap.String("mode", mode.String()),
		zap.String("id", rec.ID),
		zap.Bool("failed", err != nil),
		zap.Duration("elapsed", time.Since(start)))

	if perr := c.history.Record(ctx, rec); perr != nil {
		c.logger.Error("Failed to persist history", zap.String("id", rec.ID), zap.Error(perr))
	}
	return rec, nil
}

func (c *Controller) supervise(ctx context.Context, input string, rec *history.Record) error {
	text, err := c.gen.Generate(ctx,
		agent.ConfigFor(agent.Supervisor).SystemPrompt,
		supervisorPrompt(input),
		generation.WithTemperature(c.supervisorTemperature),
		generation.WithSchema(supervisorSchema),
	)
	if err != nil {
		return err
	}

	output, confidence := decodeSupervisor(text)
	rec.Output = output
	rec.Confidence = &confidence
	return nil
}
