// Package session holds the per-browser interaction state.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/agenthands/agentflow/internal/agent"
	"github.com/agenthands/agentflow/internal/auth"
	"github.com/agenthands/agentflow/internal/chat"
	"github.com/agenthands/agentflow/internal/history"
	"github.com/agenthands/agentflow/internal/validation"
)

// ErrRunInProgress is returned when a run is started while another is loading.
var ErrRunInProgress = errors.New("a run is already in progress")

// Runner executes one agent task.
type Runner interface {
	RunTask(ctx context.Context, mode agent.Mode, input string) (history.Record, error)
}

type Workspace struct {
	Input      string `json:"input"`
	Output     string `json:"output"`
	Confidence *int   `json:"confidence,omitempty"`
	Loading    bool   `json:"loading"`
}

// Outcome is the result of Run. Applied is false when the workspace moved on
// (mode switch) before the record arrived.
type Outcome struct {
	Record  history.Record `json:"record"`
	Applied bool           `json:"applied"`
}

// Snapshot is the client-facing view of a State.
type Snapshot struct {
	Mode        agent.Mode      `json:"mode"`
	Agent       agent.Config    `json:"agent"`
	User        auth.User       `json:"user"`
	ShowHistory bool            `json:"show_history"`
	Workspace   Workspace       `json:"workspace"`
	Pending     *auth.Challenge `json:"pending,omitempty"`
}

type State struct {
	mu          sync.Mutex
	id          string
	mode        agent.Mode
	identity    auth.Identity
	showHistory bool
	ws          Workspace
	epoch       uint64
	pending     *auth.Challenge
	chat        *chat.Session
	lastSeen    time.Time
}

func NewState(id string, c *chat.Session) *State {
	return &State{
		id:       id,
		mode:     agent.DefaultMode,
		identity: auth.Anonymous(),
		chat:     c,
		lastSeen: time.Now(),
	}
}

func (s *State) ID() string { return s.id }

func (s *State) Chat() *chat.Session { return s.chat }

func (s *State) Mode() agent.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SelectMode switches the agent, resets the workspace and hides history.
// A run still loading for the previous mode will not be applied.
func (s *State) SelectMode(m agent.Mode) error {
	if !m.Valid() {
		return agent.ErrUnknownMode
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
	s.showHistory = false
	s.ws = Workspace{}
	s.epoch++
	return nil
}

func (s *State) SetShowHistory(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showHistory = show
}

func (s *State) SetInput(input string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ws.Input = input
}

func (s *State) Login(id auth.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = id
	s.pending = nil
}

// Logout returns the user to anonymous. Mode and workspace are kept.
func (s *State) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = auth.Anonymous()
	s.pending = nil
}

func (s *State) Identity() auth.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

func (s *State) SetPending(ch auth.Challenge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &ch
}

// Pending returns the registration awaiting verification, if any.
func (s *State) Pending() (auth.Challenge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return auth.Challenge{}, false
	}
	return *s.pending, true
}

// Run executes input in the current mode through r. The runner is called
// without holding the lock; its record lands in the workspace only if no
// mode switch happened meanwhile.
func (s *State) Run(ctx context.Context, input string, r Runner) (Outcome, error) {
	if err := validation.Text("input", input); err != nil {
		return Outcome{}, err
	}

	s.mu.Lock()
	if s.ws.Loading {
		s.mu.Unlock()
		return Outcome{}, ErrRunInProgress
	}
	ticket, mode := s.epoch, s.mode
	s.ws = Workspace{Input: input, Loading: true}
	s.mu.Unlock()

	rec, err := r.RunTask(ctx, mode, input)

	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket != s.epoch {
		return Outcome{Record: rec}, err
	}
	s.ws.Loading = false
	if err != nil {
		return Outcome{}, err
	}
	s.ws.Output = rec.Output
	s.ws.Confidence = rec.Confidence
	return Outcome{Record: rec, Applied: true}, nil
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Mode:        s.mode,
		Agent:       agent.ConfigFor(s.mode),
		User:        s.identity.User(),
		ShowHistory: s.showHistory,
		Workspace:   s.ws,
	}
	if s.pending != nil {
		p := *s.pending
		snap.Pending = &p
	}
	return snap
}

func (s *State) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *State) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
