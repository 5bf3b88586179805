// Package agent holds the static registry of agent personas.
package agent

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned for names and values outside the persona set.
var ErrUnknownMode = errors.New("unknown agent mode")

// Mode identifies an agent persona. The set is closed.
type Mode uint8

const (
	Coder Mode = iota
	Debugger
	Reviewer
	Supervisor
	Performance
	Security
	Answerer
	Critic
	Architect

	modeCount
)

var modeNames = [modeCount]string{
	Coder:       "Coder",
	Debugger:    "Debugger",
	Reviewer:    "Reviewer",
	Supervisor:  "Supervisor",
	Performance: "Performance",
	Security:    "Security",
	Answerer:    "Answerer",
	Critic:      "Critic",
	Architect:   "Architect",
}

// DefaultMode is the mode a new session starts in.
const DefaultMode = Coder

func (m Mode) String() string {
	if m >= modeCount {
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
	return modeNames[m]
}

// Valid reports whether m is one of the known personas.
func (m Mode) Valid() bool {
	return m < modeCount
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w %d", ErrUnknownMode, uint8(m))
	}
	return []byte(modeNames[m]), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMode resolves a display name, ignoring case and surrounding space.
func ParseMode(name string) (Mode, error) {
	name = strings.TrimSpace(name)
	for i, n := range modeNames {
		if strings.EqualFold(n, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownMode, name)
}

// Modes lists every persona in navigation order.
func Modes() []Mode {
	return []Mode{Architect, Coder, Debugger, Reviewer, Performance, Security, Answerer, Critic, Supervisor}
}
