package fixture

import (
	"fmt"

	"github.com/kbukum/fixturekit/errors"
)

type mode uint8

const (
	modeInvalid mode = iota
	modeCount
	modeReplay
)

// Selector tells Iterate what to do: create a number of objects, or replay
// the objects already registered under a name. Build one with Count or
// Replay; the zero value is invalid.
type Selector struct {
	mode  mode
	count int
	name  string
}

// Count selects count mode: the producer runs n times. Without As the
// results are discarded.
func Count(n int) Selector {
	return Selector{mode: modeCount, count: n}
}

// As names the reference group count-mode results are registered under.
func (s Selector) As(ref string) Selector {
	if s.mode == modeCount {
		s.name = ref
	} else {
		s.mode = modeInvalid
	}
	return s
}

// Replay selects replay mode over the objects registered under name.
func Replay(name string) Selector {
	return Selector{mode: modeReplay, name: name}
}

// IsReplay reports whether s is a replay selector.
func (s Selector) IsReplay() bool { return s.mode == modeReplay }

// N returns the requested count in count mode.
func (s Selector) N() int { return s.count }

// Reference returns the reference name, or "" for an anonymous count.
func (s Selector) Reference() string { return s.name }

// Mode returns "count", "replay" or "invalid".
func (s Selector) Mode() string {
	switch s.mode {
	case modeCount:
		return "count"
	case modeReplay:
		return "replay"
	default:
		return "invalid"
	}
}

func (s Selector) String() string {
	switch s.mode {
	case modeCount:
		if s.name == "" {
			return fmt.Sprintf("Count(%d)", s.count)
		}
		return fmt.Sprintf("Count(%d).As(%q)", s.count, s.name)
	case modeReplay:
		return fmt.Sprintf("Replay(%q)", s.name)
	default:
		return "Selector(invalid)"
	}
}

func (s Selector) validate() error {
	switch {
	case s.mode == modeCount && s.count < 0:
		return invalidSelector(s, fmt.Sprintf("count must not be negative, got %d", s.count))
	case s.mode == modeCount:
		return nil
	case s.mode == modeReplay && s.name == "":
		return invalidSelector(s, "replay needs a reference name")
	case s.mode == modeReplay:
		return nil
	default:
		return invalidSelector(s, "selector must be built with Count(n) or Replay(name)")
	}
}

func invalidSelector(s Selector, reason string) *errors.AppError {
	return errors.InvalidInput("selector", reason).WithDetail("selector", s.String())
}
