package game

import (
	"fmt"
	"slices"
	"strings"
)

// Action represents a player or dealer decision
type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// Shortcut returns the key a console player types to choose the action
func (a Action) Shortcut() string {
	switch a {
	case Hit:
		return "h"
	case Stand:
		return "s"
	case Double:
		return "d"
	case Split:
		return "sp"
	default:
		return ""
	}
}

// ParseAction accepts an action name or its shortcut, case-insensitively
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range []Action{Hit, Stand, Double, Split} {
		if s == a.String() || s == a.Shortcut() {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown action %q", ErrIllegalAction, s)
}

// ActionSet is the ordered list of actions legal at one decision point
type ActionSet []Action

// Contains reports whether the action is in the set
func (s ActionSet) Contains(a Action) bool {
	return slices.Contains(s, a)
}

// Without returns a copy of the set without the given action
func (s ActionSet) Without(a Action) ActionSet {
	out := make(ActionSet, 0, len(s))
	for _, x := range s {
		if x != a {
			out = append(out, x)
		}
	}
	return out
}

// String returns the actions joined by commas
func (s ActionSet) String() string {
	names := make([]string, len(s))
	for i, a := range s {
		names[i] = a.String()
	}
	return strings.Join(names, ", ")
}
