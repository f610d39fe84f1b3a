package planner

import (
	"slices"
	"strings"

	"github.com/janpfeifer/captureGo/internal/generics"
	. "github.com/janpfeifer/captureGo/internal/state"
)

// Path is a queue of actions consumed front to back, one per turn. Once empty it stays empty.
//
// The zero value is an empty path.
type Path struct {
	actions []Direction
}

// NewPath creates a path with a copy of the given actions.
func NewPath(actions ...Direction) *Path {
	return &Path{actions: slices.Clone(actions)}
}

// Len returns the number of actions remaining.
func (p *Path) Len() int { return len(p.actions) }

// Empty returns whether all actions were consumed.
func (p *Path) Empty() bool { return len(p.actions) == 0 }

// Peek returns the next action without consuming it, and false if the path is empty.
func (p *Path) Peek() (Direction, bool) {
	if p.Empty() {
		return Stop, false
	}
	return p.actions[0], true
}

// Pop removes and returns the next action, and false if the path is empty.
func (p *Path) Pop() (Direction, bool) {
	action, ok := p.Peek()
	if ok {
		p.actions = p.actions[1:]
	}
	return action, ok
}

// Actions returns a copy of the remaining actions.
func (p *Path) Actions() []Direction {
	return slices.Clone(p.actions)
}

// String lists the remaining actions.
func (p *Path) String() string {
	return "[" + strings.Join(generics.SliceMap(p.actions, Direction.String), " ") + "]"
}
