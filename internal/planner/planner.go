// Package planner implements the breadth-first search used by agents at the start of a game to
// plan the shortest walk from their spawn cell to a goal region, typically the first column of
// the opponent's half.
//
// The result is a Path: a queue of actions consumed one per turn, and never refilled.
package planner

import (
	"fmt"
	"strings"

	"github.com/janpfeifer/captureGo/internal/generics"
	. "github.com/janpfeifer/captureGo/internal/state"
	"k8s.io/klog/v2"
)

// GoalFunc returns whether a cell satisfies the search goal.
type GoalFunc func(c Cell) bool

// RowComparison selects which rows of the target column are accepted by BoundaryGoal.
type RowComparison uint8

const (
	// RowAtMost accepts cells with y <= row.
	RowAtMost RowComparison = iota

	// RowAbove accepts cells with y > row.
	RowAbove
)

// String implements fmt.Stringer, using the same names accepted by ParseRowComparison.
func (r RowComparison) String() string {
	switch r {
	case RowAtMost:
		return "le"
	case RowAbove:
		return "gt"
	}
	return fmt.Sprintf("RowComparison(%d)", r)
}

// ParseRowComparison parses "le" (or "<=") and "gt" (or ">").
func ParseRowComparison(s string) (RowComparison, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "le", "<=":
		return RowAtMost, true
	case "gt", ">":
		return RowAbove, true
	}
	return RowAtMost, false
}

// BoundaryGoal returns a goal that accepts the cells of the given column whose row satisfies cmp.
func BoundaryGoal(column, row int, cmp RowComparison) GoalFunc {
	if cmp == RowAbove {
		return func(c Cell) bool { return c.X == column && c.Y > row }
	}
	return func(c Cell) bool { return c.X == column && c.Y <= row }
}

// node of the search tree. Nodes are stored in an arena (a slice) and reference their parent by
// index, with -1 for the root.
type node struct {
	cell   Cell
	cost   int
	action Direction
	parent int
}

// Stats about a planning run.
type Stats struct {
	// Expanded is the number of nodes whose neighbours were generated.
	Expanded int

	// Depth of the goal node found, equal to the length of the path. -1 if no goal was reached.
	Depth int
}

// Plan returns the shortest sequence of actions from start to a cell satisfying goal.
// See PlanWithStats.
func Plan(grid *Grid, start Cell, goal GoalFunc) *Path {
	path, _ := PlanWithStats(grid, start, goal)
	return path
}

// PlanWithStats runs a breadth-first search from start, expanding neighbours in the canonical
// direction order, and returns the path to the first dequeued cell that satisfies goal.
//
// If no reachable cell satisfies the goal, it returns an empty path: callers fall back to other
// means of choosing actions. If start itself satisfies the goal, the path is also empty.
func PlanWithStats(grid *Grid, start Cell, goal GoalFunc) (*Path, Stats) {
	stats := Stats{Depth: -1}
	if grid.IsWall(start) {
		klog.Warningf("planner: start cell %s is a wall", start)
		return &Path{}, stats
	}
	arena := []node{{cell: start, cost: 0, action: Stop, parent: -1}}
	explored := generics.MakeSet[Cell](grid.NumCells())
	for head := 0; head < len(arena); head++ {
		current := arena[head]
		if goal(current.cell) {
			stats.Depth = current.cost
			return reconstruct(arena, head), stats
		}
		if explored.Has(current.cell) {
			continue
		}
		explored.Insert(current.cell)
		stats.Expanded++
		for dir, next := range grid.Neighbours(current.cell) {
			if explored.Has(next) {
				continue
			}
			arena = append(arena, node{cell: next, cost: current.cost + 1, action: dir, parent: head})
		}
	}
	klog.V(1).Infof("planner: no goal reachable from %s (%d cells expanded)", start, stats.Expanded)
	return &Path{}, stats
}

// reconstruct walks the parent links from the goal node to the root, and returns the actions in
// walking order.
func reconstruct(arena []node, goalIdx int) *Path {
	actions := make([]Direction, arena[goalIdx].cost)
	for idx := goalIdx; arena[idx].parent != -1; idx = arena[idx].parent {
		actions[arena[idx].cost-1] = arena[idx].action
	}
	return &Path{actions: actions}
}

// Replay walks the actions from start and returns the cell reached, and false if some action
// runs into a wall.
func Replay(grid *Grid, start Cell, actions []Direction) (Cell, bool) {
	c := start
	for _, action := range actions {
		c = c.Move(action)
		if grid.IsWall(c) {
			return c, false
		}
	}
	return c, true
}
