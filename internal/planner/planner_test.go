package planner_test

import (
	"context"
	"testing"

	"github.com/janpfeifer/captureGo/internal/maze"
	"github.com/janpfeifer/captureGo/internal/planner"
	. "github.com/janpfeifer/captureGo/internal/state"
	. "github.com/janpfeifer/captureGo/internal/state/statetest"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
	"pgregory.net/rapid"
)

func init() {
	klog.InitFlags(nil)
}

func TestOpenGrid(t *testing.T) {
	grid := NewGrid(5, 5)
	goal := func(c Cell) bool { return c.X == 2 }
	path, stats := planner.PlanWithStats(grid, Cell{X: 0, Y: 0}, goal)
	require.Equal(t, 2, path.Len())
	assert.Equal(t, 2, stats.Depth)
	end, ok := planner.Replay(grid, Cell{X: 0, Y: 0}, path.Actions())
	require.True(t, ok)
	assert.True(t, goal(end))

	// Start already on the goal.
	path = planner.Plan(grid, Cell{X: 2, Y: 4}, goal)
	assert.True(t, path.Empty())
}

func TestCanonicalOrder(t *testing.T) {
	// Both North-first and East-first reach (1,1) in 2 steps: North is expanded first.
	grid := NewGrid(3, 3)
	path := planner.Plan(grid, Cell{X: 0, Y: 0}, func(c Cell) bool { return c == Cell{X: 1, Y: 1} })
	assert.Equal(t, []Direction{North, East}, path.Actions())
}

func TestAroundWalls(t *testing.T) {
	grid := BuildGrid(
		"%%%%%%%",
		"%   % %",
		"% % % %",
		"% %   %",
		"%%%%%%%")
	start := Cell{X: 1, Y: 3}
	goal := planner.BoundaryGoal(5, 1, planner.RowAtMost)
	path := planner.Plan(grid, start, goal)
	assert.Equal(t, 6, path.Len())
	end, ok := planner.Replay(grid, start, path.Actions())
	require.True(t, ok)
	assert.Equal(t, Cell{X: 5, Y: 1}, end)

	// (5,3) is only accepted when looking above row 2.
	path = planner.Plan(grid, start, planner.BoundaryGoal(5, 2, planner.RowAbove))
	assert.Equal(t, 8, path.Len())
}

func TestUnreachableGoal(t *testing.T) {
	grid := BuildGrid(
		"%%%%%%",
		"%  % %",
		"%%%%%%")
	path, stats := planner.PlanWithStats(grid, Cell{X: 1, Y: 1}, planner.BoundaryGoal(4, 1, planner.RowAtMost))
	assert.True(t, path.Empty())
	assert.Equal(t, -1, stats.Depth)
	assert.Equal(t, 2, stats.Expanded)

	// Start on a wall.
	path = planner.Plan(grid, Cell{X: 0, Y: 0}, planner.BoundaryGoal(1, 1, planner.RowAtMost))
	assert.True(t, path.Empty())
}

func TestBoundaryGoal(t *testing.T) {
	atMost := planner.BoundaryGoal(3, 2, planner.RowAtMost)
	assert.True(t, atMost(Cell{X: 3, Y: 2}))
	assert.True(t, atMost(Cell{X: 3, Y: 0}))
	assert.False(t, atMost(Cell{X: 3, Y: 3}))
	assert.False(t, atMost(Cell{X: 2, Y: 0}))
	above := planner.BoundaryGoal(3, 2, planner.RowAbove)
	assert.False(t, above(Cell{X: 3, Y: 2}))
	assert.True(t, above(Cell{X: 3, Y: 3}))

	for _, cmp := range []planner.RowComparison{planner.RowAtMost, planner.RowAbove} {
		parsed, ok := planner.ParseRowComparison(cmp.String())
		assert.True(t, ok)
		assert.Equal(t, cmp, parsed)
	}
	_, ok := planner.ParseRowComparison("sideways")
	assert.False(t, ok)
}

func TestPath(t *testing.T) {
	path := planner.NewPath(East, East, North)
	assert.Equal(t, "[East East North]", path.String())
	action, ok := path.Peek()
	assert.True(t, ok)
	assert.Equal(t, East, action)
	assert.Equal(t, 3, path.Len())
	for _, want := range []Direction{East, East, North} {
		action, ok = path.Pop()
		require.True(t, ok)
		assert.Equal(t, want, action)
	}
	action, ok = path.Pop()
	assert.False(t, ok)
	assert.Equal(t, Stop, action)
	assert.True(t, path.Empty())

	var zero planner.Path
	assert.True(t, zero.Empty())
}

// TestShortestProperty checks on random grids that the path replays without crossing walls, ends on
// a goal cell, and has the length of the shortest maze distance to any goal cell.
func TestShortestProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.IntRange(2, 9).Draw(t, "width")
		height := rapid.IntRange(2, 9).Draw(t, "height")
		walls := rapid.SliceOfN(rapid.Float64Range(0, 1), width*height, width*height).Draw(t, "walls")
		grid := NewGrid(width, height)
		for idx, w := range walls {
			grid.SetWall(grid.CellAt(idx), w < 0.3)
		}
		start := Cell{X: rapid.IntRange(0, width-1).Draw(t, "startX"), Y: rapid.IntRange(0, height-1).Draw(t, "startY")}
		grid.SetWall(start, false)
		column := rapid.IntRange(0, width-1).Draw(t, "column")
		row := rapid.IntRange(0, height-1).Draw(t, "row")
		cmp := planner.RowComparison(rapid.IntRange(0, 1).Draw(t, "cmp"))
		goal := planner.BoundaryGoal(column, row, cmp)

		dist := must.M1(maze.New(context.Background(), grid))
		best := -1
		for c := range grid.Walkable() {
			if !goal(c) {
				continue
			}
			if d, err := dist.Distance(start, c); err == nil && (best < 0 || d < best) {
				best = d
			}
		}

		path := planner.Plan(grid, start, goal)
		if best < 0 {
			if !path.Empty() {
				t.Fatalf("expected empty path to unreachable goal, got %s", path)
			}
			return
		}
		if path.Len() != best {
			t.Fatalf("path %s has length %d, shortest distance is %d", path, path.Len(), best)
		}
		end, ok := planner.Replay(grid, start, path.Actions())
		if !ok {
			t.Fatalf("path %s from %s crosses a wall", path, start)
		}
		if !goal(end) {
			t.Fatalf("path %s from %s ends on %s, not a goal cell", path, start, end)
		}
	})
}
