package features

import (
	"iter"

	"github.com/janpfeifer/captureGo/internal/generics"
	. "github.com/janpfeifer/captureGo/internal/state"
)

// diagonals of a cell, checked by IsCorner.
var diagonals = [4][2]int{{1, 1}, {-1, -1}, {-1, 1}, {1, -1}}

// IsCorner returns whether at least 3 of the 4 diagonal neighbours of c are walls: a cell from
// which it's easy to get trapped.
//
// It is not used in the score, only reported in the decisions.
func IsCorner(grid *Grid, c Cell) bool {
	var walls int
	for _, d := range diagonals {
		if grid.IsWall(Cell{X: c.X + d[0], Y: c.Y + d[1]}) {
			walls++
		}
	}
	return walls >= 3
}

// NearestHomeDistance returns the maze distance from c to the nearest walkable cell of team's
// boundary column, and false if none is reachable.
func NearestHomeDistance(dist Distancer, grid *Grid, team Team, c Cell) (best int, found bool) {
	x := grid.BoundaryColumn(team)
	column := func(yield func(Cell) bool) {
		for y := range grid.Height() {
			target := Cell{X: x, Y: y}
			if !grid.IsWall(target) && !yield(target) {
				return
			}
		}
	}
	return generics.MinOf(distancesTo(dist, c, column))
}

// distancesTo yields the maze distances from c to each of the targets. Unreachable targets are
// skipped.
func distancesTo(dist Distancer, c Cell, targets iter.Seq[Cell]) iter.Seq[int] {
	return func(yield func(int) bool) {
		for target := range targets {
			d, err := dist.Distance(c, target)
			if err != nil {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}
