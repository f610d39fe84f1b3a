package state

import (
	"iter"
	"strings"
)

// Grid is the immutable wall map of a game. Cells outside the bounds are considered walls.
type Grid struct {
	width, height int
	walls         []bool
}

// NewGrid creates an open grid (no walls) of the given dimensions.
func NewGrid(width, height int) *Grid {
	return &Grid{width: width, height: height, walls: make([]bool, width*height)}
}

// Width of the grid in cells.
func (g *Grid) Width() int { return g.width }

// Height of the grid in cells.
func (g *Grid) Height() int { return g.height }

// NumCells in the grid, walls included.
func (g *Grid) NumCells() int { return g.width * g.height }

// InBounds returns whether c is inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.width && c.Y < g.height
}

// Index of the cell in a flat width*height array. Only valid for cells InBounds.
func (g *Grid) Index(c Cell) int {
	return c.Y*g.width + c.X
}

// CellAt is the inverse of Index.
func (g *Grid) CellAt(idx int) Cell {
	return Cell{idx % g.width, idx / g.width}
}

// IsWall returns whether c is a wall. Out-of-bounds cells are walls.
func (g *Grid) IsWall(c Cell) bool {
	if !g.InBounds(c) {
		return true
	}
	return g.walls[g.Index(c)]
}

// SetWall is used while building the grid; grids should not be changed once shared.
func (g *Grid) SetWall(c Cell, wall bool) {
	if g.InBounds(c) {
		g.walls[g.Index(c)] = wall
	}
}

// Walkable iterates over all cells that are not walls, row by row from the bottom.
func (g *Grid) Walkable() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for idx, wall := range g.walls {
			if wall {
				continue
			}
			if !yield(g.CellAt(idx)) {
				return
			}
		}
	}
}

// Neighbours iterates over the walkable neighbours of c in the canonical direction order,
// along with the direction that leads to each of them.
func (g *Grid) Neighbours(c Cell) iter.Seq2[Direction, Cell] {
	return func(yield func(Direction, Cell) bool) {
		for _, dir := range Directions {
			next := c.Move(dir)
			if g.IsWall(next) {
				continue
			}
			if !yield(dir, next) {
				return
			}
		}
	}
}

// String renders walls as '%' and open cells as ' ', top row first.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := g.height - 1; y >= 0; y-- {
		for x := range g.width {
			if g.IsWall(Cell{x, y}) {
				sb.WriteByte('%')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// HomeHalf returns whether c lies on team's half of the grid: Red owns x < width/2 and Blue owns
// x >= width/2.
func (g *Grid) HomeHalf(team Team, c Cell) bool {
	mid := g.width / 2
	if team == TeamRed {
		return c.X < mid
	}
	return c.X >= mid
}

// BoundaryColumn returns the column of team's half that touches the midline.
func (g *Grid) BoundaryColumn(team Team) int {
	mid := g.width / 2
	if team == TeamRed {
		return mid - 1
	}
	return mid
}
