// Package statetest provides helper functions to create tests using capture game states.
package statetest

import (
	"strings"

	. "github.com/janpfeifer/captureGo/internal/state"
	"github.com/janpfeifer/must"
)

// BuildLayout parses the given rows (top row first) as a layout, and panics on errors.
func BuildLayout(rows ...string) *Layout {
	return must.M1(ParseLayout("test", strings.Join(rows, "\n")))
}

// BuildBoard creates a board from the given rows (top row first). See ParseLayout for the glyphs.
func BuildBoard(rows ...string) *Board {
	return NewBoard(BuildLayout(rows...))
}

// BuildGrid creates a Grid from the given rows (top row first): '%' marks walls, any other
// character is open.
func BuildGrid(rows ...string) *Grid {
	height := len(rows)
	width := len(rows[0])
	grid := NewGrid(width, height)
	for row, line := range rows {
		for x, glyph := range line {
			if glyph == GlyphWall {
				grid.SetWall(Cell{X: x, Y: height - 1 - row}, true)
			}
		}
	}
	return grid
}

// MoveAgent returns a copy of the board with the agent teleported to the cell, with its Pacman
// status updated. No food is eaten and no collisions are resolved.
func MoveAgent(b *Board, agent int, c Cell) *Board {
	newB := b.Clone()
	newB.Agents[agent].Pos = c.Position()
	newB.Agents[agent].IsPacman = !newB.Grid().HomeHalf(TeamOfAgent(agent), c)
	return newB
}
