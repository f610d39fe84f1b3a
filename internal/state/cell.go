// Package state holds the capture-the-flag game state: the walled grid, the agents, food and
// capsules, and the rules that generate successor states.
package state

import (
	"fmt"
	"github.com/chewxy/math32"
)

// Cell packages the integer x, y coordinates of a grid square. X grows to the East and Y grows
// to the North.
type Cell struct {
	X, Y int
}

// String returns a text representation of Cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Move returns the cell reached by one step in direction d. Stop returns c itself.
func (c Cell) Move(d Direction) Cell {
	dx, dy := d.Vector()
	return Cell{c.X + dx, c.Y + dy}
}

// Position returns the grid aligned Position of the cell.
func (c Cell) Position() Position {
	return Position{float32(c.X), float32(c.Y)}
}

// Position is a location reported by the engine. Some engines move agents half a cell per
// update, in which case the position is not grid aligned until the move completes.
type Position struct {
	X, Y float32
}

// Cell returns the nearest cell to the position.
func (p Position) Cell() Cell {
	return Cell{int(math32.Round(p.X)), int(math32.Round(p.Y))}
}

// IsGridAligned returns whether the position is exactly over a cell.
func (p Position) IsGridAligned() bool {
	return p.Cell().Position() == p
}

// String returns a text representation of Position.
func (p Position) String() string {
	if p.IsGridAligned() {
		return p.Cell().String()
	}
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}

// Direction of an action. Stop keeps the agent in place.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
	Stop

	// NumDirections including Stop.
	NumDirections
)

// Directions enumerates the four moving directions in the canonical expansion order.
var Directions = [4]Direction{North, South, East, West}

var directionNames = [NumDirections]string{"North", "South", "East", "West", "Stop"}

// String returns the direction name.
func (d Direction) String() string {
	if d >= NumDirections {
		return fmt.Sprintf("Direction(%d)", d)
	}
	return directionNames[d]
}

// Vector returns the unit step of the direction.
func (d Direction) Vector() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case South:
		return 0, -1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}

// ParseDirection converts a direction name (case-sensitive, as returned by String) back to a Direction.
func ParseDirection(name string) (Direction, bool) {
	for ii, n := range directionNames {
		if n == name {
			return Direction(ii), true
		}
	}
	return Stop, false
}

// Team is either Red, which defends the left (West) half of the grid, or Blue, which defends
// the right (East) half.
type Team uint8

const (
	TeamRed Team = iota
	TeamBlue

	// TeamInvalid is used for draws and unset values.
	TeamInvalid
)

var teamNames = [3]string{"Red", "Blue", "Invalid"}

// String returns the team name.
func (t Team) String() string {
	if t > TeamInvalid {
		return teamNames[TeamInvalid]
	}
	return teamNames[t]
}

// Opponent returns the other team.
func (t Team) Opponent() Team {
	switch t {
	case TeamRed:
		return TeamBlue
	case TeamBlue:
		return TeamRed
	}
	return TeamInvalid
}

// TeamOfAgent returns the team of the agent index: even indices are Red, odd ones are Blue.
func TeamOfAgent(agent int) Team {
	return Team(agent % 2)
}
