package state

import (
	"fmt"
	"slices"

	"github.com/gomlx/exceptions"
)

const (
	// DefaultMaxMoves is the number of agent moves (all agents counted) after which the game ends.
	DefaultMaxMoves = 1200

	// ScaredMoves is the number of own moves a ghost remains scared after the opponents eat a capsule.
	ScaredMoves = 40

	// MinFoodLeft on a half ends the game, once all food taken from it is deposited.
	MinFoodLeft = 2
)

// AgentState holds the dynamic information of one agent.
type AgentState struct {
	Spawn Cell
	Pos   Position

	// IsPacman is true while the agent is on the opponent's half.
	IsPacman bool

	// ScaredTimer counts the agent's own remaining moves as a scared ghost.
	ScaredTimer int

	// Carried food cells, in the order eaten. They are restored to the board if the agent is eaten.
	Carried []Cell
}

// Board is the reference capture-the-flag engine. It implements GameState.
//
// Boards are immutable once shared: Act returns a modified clone.
type Board struct {
	grid     *Grid
	food     []bool
	capsules []Cell

	Agents []AgentState

	// Score is positive when Red leads.
	Score int

	// MoveNumber starts at 1 and is incremented at every agent move.
	MoveNumber, MaxMoves int
	NextAgent            int
}

// Assert Board is a GameState.
var _ GameState = (*Board)(nil)

// NewBoard creates the initial board for the layout.
func NewBoard(layout *Layout) *Board {
	b := &Board{
		grid:       layout.Grid,
		food:       make([]bool, layout.Grid.NumCells()),
		capsules:   slices.Clone(layout.Capsules),
		Agents:     make([]AgentState, len(layout.Spawns)),
		MoveNumber: 1,
		MaxMoves:   DefaultMaxMoves,
	}
	for _, c := range layout.Food {
		b.food[b.grid.Index(c)] = true
	}
	for agent, spawn := range layout.Spawns {
		b.Agents[agent] = AgentState{Spawn: spawn, Pos: spawn.Position()}
	}
	return b
}

// Clone makes a deep copy of the board. The grid is shared, since it is immutable.
func (b *Board) Clone() *Board {
	newB := &Board{}
	*newB = *b
	newB.food = slices.Clone(b.food)
	newB.capsules = slices.Clone(b.capsules)
	newB.Agents = slices.Clone(b.Agents)
	for ii := range newB.Agents {
		newB.Agents[ii].Carried = slices.Clone(b.Agents[ii].Carried)
	}
	return newB
}

// Grid implements GameState.
func (b *Board) Grid() *Grid { return b.grid }

// NumAgents implements GameState.
func (b *Board) NumAgents() int { return len(b.Agents) }

// TeamOf implements GameState.
func (b *Board) TeamOf(agent int) Team { return TeamOfAgent(agent) }

// AgentPosition implements GameState. The reference engine has full observability.
func (b *Board) AgentPosition(agent int) (Position, bool) {
	return b.Agents[agent].Pos, true
}

// IsPacman implements GameState.
func (b *Board) IsPacman(agent int) bool { return b.Agents[agent].IsPacman }

// ScaredTimer returns the number of own moves the agent remains scared.
func (b *Board) ScaredTimer(agent int) int { return b.Agents[agent].ScaredTimer }

// HasWall implements GameState.
func (b *Board) HasWall(c Cell) bool { return b.grid.IsWall(c) }

// HasFood implements GameState.
func (b *Board) HasFood(c Cell) bool {
	return b.grid.InBounds(c) && b.food[b.grid.Index(c)]
}

// Food implements GameState.
func (b *Board) Food(side Team) (cells []Cell) {
	for idx, has := range b.food {
		if !has {
			continue
		}
		if c := b.grid.CellAt(idx); b.grid.HomeHalf(side, c) {
			cells = append(cells, c)
		}
	}
	return
}

// Capsules implements GameState.
func (b *Board) Capsules(side Team) (cells []Cell) {
	for _, c := range b.capsules {
		if b.grid.HomeHalf(side, c) {
			cells = append(cells, c)
		}
	}
	return
}

// LegalActions implements GameState: moves that don't hit a wall, plus Stop.
func (b *Board) LegalActions(agent int) []Direction {
	actions := make([]Direction, 0, NumDirections)
	for dir := range b.grid.Neighbours(b.Agents[agent].Pos.Cell()) {
		actions = append(actions, dir)
	}
	return append(actions, Stop)
}

// IsLegal returns whether the agent can take the action.
func (b *Board) IsLegal(agent int, action Direction) bool {
	if action == Stop {
		return true
	}
	return action < Stop && !b.grid.IsWall(b.Agents[agent].Pos.Cell().Move(action))
}

// Successor implements GameState.
func (b *Board) Successor(agent int, action Direction) GameState {
	return b.Act(agent, action)
}

// Act returns the board after the agent takes the action. It panics if the action is not legal,
// since the engine never offers illegal actions.
func (b *Board) Act(agent int, action Direction) *Board {
	if agent < 0 || agent >= len(b.Agents) {
		exceptions.Panicf("Board.Act: invalid agent %d, there are only %d agents", agent, len(b.Agents))
	}
	if !b.IsLegal(agent, action) {
		exceptions.Panicf("Board.Act: agent %d can't move %s from %s", agent, action, b.Agents[agent].Pos)
	}
	newB := b.Clone()
	team := TeamOfAgent(agent)
	a := &newB.Agents[agent]
	pos := a.Pos.Cell().Move(action)
	a.Pos = pos.Position()
	a.IsPacman = !newB.grid.HomeHalf(team, pos)

	if a.IsPacman {
		idx := newB.grid.Index(pos)
		if newB.food[idx] {
			newB.food[idx] = false
			a.Carried = append(a.Carried, pos)
		}
		if capIdx := slices.Index(newB.capsules, pos); capIdx >= 0 {
			newB.capsules = slices.Delete(newB.capsules, capIdx, capIdx+1)
			for _, opp := range Opponents(newB, agent) {
				newB.Agents[opp].ScaredTimer = ScaredMoves
			}
		}
	} else if len(a.Carried) > 0 {
		newB.Score += teamSign(team) * len(a.Carried)
		a.Carried = nil
	}
	newB.resolveCollisions(agent)
	if a.ScaredTimer > 0 {
		a.ScaredTimer--
	}
	newB.MoveNumber++
	newB.NextAgent = (agent + 1) % len(newB.Agents)
	return newB
}

func teamSign(team Team) int {
	if team == TeamRed {
		return 1
	}
	return -1
}

// resolveCollisions between the agent that just moved and the opponents sharing its cell.
func (b *Board) resolveCollisions(agent int) {
	pos := b.Agents[agent].Pos.Cell()
	for _, opp := range Opponents(b, agent) {
		if b.Agents[opp].Pos.Cell() != pos {
			continue
		}
		pacman, ghost := agent, opp
		if !b.Agents[agent].IsPacman {
			pacman, ghost = opp, agent
		}
		if !b.Agents[pacman].IsPacman || b.Agents[ghost].IsPacman {
			// Two pacmen or two ghosts: they may share a cell.
			continue
		}
		if b.Agents[ghost].ScaredTimer > 0 {
			b.respawn(ghost)
		} else {
			b.respawn(pacman)
		}
		if b.Agents[agent].Pos.Cell() != pos {
			// The moving agent was eaten, no more collisions to resolve.
			return
		}
	}
}

// respawn sends the agent back to its spawn cell, returning the food it carried to the board.
func (b *Board) respawn(agent int) {
	a := &b.Agents[agent]
	for _, c := range a.Carried {
		b.food[b.grid.Index(c)] = true
	}
	a.Carried = nil
	a.Pos = a.Spawn.Position()
	a.IsPacman = false
	a.ScaredTimer = 0
}

// carriedFrom returns how much food taken from side's half is still being carried.
func (b *Board) carriedFrom(side Team) (total int) {
	for agent := range b.Agents {
		if TeamOfAgent(agent) != side {
			total += len(b.Agents[agent].Carried)
		}
	}
	return
}

// IsFinished returns whether the game is over: too few food left on one of the halves, or
// the maximum number of moves was reached.
func (b *Board) IsFinished() bool {
	return b.FinishReason() != ""
}

// FinishReason describes why the game finished, or returns "" if it is not finished.
func (b *Board) FinishReason() string {
	for _, side := range []Team{TeamRed, TeamBlue} {
		if len(b.Food(side)) <= MinFoodLeft && b.carriedFrom(side) == 0 {
			return fmt.Sprintf("%s team food exhausted", side)
		}
	}
	if b.MoveNumber > b.MaxMoves {
		return fmt.Sprintf("max moves (%d) reached", b.MaxMoves)
	}
	return ""
}

// Winner returns the team leading on score, or TeamInvalid for a draw.
func (b *Board) Winner() Team {
	switch {
	case b.Score > 0:
		return TeamRed
	case b.Score < 0:
		return TeamBlue
	}
	return TeamInvalid
}
