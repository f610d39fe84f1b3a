package agents

import (
	. "github.com/janpfeifer/captureGo/internal/state"
)

// Successor returns the state after the agent takes the action, and the cell it ends in.
//
// Engines may move agents half a cell per update: if the position after the action is not
// grid aligned, the same action is applied again to complete the move.
func Successor(gs GameState, agent int, action Direction) (GameState, Cell) {
	successor := gs.Successor(agent, action)
	pos, _ := successor.AgentPosition(agent)
	if !pos.IsGridAligned() {
		successor = successor.Successor(agent, action)
		pos, _ = successor.AgentPosition(agent)
	}
	return successor, pos.Cell()
}
