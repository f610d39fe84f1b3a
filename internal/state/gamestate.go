package state

// GameState is the read-only view of a game that agents query to make decisions.
// Implementations must never be mutated by the callers: Successor returns a new state.
//
// Board implements it, and tests use lightweight fakes.
type GameState interface {
	// NumAgents in the game, including both teams.
	NumAgents() int

	// TeamOf returns the team of the agent.
	TeamOf(agent int) Team

	// LegalActions for the agent, possibly including Stop.
	LegalActions(agent int) []Direction

	// Successor returns the state after the agent takes the action.
	Successor(agent int, action Direction) GameState

	// AgentPosition returns the position of the agent and whether it is currently observed.
	AgentPosition(agent int) (pos Position, observed bool)

	// IsPacman returns whether the agent is currently on the opponent's half, attacking.
	IsPacman(agent int) bool

	// HasFood returns whether there is food in the cell.
	HasFood(c Cell) bool

	// HasWall returns whether the cell is a wall. Out-of-bound cells are walls.
	HasWall(c Cell) bool

	// Food returns the cells with food on side's half, that is, the food side defends.
	Food(side Team) []Cell

	// Capsules returns the capsule cells on side's half.
	Capsules(side Team) []Cell

	// Grid returns the dimensions and walls of the game.
	Grid() *Grid
}

// Opponents returns the indices of the agents on the other team.
func Opponents(gs GameState, agent int) (opponents []int) {
	team := gs.TeamOf(agent)
	for ii := range gs.NumAgents() {
		if gs.TeamOf(ii) != team {
			opponents = append(opponents, ii)
		}
	}
	return
}
