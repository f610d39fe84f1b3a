// Package match runs capture games between two teams of players, on the reference engine.
package match

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/janpfeifer/captureGo/internal/agents"
	"github.com/janpfeifer/captureGo/internal/maze"
	"github.com/janpfeifer/captureGo/internal/players"
	. "github.com/janpfeifer/captureGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const (
	// DefaultTurnBudget is the time a player is expected to take to choose an action.
	DefaultTurnBudget = time.Second

	// DefaultInitBudget is the time a player is expected to take in RegisterInitialState.
	DefaultInitBudget = 15 * time.Second
)

// Options of a match. The zero value uses the defaults.
type Options struct {
	// Name of the match, used for logging. Defaults to the match id.
	Name string

	// MaxMoves overrides the DefaultMaxMoves of the board, if > 0.
	MaxMoves int

	// TurnBudget and InitBudget override DefaultTurnBudget and DefaultInitBudget, if > 0.
	// Players exceeding them are only reported (logged and counted), not penalized.
	TurnBudget, InitBudget time.Duration

	// Distances for the layout's grid, shared among matches. If nil, it is computed by Run.
	Distances *maze.Distancer

	// Observer, if not nil, is called after every turn.
	Observer Observer
}

// Turn describes one move of a match, as given to the Observer.
type Turn struct {
	MatchId string
	Agent   int
	Action  Direction

	// Decision of the player, if it implements players.DecisionReporter.
	Decision *agents.Decision

	// Elapsed time taken by the player to choose the action.
	Elapsed time.Duration

	// Before and After the action.
	Before, After *Board
}

// Observer is called after each turn of the match.
type Observer func(turn *Turn)

// Result of a match.
type Result struct {
	Id, Name  string
	Layout    string
	Red, Blue string

	Winner Team
	Score  int
	Reason string

	// Moves is the number of agent moves played.
	Moves int

	// Interrupted is true if the context was cancelled before the end of the match.
	Interrupted bool

	// SlowTurns counts the turns that exceeded the turn budget, and IllegalActions the actions
	// that were replaced by Stop.
	SlowTurns, IllegalActions int

	Duration time.Duration
	Final    *Board
}

// String implements fmt.Stringer.
func (r *Result) String() string {
	if r.Interrupted {
		return fmt.Sprintf("%s: interrupted after %d moves", r.Name, r.Moves)
	}
	winner := "draw"
	switch r.Winner {
	case TeamRed:
		winner = fmt.Sprintf("%s (Red) wins", r.Red)
	case TeamBlue:
		winner = fmt.Sprintf("%s (Blue) wins", r.Blue)
	}
	return fmt.Sprintf("%s: %s, score %d after %d moves, %s", r.Name, winner, r.Score, r.Moves, r.Reason)
}

// AgentsOf returns the indices of the agents of the team, for a game with numAgents.
func AgentsOf(team Team, numAgents int) (indices []int) {
	for agent := range numAgents {
		if TeamOfAgent(agent) == team {
			indices = append(indices, agent)
		}
	}
	return
}

// Run plays a match on the layout between the red and blue teams, until the game finishes or ctx
// is cancelled. An interrupted match is not an error: it returns a Result with Interrupted set.
func Run(ctx context.Context, layout *Layout, red, blue *players.TeamSpec, opts Options) (*Result, error) {
	r := &Result{
		Id:     uuid.NewString(),
		Name:   opts.Name,
		Layout: layout.Name,
		Red:    red.String(),
		Blue:   blue.String(),
		Winner: TeamInvalid,
	}
	if r.Name == "" {
		r.Name = r.Id
	}
	turnBudget, initBudget := opts.TurnBudget, opts.InitBudget
	if turnBudget <= 0 {
		turnBudget = DefaultTurnBudget
	}
	if initBudget <= 0 {
		initBudget = DefaultInitBudget
	}
	start := time.Now()
	distances := opts.Distances
	if distances == nil {
		var err error
		distances, err = maze.New(ctx, layout.Grid)
		if err != nil {
			return nil, errors.WithMessagef(err, "match %s", r.Name)
		}
	}

	board := NewBoard(layout)
	if opts.MaxMoves > 0 {
		board.MaxMoves = opts.MaxMoves
	}
	info := players.MatchInfo{Id: r.Id, Name: r.Name, Distances: distances}
	matchPlayers := make([]players.Player, board.NumAgents())
	for _, team := range []struct {
		Team
		spec *players.TeamSpec
	}{{TeamRed, red}, {TeamBlue, blue}} {
		indices := AgentsOf(team.Team, board.NumAgents())
		teamPlayers, err := players.NewTeam(team.spec, info, indices)
		if err != nil {
			return nil, errors.WithMessagef(err, "match %s, %s team", r.Name, team.Team)
		}
		for ii, agent := range indices {
			matchPlayers[agent] = teamPlayers[ii]
		}
	}
	klog.V(1).Infof("Starting match %s (id %s) on %q: %s (Red) vs %s (Blue)", r.Name, r.Id, layout.Name, r.Red, r.Blue)

	for agent, player := range matchPlayers {
		playerStart := time.Now()
		if err := player.RegisterInitialState(board); err != nil {
			return nil, errors.WithMessagef(err, "match %s, registering agent %d", r.Name, agent)
		}
		if elapsed := time.Since(playerStart); elapsed > initBudget {
			klog.Warningf("match %s: agent %d took %s to initialize, over the budget of %s", r.Name, agent, elapsed, initBudget)
		}
	}

	for !board.IsFinished() {
		if ctx.Err() != nil {
			klog.V(1).Infof("Match %s interrupted: %v", r.Name, ctx.Err())
			r.Interrupted = true
			break
		}
		agent := board.NextAgent
		playerStart := time.Now()
		action := matchPlayers[agent].ChooseAction(board)
		elapsed := time.Since(playerStart)
		if elapsed > turnBudget {
			r.SlowTurns++
			klog.Warningf("match %s: agent %d took %s to move, over the budget of %s", r.Name, agent, elapsed, turnBudget)
		}
		if !board.IsLegal(agent, action) {
			r.IllegalActions++
			klog.Warningf("match %s: agent %d chose illegal action %s at %s, stopping instead", r.Name, agent, action, board.Agents[agent].Pos)
			action = Stop
		}
		next := board.Act(agent, action)
		if opts.Observer != nil {
			turn := &Turn{MatchId: r.Id, Agent: agent, Action: action, Elapsed: elapsed, Before: board, After: next}
			if reporter, ok := matchPlayers[agent].(players.DecisionReporter); ok {
				decision := reporter.LastDecision()
				turn.Decision = &decision
			}
			opts.Observer(turn)
		}
		board = next
		r.Moves++
	}

	r.Final = board
	r.Score = board.Score
	r.Duration = time.Since(start)
	if !r.Interrupted {
		r.Winner = board.Winner()
		r.Reason = board.FinishReason()
	}
	klog.V(1).Infof("Finished %s in %s", r, r.Duration)
	return r, nil
}
