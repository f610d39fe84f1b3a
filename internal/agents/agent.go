package agents

import (
	"context"
	"math/rand/v2"
	"slices"

	"github.com/janpfeifer/captureGo/internal/maze"
	"github.com/janpfeifer/captureGo/internal/planner"
	. "github.com/janpfeifer/captureGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Agent is the greedy capture agent: at registration it plans a path to the opponent's boundary,
// which it follows at the start of the game. Once the path is consumed, every action is chosen
// by an Evaluator.
type Agent struct {
	Config Config
	Index  int

	distances *maze.Distancer
	path      *planner.Path
	evaluator *Evaluator
	runState  RunState
	last      Decision
	rng       *rand.Rand
}

// New creates a greedy agent with the given configuration, for the agent index.
func New(config Config, index int) *Agent {
	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Agent{
		Config: config,
		Index:  index,
		path:   &planner.Path{},
		rng:    rand.New(rand.NewPCG(seed, uint64(index))),
	}
}

// WithDistances sets a precomputed maze distances oracle for the grid, so RegisterInitialState
// doesn't need to compute it. It returns the agent itself.
func (a *Agent) WithDistances(distances *maze.Distancer) *Agent {
	a.distances = distances
	return a
}

// RegisterInitialState prepares the agent for a new game: it computes the maze distances (if not
// given) and plans the path to the opponent's boundary.
func (a *Agent) RegisterInitialState(gs GameState) error {
	grid := gs.Grid()
	if a.distances == nil || a.distances.Grid() != grid {
		var err error
		a.distances, err = maze.New(context.Background(), grid)
		if err != nil {
			return errors.WithMessagef(err, "agent %d (%s)", a.Index, a.Config.Name)
		}
	}
	a.evaluator = NewEvaluator(a.Config, a.Index, a.distances, a.rng)
	a.runState = RunState{}
	a.last = Decision{}

	pos, observed := gs.AgentPosition(a.Index)
	if !observed {
		return errors.Errorf("agent %d (%s) can't observe its own position", a.Index, a.Config.Name)
	}
	team := gs.TeamOf(a.Index)
	goal := planner.BoundaryGoal(grid.BoundaryColumn(team.Opponent()), grid.Height()/2, a.Config.GoalRow)
	var stats planner.Stats
	a.path, stats = planner.PlanWithStats(grid, pos.Cell(), goal)
	klog.V(1).Infof("agent %d (%s, %s team): planned %d actions to the boundary from %s, %d cells expanded",
		a.Index, a.Config.Name, team, a.path.Len(), pos, stats.Expanded)
	return nil
}

// ChooseAction returns the next action of the planned path while there is one, and otherwise the
// action chosen by the Evaluator.
//
// If the next action of the path is not legal (e.g. the agent was eaten and respawned while
// following it), the rest of the path is dropped.
func (a *Agent) ChooseAction(gs GameState) Direction {
	if a.evaluator == nil {
		klog.Errorf("agent %d (%s): ChooseAction called before RegisterInitialState", a.Index, a.Config.Name)
		if err := a.RegisterInitialState(gs); err != nil {
			klog.Errorf("%+v", err)
			return Stop
		}
	}
	if action, ok := a.path.Pop(); ok {
		if slices.Contains(gs.LegalActions(a.Index), action) {
			a.last = Decision{Agent: a.Index, Action: action, Source: SourcePath, RunState: a.runState}
			klog.V(2).Infof("%s, %d actions left in path", a.last, a.path.Len())
			return action
		}
		klog.V(1).Infof("agent %d (%s): path action %s is not legal, dropping the remaining %d actions",
			a.Index, a.Config.Name, action, a.path.Len())
		a.path = &planner.Path{}
	}
	a.last, a.runState = a.evaluator.Decide(gs, a.runState)
	return a.last.Action
}

// LastDecision returns how the last action was chosen.
func (a *Agent) LastDecision() Decision { return a.last }

// RunState returns the current run state of the agent.
func (a *Agent) RunState() RunState { return a.runState }

// PathLen returns the number of planned actions not yet taken.
func (a *Agent) PathLen() int { return a.path.Len() }
