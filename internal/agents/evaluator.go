package agents

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/chewxy/math32"
	"github.com/janpfeifer/captureGo/internal/features"
	"github.com/janpfeifer/captureGo/internal/generics"
	. "github.com/janpfeifer/captureGo/internal/state"
	"k8s.io/klog/v2"
)

// RunState is the information the greedy agent carries from one turn to the next.
type RunState struct {
	// FoodEatenSinceDeposit counts the food eaten on the opponent's half since the agent last
	// crossed back home.
	FoodEatenSinceDeposit int
}

// Source of a decision.
type Source uint8

const (
	SourcePath Source = iota
	SourceEvaluator
	SourceRandom
)

var sourceNames = []string{"path", "evaluator", "random"}

// String returns the source name.
func (s Source) String() string {
	if int(s) < len(sourceNames) {
		return sourceNames[s]
	}
	return fmt.Sprintf("Source(%d)", s)
}

// Candidate is one of the actions considered by the Evaluator, along with how it was scored.
type Candidate struct {
	Action Direction

	// Cell where the agent ends after the action.
	Cell Cell

	// Score of the action. It is -Inf if the action was Avoided.
	Score float32

	// Avoided is set if an opponent was within the avoidance radius of Cell: in which case the
	// features are not extracted.
	Avoided bool

	// Corner is set if Cell is a corner (see features.IsCorner). Informational only.
	Corner bool

	Features features.Vector
	Weights  features.Weights
}

// Decision records how an action was chosen.
type Decision struct {
	Agent  int
	Action Direction
	Source Source

	// Score of the chosen candidate, 0 if not chosen by the Evaluator.
	Score float32

	// Candidates considered by the Evaluator, in the order of the legal actions.
	Candidates []Candidate

	// RunState after the decision.
	RunState RunState
}

// String implements fmt.Stringer.
func (d Decision) String() string {
	if d.Source != SourceEvaluator {
		return fmt.Sprintf("agent %d: %s (%s)", d.Agent, d.Action, d.Source)
	}
	return fmt.Sprintf("agent %d: %s (%s, score=%g, %d candidates, food eaten=%d)",
		d.Agent, d.Action, d.Source, d.Score, len(d.Candidates), d.RunState.FoodEatenSinceDeposit)
}

// Evaluator scores each legal action by looking one move ahead, and picks one of the best.
//
// It holds no state across turns: the RunState is passed to and returned from Decide.
type Evaluator struct {
	Config    Config
	Agent     int
	Distances features.Distancer

	rng *rand.Rand
}

// NewEvaluator creates an Evaluator for the agent. rng is used to break ties between the best
// actions.
func NewEvaluator(config Config, agent int, distances features.Distancer, rng *rand.Rand) *Evaluator {
	return &Evaluator{Config: config, Agent: agent, Distances: distances, rng: rng}
}

// Decide scores all the legal actions except Stop, and returns one chosen uniformly among the
// ones with the highest score, along with the updated RunState.
//
// If Stop is the only legal action, it is returned.
func (e *Evaluator) Decide(gs GameState, rs RunState) (Decision, RunState) {
	decision := Decision{Agent: e.Agent, Action: Stop, Source: SourceEvaluator, RunState: rs}
	actions := slices.DeleteFunc(slices.Clone(gs.LegalActions(e.Agent)), func(a Direction) bool { return a == Stop })
	if len(actions) == 0 {
		klog.V(2).Infof("agent %d: no moves available, stopping", e.Agent)
		return decision, rs
	}

	team := gs.TeamOf(e.Agent)
	capsulesRemain := len(gs.Capsules(team.Opponent())) > 0
	decision.Candidates = make([]Candidate, 0, len(actions))
	scores := make([]float32, 0, len(actions))
	for _, action := range actions {
		candidate := e.evaluate(gs, rs, action, capsulesRemain)
		decision.Candidates = append(decision.Candidates, candidate)
		scores = append(scores, candidate.Score)
	}
	best := generics.ArgMaxAll(scores)
	chosen := decision.Candidates[best[e.rng.IntN(len(best))]]
	decision.Action = chosen.Action
	decision.Score = chosen.Score

	rs = e.update(gs, rs, chosen.Cell)
	decision.RunState = rs
	if klog.V(2).Enabled() {
		klog.Infof("%s", decision)
	}
	return decision, rs
}

// evaluate scores one action.
func (e *Evaluator) evaluate(gs GameState, rs RunState, action Direction, capsulesRemain bool) Candidate {
	successor, cell := Successor(gs, e.Agent, action)
	candidate := Candidate{
		Action: action,
		Cell:   cell,
		Corner: features.IsCorner(gs.Grid(), cell),
	}
	if e.tooClose(gs, cell) {
		candidate.Avoided = true
		candidate.Score = math32.Inf(-1)
		return candidate
	}
	candidate.Features = features.Extract(&features.Context{
		Current:   gs,
		Successor: successor,
		Agent:     e.Agent,
		Cell:      cell,
		Distances: e.Distances,
	})
	candidate.Weights = Weights(e.Config, rs, candidate.Features, capsulesRemain)
	candidate.Score = features.Dot(candidate.Features, candidate.Weights)
	return candidate
}

// tooClose returns whether any observed opponent in the current state is within the avoidance
// radius of cell.
func (e *Evaluator) tooClose(gs GameState, cell Cell) bool {
	if e.Config.AvoidRadius <= 0 {
		return false
	}
	for _, opponent := range Opponents(gs, e.Agent) {
		pos, observed := gs.AgentPosition(opponent)
		if !observed {
			continue
		}
		d, err := e.Distances.Distance(pos.Cell(), cell)
		if err == nil && d <= e.Config.AvoidRadius {
			return true
		}
	}
	return false
}

// update the run state after moving to cell: food eaten on the opponent's half is counted, and
// the count is reset when crossing back home.
func (e *Evaluator) update(gs GameState, rs RunState, cell Cell) RunState {
	grid := gs.Grid()
	team := gs.TeamOf(e.Agent)
	if !grid.HomeHalf(team, cell) && gs.HasFood(cell) {
		rs.FoodEatenSinceDeposit++
	}
	if pos, ok := gs.AgentPosition(e.Agent); ok && !grid.HomeHalf(team, pos.Cell()) && grid.HomeHalf(team, cell) {
		rs.FoodEatenSinceDeposit = 0
	}
	return rs
}
