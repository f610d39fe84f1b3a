package agents

import (
	"math/rand/v2"

	. "github.com/janpfeifer/captureGo/internal/state"
)

// RandomAgent chooses uniformly among the legal actions, Stop included.
type RandomAgent struct {
	Index int

	rng  *rand.Rand
	last Decision
}

// NewRandom creates a RandomAgent. If seed is 0 a random seed is used.
func NewRandom(index int, seed uint64) *RandomAgent {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &RandomAgent{Index: index, rng: rand.New(rand.NewPCG(seed, uint64(index)))}
}

// RegisterInitialState is a no-op.
func (r *RandomAgent) RegisterInitialState(gs GameState) error { return nil }

// ChooseAction returns a random legal action.
func (r *RandomAgent) ChooseAction(gs GameState) Direction {
	actions := gs.LegalActions(r.Index)
	action := Stop
	if len(actions) > 0 {
		action = actions[r.rng.IntN(len(actions))]
	}
	r.last = Decision{Agent: r.Index, Action: action, Source: SourceRandom}
	return action
}

// LastDecision returns the last action chosen.
func (r *RandomAgent) LastDecision() Decision { return r.last }
