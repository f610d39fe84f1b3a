// Package _default registers the default players that can be included in any
// front-end for captureGo.
//
// Currently, it includes the greedy agent ("greedy") and the random agent ("random").
package _default

import (
	"github.com/janpfeifer/captureGo/internal/agents"
	"github.com/janpfeifer/captureGo/internal/parameters"
	"github.com/janpfeifer/captureGo/internal/planner"
	"github.com/janpfeifer/captureGo/internal/players"
	"github.com/pkg/errors"
)

func init() {
	players.RegisterModule("greedy", &Greedy{})
	players.RegisterModule("random", &Random{})
}

// Greedy creates agents.Agent players.
//
// Parameters:
//
//   - preset (string): "forager" (default) or "raider", the base configuration.
//   - food_weight (float): weight of the distance to the nearest food.
//   - capsules (bool): seek capsules when defenders are around.
//   - avoid (int): maze distance to opponents under which actions are avoided, 0 disables it.
//   - goal (string): "le" or "gt", the rows of the opponent's boundary targeted by the initial path.
//   - seed (int): random seed for tie-breaking, 0 for a random one.
type Greedy struct{}

// Assert Greedy implements Module.
var _ players.Module = (*Greedy)(nil)

// NewPlayer implements players.Module.
func (g *Greedy) NewPlayer(match players.MatchInfo, agent int, params parameters.Params) (players.Player, error) {
	config, err := GreedyConfig(params)
	if err != nil {
		return nil, err
	}
	return agents.New(config, agent).WithDistances(match.Distances), nil
}

// GreedyConfig builds the agents.Config from the parameters, popping the ones it uses.
func GreedyConfig(params parameters.Params) (config agents.Config, err error) {
	presetName, err := parameters.PopParamOr(params, "preset", agents.Forager.Name)
	if err != nil {
		return
	}
	var found bool
	config, found = agents.Preset(presetName)
	if !found {
		err = errors.Errorf("unknown greedy preset %q, valid values are \"forager\" and \"raider\"", presetName)
		return
	}
	if config.FoodDistanceWeight, err = parameters.PopParamOr(params, "food_weight", config.FoodDistanceWeight); err != nil {
		return
	}
	if config.CapsuleSeeking, err = parameters.PopParamOr(params, "capsules", config.CapsuleSeeking); err != nil {
		return
	}
	if config.AvoidRadius, err = parameters.PopParamOr(params, "avoid", config.AvoidRadius); err != nil {
		return
	}
	goal, err := parameters.PopParamOr(params, "goal", config.GoalRow.String())
	if err != nil {
		return
	}
	if config.GoalRow, found = planner.ParseRowComparison(goal); !found {
		err = errors.Errorf("invalid greedy goal=%q, valid values are \"le\" and \"gt\"", goal)
		return
	}
	config.Seed, err = parameters.PopParamOr(params, "seed", config.Seed)
	return
}

// Random creates agents.RandomAgent players. It takes an optional "seed" (int) parameter.
type Random struct{}

// Assert Random implements Module.
var _ players.Module = (*Random)(nil)

// NewPlayer implements players.Module.
func (r *Random) NewPlayer(match players.MatchInfo, agent int, params parameters.Params) (players.Player, error) {
	seed, err := parameters.PopParamOr(params, "seed", uint64(0))
	if err != nil {
		return nil, err
	}
	return agents.NewRandom(agent, seed), nil
}
