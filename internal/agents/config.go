// Package agents implements the capture-the-flag agents: a greedy agent that first walks a
// planned path to the opponent's boundary and then picks, every turn, the action whose
// successor state scores best on a weighted sum of features; and a random agent.
package agents

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/janpfeifer/captureGo/internal/features"
	"github.com/janpfeifer/captureGo/internal/planner"
)

// Fixed weights, shared by all configurations.
const (
	SuccessorScoreWeight      = 9999
	MinAttackerDistanceWeight = 10
	MaxAttackerDistanceWeight = 1

	// HomeWeight is used for the distance from home once the agent carries food.
	HomeWeight = 1000
)

// Config of a greedy agent.
type Config struct {
	// Name of the configuration, used for logging.
	Name string

	// FoodDistanceWeight is the weight of the distance to the nearest food. It should be negative.
	FoodDistanceWeight float32

	// CapsuleSeeking enables the capsule distance feature, weighted by the inverse of the distance
	// to the nearest defender.
	CapsuleSeeking bool

	// AvoidRadius is the maze distance to an observed opponent under which an action is never
	// taken, if there are other options. 0 disables it.
	AvoidRadius int

	// GoalRow selects the rows of the opponent's boundary column targeted by the initial path:
	// the ones at most or above half the height of the grid.
	GoalRow planner.RowComparison

	// Seed for the tie-breaking random number generator. If 0 a random seed is used.
	Seed uint64
}

var (
	// Forager goes for the lower half of the boundary, seeks capsules when defended and keeps
	// away from opponents.
	Forager = Config{
		Name:               "forager",
		FoodDistanceWeight: -20,
		CapsuleSeeking:     true,
		AvoidRadius:        1,
		GoalRow:            planner.RowAtMost,
	}

	// Raider goes for the upper half of the boundary, and weighs heavily the distance to food.
	Raider = Config{
		Name:               "raider",
		FoodDistanceWeight: -200,
		CapsuleSeeking:     false,
		AvoidRadius:        0,
		GoalRow:            planner.RowAbove,
	}

	// Presets by name.
	Presets = map[string]Config{
		Forager.Name: Forager,
		Raider.Name:  Raider,
	}
)

// Preset returns the configuration preset with the given name.
func Preset(name string) (Config, bool) {
	config, found := Presets[strings.ToLower(name)]
	return config, found
}

// String implements fmt.Stringer.
func (c Config) String() string {
	return fmt.Sprintf("%s(food_weight=%g, capsules=%v, avoid=%d, goal=%s)",
		c.Name, c.FoodDistanceWeight, c.CapsuleSeeking, c.AvoidRadius, c.GoalRow)
}

// Weights returns the weights used to score a feature vector v, given the agent's run state.
//
// The weight of the capsule distance is the inverse of the distance to the nearest defender
// (a distance of 0 counts as 1), and only if capsule seeking is enabled, capsules remain on the
// opponent's half, and some defender was observed. It is 0 otherwise.
func Weights(config Config, rs RunState, v features.Vector, capsulesRemain bool) (w features.Weights) {
	w[features.IdSuccessorScore] = SuccessorScoreWeight
	w[features.IdDistanceToFood] = config.FoodDistanceWeight
	w[features.IdMinAttackerDistance] = MinAttackerDistanceWeight
	w[features.IdMaxAttackerDistance] = MaxAttackerDistanceWeight
	if minDist, ok := v.Get(features.IdMinAttackerDistance); ok && config.CapsuleSeeking && capsulesRemain {
		w[features.IdNearestEnemyCapsule] = 1 / math32.Max(minDist, 1)
	}
	if rs.FoodEatenSinceDeposit >= 1 {
		w[features.IdNearestDistanceFromHome] = HomeWeight
	}
	return
}
