// Package features implements the hand-designed features used to score the state reached by a
// candidate action.
//
// Each feature has an Id, and its value is stored in a fixed-schema Vector along with a flag
// telling whether it could be computed: features that are not defined (e.g. distance to food
// when there is no food left) contribute nothing to the score.
package features

import (
	"slices"

	"github.com/janpfeifer/captureGo/internal/generics"
	. "github.com/janpfeifer/captureGo/internal/state"
	"k8s.io/klog/v2"
)

// Id represents an enum of the features.
type Id uint8

// Setter is the signature of a feature setter: it reads the context and sets the feature(s) it is
// responsible for in v, if they are defined.
type Setter func(ctx *Context, spec *Spec, v *Vector)

const (
	// IdSuccessorScore is the negated count of opponent-half food still present in the successor
	// state: eating food increases it.
	IdSuccessorScore Id = iota

	// IdDistanceToFood is the maze distance to the nearest opponent-half food. Not defined when no
	// food remains.
	IdDistanceToFood

	// IdMinAttackerDistance is the maze distance to the nearest observed opponent that is not a
	// Pacman (that is, defending its half). Not defined if there are none.
	IdMinAttackerDistance

	// IdMaxAttackerDistance is the maze distance to the farthest observed defender. Only defined when
	// at least two defenders are observed.
	IdMaxAttackerDistance

	// IdNearestEnemyCapsule is the maze distance to the nearest capsule on the opponent's half of the
	// current (not the successor) state.
	IdNearestEnemyCapsule

	// IdNearestDistanceFromHome is the maze distance to the nearest walkable cell of the agent's home
	// boundary column.
	IdNearestDistanceFromHome

	// NumIds defined -- this must always be the last enum.
	NumIds
)

// Spec holds the name and setter of a feature.
type Spec struct {
	Id     Id
	Name   string
	Setter Setter
}

// Specs enumerates in order the features extracted by Extract.
var Specs = [NumIds]Spec{
	{IdSuccessorScore, "successorScore", fSuccessorScore},
	{IdDistanceToFood, "distanceToFood", fDistanceToFood},
	{IdMinAttackerDistance, "minAttackerDistance", fAttackerDistance},
	{IdMaxAttackerDistance, "maxAttackerDistance", fAttackerDistance},
	{IdNearestEnemyCapsule, "nearestEnemyCapsule", fNearestEnemyCapsule},
	{IdNearestDistanceFromHome, "nearestDistanceFromHome", fNearestDistanceFromHome},
}

func init() {
	for ii := range Specs {
		if Specs[ii].Id != Id(ii) {
			klog.Fatalf("features.Specs index %d for %s doesn't match constant.", ii, Specs[ii].Name)
		}
	}
}

// String returns the feature name.
func (id Id) String() string {
	if id >= NumIds {
		return "unknown"
	}
	return Specs[id].Name
}

// Distancer is the maze-distance oracle used by the features. It is implemented by maze.Distancer.
type Distancer interface {
	// Distance returns the maze distance between two cells, or an error if they are not connected.
	Distance(a, b Cell) (int, error)
}

// Context for the extraction of the features of one candidate action.
type Context struct {
	// Current state, where the decision is being made.
	Current GameState

	// Successor state after the candidate action (both half-steps already applied).
	Successor GameState

	// Agent making the decision, and Cell it occupies in the Successor state.
	Agent int
	Cell  Cell

	Distances Distancer
}

// Team of the agent making the decision.
func (ctx *Context) Team() Team {
	return ctx.Current.TeamOf(ctx.Agent)
}

// nearest returns the shortest distance from the context cell to any of the targets.
// Unreachable targets are skipped.
func (ctx *Context) nearest(targets []Cell) (best int, found bool) {
	return generics.MinOf(distancesTo(ctx.Distances, ctx.Cell, slices.Values(targets)))
}

// Extract returns the feature Vector for the given context.
func Extract(ctx *Context) (v Vector) {
	for ii := range Specs {
		spec := &Specs[ii]
		spec.Setter(ctx, spec, &v)
	}
	return
}

func fSuccessorScore(ctx *Context, spec *Spec, v *Vector) {
	food := ctx.Successor.Food(ctx.Team().Opponent())
	v.Set(spec.Id, -float32(len(food)))
}

func fDistanceToFood(ctx *Context, spec *Spec, v *Vector) {
	if d, found := ctx.nearest(ctx.Successor.Food(ctx.Team().Opponent())); found {
		v.Set(spec.Id, float32(d))
	}
}

// DefenderDistances returns the distances from the context cell to the observed opponents that are
// not Pacmen in the successor state. Unreachable ones are skipped.
func DefenderDistances(ctx *Context) (distances []int) {
	for _, opponent := range Opponents(ctx.Successor, ctx.Agent) {
		pos, observed := ctx.Successor.AgentPosition(opponent)
		if !observed || ctx.Successor.IsPacman(opponent) {
			continue
		}
		d, err := ctx.Distances.Distance(ctx.Cell, pos.Cell())
		if err != nil {
			continue
		}
		distances = append(distances, d)
	}
	return
}

func fAttackerDistance(ctx *Context, spec *Spec, v *Vector) {
	distances := DefenderDistances(ctx)
	if spec.Id == IdMaxAttackerDistance {
		if len(distances) < 2 {
			return
		}
		d, _ := generics.MaxOf(slices.Values(distances))
		v.Set(spec.Id, float32(d))
		return
	}
	if d, found := generics.MinOf(slices.Values(distances)); found {
		v.Set(spec.Id, float32(d))
	}
}

func fNearestEnemyCapsule(ctx *Context, spec *Spec, v *Vector) {
	if d, found := ctx.nearest(ctx.Current.Capsules(ctx.Team().Opponent())); found {
		v.Set(spec.Id, float32(d))
	}
}

func fNearestDistanceFromHome(ctx *Context, spec *Spec, v *Vector) {
	if d, found := NearestHomeDistance(ctx.Distances, ctx.Successor.Grid(), ctx.Team(), ctx.Cell); found {
		v.Set(spec.Id, float32(d))
	}
}
