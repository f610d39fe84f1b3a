package features_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/janpfeifer/captureGo/internal/features"
	"github.com/janpfeifer/captureGo/internal/maze"
	. "github.com/janpfeifer/captureGo/internal/state"
	. "github.com/janpfeifer/captureGo/internal/state/statetest"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
)

func init() {
	klog.InitFlags(nil)
}

// hidden hides the position of one agent.
type hidden struct {
	GameState
	agent int
}

func (h hidden) AgentPosition(agent int) (Position, bool) {
	if agent == h.agent {
		return Position{}, false
	}
	return h.GameState.AgentPosition(agent)
}

func newContext(b, successor GameState, agent int) *features.Context {
	pos, _ := successor.AgentPosition(agent)
	return &features.Context{
		Current:   b,
		Successor: successor,
		Agent:     agent,
		Cell:      pos.Cell(),
		Distances: must.M1(maze.New(context.Background(), b.Grid())),
	}
}

func TestExtract(t *testing.T) {
	b := BuildBoard(
		"%%%%%%%%%%",
		"%1 . .o 2%",
		"%3    . 4%",
		"%%%%%%%%%%")
	successor := MoveAgent(b, 0, Cell{X: 4, Y: 2})
	v := features.Extract(newContext(b, successor, 0))
	want := map[features.Id]float32{
		features.IdSuccessorScore:          -2,
		features.IdDistanceToFood:          1,
		features.IdMinAttackerDistance:     4,
		features.IdMaxAttackerDistance:     5,
		features.IdNearestEnemyCapsule:     2,
		features.IdNearestDistanceFromHome: 0,
	}
	for id, value := range want {
		got, ok := v.Get(id)
		require.Truef(t, ok, "feature %s should be defined", id)
		assert.Equalf(t, value, got, "feature %s", id)
	}
	var w features.Weights
	w[features.IdSuccessorScore] = 9999
	w[features.IdDistanceToFood] = -20
	w[features.IdMinAttackerDistance] = 10
	w[features.IdMaxAttackerDistance] = 1
	w[features.IdNearestEnemyCapsule] = 0.25
	w[features.IdNearestDistanceFromHome] = 1000
	assert.Equal(t, float32(-9999*2-20+40+5+0.5), features.Dot(v, w))

	var buf bytes.Buffer
	features.PrettyPrint(&buf, v, w)
	assert.Contains(t, buf.String(), "minAttackerDistance")
	assert.Contains(t, buf.String(), "score")
	assert.Contains(t, v.String(), "distanceToFood=1")
}

func TestAttackersUndefined(t *testing.T) {
	b := BuildBoard(
		"%%%%%%%%%%",
		"%1 . .o 2%",
		"%3    . 4%",
		"%%%%%%%%%%")
	// Agent 3 is attacking (a Pacman on Red's half), so only agent 1 is defending.
	b = MoveAgent(b, 3, Cell{X: 3, Y: 1})
	successor := MoveAgent(b, 0, Cell{X: 4, Y: 2})
	v := features.Extract(newContext(b, successor, 0))
	minDist, ok := v.Get(features.IdMinAttackerDistance)
	assert.True(t, ok)
	assert.Equal(t, float32(4), minDist)
	assert.False(t, v.IsDefined(features.IdMaxAttackerDistance))

	// Also hiding agent 1 leaves no defender observed.
	v = features.Extract(newContext(b, hidden{successor, 1}, 0))
	assert.False(t, v.IsDefined(features.IdMinAttackerDistance))
	assert.False(t, v.IsDefined(features.IdMaxAttackerDistance))
	_, ok = v.Get(features.IdMinAttackerDistance)
	assert.False(t, ok)
}

func TestNoFoodNorCapsules(t *testing.T) {
	b := BuildBoard(
		"%%%%%%%%",
		"%1.   2%",
		"%%%%%%%%")
	v := features.Extract(newContext(b, b, 0))
	assert.True(t, v.IsDefined(features.IdSuccessorScore))
	assert.Equal(t, float32(0), v.Values[features.IdSuccessorScore])
	assert.False(t, v.IsDefined(features.IdDistanceToFood))
	assert.False(t, v.IsDefined(features.IdNearestEnemyCapsule))

	// Undefined features contribute nothing, whatever their weight.
	var w features.Weights
	for id := range features.NumIds {
		w[id] = 1000
	}
	v.Values[features.IdDistanceToFood] = 7
	dist, _ := v.Get(features.IdNearestDistanceFromHome)
	minAttacker, _ := v.Get(features.IdMinAttackerDistance)
	assert.Equal(t, 1000*(dist+minAttacker), features.Dot(v, w))
}

func TestGeometry(t *testing.T) {
	grid := BuildGrid(
		"%%%%%%",
		"%  % %",
		"%    %",
		"%%%%%%")
	assert.True(t, features.IsCorner(grid, Cell{X: 1, Y: 2}))
	assert.False(t, features.IsCorner(grid, Cell{X: 2, Y: 2}))
	dist := must.M1(maze.New(context.Background(), grid))
	d, ok := features.NearestHomeDistance(dist, grid, TeamRed, Cell{X: 4, Y: 2})
	assert.True(t, ok)
	assert.Equal(t, 3, d) // Red boundary column is 2: (2,1) via (4,1), (3,1).
	d, ok = features.NearestHomeDistance(dist, grid, TeamBlue, Cell{X: 1, Y: 2})
	assert.True(t, ok)
	assert.Equal(t, 3, d) // Blue boundary column is 3: (3,1).

	// Boundary cells walled off from c are skipped.
	grid = BuildGrid(
		"%%%%%%%",
		"%  %% %",
		"%%%%%%%")
	dist = must.M1(maze.New(context.Background(), grid))
	_, ok = features.NearestHomeDistance(dist, grid, TeamRed, Cell{X: 5, Y: 1})
	assert.False(t, ok)
	d, ok = features.NearestHomeDistance(dist, grid, TeamRed, Cell{X: 1, Y: 1})
	assert.True(t, ok)
	assert.Equal(t, 1, d)
}
