package maze_test

import (
	"context"
	"testing"

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

func TestDistances(t *testing.T) {
	grid := BuildGrid(
		"%%%%%%%",
		"%   % %",
		"% % % %",
		"% %   %",
		"%%%%%%%")
	d := must.M1(maze.New(context.Background(), grid))
	assert.Equal(t, 11, d.NumCells())

	for _, test := range []struct {
		a, b Cell
		want int
	}{
		{Cell{X: 1, Y: 3}, Cell{X: 1, Y: 3}, 0},
		{Cell{X: 1, Y: 3}, Cell{X: 3, Y: 3}, 2},
		{Cell{X: 1, Y: 3}, Cell{X: 3, Y: 1}, 4}, // Around the inner wall.
		{Cell{X: 1, Y: 1}, Cell{X: 5, Y: 1}, 8}, // Snake to the other side.
		{Cell{X: 5, Y: 3}, Cell{X: 1, Y: 1}, 10},
	} {
		got, err := d.Distance(test.a, test.b)
		require.NoError(t, err)
		assert.Equalf(t, test.want, got, "distance %s -> %s", test.a, test.b)
		got, err = d.Distance(test.b, test.a)
		require.NoError(t, err)
		assert.Equalf(t, test.want, got, "distance %s -> %s", test.b, test.a)
	}
}

func TestUnreachable(t *testing.T) {
	grid := BuildGrid(
		"%%%%%%",
		"%  % %",
		"%%%%%%")
	d := must.M1(maze.New(context.Background(), grid))
	_, err := d.Distance(Cell{X: 1, Y: 1}, Cell{X: 4, Y: 1})
	assert.ErrorIs(t, err, maze.ErrUnreachable)
	_, err = d.Distance(Cell{X: 1, Y: 1}, Cell{X: 3, Y: 1}) // Wall.
	assert.ErrorIs(t, err, maze.ErrUnreachable)
	_, err = d.Distance(Cell{X: 1, Y: 1}, Cell{X: -1, Y: 7}) // Out of grid.
	assert.ErrorIs(t, err, maze.ErrUnreachable)
	assert.True(t, d.Reachable(Cell{X: 1, Y: 1}, Cell{X: 2, Y: 1}))
	assert.False(t, d.Reachable(Cell{X: 2, Y: 1}, Cell{X: 4, Y: 1}))
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := maze.New(ctx, NewGrid(10, 10))
	assert.ErrorIs(t, err, context.Canceled)
}
