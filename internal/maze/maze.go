// Package maze implements the maze-distance oracle: the precomputed length of the shortest
// walkable path between any two cells of a grid.
//
// The Distancer is immutable after construction, and can be shared by all agents of all
// matches played on the same grid.
package maze

import (
	"context"
	"runtime"

	. "github.com/janpfeifer/captureGo/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// ErrUnreachable is returned by Distancer.Distance for cells that are walls, out of the grid or
// in disconnected regions.
var ErrUnreachable = errors.New("cell unreachable")

// unreachable marks a missing distance in the table.
const unreachable = int32(-1)

// Distancer holds the all-pairs shortest path distances of the walkable cells of a grid.
type Distancer struct {
	grid *Grid

	// cellIdx maps grid indices to walkable cell numbers, -1 for walls.
	cellIdx []int32
	cells   []Cell

	// distances is a numCells x numCells table.
	distances []int32
}

// New precomputes the distances of the grid, running one breadth-first search per walkable cell.
// Searches are distributed over GOMAXPROCS goroutines, and ctx can interrupt the computation.
func New(ctx context.Context, grid *Grid) (*Distancer, error) {
	d := &Distancer{
		grid:    grid,
		cellIdx: make([]int32, grid.NumCells()),
	}
	for idx := range d.cellIdx {
		d.cellIdx[idx] = unreachable
	}
	for c := range grid.Walkable() {
		d.cellIdx[grid.Index(c)] = int32(len(d.cells))
		d.cells = append(d.cells, c)
	}
	numCells := len(d.cells)
	d.distances = make([]int32, numCells*numCells)

	var wg errgroup.Group
	wg.SetLimit(runtime.GOMAXPROCS(0))
	for source := range numCells {
		wg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d.bfsFrom(source, d.distances[source*numCells:(source+1)*numCells])
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, errors.Wrapf(err, "maze distances computation interrupted")
	}
	klog.V(1).Infof("Maze distances computed for %dx%d grid: %d walkable cells",
		grid.Width(), grid.Height(), numCells)
	return d, nil
}

// bfsFrom fills row with the distances from the source cell number to all others.
func (d *Distancer) bfsFrom(source int, row []int32) {
	for ii := range row {
		row[ii] = unreachable
	}
	row[source] = 0
	queue := make([]int32, 0, len(row))
	queue = append(queue, int32(source))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range d.grid.Neighbours(d.cells[current]) {
			nextIdx := d.cellIdx[d.grid.Index(next)]
			if row[nextIdx] != unreachable {
				continue
			}
			row[nextIdx] = row[current] + 1
			queue = append(queue, nextIdx)
		}
	}
}

// Grid for which the distances were computed.
func (d *Distancer) Grid() *Grid { return d.grid }

// NumCells returns the number of walkable cells.
func (d *Distancer) NumCells() int { return len(d.cells) }

func (d *Distancer) cellNumber(c Cell) int32 {
	if !d.grid.InBounds(c) {
		return unreachable
	}
	return d.cellIdx[d.grid.Index(c)]
}

// Distance returns the maze distance between a and b, or ErrUnreachable if either one is a wall,
// is outside the grid, or if they are not connected.
func (d *Distancer) Distance(a, b Cell) (int, error) {
	aIdx, bIdx := d.cellNumber(a), d.cellNumber(b)
	if aIdx == unreachable || bIdx == unreachable {
		return 0, ErrUnreachable
	}
	dist := d.distances[int(aIdx)*len(d.cells)+int(bIdx)]
	if dist == unreachable {
		return 0, ErrUnreachable
	}
	return int(dist), nil
}

// Reachable returns whether there is a walkable path between a and b.
func (d *Distancer) Reachable(a, b Cell) bool {
	_, err := d.Distance(a, b)
	return err == nil
}
