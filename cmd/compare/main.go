// compare plays a series of matches between two teams, swapping sides every other match, and
// reports the tally of results.
package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/captureGo/internal/match"
	"github.com/janpfeifer/captureGo/internal/maze"
	"github.com/janpfeifer/captureGo/internal/players"
	_ "github.com/janpfeifer/captureGo/internal/players/default"
	"github.com/janpfeifer/captureGo/internal/profilers"
	. "github.com/janpfeifer/captureGo/internal/state"
	"github.com/janpfeifer/captureGo/internal/traces"
	"github.com/janpfeifer/captureGo/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

var (
	flagTeamA = flag.String("a", "greedy:preset=forager", "Team A: player configurations separated by \";\", "+
		"or \"@<file.yaml>\".")
	flagTeamB       = flag.String("b", "greedy:preset=raider", "Team B, see -a.")
	flagLayout      = flag.String("layout", DefaultLayout, "Name of the embedded layout to play on.")
	flagNumMatches  = flag.Int("num_matches", 20, "Number of matches to play.")
	flagParallelism = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and play "+
		"these many matches simultaneously.")
	flagMaxMoves = flag.Int("max_moves", DefaultMaxMoves, "Max moves (all agents counted) before the game ends.")
	flagNoTUI    = flag.Bool("no_tui", false, "Disable the interactive progress display: print a status line instead.")
	flagTraces   = flag.String("traces", "", "If set, save the decisions of all matches to this parquet file.")
)

// Globals
var (
	// globalCtx used everywhere. It is cancelled when the program is about to exit either by
	// an interrupt (ctrl+C) or by reaching the end.
	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagNumMatches <= 0 || *flagMaxMoves <= 0 {
		klog.Fatalf("Invalid -num_matches=%d or -max_moves=%d", *flagNumMatches, *flagMaxMoves)
	}

	// Capture Control+C
	var globalCancel func()
	globalCtx, globalCancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(globalCancel, 5*time.Second)
	defer globalCancel()

	// Profilers: HTTP profiler server and CPU profile.
	profilers.Setup(globalCtx)
	defer profilers.OnQuit()

	c := &comparison{
		layout: must.M1(LoadLayout(*flagLayout)),
		teamA:  must.M1(players.ParseTeam(*flagTeamA)),
		teamB:  must.M1(players.ParseTeam(*flagTeamB)),
	}
	c.teamA.Name = "A:" + c.teamA.String()
	c.teamB.Name = "B:" + c.teamB.String()
	c.distances = must.M1(maze.New(globalCtx, c.layout.Grid))
	c.tally = match.NewTally(c.teamA.Name, c.teamB.Name, *flagNumMatches)
	if *flagTraces != "" {
		c.collector = &traces.Collector{Layout: c.layout.Name}
	}

	if *flagNoTUI {
		must.M(c.runMatches(globalCtx, c.printStatus))
	} else {
		must.M(runWithTUI(globalCtx, globalCancel, c))
	}
	if globalCtx.Err() != nil {
		fmt.Printf("\nInterrupted: %s\n", globalCtx.Err())
	}
	if c.collector != nil {
		rows := c.collector.Rows()
		must.M(traces.WriteFile(*flagTraces, rows))
		fmt.Printf("Saved %d decisions to %s\n", len(rows), *flagTraces)
	}
}

// comparison holds the state of a series of matches.
type comparison struct {
	layout       *Layout
	teamA, teamB *players.TeamSpec
	distances    *maze.Distancer
	collector    *traces.Collector

	mu    sync.Mutex
	tally *match.Tally
}

// matchUpdate is reported after each match finishes.
type matchUpdate struct {
	MatchIdx int
	Result   *match.Result // nil if the match failed.
	Err      error
	Tally    match.Tally
}

// runMatches plays all matches, calling report after each one.
// Failed matches are logged and counted, but they don't stop the other matches.
func (c *comparison) runMatches(ctx context.Context, report func(matchUpdate)) error {
	var wg errgroup.Group
	wg.SetLimit(getParallelism())
	for matchIdx := range *flagNumMatches {
		wg.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			result, err := c.runMatch(ctx, matchIdx)
			c.mu.Lock()
			if err != nil {
				klog.Errorf("Match #%d failed: %+v", matchIdx, err)
				c.tally.RecordFailure()
			} else {
				c.tally.Record(matchIdx, result)
			}
			update := matchUpdate{MatchIdx: matchIdx, Result: result, Err: err, Tally: *c.tally}
			c.mu.Unlock()
			report(update)
			return nil
		})
	}
	return wg.Wait()
}

// runMatch plays the matchIdx-th match. Panics in the players are returned as errors.
func (c *comparison) runMatch(ctx context.Context, matchIdx int) (result *match.Result, err error) {
	red, blue := c.teamA, c.teamB
	if !match.IsARed(matchIdx) {
		red, blue = blue, red
	}
	opts := match.Options{
		Name:      fmt.Sprintf("Match-%05d", matchIdx),
		MaxMoves:  *flagMaxMoves,
		Distances: c.distances,
	}
	if c.collector != nil {
		opts.Observer = c.collector.Observe
	}
	panicErr := exceptions.TryCatch[error](func() {
		result, err = match.Run(ctx, c.layout, red, blue, opts)
	})
	if panicErr != nil {
		return nil, errors.WithMessagef(panicErr, "panic during %s", opts.Name)
	}
	return
}

// printStatus is used when the TUI is disabled.
func (c *comparison) printStatus(update matchUpdate) {
	if update.Result != nil {
		klog.V(1).Infof("%s", update.Result)
	}
	fmt.Printf("\r%s\033[0K", &update.Tally)
	if update.Tally.Played == update.Tally.Total {
		fmt.Println()
	}
}

// getParallelism returns the parallelism.
func getParallelism() (parallelism int) {
	parallelism = runtime.GOMAXPROCS(0)
	if *flagParallelism > 0 {
		parallelism = *flagParallelism
	}
	return
}
