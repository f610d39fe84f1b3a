// capture plays one match between two teams on a layout, optionally displaying every move in the
// terminal and saving the decisions taken by the players as a parquet trace file.
package main

import (
	"context"
	"flag"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/janpfeifer/captureGo/internal/match"
	"github.com/janpfeifer/captureGo/internal/players"
	_ "github.com/janpfeifer/captureGo/internal/players/default"
	"github.com/janpfeifer/captureGo/internal/profilers"
	. "github.com/janpfeifer/captureGo/internal/state"
	"github.com/janpfeifer/captureGo/internal/traces"
	"github.com/janpfeifer/captureGo/internal/ui/cli"
	"github.com/janpfeifer/captureGo/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

var (
	flagLayout = flag.String("layout", DefaultLayout, "Name of the embedded layout to play on.")
	flagRed    = flag.String("red", players.DefaultPlayerConfig,
		"Red team: player configurations separated by \";\" (one per agent, the last one is repeated), "+
			"or \"@<file.yaml>\" with the team description.")
	flagBlue     = flag.String("blue", players.DefaultPlayerConfig, "Blue team, see -red.")
	flagWatch    = flag.Bool("watch", false, "Display the board after every move.")
	flagDelay    = flag.Duration("delay", 100*time.Millisecond, "Pause after each move displayed with -watch.")
	flagColor    = flag.Bool("color", true, "Use colors when displaying the board.")
	flagMaxMoves = flag.Int("max_moves", DefaultMaxMoves, "Max moves (all agents counted) before the game ends.")
	flagTraces   = flag.String("traces", "", "If set, save the decisions of the match to this parquet file.")
	flagList     = flag.Bool("list", false, "List the available layouts and player modules, and exit.")

	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagList {
		fmt.Printf("Layouts: %v\n", LayoutNames())
		fmt.Printf("Player modules: %v\n", players.ModuleNames())
		return
	}
	if *flagMaxMoves <= 0 {
		klog.Fatalf("Invalid -max_moves=%d", *flagMaxMoves)
	}

	// Capture Control+C
	var cancel func()
	globalCtx, cancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()

	profilers.Setup(globalCtx)
	defer profilers.OnQuit()

	layout := must.M1(LoadLayout(*flagLayout))
	red := must.M1(players.ParseTeam(*flagRed))
	blue := must.M1(players.ParseTeam(*flagBlue))
	ui := cli.New(*flagColor, *flagWatch)

	var observers []match.Observer
	collector := &traces.Collector{Layout: layout.Name}
	if *flagTraces != "" {
		observers = append(observers, collector.Observe)
	}
	var moves atomic.Int64
	observers = append(observers, func(turn *match.Turn) { moves.Store(int64(turn.After.MoveNumber - 1)) })
	if *flagWatch {
		observers = append(observers, func(turn *match.Turn) {
			ui.PrintTurn(turn)
			time.Sleep(*flagDelay)
		})
	}

	var s *spinning.Spinning
	if !*flagWatch {
		s = spinning.New(globalCtx, func() string { return fmt.Sprintf("move %d of %d", moves.Load(), *flagMaxMoves) })
	}
	result, err := match.Run(globalCtx, layout, red, blue, match.Options{
		Name:     fmt.Sprintf("%s vs %s", red, blue),
		MaxMoves: *flagMaxMoves,
		Observer: func(turn *match.Turn) {
			for _, observer := range observers {
				observer(turn)
			}
		},
	})
	if s != nil {
		s.Done()
	}
	if err != nil {
		klog.Exitf("Failed to run match: %+v", err)
	}
	if !*flagWatch {
		ui.Print(result.Final, nil)
	}
	ui.PrintResult(result)

	if *flagTraces != "" {
		rows := collector.Rows()
		must.M(traces.WriteFile(*flagTraces, rows))
		fmt.Printf("Saved %d decisions to %s\n", len(rows), *flagTraces)
	}
}
