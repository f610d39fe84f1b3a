package match_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/janpfeifer/captureGo/internal/agents"
	"github.com/janpfeifer/captureGo/internal/match"
	"github.com/janpfeifer/captureGo/internal/maze"
	"github.com/janpfeifer/captureGo/internal/parameters"
	"github.com/janpfeifer/captureGo/internal/players"
	_ "github.com/janpfeifer/captureGo/internal/players/default"
	. "github.com/janpfeifer/captureGo/internal/state"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
)

func init() {
	klog.InitFlags(nil)
	players.RegisterModule("west", westModule{})
}

// westPlayer always walks West, even into walls.
type westPlayer struct{}

func (westPlayer) RegisterInitialState(gs GameState) error { return nil }
func (westPlayer) ChooseAction(gs GameState) Direction     { return West }

type westModule struct{}

func (westModule) NewPlayer(match players.MatchInfo, agent int, params parameters.Params) (players.Player, error) {
	return westPlayer{}, nil
}

func team(configs ...string) *players.TeamSpec {
	return &players.TeamSpec{Agents: configs}
}

func TestRun(t *testing.T) {
	layout := must.M1(LoadLayout("tinyCapture"))
	var turns, pathTurns, evaluatorTurns int
	opts := match.Options{
		Name:     "tiny",
		MaxMoves: 300,
		Observer: func(turn *match.Turn) {
			turns++
			assert.Equal(t, turn.Before.MoveNumber+1, turn.After.MoveNumber)
			if TeamOfAgent(turn.Agent) == TeamRed {
				require.NotNil(t, turn.Decision)
				assert.Equal(t, turn.Action, turn.Decision.Action)
				switch turn.Decision.Source {
				case agents.SourcePath:
					pathTurns++
				case agents.SourceEvaluator:
					evaluatorTurns++
				}
			}
		},
	}
	r, err := match.Run(context.Background(), layout, team("greedy:seed=1", "greedy:preset=raider,seed=2"),
		team("random:seed=3"), opts)
	require.NoError(t, err)
	assert.False(t, r.Interrupted)
	assert.Equal(t, "tiny", r.Name)
	assert.Equal(t, "tinyCapture", r.Layout)
	_, err = uuid.Parse(r.Id)
	assert.NoError(t, err)
	assert.True(t, r.Final.IsFinished())
	assert.NotEmpty(t, r.Reason)
	assert.Equal(t, r.Moves, turns)
	assert.Equal(t, r.Final.Winner(), r.Winner)
	assert.Zero(t, r.IllegalActions)
	assert.Positive(t, pathTurns)
	assert.Positive(t, evaluatorTurns)
	assert.Contains(t, r.String(), "tiny")
}

func TestIllegalActions(t *testing.T) {
	layout := must.M1(LoadLayout("tinyCapture"))
	r, err := match.Run(context.Background(), layout, team("west"), team("west"), match.Options{MaxMoves: 8})
	require.NoError(t, err)
	assert.Equal(t, 8, r.Moves)
	// The Red agents spawn against the West wall, Blue agents can walk West.
	assert.Positive(t, r.IllegalActions)
	assert.Equal(t, TeamInvalid, r.Winner)
}

func TestInterrupted(t *testing.T) {
	layout := must.M1(LoadLayout("tinyCapture"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := match.Run(ctx, layout, team("random"), team("random"), match.Options{})
	assert.ErrorIs(t, err, context.Canceled)

	// With precomputed distances the match starts, and stops right away.
	distances := must.M1(maze.New(context.Background(), layout.Grid))
	r, err := match.Run(ctx, layout, team("random"), team("random"), match.Options{Distances: distances})
	require.NoError(t, err)
	assert.True(t, r.Interrupted)
	assert.Zero(t, r.Moves)
	assert.Equal(t, TeamInvalid, r.Winner)
}

func TestBadTeams(t *testing.T) {
	layout := must.M1(LoadLayout("tinyCapture"))
	_, err := match.Run(context.Background(), layout, team("greedy:preset=unknown"), team("random"), match.Options{})
	assert.Error(t, err)
	assert.Equal(t, []int{1, 3}, match.AgentsOf(TeamBlue, 4))
}
