package match_test

import (
	"testing"

	"github.com/janpfeifer/captureGo/internal/match"
	. "github.com/janpfeifer/captureGo/internal/state"
	"github.com/stretchr/testify/assert"
)

func TestTally(t *testing.T) {
	tally := match.NewTally("forager", "raider", 6)
	assert.True(t, match.IsARed(0))
	assert.False(t, match.IsARed(1))

	tally.Record(0, &match.Result{Winner: TeamRed, Score: 5, Moves: 100})  // A as Red wins.
	tally.Record(1, &match.Result{Winner: TeamRed, Score: 2, Moves: 100})  // B as Red wins.
	tally.Record(2, &match.Result{Winner: TeamBlue, Score: -1, Moves: 50}) // B as Blue wins.
	tally.Record(3, &match.Result{Winner: TeamBlue, Score: -4, Moves: 50}) // A as Blue wins.
	tally.Record(4, &match.Result{Winner: TeamInvalid, Moves: 1200, IllegalActions: 3})
	tally.RecordFailure()

	assert.Equal(t, [2]int{1, 1}, tally.WinsAsRed)
	assert.Equal(t, [2]int{1, 1}, tally.WinsAsBlue)
	assert.Equal(t, 2, tally.Wins(0))
	assert.Equal(t, 1, tally.Draws)
	assert.Equal(t, 6, tally.Played)
	assert.Equal(t, 1, tally.Failed)
	assert.Equal(t, 5-2-1+4, tally.ScoreA)
	assert.Equal(t, 1500, tally.Moves)
	assert.Equal(t, 3, tally.IllegalActions)
	assert.Contains(t, tally.String(), "Played 6 of 6: forager: 2 wins (Red: 1, Blue: 1) / raider: 2 wins (Red: 1, Blue: 1) / 1 draws, score +6, 0 interrupted, 1 failed")

	tally.Record(5, &match.Result{Interrupted: true, Winner: TeamInvalid, Moves: 7})
	assert.Equal(t, 1, tally.Interrupted)
	assert.Equal(t, 1, tally.Draws)
}
