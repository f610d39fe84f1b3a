package match

import (
	"fmt"
	"strings"
	"time"

	. "github.com/janpfeifer/captureGo/internal/state"
)

// Tally accumulates the results of a series of matches between two teams, "A" and "B", that
// alternate sides. It is not safe for concurrent use.
type Tally struct {
	A, B  string
	Total int

	// WinsAsRed and WinsAsBlue are indexed by 0 for team A and 1 for team B.
	WinsAsRed, WinsAsBlue [2]int
	Draws                 int

	// Played includes the interrupted and failed matches.
	Played, Interrupted, Failed int

	// ScoreA is the sum of the final scores, from the point of view of team A.
	ScoreA int

	Moves, SlowTurns, IllegalActions int
	Start                            time.Time
}

// NewTally creates a Tally for total matches between teams a and b.
func NewTally(a, b string, total int) *Tally {
	return &Tally{A: a, B: b, Total: total, Start: time.Now()}
}

// IsARed returns whether team A plays Red in the matchIdx-th match: sides are swapped every
// other match.
func IsARed(matchIdx int) bool {
	return matchIdx%2 == 0
}

// Record the result of the matchIdx-th match.
func (t *Tally) Record(matchIdx int, r *Result) {
	t.Played++
	t.Moves += r.Moves
	t.SlowTurns += r.SlowTurns
	t.IllegalActions += r.IllegalActions
	if r.Interrupted {
		t.Interrupted++
		return
	}
	aRed := IsARed(matchIdx)
	if aRed {
		t.ScoreA += r.Score
	} else {
		t.ScoreA -= r.Score
	}
	switch r.Winner {
	case TeamInvalid:
		t.Draws++
	case TeamRed:
		if aRed {
			t.WinsAsRed[0]++
		} else {
			t.WinsAsRed[1]++
		}
	case TeamBlue:
		if aRed {
			t.WinsAsBlue[1]++
		} else {
			t.WinsAsBlue[0]++
		}
	}
}

// RecordFailure of a match that could not be played to the end.
func (t *Tally) RecordFailure() {
	t.Played++
	t.Failed++
}

// Wins of team A (idx=0) or B (idx=1).
func (t *Tally) Wins(idx int) int {
	return t.WinsAsRed[idx] + t.WinsAsBlue[idx]
}

// String implements fmt.Stringer, in one line.
func (t *Tally) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Played %d of %d: ", t.Played, t.Total))
	for idx, name := range []string{t.A, t.B} {
		parts = append(parts, fmt.Sprintf("%s: %d wins (Red: %d, Blue: %d) / ",
			name, t.Wins(idx), t.WinsAsRed[idx], t.WinsAsBlue[idx]))
	}
	parts = append(parts, fmt.Sprintf("%d draws, score %+d", t.Draws, t.ScoreA))
	if t.Interrupted > 0 || t.Failed > 0 {
		parts = append(parts, fmt.Sprintf(", %d interrupted, %d failed", t.Interrupted, t.Failed))
	}
	parts = append(parts, fmt.Sprintf(" - %s", time.Since(t.Start).Round(time.Second)))
	return strings.Join(parts, "")
}
