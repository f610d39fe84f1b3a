// Package traces records the decisions taken by the players during matches, and stores them in
// parquet files for offline analysis.
//
// There is one DecisionRow per turn, with the candidates considered by the evaluator (if the
// player reports them) nested in it.
package traces

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/janpfeifer/captureGo/internal/features"
	"github.com/janpfeifer/captureGo/internal/generics"
	"github.com/janpfeifer/captureGo/internal/match"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	"github.com/pkg/errors"
)

// SchemaVersion is stored in the metadata of the parquet files.
const SchemaVersion = "capture_decision_v1"

// DecisionRow is one turn of a match.
type DecisionRow struct {
	MatchID string `parquet:"match_id,dict"`
	Layout  string `parquet:"layout,dict"`
	Turn    int32  `parquet:"turn"`
	Agent   int32  `parquet:"agent"`
	Team    string `parquet:"team,dict"`

	// X, Y of the agent before the action.
	X int32 `parquet:"x"`
	Y int32 `parquet:"y"`

	Source string  `parquet:"source,dict"`
	Action string  `parquet:"action,dict"`
	Score  float32 `parquet:"score"`

	FoodEatenSinceDeposit int32 `parquet:"food_eaten_since_deposit"`
	ElapsedMicros         int64 `parquet:"elapsed_us"`

	Candidates []CandidateRow `parquet:"candidates"`
}

// CandidateRow is one of the actions considered by the evaluator.
type CandidateRow struct {
	Action  string  `parquet:"action,dict"`
	Score   float32 `parquet:"score"`
	Avoided bool    `parquet:"avoided"`
	Corner  bool    `parquet:"corner"`

	// Features and Defined are indexed by features.Id.
	Features []float32 `parquet:"features"`
	Defined  []bool    `parquet:"defined"`
}

// FromTurn converts a match turn to a DecisionRow.
func FromTurn(layout string, turn *match.Turn) DecisionRow {
	pos := turn.Before.Agents[turn.Agent].Pos.Cell()
	row := DecisionRow{
		MatchID:       turn.MatchId,
		Layout:        layout,
		Turn:          int32(turn.Before.MoveNumber),
		Agent:         int32(turn.Agent),
		Team:          turn.Before.TeamOf(turn.Agent).String(),
		X:             int32(pos.X),
		Y:             int32(pos.Y),
		Source:        "unknown",
		Action:        turn.Action.String(),
		ElapsedMicros: turn.Elapsed.Microseconds(),
	}
	if d := turn.Decision; d != nil {
		row.Source = d.Source.String()
		row.Score = d.Score
		row.FoodEatenSinceDeposit = int32(d.RunState.FoodEatenSinceDeposit)
		for _, candidate := range d.Candidates {
			row.Candidates = append(row.Candidates, CandidateRow{
				Action:   candidate.Action.String(),
				Score:    candidate.Score,
				Avoided:  candidate.Avoided,
				Corner:   candidate.Corner,
				Features: slices.Clone(candidate.Features.Values[:]),
				Defined:  slices.Clone(candidate.Features.Defined[:]),
			})
		}
	}
	return row
}

// Collector accumulates the rows of one or more matches. It is safe for concurrent use, so the
// same Collector can observe matches running in parallel.
type Collector struct {
	Layout string

	mu   sync.Mutex
	rows []DecisionRow
}

// Observe can be used as a match.Observer.
func (c *Collector) Observe(turn *match.Turn) {
	row := FromTurn(c.Layout, turn)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = append(c.rows, row)
}

// Rows returns the rows collected so far.
func (c *Collector) Rows() []DecisionRow {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rows[:len(c.rows):len(c.rows)]
}

// WriteFile writes the rows to a zstd compressed parquet file. It writes to a temporary file first
// and renames it, so readers never see a partial file.
func WriteFile(path string, rows []DecisionRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory for traces %q", path)
	}
	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)
	featureNames := generics.SliceMap(features.Specs[:], func(spec features.Spec) string { return spec.Name })
	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", SchemaVersion),
		parquet.KeyValueMetadata("features", strings.Join(featureNames, ",")),
	); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to write traces to %q", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrapf(err, "failed to rename traces %q to %q", tmpPath, path)
	}
	return nil
}

// ReadFile reads the rows written by WriteFile.
func ReadFile(path string) ([]DecisionRow, error) {
	rows, err := parquet.ReadFile[DecisionRow](path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read traces from %q", path)
	}
	return rows, nil
}
