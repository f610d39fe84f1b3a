package traces

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/janpfeifer/captureGo/internal/features"
	"github.com/janpfeifer/captureGo/internal/match"
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
}

func TestWriteAndRead(t *testing.T) {
	layout := must.M1(LoadLayout("tinyCapture"))
	collector := &Collector{Layout: layout.Name}
	red := &players.TeamSpec{Agents: []string{"greedy:preset=forager,seed=3"}}
	blue := &players.TeamSpec{Agents: []string{"greedy:preset=raider,seed=5", "random:seed=7"}}
	result, err := match.Run(context.Background(), layout, red, blue, match.Options{MaxMoves: 80, Observer: collector.Observe})
	require.NoError(t, err)
	rows := collector.Rows()
	require.Len(t, rows, result.Moves)

	var evaluatorRows int
	for ii, row := range rows {
		assert.Equal(t, result.Id, row.MatchID)
		assert.Equal(t, int32(ii%len(layout.Spawns)), row.Agent)
		if row.Source == "evaluator" {
			evaluatorRows++
			require.NotEmpty(t, row.Candidates)
			for _, candidate := range row.Candidates {
				assert.Len(t, candidate.Features, int(features.NumIds))
				assert.Len(t, candidate.Defined, int(features.NumIds))
			}
		}
		if row.Agent == 3 {
			// Random agent.
			assert.Equal(t, "random", row.Source)
			assert.Empty(t, row.Candidates)
		}
	}
	assert.Positive(t, evaluatorRows)

	path := filepath.Join(t.TempDir(), "traces", "tiny.parquet")
	require.NoError(t, WriteFile(path, rows))
	assert.NoFileExists(t, path+".tmp")
	loaded, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, loaded, len(rows))
	for ii := range rows {
		assert.Equal(t, rows[ii].Turn, loaded[ii].Turn)
		assert.Equal(t, rows[ii].Action, loaded[ii].Action)
		assert.Equal(t, rows[ii].Source, loaded[ii].Source)
		assert.Equal(t, rows[ii].Team, loaded[ii].Team)
		assert.Equal(t, len(rows[ii].Candidates), len(loaded[ii].Candidates))
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.parquet"))
	assert.Error(t, err)
}
