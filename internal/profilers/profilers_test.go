package profilers

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPProfilerShutdown(t *testing.T) {
	require.NoError(t, flag.Set("prof", "0"))
	defer func() { _ = flag.Set("prof", "-1") }()
	ctx, cancel := context.WithCancel(context.Background())
	Setup(ctx)
	profilerMu.Lock()
	require.NotNil(t, profilerServer)
	profilerMu.Unlock()

	// Cancelling the context shuts the server down, without blocking the program.
	cancel()
	assert.Eventually(t, func() bool {
		profilerMu.Lock()
		defer profilerMu.Unlock()
		return profilerServer == nil
	}, 5*time.Second, 10*time.Millisecond)
	OnQuit()
}

func TestHeapProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heap.prof")
	require.NoError(t, flag.Set("mem_profile", path))
	defer func() { _ = flag.Set("mem_profile", "") }()
	Setup(context.Background())
	OnQuit()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
