// Package profilers implement helper functions to set up profiling for the capture programs.
//
// If linked, it will install the profiler flags.
package profilers

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagProfiler   = flag.Int("prof", -1, "If set, runs the profile at the given port.")
	flagCPUProfile = flag.String("cpu_profile", "", "write cpu profile to `file`")
	flagMemProfile = flag.String("mem_profile", "", "write a heap profile to `file` at exit")

	profilerServer *http.Server
	profilerMu     sync.Mutex

	// globalCtx is set on the call to Setup.
	globalCtx context.Context
)

// Setup starts the HTTP (flag -prof) and CPU profilers (flag -cpu_profile), if they were configured.
// You should follow with a deferred call to OnQuit, which also writes the heap profile (flag -mem_profile).
func Setup(ctx context.Context) {
	globalCtx = ctx
	if *flagProfiler >= 0 {
		setupHTTPProfiler()
	}
	if *flagCPUProfile != "" {
		createCPUProfile()
	}
}

// OnQuit should be called before the exit of the main() function, typically this is setup as a deferred call
// just after Setup.
func OnQuit() {
	if *flagCPUProfile != "" {
		pprof.StopCPUProfile()
	}
	if *flagMemProfile != "" {
		writeHeapProfile()
	}
	if *flagProfiler >= 0 {
		httpProfilerOnQuit()
	}
}

// createCPUProfile creates the file pointed by *flagCPUProfile and starts the CPU profiling there.
func createCPUProfile() {
	f, err := os.Create(*flagCPUProfile)
	if err != nil {
		klog.Fatal("could not create CPU profile: ", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		klog.Fatal("could not start CPU profile: ", err)
	}
}

// writeHeapProfile writes the heap profile to *flagMemProfile.
func writeHeapProfile() {
	f, err := os.Create(*flagMemProfile)
	if err != nil {
		klog.Errorf("could not create heap profile: %v", err)
		return
	}
	defer func() { _ = f.Close() }()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		klog.Errorf("could not write heap profile: %v", err)
	}
}

// setupHTTPProfiler starts the pprof server on the port given by -prof. It is shut down when the
// context given to Setup is cancelled, or by OnQuit.
func setupHTTPProfiler() {
	server := &http.Server{Addr: fmt.Sprintf("localhost:%d", *flagProfiler)}
	profilerMu.Lock()
	profilerServer = server
	profilerMu.Unlock()
	klog.Infof("Profiler serving on http://%s/debug/pprof, e.g.: $ go tool pprof http://%s/debug/pprof/heap",
		server.Addr, server.Addr)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			klog.Errorf("profiler server failed: %v", err)
		}
	}()
	go func() {
		<-globalCtx.Done()
		httpProfilerOnQuit()
	}()
}

// httpProfilerOnQuit shuts down the pprof server, if it is running.
func httpProfilerOnQuit() {
	profilerMu.Lock()
	defer profilerMu.Unlock()
	if profilerServer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := profilerServer.Shutdown(ctx); err != nil {
		klog.Warningf("profiler server shutdown: %v", err)
	}
	profilerServer = nil
}
