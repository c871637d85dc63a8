// Command reviewtool is the CLI entrypoint for the scan review tool.
//
// It scaffolds review sessions from folders of scans, finalizes reviewed
// sessions into numbered review folders, replays mapping files and keeps
// an optional journal of past runs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancel on SIGINT/SIGTERM so a finalization can remove its partial
	// output before exiting.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(os.Stderr, "Received interrupt, stopping…")
			cancel()
		case <-ctx.Done():
		}
	}()

	a := newApp(os.Stdout, os.Stderr)
	defer a.close()
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		a.fail(err)
		return 1
	}
	return 0
}
