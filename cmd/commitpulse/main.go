package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bashhack/commitpulse/internal/config"
)

// Set through -ldflags at release time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// signalGrace is how long an interrupted run gets to unwind before exiting
const signalGrace = 5 * time.Second

func main() {
	app := NewDefaultApp(config.VersionInfo{Version: version, Commit: commit, Date: date})

	for _, step := range []func() error{app.Config.ParseFlags, app.Initialize} {
		if err := step(); err != nil {
			_, _ = fmt.Fprintf(app.Stderr, "❌ Error: %v\n", err)
			app.exit(1)
			return
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watchSignals(app, cancel)

	err := app.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		_, _ = fmt.Fprintf(app.Stderr, "❌ Error: %v\n", err)
	}
	app.PrintSummary()
	_ = app.Close()
	if err != nil {
		app.exit(1)
	}
}

// watchSignals cancels the run on SIGINT, SIGTERM or SIGHUP. Cancellation
// stops in-flight git commands but not a pacing sleep, so after signalGrace
// the process exits regardless.
func watchSignals(app *App, cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	sig := <-sigs
	_, _ = fmt.Fprintf(app.Stdout, "\nReceived signal %v, stopping commitpulse...\n", sig)
	cancel()
	time.Sleep(signalGrace)

	app.CleanupOnSignal()
	app.exit(1)
}
