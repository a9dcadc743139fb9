package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"

	"github.com/unikiosk/displays/pkg/cli"
)

func init() {
	// display enumeration callbacks are delivered on the calling OS thread
	runtime.LockOSThread()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// errors are printed by cobra
	if err := cli.RunCLI(ctx); err != nil {
		os.Exit(1)
	}
}
