// Command nlsplit splits NetLogo BehaviorSpace experiments into
// independently schedulable runs.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nlogo-labs/nlsplit/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
