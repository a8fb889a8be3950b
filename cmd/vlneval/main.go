// Command vlneval scores navigation trajectories against ground-truth
// routes through scene connectivity graphs.
//
//	vlneval score --config vlneval.yaml submissions.json
//	vlneval serve --config vlneval.yaml --addr :8080
//	vlneval config --dataset R2R
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
