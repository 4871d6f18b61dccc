package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hookprobe/internal/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hookprobe: %v\n", err)
	}
	stop()
	os.Exit(errors.ExitCode(err))
}
