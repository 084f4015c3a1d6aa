package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/inenv/inenv/cmd"
	"github.com/inenv/inenv/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx, os.Args[1:])
	stop()

	if err != nil {
		cmd.PrintError(os.Stderr, err)
		os.Exit(errors.GetExitCode(err))
	}
}
