package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/checkdk/checkdk/internal/adapters/inbound/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cli.ExecuteContext(ctx)
	if errors.Is(ctx.Err(), context.Canceled) {
		os.Exit(130)
	}
	if err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
