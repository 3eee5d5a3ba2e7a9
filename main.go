package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kisanmitra/kisanmitra/pkg/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Run(ctx, os.Args); err != nil {
		os.Exit(err.Code)
	}
}
