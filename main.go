package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/badele/wordfreq/internal/cli"
)

func main() {
	var app cli.CLI
	kctx := kong.Parse(&app, cli.Options()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := app.Run(ctx, cli.StdStreams())
	stop()

	kctx.FatalIfErrorf(err)
}
