package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/datatug/dirstats/pkg/cli"
)

var osExit = os.Exit
var run = cli.RunSummary

func main() {
	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			osExit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	osExit(code)
}
