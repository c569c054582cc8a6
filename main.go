package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrlokans/litwise-books/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, Version+" ("+Commit+")")
	stop()
	os.Exit(code)
}
