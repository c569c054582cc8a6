// Package cli implements the command line interface: populate, check and
// status-server.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/mrlokans/litwise-books/internal/config"
	"github.com/mrlokans/litwise-books/internal/logging"
)

const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// CLI represents the complete command structure.
type CLI struct {
	LogLevel string           `help:"Log level (debug, info, warn, error). Overrides LOG_LEVEL." placeholder:"LEVEL"`
	Version  kong.VersionFlag `help:"Print version and exit."`

	Populate     PopulateCmd     `cmd:"" help:"Fetch books from Open Library and store them in the database."`
	Check        CheckCmd        `cmd:"" help:"Test the database connection and show sample data."`
	StatusServer StatusServerCmd `cmd:"" name:"status-server" help:"Serve read-only health and stats endpoints."`
}

// Env carries what every command needs at run time.
type Env struct {
	Ctx     context.Context
	Config  *config.Config
	Out     io.Writer
	Version string
}

// NewParser builds the kong parser for cli.
func NewParser(cli *CLI, version string, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("litwise-books"),
		kong.Description("Populate a book database from the Open Library catalog."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	}, options...)
	return kong.New(cli, options...)
}

// Execute parses args, runs the selected command and returns the process exit code.
func Execute(ctx context.Context, args []string, out io.Writer, version string) int {
	config.LoadEnvFiles()
	cfg := config.NewConfig()

	var cli CLI
	parser, err := NewParser(&cli, version, kong.Writers(out, os.Stderr))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitFailure
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return ExitUsage
	}

	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	logging.Setup(os.Stderr, cfg.Log.Level)

	env := &Env{Ctx: ctx, Config: cfg, Out: out, Version: version}
	if err := kctx.Run(env); err != nil {
		if errors.Is(err, ErrNothingSaved) {
			slog.Error("No books were added to the database")
		} else {
			slog.Error("Command failed", "error", err)
		}
		return ExitFailure
	}
	return ExitOK
}
