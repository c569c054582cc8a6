package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mrlokans/litwise-books/internal/database"
	"github.com/mrlokans/litwise-books/internal/database/books"
	"github.com/mrlokans/litwise-books/internal/importers"
	"github.com/mrlokans/litwise-books/internal/metadata"
	"github.com/mrlokans/litwise-books/internal/report"
)

// ErrNothingSaved makes populate exit non-zero when a run adds no books.
var ErrNothingSaved = errors.New("no books were added to the database")

// PopulateCmd fetches a diverse set of books and stores the new ones.
type PopulateCmd struct {
	Count int `short:"n" help:"Number of books to add. Defaults to POPULATE_TARGET_COUNT (50)."`
}

func (c *PopulateCmd) Run(env *Env) error {
	target := c.Count
	if target <= 0 {
		target = env.Config.Populate.TargetCount
	}

	slog.Info("Initializing database...", "database", env.Config.Database.Describe())
	db, err := database.NewDatabase(env.Config.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database, check your database configuration: %w", err)
	}
	defer db.Close()

	repo := books.NewRepository(db.DB)
	showStats(env.Ctx, env.Out, repo)

	client := metadata.NewOpenLibraryClient(env.Config.OpenLibrary)
	result := importers.NewPopulator(client, repo).Run(env.Ctx, target)
	report.Result(env.Out, result)

	if result.Saved == 0 {
		return ErrNothingSaved
	}

	slog.Info("Successfully populated database", "saved", result.Saved)
	showStats(env.Ctx, env.Out, repo)
	return nil
}

// showStats logs and carries on when the statistics query fails.
func showStats(ctx context.Context, out io.Writer, repo *books.Repository) {
	stats, err := repo.Stats(ctx)
	if err != nil {
		slog.Error("Error getting database stats", "error", err)
		return
	}
	report.Stats(out, stats)
}
