package cli

import (
	"fmt"
	"log/slog"

	"github.com/mrlokans/litwise-books/internal/database"
	"github.com/mrlokans/litwise-books/internal/database/books"
	"github.com/mrlokans/litwise-books/internal/report"
)

const (
	checkSampleSize  = 5
	checkRecentLimit = 3
)

// CheckCmd verifies connectivity and prints sample data. It never writes.
type CheckCmd struct{}

func (c *CheckCmd) Run(env *Env) error {
	slog.Info("Testing database connection...", "database", env.Config.Database.Describe())

	db, err := database.NewDatabase(env.Config.Database)
	if err != nil {
		slog.Error("Check your .env file and database configuration")
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	slog.Info("Database connection successful")

	repo := books.NewRepository(db.DB)
	total, err := repo.Count(env.Ctx)
	if err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	slog.Info("Total books in database", "count", total)

	if total == 0 {
		fmt.Fprintln(env.Out, "No books found. Run 'litwise-books populate' to add some books.")
		return nil
	}

	sample, err := repo.Sample(env.Ctx, checkSampleSize)
	if err != nil {
		return fmt.Errorf("load sample books: %w", err)
	}
	report.Sample(env.Out, sample)

	recent, err := repo.RecentPublications(env.Ctx, checkRecentLimit)
	if err != nil {
		return fmt.Errorf("load recent publications: %w", err)
	}
	if len(recent) > 0 {
		report.RecentPublications(env.Out, recent)
	}

	slog.Info("Database test completed successfully")
	return nil
}
