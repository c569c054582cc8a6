package importers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/litwise-books/internal/database/books"
	"github.com/mrlokans/litwise-books/internal/entities"
	"github.com/mrlokans/litwise-books/internal/metadata"
)

// CatalogSource supplies candidate documents and their work details.
//
// Implementations:
//   - metadata.OpenLibraryClient
type CatalogSource interface {
	GetDiverseCollection(ctx context.Context, limit int) []metadata.SearchDoc
	GetWorkDetail(ctx context.Context, workKey string) *metadata.WorkDetail
}

// BookSaver persists a normalized book.
//
// Implementations:
//   - books.Repository
type BookSaver interface {
	Save(ctx context.Context, book *entities.Book) books.SaveOutcome
}

var (
	_ CatalogSource = (*metadata.OpenLibraryClient)(nil)
	_ BookSaver     = (*books.Repository)(nil)
)

// PopulateResult summarizes a single Run.
type PopulateResult struct {
	RunID      string
	Candidates int
	Saved      int
	Skipped    int
	Failed     int
}

// Populator handles the import workflow:
// collect → enrich → normalize → save, until the target count is reached.
type Populator struct {
	catalog CatalogSource
	saver   BookSaver
	now     func() time.Time
}

// NewPopulator creates a populator reading from catalog and writing through saver.
func NewPopulator(catalog CatalogSource, saver BookSaver) *Populator {
	return &Populator{catalog: catalog, saver: saver, now: time.Now}
}

// Run imports up to target books. It never returns an error: item failures are
// tallied and skipped, and a structural failure or panic reports zero saved.
func (p *Populator) Run(ctx context.Context, target int) (result PopulateResult) {
	result.RunID = uuid.NewString()
	logger := slog.With("run_id", result.RunID)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Error during book fetching process", "panic", fmt.Sprint(r))
			result = PopulateResult{RunID: result.RunID, Candidates: result.Candidates}
		}
	}()

	if p == nil || p.catalog == nil || p.saver == nil {
		logger.Error("Populator is not configured with a catalog and a store")
		return result
	}

	logger.Info("Starting to fetch books from Open Library", "target", target)

	candidates := p.catalog.GetDiverseCollection(ctx, target)
	result.Candidates = len(candidates)
	if len(candidates) == 0 {
		logger.Error("No books found from Open Library")
		return result
	}

	logger.Info("Processing books", "count", len(candidates))

	for i, doc := range candidates {
		if err := ctx.Err(); err != nil {
			logger.Warn("Run interrupted", "error", err, "processed", i)
			break
		}

		logger.Info(fmt.Sprintf("Processing book %d/%d", i+1, len(candidates)), "title", doc.Title)

		book := p.normalize(ctx, doc)

		switch p.saver.Save(ctx, &book) {
		case books.Saved:
			result.Saved++
		case books.AlreadyExists:
			result.Skipped++
		default:
			result.Failed++
		}

		if result.Saved >= target {
			break
		}
	}

	logger.Info("Finished populating books",
		"saved", result.Saved,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"candidates", result.Candidates,
	)
	return result
}

// normalize builds the record without detail first and upgrades it when the
// work detail can be fetched.
func (p *Populator) normalize(ctx context.Context, doc metadata.SearchDoc) entities.Book {
	now := p.now()
	book := metadata.NormalizeBook(doc, nil, now)

	if doc.Key == "" {
		return book
	}
	if detail := p.catalog.GetWorkDetail(ctx, doc.Key); detail != nil {
		book = metadata.NormalizeBook(doc, detail, now)
	}
	return book
}
