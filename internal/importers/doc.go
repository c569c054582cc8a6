// Package importers provides the catalog import pipeline.
//
// # Architecture
//
// The pipeline follows a simple sequential flow:
//
//	CatalogSource → SearchDoc → (+ WorkDetail) → metadata.NormalizeBook → entities.Book → BookSaver
//
// Candidates are drawn once per run from CatalogSource.GetDiverseCollection.
// For every candidate with a work key the populator asks for the work detail;
// a missing detail leaves the record without a description and never drops
// the item. Each record is then handed to BookSaver, whose outcome decides
// whether it counts towards the target.
//
// # Example Usage
//
//	client := metadata.NewOpenLibraryClient(cfg.OpenLibrary)
//	repo := books.NewRepository(db.DB)
//
//	populator := importers.NewPopulator(client, repo)
//	result := populator.Run(ctx, 50)
//	if result.Saved == 0 {
//		// nothing was added
//	}
package importers
