// Package database provides the data access layer for the populator.
//
// # Architecture
//
//	database/
//	├── database.go      # Driver selection, connection setup, migrations
//	└── books/           # Deduplicated insert path and catalog statistics
//
// # Usage
//
//	db, err := database.NewDatabase(cfg.Database)
//	if err != nil {
//		// startup failure, exit non-zero
//	}
//	defer db.Close()
//
//	repo := books.NewRepository(db.DB)
//	outcome := repo.Save(ctx, &book)
//
// The connection is opened once per command and passed to the repository;
// there is no package-level connection state.
package database
