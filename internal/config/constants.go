package config

const (
	// DefaultDatabasePath is the default path for the sqlite catalog database
	DefaultDatabasePath = "./litwise-books.db"

	DefaultOpenLibraryBaseURL = "https://openlibrary.org"
	DefaultUserAgent          = "LitWise-Books/1.0 (https://github.com/mrlokans/litwise-books)"

	// DefaultTargetCount is how many books a populate run tries to save
	DefaultTargetCount = 50
)
