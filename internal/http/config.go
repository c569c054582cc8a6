package http

// RouterConfig contains the dependencies needed to create the status router.
type RouterConfig struct {
	Database Pinger
	Books    BookStatsReader

	// Application info
	Version string
}
