package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// NewRouter creates the read-only status router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	var counter BookCounter
	if c, ok := cfg.Books.(BookCounter); ok {
		counter = c
	}
	health := NewHealthController(cfg.Database, counter, cfg.Version)
	router.GET("/health", health.Status)

	if cfg.Books != nil {
		books := NewBooksController(cfg.Books)
		router.GET("/books/stats", books.GetBookStats)
		router.GET("/books/sample", books.GetSample)
	}

	return router
}

// Serve runs handler on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Status server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	slog.Info("Shutting down status server")
	return server.Shutdown(shutdownCtx)
}
