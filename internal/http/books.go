package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/litwise-books/internal/database/books"
	"github.com/mrlokans/litwise-books/internal/entities"
)

const (
	defaultSampleSize = 5
	maxSampleSize     = 100
	recentPublished   = 3
)

// BookStatsReader is the read-only view of the books table served over HTTP.
type BookStatsReader interface {
	Stats(ctx context.Context) (books.Stats, error)
	Sample(ctx context.Context, n int) ([]entities.Book, error)
	RecentPublications(ctx context.Context, n int) ([]entities.Book, error)
}

type BooksController struct {
	reader BookStatsReader
}

func NewBooksController(reader BookStatsReader) *BooksController {
	return &BooksController{
		reader: reader,
	}
}

func (controller *BooksController) GetBookStats(c *gin.Context) {
	stats, err := controller.reader.Stats(c.Request.Context())
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"total_books": stats.Total,
		"recent":      stats.Recent,
	})
}

// GetSample mirrors the check command: a few stored books plus the latest publications.
func (controller *BooksController) GetSample(c *gin.Context) {
	limit := defaultSampleSize
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxSampleSize {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	ctx := c.Request.Context()
	sample, err := controller.reader.Sample(ctx, limit)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	recent, err := controller.reader.RecentPublications(ctx, recentPublished)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"books":               sample,
		"count":               len(sample),
		"recent_publications": recent,
	})
}
