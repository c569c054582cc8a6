package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// Pinger is satisfied by *database.Database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BookCounter is satisfied by *books.Repository.
type BookCounter interface {
	Count(ctx context.Context) (int64, error)
}

// HealthController reports database reachability and, when a counter is
// set, how many books the catalog holds.
type HealthController struct {
	db      Pinger
	books   BookCounter
	version string
}

func NewHealthController(db Pinger, books BookCounter, version string) *HealthController {
	return &HealthController{db: db, books: books, version: version}
}

func (h *HealthController) Status(c *gin.Context) {
	ctx := c.Request.Context()
	checks := make(map[string]string)
	healthy := true

	switch {
	case h.db == nil:
		checks["database"] = "not configured"
	default:
		if err := h.db.Ping(ctx); err != nil {
			checks["database"] = "error: " + err.Error()
			healthy = false
		} else {
			checks["database"] = "ok"
		}
	}

	// The count is meaningless once the ping failed.
	if h.books != nil && healthy {
		total, err := h.books.Count(ctx)
		if err != nil {
			checks["books"] = "error: " + err.Error()
			healthy = false
		} else {
			checks["books"] = strconv.FormatInt(total, 10)
		}
	}

	resp := HealthResponse{
		Status:  statusHealthy,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}
	code := http.StatusOK
	if !healthy {
		resp.Status = statusUnhealthy
		code = http.StatusServiceUnavailable
	}

	c.IndentedJSON(code, resp)
}
