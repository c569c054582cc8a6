package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mrlokans/litwise-books/internal/config"
)

// searchFields is the projection requested from the search endpoint.
const searchFields = "key,title,author_name,first_publish_year,isbn,subject,cover_i,publisher,number_of_pages_median"

// Subjects is the fixed, ordered category list walked by GetDiverseCollection.
var Subjects = []string{
	"fiction", "science fiction", "mystery", "romance", "fantasy",
	"biography", "history", "science", "philosophy", "psychology",
	"business", "self-help", "cooking", "travel", "poetry",
}

// OpenLibraryClient fetches catalog data from the OpenLibrary API.
// Failures are logged and degrade to empty results; no method returns an error.
type OpenLibraryClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	pacer      *pacer
}

// pacer inserts a fixed pause after every successful request.
type pacer struct {
	delay time.Duration
}

func newPacer(delay time.Duration) *pacer {
	return &pacer{delay: delay}
}

func (p *pacer) pause(ctx context.Context) {
	if p == nil || p.delay <= 0 {
		return
	}
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// NewOpenLibraryClient creates a client with the configured timeout and politeness delay.
func NewOpenLibraryClient(cfg config.OpenLibrary) *OpenLibraryClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultOpenLibraryBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}
	return &OpenLibraryClient{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:   baseURL,
		userAgent: userAgent,
		pacer:     newPacer(cfg.RequestDelay),
	}
}

// Search runs a free-text catalog query and returns at most limit raw documents.
func (c *OpenLibraryClient) Search(ctx context.Context, query string, limit int) []SearchDoc {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("fields", searchFields)

	slog.Info("Searching for books", "query", query, "limit", limit)

	var result searchResponse
	if err := c.getJSON(ctx, c.baseURL+"/search.json?"+params.Encode(), &result); err != nil {
		slog.Warn("Error searching books", "query", query, "error", err)
		return []SearchDoc{}
	}

	slog.Info("Found books", "query", query, "count", len(result.Docs))
	if result.Docs == nil {
		return []SearchDoc{}
	}
	return result.Docs
}

// GetWorkDetail fetches a work record. The key may be bare ("OL45883W") or
// already prefixed ("/works/OL45883W"). Returns nil on any failure.
func (c *OpenLibraryClient) GetWorkDetail(ctx context.Context, workKey string) *WorkDetail {
	key := withPrefix(workKey, "/works/")

	slog.Debug("Fetching work details", "key", key)

	var detail WorkDetail
	if err := c.getJSON(ctx, c.baseURL+key+".json", &detail); err != nil {
		slog.Warn("Error fetching work details", "key", key, "error", err)
		return nil
	}
	return &detail
}

// GetEditionDetail fetches an edition record under /books/. Returns nil on any failure.
func (c *OpenLibraryClient) GetEditionDetail(ctx context.Context, editionKey string) *EditionDetail {
	key := withPrefix(editionKey, "/books/")

	slog.Debug("Fetching edition details", "key", key)

	var detail EditionDetail
	if err := c.getJSON(ctx, c.baseURL+key+".json", &detail); err != nil {
		slog.Warn("Error fetching edition details", "key", key, "error", err)
		return nil
	}
	return &detail
}

// SearchBySubject restricts Search to a single subject.
func (c *OpenLibraryClient) SearchBySubject(ctx context.Context, subject string, limit int) []SearchDoc {
	return c.Search(ctx, "subject:"+subject, limit)
}

// GetDiverseCollection spreads up to limit results across Subjects, in order.
// Each subject is asked for ceil(limit/len(Subjects)) documents; collection
// stops once limit is reached and the result is truncated to limit.
func (c *OpenLibraryClient) GetDiverseCollection(ctx context.Context, limit int) []SearchDoc {
	perSubject := BooksPerSubject(limit)
	collected := make([]SearchDoc, 0, max(limit, 0))

	for _, subject := range Subjects {
		if len(collected) >= limit {
			break
		}
		docs := c.SearchBySubject(ctx, subject, perSubject)
		collected = append(collected, docs...)
		slog.Info("Collected books from category", "subject", subject, "count", len(docs))
	}

	if len(collected) > limit {
		collected = collected[:max(limit, 0)]
	}
	return collected
}

// BooksPerSubject is the per-category request size for a diverse collection of limit items.
func BooksPerSubject(limit int) int {
	n := len(Subjects)
	per := (limit + n - 1) / n
	if per < 1 {
		return 1
	}
	return per
}

func (c *OpenLibraryClient) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	c.pacer.pause(ctx)
	return nil
}

func withPrefix(key, prefix string) string {
	if strings.HasPrefix(key, prefix) {
		return key
	}
	return prefix + strings.TrimPrefix(key, "/")
}
