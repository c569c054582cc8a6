// Package books provides the deduplicated write path and read-only statistics
// for the books table.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	switch repo.Save(ctx, &book) {
//	case books.Saved:
//	case books.AlreadyExists:
//	}
//
// Deduplication is by exact (title, author) match. The unique index on
// openlibrary_key is a second line: a violation at insert time rolls back
// the transaction and is reported as Conflict.
package books

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/mrlokans/litwise-books/internal/entities"
)

// RecentLimit is the number of latest additions included in Stats.
const RecentLimit = 5

// SaveOutcome is the result of a single Save call.
type SaveOutcome int

const (
	Saved SaveOutcome = iota
	AlreadyExists
	Conflict
	Failed
)

func (o SaveOutcome) String() string {
	switch o {
	case Saved:
		return "saved"
	case AlreadyExists:
		return "already_exists"
	case Conflict:
		return "conflict"
	default:
		return "failed"
	}
}

// Stats is a snapshot of the books table.
type Stats struct {
	Total  int64           `json:"total"`
	Recent []entities.Book `json:"recent"`
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByTitleAndAuthor returns the book with exactly this title and author.
func (r *Repository) FindByTitleAndAuthor(ctx context.Context, title, author string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).Where("title = ? AND author = ?", title, author).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Save inserts book unless a record with the same title and author exists.
// Errors never escape: they are logged and reported through the outcome.
func (r *Repository) Save(ctx context.Context, book *entities.Book) SaveOutcome {
	_, err := r.FindByTitleAndAuthor(ctx, book.Title, book.Author)
	switch {
	case err == nil:
		slog.Info("Book already exists", "title", book.Title, "author", book.Author)
		return AlreadyExists
	case !errors.Is(err, gorm.ErrRecordNotFound):
		slog.Error("Error checking for existing book", "title", book.Title, "error", err)
		return Failed
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(book).Error
	})
	if err != nil {
		book.ID = 0
		if IsConstraintViolation(err) {
			slog.Warn("Integrity error for book", "title", book.Title, "error", err)
			return Conflict
		}
		slog.Error("Error saving book", "title", book.Title, "error", err)
		return Failed
	}

	slog.Info("Successfully added book", "title", book.Title, "author", book.Author)
	return Saved
}

// Count returns the number of stored books.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error
	return count, err
}

// Stats returns the total count and the most recently created books.
func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return Stats{}, err
	}

	var recent []entities.Book
	err = r.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Limit(RecentLimit).
		Find(&recent).Error
	if err != nil {
		return Stats{}, err
	}

	return Stats{Total: total, Recent: recent}, nil
}

// Sample returns up to n books in insertion order.
func (r *Repository) Sample(ctx context.Context, n int) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Order("id ASC").Limit(n).Find(&books).Error
	return books, err
}

// RecentPublications returns up to n books with a known first publish year, newest first.
func (r *Repository) RecentPublications(ctx context.Context, n int) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).
		Where("first_publish_year IS NOT NULL").
		Order("first_publish_year DESC").Order("id ASC").
		Limit(n).
		Find(&books).Error
	return books, err
}
