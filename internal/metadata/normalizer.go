package metadata

import (
	"fmt"
	"strings"
	"time"

	"github.com/mrlokans/litwise-books/internal/entities"
)

const (
	maxSubjects    = 10
	coverURLFormat = "https://covers.openlibrary.org/b/id/%d-L.jpg"
)

// NormalizeBook maps a search document and optional work detail onto a Book.
// It has no side effects; the same inputs always give the same record.
func NormalizeBook(doc SearchDoc, detail *WorkDetail, now time.Time) entities.Book {
	book := entities.Book{
		Title:            entities.UnknownTitle,
		Author:           entities.UnknownAuthor,
		FirstPublishYear: doc.FirstPublishYear,
		NumberOfPages:    doc.NumberOfPagesMedian,
		Language:         entities.DefaultLanguage,
	}

	if doc.Title != "" {
		book.Title = doc.Title
	}
	if len(doc.AuthorName) > 0 {
		book.Author = strings.Join(doc.AuthorName, ", ")
	}

	if len(doc.ISBN) > 0 {
		book.ISBN = strPtr(doc.ISBN[0])
	}
	for _, isbn := range doc.ISBN {
		if len(isbn) == 13 {
			book.ISBN13 = strPtr(isbn)
			break
		}
	}

	if len(doc.Subject) > 0 {
		subjects := doc.Subject
		if len(subjects) > maxSubjects {
			subjects = subjects[:maxSubjects]
		}
		book.Subjects = strPtr(strings.Join(subjects, ", "))
	}

	if doc.CoverI != nil && *doc.CoverI != 0 {
		book.CoverImageURL = strPtr(fmt.Sprintf(coverURLFormat, *doc.CoverI))
	}

	if len(doc.Publisher) > 0 {
		book.Publisher = strPtr(doc.Publisher[0])
	}

	if doc.Key != "" {
		book.OpenLibraryKey = strPtr(doc.Key)
		book.WorkKey = strPtr(doc.Key)
	}

	if detail != nil {
		book.Description = detail.Description.Ptr()
	}

	book.Stamp(now)
	return book
}

func strPtr(s string) *string {
	return &s
}
