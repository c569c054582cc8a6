package entities

import (
	"fmt"
	"time"
)

const (
	UnknownTitle    = "Unknown Title"
	UnknownAuthor   = "Unknown Author"
	DefaultLanguage = "en"

	// TimestampLayout sorts lexicographically in chronological order, so
	// ordering by the string columns matches creation order.
	TimestampLayout = "2006-01-02 15:04:05.000000"
)

// Book is a catalog record imported from Open Library.
// Optional columns are pointers so that absent values persist as NULL.
type Book struct {
	ID     uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title  string  `gorm:"size:500;not null" json:"title"`
	Author string  `gorm:"size:300" json:"author"`
	ISBN   *string `gorm:"column:isbn;size:20" json:"isbn,omitempty"`
	ISBN13 *string `gorm:"column:isbn13;size:20" json:"isbn13,omitempty"`

	// Publication details
	FirstPublishYear *int    `json:"first_publish_year,omitempty"`
	Publisher        *string `gorm:"size:300" json:"publisher,omitempty"`
	NumberOfPages    *int    `json:"number_of_pages,omitempty"`

	// Open Library identifiers
	OpenLibraryKey *string `gorm:"column:openlibrary_key;size:100;uniqueIndex" json:"openlibrary_key,omitempty"`
	WorkKey        *string `gorm:"size:100" json:"work_key,omitempty"`
	EditionKey     *string `gorm:"size:100" json:"edition_key,omitempty"`

	Description *string `gorm:"type:text" json:"description,omitempty"`
	Subjects    *string `gorm:"type:text" json:"subjects,omitempty"` // comma-separated

	// Reserved, the importer never fills these.
	AverageRating *float64 `json:"average_rating,omitempty"`
	RatingCount   *int     `json:"rating_count,omitempty"`

	Language      string  `gorm:"size:10;default:'en'" json:"language"`
	CoverImageURL *string `gorm:"type:text" json:"cover_image_url,omitempty"`

	CreatedAt string `gorm:"size:50;autoCreateTime:false" json:"created_at"`
	UpdatedAt string `gorm:"size:50;autoUpdateTime:false" json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// Stamp sets both timestamps to t.
func (b *Book) Stamp(t time.Time) {
	ts := t.Format(TimestampLayout)
	b.CreatedAt = ts
	b.UpdatedAt = ts
}

func (b Book) String() string {
	return fmt.Sprintf("<Book(id=%d, title='%s', author='%s')>", b.ID, b.Title, b.Author)
}
