package books

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/litwise-books/internal/entities"
)

func openTestDB(t *testing.T, translateErrors bool) *gorm.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "books.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: translateErrors,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Book{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func setupTestDB(t *testing.T) *Repository {
	return NewRepository(openTestDB(t, true))
}

var baseTime = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func newBook(title, author, key string, at time.Time) *entities.Book {
	book := &entities.Book{Title: title, Author: author, Language: entities.DefaultLanguage}
	if key != "" {
		book.OpenLibraryKey = &key
		book.WorkKey = &key
	}
	book.Stamp(at)
	return book
}

func TestRepository_Save_New(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	book := newBook("Dune", "Frank Herbert", "/works/OL893415W", baseTime)
	outcome := repo.Save(ctx, book)

	assert.Equal(t, Saved, outcome)
	assert.NotZero(t, book.ID)

	stored, err := repo.FindByTitleAndAuthor(ctx, "Dune", "Frank Herbert")
	require.NoError(t, err)
	assert.Equal(t, book.ID, stored.ID)
	assert.Equal(t, "/works/OL893415W", *stored.OpenLibraryKey)
	assert.Equal(t, "en", stored.Language)
	assert.Equal(t, "2024-01-01 09:00:00.000000", stored.CreatedAt)
}

func TestRepository_Save_Idempotent(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	assert.Equal(t, Saved, repo.Save(ctx, newBook("Dune", "Frank Herbert", "/works/OL1W", baseTime)))

	again := newBook("Dune", "Frank Herbert", "/works/OL1W", baseTime.Add(time.Minute))
	assert.Equal(t, AlreadyExists, repo.Save(ctx, again))
	assert.Zero(t, again.ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_Save_SameTitleAuthorDifferentKeyIsDuplicate(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	assert.Equal(t, Saved, repo.Save(ctx, newBook("Dune", "Frank Herbert", "/works/OL1W", baseTime)))
	assert.Equal(t, AlreadyExists, repo.Save(ctx, newBook("Dune", "Frank Herbert", "/works/OL2W", baseTime)))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_Save_CaseSensitiveNaturalKey(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	assert.Equal(t, Saved, repo.Save(ctx, newBook("Dune", "Frank Herbert", "", baseTime)))
	assert.Equal(t, Saved, repo.Save(ctx, newBook("dune", "Frank Herbert", "", baseTime)))
	assert.Equal(t, Saved, repo.Save(ctx, newBook("Dune ", "Frank Herbert", "", baseTime)))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestRepository_Save_KeyConflictRollsBack(t *testing.T) {
	for _, translate := range []bool{true, false} {
		t.Run(fmt.Sprintf("translate=%v", translate), func(t *testing.T) {
			repo := NewRepository(openTestDB(t, translate))
			ctx := context.Background()

			require.Equal(t, Saved, repo.Save(ctx, newBook("Dune", "Frank Herbert", "/works/OL1W", baseTime)))

			conflicting := newBook("DUNE", "Frank Herbert", "/works/OL1W", baseTime)
			assert.Equal(t, Conflict, repo.Save(ctx, conflicting))
			assert.Zero(t, conflicting.ID)

			count, err := repo.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)

			// The connection stays usable after the rollback.
			assert.Equal(t, Saved, repo.Save(ctx, newBook("Emma", "Jane Austen", "/works/OL2W", baseTime)))
		})
	}
}

func TestRepository_Save_NullKeysDoNotConflict(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	assert.Equal(t, Saved, repo.Save(ctx, newBook("A", "X", "", baseTime)))
	assert.Equal(t, Saved, repo.Save(ctx, newBook("B", "Y", "", baseTime)))
}

func TestRepository_Save_ClosedDatabase(t *testing.T) {
	db := openTestDB(t, true)
	repo := NewRepository(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	assert.Equal(t, Failed, repo.Save(context.Background(), newBook("Dune", "Frank Herbert", "", baseTime)))
}

func TestRepository_Stats(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Empty(t, stats.Recent)

	for i := 0; i < 7; i++ {
		book := newBook(fmt.Sprintf("Book %d", i), "Author", fmt.Sprintf("/works/OL%dW", i), baseTime.Add(time.Duration(i)*time.Second))
		require.Equal(t, Saved, repo.Save(ctx, book))
	}

	stats, err = repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.Total)
	require.Len(t, stats.Recent, RecentLimit)

	titles := make([]string, 0, len(stats.Recent))
	for _, b := range stats.Recent {
		titles = append(titles, b.Title)
	}
	assert.Equal(t, []string{"Book 6", "Book 5", "Book 4", "Book 3", "Book 2"}, titles)
}

func TestRepository_Sample(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	for _, title := range []string{"First", "Second", "Third"} {
		require.Equal(t, Saved, repo.Save(ctx, newBook(title, "Author", "", baseTime)))
	}

	sample, err := repo.Sample(ctx, 2)
	require.NoError(t, err)
	require.Len(t, sample, 2)
	assert.Equal(t, "First", sample[0].Title)
	assert.Equal(t, "Second", sample[1].Title)
}

func TestRepository_RecentPublications(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	years := map[string]*int{"Old": intPtr(1850), "Mid": intPtr(1965), "New": intPtr(2019), "Undated": nil, "Newer": intPtr(2021)}
	for _, title := range []string{"Old", "Mid", "New", "Undated", "Newer"} {
		book := newBook(title, "Author", "", baseTime)
		book.FirstPublishYear = years[title]
		require.Equal(t, Saved, repo.Save(ctx, book))
	}

	recent, err := repo.RecentPublications(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "Newer", recent[0].Title)
	assert.Equal(t, "New", recent[1].Title)
	assert.Equal(t, "Mid", recent[2].Title)
}

func TestIsConstraintViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("boom"), false},
		{"gorm duplicate", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm duplicate", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"sqlite constraint", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, true},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, false},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, true},
		{"postgres not null", &pgconn.PgError{Code: "23502"}, true},
		{"postgres undefined table", &pgconn.PgError{Code: "42P01"}, false},
		{"record not found", gorm.ErrRecordNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsConstraintViolation(tt.err))
		})
	}
}

func TestSaveOutcome_String(t *testing.T) {
	assert.Equal(t, "saved", Saved.String())
	assert.Equal(t, "already_exists", AlreadyExists.String())
	assert.Equal(t, "conflict", Conflict.String())
	assert.Equal(t, "failed", Failed.String())
}

func intPtr(v int) *int { return &v }
