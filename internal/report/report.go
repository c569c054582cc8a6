// Package report renders catalog statistics as console tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/mrlokans/litwise-books/internal/database/books"
	"github.com/mrlokans/litwise-books/internal/entities"
	"github.com/mrlokans/litwise-books/internal/importers"
)

const (
	notAvailable      = "N/A"
	subjectsMaxLength = 100
)

// newTable writes title on its own line so it is never wrapped to the
// table width; run ids must stay copyable.
func newTable(w io.Writer, title string) table.Writer {
	fmt.Fprintln(w, title)
	t := table.NewWriter()
	t.SetOutputMirror(w)
	return t
}

// Stats renders the total count followed by the latest additions.
func Stats(w io.Writer, stats books.Stats) {
	t := newTable(w, "Database stats: "+strconv.FormatInt(stats.Total, 10)+" books")
	t.AppendHeader(table.Row{"#", "Title", "Author", "Year", "Added"})
	for i, b := range stats.Recent {
		t.AppendRow(table.Row{i + 1, b.Title, b.Author, year(b), b.CreatedAt})
	}
	t.Render()
}

// Sample renders books with their subjects shortened for the terminal.
func Sample(w io.Writer, sample []entities.Book) {
	t := newTable(w, "Sample books")
	t.AppendHeader(table.Row{"#", "Title", "Author", "Year", "Subjects"})
	for i, b := range sample {
		t.AppendRow(table.Row{i + 1, b.Title, b.Author, year(b), Subjects(b)})
	}
	t.Render()
}

// RecentPublications renders books ordered by publication year.
func RecentPublications(w io.Writer, recent []entities.Book) {
	t := newTable(w, "Most recent publications")
	t.AppendHeader(table.Row{"Title", "Year", "Author"})
	for _, b := range recent {
		t.AppendRow(table.Row{b.Title, year(b), b.Author})
	}
	t.Render()
}

// Result renders the summary of a populate run.
func Result(w io.Writer, result importers.PopulateResult) {
	t := newTable(w, "Populate run "+result.RunID)
	t.AppendHeader(table.Row{"Candidates", "Saved", "Already present", "Failed"})
	t.AppendRow(table.Row{result.Candidates, result.Saved, result.Skipped, result.Failed})
	t.Render()
}

// Subjects returns the subjects column trimmed to a displayable length.
func Subjects(b entities.Book) string {
	if b.Subjects == nil || *b.Subjects == "" {
		return notAvailable
	}
	s := *b.Subjects
	if utf8.RuneCountInString(s) <= subjectsMaxLength {
		return s
	}
	return text.Trim(s, subjectsMaxLength) + "..."
}

func year(b entities.Book) string {
	if b.FirstPublishYear == nil {
		return notAvailable
	}
	return strconv.Itoa(*b.FirstPublishYear)
}
