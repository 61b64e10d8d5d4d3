// internal/data/sort.go
package data

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// SortSafeList enumerates every sort criterion accepted by SortBooks.
// A leading "-" selects descending order, matching the convention used in
// list query strings.
var SortSafeList = []string{"date", "-date", "title", "-title", "pages", "-pages"}

// SortBooks returns a copy of books ordered by the named criterion.
// The input slice is never mutated. The sort is stable, so records that
// compare equal keep their original relative order. An unrecognized
// criterion returns the copy in its original order; that is the defined
// fallback, not an error.
func SortBooks(books []Book, criterion string) []Book {
	sorted := make([]Book, len(books))
	copy(sorted, books)

	descending := strings.HasPrefix(criterion, "-")
	field := strings.TrimPrefix(criterion, "-")

	var less func(a, b Book) bool
	switch field {
	case "date":
		// Compare as calendar dates, not strings. Unparseable dates get
		// the zero time, sorting before every real date.
		less = func(a, b Book) bool {
			return parseDate(a.Date).Before(parseDate(b.Date))
		}
	case "title":
		less = func(a, b Book) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case "pages":
		less = func(a, b Book) bool {
			return parsePages(a.Pages) < parsePages(b.Pages)
		}
	default:
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// parseDate parses a YYYY-MM-DD string, returning the zero time when the
// value is missing or malformed.
func parseDate(date string) time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parsePages parses a textual page count, treating anything non-numeric
// as zero.
func parsePages(pages string) int {
	n, err := strconv.Atoi(pages)
	if err != nil {
		return 0
	}
	return n
}
