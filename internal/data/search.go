// internal/data/search.go
// Cross-field search over the catalog: a user expression is compiled once
// into a Matcher, then applied to every record's joined searchable text.
package data

import (
	"html"
	"regexp"
	"strings"
)

// Matcher is a compiled, reusable predicate built from a user search
// expression. The zero-value pointer from CompilePattern with an empty
// expression matches everything.
type Matcher struct {
	rx *regexp.Regexp // nil means "match everything"
}

// CompilePattern compiles a user-supplied search expression into a Matcher.
// An empty expression yields a match-everything Matcher. The expression is
// treated as a regular expression; a syntactically invalid one returns the
// compile error so callers can report it next to the search box rather
// than silently matching nothing.
func CompilePattern(expression string, caseSensitive bool) (*Matcher, error) {
	if expression == "" {
		return &Matcher{}, nil
	}
	if !caseSensitive {
		expression = "(?i)" + expression
	}
	rx, err := regexp.Compile(expression)
	if err != nil {
		return nil, err
	}
	return &Matcher{rx: rx}, nil
}

// MatchAll reports whether this matcher was compiled from an empty
// expression and therefore accepts every record.
func (m *Matcher) MatchAll() bool {
	return m.rx == nil
}

// searchText joins the searchable fields of a book with single spaces so
// one test covers all of them. Notes may be absent and contributes an
// empty segment in that case.
func searchText(book Book) string {
	return strings.Join([]string{book.Title, book.Author, book.Tag, book.Notes, book.Date}, " ")
}

// Matches reports whether the book's joined searchable text contains a
// match anywhere. A match-everything Matcher always returns true.
func (m *Matcher) Matches(book Book) bool {
	if m.MatchAll() {
		return true
	}
	return m.rx.MatchString(searchText(book))
}

// FilterBooks returns the books accepted by the matcher, preserving the
// relative order of the input. A match-everything matcher returns all
// input elements unchanged.
func FilterBooks(books []Book, m *Matcher) []Book {
	if m.MatchAll() {
		return books
	}
	filtered := []Book{}
	for _, book := range books {
		if m.Matches(book) {
			filtered = append(filtered, book)
		}
	}
	return filtered
}

// HighlightHTML escapes text for safe embedding in HTML, then wraps every
// non-overlapping match span in <mark> tags. A nil or match-everything
// matcher returns the escaped text unmodified. Matching runs over the
// escaped text so the returned spans line up with what is displayed.
// Highlighting must never break rendering, so any failure falls back to
// returning the original text.
func HighlightHTML(text string, m *Matcher) (marked string) {
	escaped := html.EscapeString(text)
	if m == nil || m.MatchAll() {
		return escaped
	}
	defer func() {
		if recover() != nil {
			marked = text
		}
	}()
	return m.rx.ReplaceAllStringFunc(escaped, func(match string) string {
		return "<mark>" + match + "</mark>"
	})
}
