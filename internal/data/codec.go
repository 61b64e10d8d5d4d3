// internal/data/codec.go
// Import/export codec for the interchange format: a plain JSON array of
// book objects with pages serialized as text and no envelope metadata.
// Import guards the repository boundary: external data is either accepted
// in full or rejected in full.
package data

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// requiredFields are the interchange fields every imported element must
// carry. ID is deliberately absent: records without one get a fresh
// identifier so the uniqueness invariant holds after ReplaceAll.
var requiredFields = []string{"title", "author", "pages", "tag", "date"}

// ImportError describes one problem found while importing. Index is the
// zero-based position of the offending element, or -1 for document-level
// problems. Field is empty when the error is not tied to one field.
type ImportError struct {
	Index   int    `json:"index"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e ImportError) Error() string {
	if e.Index < 0 {
		return e.Message
	}
	if e.Field == "" {
		return fmt.Sprintf("record %d: %s", e.Index, e.Message)
	}
	return fmt.Sprintf("record %d, field %q: %s", e.Index, e.Field, e.Message)
}

// ImportResult is the outcome of parsing interchange text. Books is only
// populated when Valid is true; a partially valid import is never
// returned.
type ImportResult struct {
	Valid  bool          `json:"valid"`
	Books  []Book        `json:"-"`
	Errors []ImportError `json:"errors,omitempty"`
}

// ExportBooks serializes the full record list to indented, human-readable
// JSON. It fails with no partial output if any record cannot be
// serialized.
func ExportBooks(books []Book) ([]byte, error) {
	if books == nil {
		books = []Book{}
	}
	out, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export books: %w", err)
	}
	return out, nil
}

// ImportBooks parses interchange text and checks every element before any
// record is accepted. Errors are collected, not short-circuited: a
// five-element document with three bad elements reports all three. If
// anything at all is wrong the whole import is rejected and Books is nil.
func ImportBooks(input []byte) ImportResult {
	var top any
	if err := json.Unmarshal(input, &top); err != nil {
		return ImportResult{Errors: []ImportError{
			{Index: -1, Message: "input is not valid JSON"},
		}}
	}

	elements, ok := top.([]any)
	if !ok {
		return ImportResult{Errors: []ImportError{
			{Index: -1, Message: "top-level value must be an array of books"},
		}}
	}

	var errs []ImportError
	books := make([]Book, 0, len(elements))
	seenIDs := make(map[string]int)

	for i, element := range elements {
		fields, ok := element.(map[string]any)
		if !ok {
			errs = append(errs, ImportError{Index: i, Message: "element must be an object"})
			continue
		}

		for _, name := range requiredFields {
			if _, present := fields[name]; !present {
				errs = append(errs, ImportError{Index: i, Field: name, Message: MsgRequired})
			}
		}

		book := Book{
			ID:     stringField(fields, "id"),
			Title:  stringField(fields, "title"),
			Author: stringField(fields, "author"),
			Pages:  stringField(fields, "pages"),
			Tag:    stringField(fields, "tag"),
			Date:   stringField(fields, "date"),
			Notes:  stringField(fields, "notes"),
		}

		if book.ID != "" {
			if _, dup := seenIDs[book.ID]; dup {
				errs = append(errs, ImportError{Index: i, Field: "id", Message: "duplicates an earlier id"})
			}
			seenIDs[book.ID] = i
		}

		if _, present := fields["pages"]; present {
			if msg := CheckPages(book.Pages); msg != "" {
				errs = append(errs, ImportError{Index: i, Field: "pages", Message: msg})
			}
		}
		if _, present := fields["date"]; present {
			if msg := CheckDate(book.Date); msg != "" {
				errs = append(errs, ImportError{Index: i, Field: "date", Message: msg})
			}
		}

		book.CreatedAt = timeField(fields, "created_at")
		book.UpdatedAt = timeField(fields, "updated_at")
		books = append(books, book)
	}

	if len(errs) > 0 {
		return ImportResult{Errors: errs}
	}

	// Only assign identifiers once the whole document is known to be
	// clean, so a rejected import allocates nothing.
	now := time.Now().UTC()
	for i := range books {
		if books[i].ID == "" {
			books[i].ID = uuid.NewString()
		}
		if books[i].CreatedAt.IsZero() {
			books[i].CreatedAt = now
		}
		if books[i].UpdatedAt.Before(books[i].CreatedAt) {
			books[i].UpdatedAt = books[i].CreatedAt
		}
	}

	return ImportResult{Valid: true, Books: books}
}

// stringField reads a field as a string. Numbers are rendered back to
// text so a document that carries pages as a bare number still imports;
// the interchange form is text, but hand-edited files drift.
func stringField(fields map[string]any, name string) string {
	switch v := fields[name].(type) {
	case string:
		return v
	case float64:
		// Whole numbers only; anything fractional will fail CheckPages.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return ""
	}
}

// timeField reads an RFC 3339 timestamp, returning the zero time when the
// field is absent or malformed.
func timeField(fields map[string]any, name string) time.Time {
	s, ok := fields[name].(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
