// Package data provides the data models and the in-memory repository,
// search, sorting, statistics, and import/export logic for the book
// catalog service.
package data

import "time"

// Book represents a single catalog entry.
// Pages is kept as text because that is its interchange form; validation
// and the sorter/aggregator parse it where a numeric value is needed.
type Book struct {
	ID        string    `json:"id"`              // Opaque unique identifier assigned by the repository
	Title     string    `json:"title"`           // Title of the book
	Author    string    `json:"author"`          // Author name (letters, single spaces, hyphens)
	Pages     string    `json:"pages"`           // Page count, stored as text
	Tag       string    `json:"tag"`             // Category label, same charset rule as Author
	Date      string    `json:"date"`            // Date read, YYYY-MM-DD
	Notes     string    `json:"notes,omitempty"` // Optional free text
	CreatedAt time.Time `json:"created_at"`      // Set once at creation, immutable
	UpdatedAt time.Time `json:"updated_at"`      // Refreshed on every mutation
}

// CreateBookInput holds the fields a client must supply when creating a new book.
// All fields except Notes are required.
type CreateBookInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Pages  string `json:"pages"`
	Tag    string `json:"tag"`
	Date   string `json:"date"`
	Notes  string `json:"notes"`
}

// UpdateBookInput holds the fields a client may supply when partially updating
// a book. Every field is a pointer so we can distinguish between "not provided"
// (nil) and "intentionally set to empty". Only non-nil fields are applied.
// ID and CreatedAt are never client-settable.
type UpdateBookInput struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	Pages  *string `json:"pages"`
	Tag    *string `json:"tag"`
	Date   *string `json:"date"`
	Notes  *string `json:"notes"`
}

// Settings is the singleton reading-goal configuration. It has no identity
// and no history; updates overwrite the whole value.
type Settings struct {
	PageUnit    string `json:"page_unit"`    // Display unit for page counts
	TargetPages int    `json:"target_pages"` // Reading goal, must be positive
}

// DefaultSettings returns the documented defaults used when nothing has
// been stored yet or the stored value is unreadable.
func DefaultSettings() Settings {
	return Settings{PageUnit: "pages", TargetPages: 1000}
}
