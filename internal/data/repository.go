// internal/data/repository.go
// The Repository owns the canonical in-memory collection. Every mutation
// goes through it so the identifier-uniqueness and timestamp invariants
// hold, and every mutation is pushed to the storage collaborator as a
// whole-collection snapshot.
package data

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrRecordNotFound is returned when a lookup finds no matching record.
// It is a normal, expected outcome (stale client state), not a fault.
var ErrRecordNotFound = errors.New("record not found")

// BookStore is the persistence contract the repository depends on.
// Implementations live in internal/storage; the repository never touches
// the underlying store directly.
type BookStore interface {
	// LoadBooks returns the stored collection, or an empty slice when
	// nothing is stored or the stored blob is unreadable.
	LoadBooks() []Book
	// SaveBooks overwrites the stored collection with a snapshot.
	SaveBooks(books []Book) error
}

// Repository is the sole owner of the canonical collection. The mutex
// makes each mutation atomic with respect to interleaved reads, which is
// required because HTTP handlers run on separate goroutines.
type Repository struct {
	mu     sync.Mutex
	books  []Book
	store  BookStore
	logger *slog.Logger
}

// NewRepository builds a Repository seeded from the store's current
// contents.
func NewRepository(store BookStore, logger *slog.Logger) *Repository {
	return &Repository{
		books:  store.LoadBooks(),
		store:  store,
		logger: logger,
	}
}

// persist pushes the current collection to the store. A persistence
// failure is logged once and otherwise ignored: the in-memory collection
// stays authoritative for the rest of the session. Callers must hold mu.
func (r *Repository) persist() {
	if err := r.store.SaveBooks(r.books); err != nil {
		r.logger.Error("failed to persist collection", "error", err)
	}
}

// Add assigns a fresh unique identifier and creation timestamps to the
// candidate fields, appends the record, persists, and returns the stored
// record. Validation is the caller's responsibility; Add never re-checks
// field rules.
func (r *Repository) Add(input CreateBookInput) Book {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	book := Book{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Author:    input.Author,
		Pages:     input.Pages,
		Tag:       input.Tag,
		Date:      input.Date,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.books = append(r.books, book)
	r.persist()
	return book
}

// Update applies the non-nil fields of input to the record with the given
// id. The original ID and CreatedAt are preserved regardless of input;
// UpdatedAt is refreshed. Returns ErrRecordNotFound, with no mutation,
// when the id is unknown.
func (r *Repository) Update(id string, input UpdateBookInput) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.books {
		if r.books[i].ID != id {
			continue
		}

		book := r.books[i]
		if input.Title != nil {
			book.Title = *input.Title
		}
		if input.Author != nil {
			book.Author = *input.Author
		}
		if input.Pages != nil {
			book.Pages = *input.Pages
		}
		if input.Tag != nil {
			book.Tag = *input.Tag
		}
		if input.Date != nil {
			book.Date = *input.Date
		}
		if input.Notes != nil {
			book.Notes = *input.Notes
		}
		book.UpdatedAt = time.Now().UTC()

		r.books[i] = book
		r.persist()
		return book, nil
	}

	return Book{}, ErrRecordNotFound
}

// Delete removes the record with the given id. It reports whether a
// removal occurred; the store is only written when it did.
func (r *Repository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.books {
		if r.books[i].ID == id {
			r.books = append(r.books[:i], r.books[i+1:]...)
			r.persist()
			return true
		}
	}
	return false
}

// ReplaceAll swaps in a wholly new collection, as used by import and
// "clear all". The caller is responsible for validation and
// deduplication beforehand; ReplaceAll does not re-check either.
func (r *Repository) ReplaceAll(books []Book) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.books = make([]Book, len(books))
	copy(r.books, books)
	r.persist()
}

// Get returns the record with the given id, or ErrRecordNotFound.
func (r *Repository) Get(id string) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, book := range r.books {
		if book.ID == id {
			return book, nil
		}
	}
	return Book{}, ErrRecordNotFound
}

// List returns a defensive copy of the collection so callers can filter,
// sort, and aggregate without ever touching the canonical slice.
func (r *Repository) List() []Book {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make([]Book, len(r.books))
	copy(snapshot, r.books)
	return snapshot
}

// Len reports the current collection size without copying it.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.books)
}
