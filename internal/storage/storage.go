// Package storage persists the catalog as key-value blobs: the whole book
// collection under one key and the settings singleton under another. The
// contract is deliberately coarse — load returns a usable value even when
// nothing is stored or the blob is unreadable, so callers never branch on
// read failures.
package storage

import "github.com/mgpacifique/bookshelf/internal/data"

// Store is the persistence collaborator consumed by the repository and
// the settings handlers.
type Store interface {
	// LoadBooks returns the stored collection. A missing or corrupt blob
	// yields an empty slice; the failure is logged, not surfaced.
	LoadBooks() []data.Book

	// SaveBooks overwrites the stored collection wholesale.
	SaveBooks(books []data.Book) error

	// LoadSettings returns the stored settings, or the documented
	// defaults when absent or unreadable.
	LoadSettings() data.Settings

	// SaveSettings overwrites the stored settings wholesale.
	SaveSettings(settings data.Settings) error

	// Clear removes both stored blobs.
	Clear() error

	// Close releases the underlying database.
	Close() error
}
