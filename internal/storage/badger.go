// internal/storage/badger.go
// BadgerDB-backed implementation of the Store contract. BadgerDB gives us
// an embedded key-value store with atomic single-key writes, which is all
// the blob contract needs.
package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/mgpacifique/bookshelf/internal/data"
)

// Keys for the two stored blobs.
const (
	booksKey    = "books"
	settingsKey = "settings"
)

// BadgerStore implements Store on top of a BadgerDB instance.
type BadgerStore struct {
	db     *badger.DB
	logger *slog.Logger
}

// OpenBadger opens (creating if necessary) a BadgerDB at dir and wraps it
// in a BadgerStore. Badger's own log output is routed through logger at
// the matching levels.
func OpenBadger(dir string, logger *slog.Logger) (*BadgerStore, error) {
	if dir == "" {
		return nil, errors.New("storage: data directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("storage: create data directory %s: %w", dir, err)
	}

	opts := badger.DefaultOptions(dir).
		WithLogger(&badgerLogger{logger: logger}).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open badger database: %w", err)
	}
	return &BadgerStore{db: db, logger: logger}, nil
}

// OpenBadgerInMemory opens an in-memory BadgerStore. Data is lost on
// Close; intended for tests.
func OpenBadgerInMemory(logger *slog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(&badgerLogger{logger: logger})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open in-memory badger database: %w", err)
	}
	return &BadgerStore{db: db, logger: logger}, nil
}

// Close releases the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// readBlob fetches the raw value stored under key. A missing key returns
// (nil, false) with no error noise; anything else unexpected is logged.
func (s *BadgerStore) readBlob(key string) ([]byte, bool) {
	var blob []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false
	}
	if err != nil {
		s.logger.Error("failed to read stored blob", "key", key, "error", err)
		return nil, false
	}
	return blob, true
}

// writeBlob stores value under key in a single transaction.
func (s *BadgerStore) writeBlob(key string, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// LoadBooks returns the stored collection. A missing or unreadable blob
// yields an empty slice so the caller always starts from a usable state.
func (s *BadgerStore) LoadBooks() []data.Book {
	blob, ok := s.readBlob(booksKey)
	if !ok {
		return []data.Book{}
	}

	var books []data.Book
	if err := json.Unmarshal(blob, &books); err != nil {
		s.logger.Error("stored collection is unreadable, starting empty", "error", err)
		return []data.Book{}
	}
	return books
}

// SaveBooks overwrites the stored collection with the given snapshot.
func (s *BadgerStore) SaveBooks(books []data.Book) error {
	if books == nil {
		books = []data.Book{}
	}
	blob, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("storage: encode collection: %w", err)
	}
	return s.writeBlob(booksKey, blob)
}

// LoadSettings returns the stored settings, or the documented defaults
// when nothing usable is stored.
func (s *BadgerStore) LoadSettings() data.Settings {
	blob, ok := s.readBlob(settingsKey)
	if !ok {
		return data.DefaultSettings()
	}

	var settings data.Settings
	if err := json.Unmarshal(blob, &settings); err != nil {
		s.logger.Error("stored settings are unreadable, using defaults", "error", err)
		return data.DefaultSettings()
	}
	return settings
}

// SaveSettings overwrites the stored settings wholesale.
func (s *BadgerStore) SaveSettings(settings data.Settings) error {
	blob, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("storage: encode settings: %w", err)
	}
	return s.writeBlob(settingsKey, blob)
}

// Clear removes both stored blobs. Missing keys are not an error.
func (s *BadgerStore) Clear() error {
	return s.db.Update(func(txn *badger.Txn) error {
		for _, key := range []string{booksKey, settingsKey} {
			if err := txn.Delete([]byte(key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		return nil
	})
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
