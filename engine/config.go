package engine

import "github.com/pkg/errors"

const (
	// DefaultHashMB is the transposition table budget when none is given.
	DefaultHashMB = 64
	// MaxHashMB caps the table at 32 GB.
	MaxHashMB = 32 * 1024
)

// Config selects the table sizes and the book file.
type Config struct {
	// HashMB is the transposition table budget in megabytes. Ignored when
	// HashEntries is set.
	HashMB int
	// HashEntries requests an exact entry count (rounded up to a power of two).
	HashEntries int
	// BookPath is a book written by Book.SaveBook. Empty means no book.
	BookPath string
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{HashMB: DefaultHashMB}
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	if c.HashEntries < 0 {
		return errors.Errorf("hash entries %d: must not be negative", c.HashEntries)
	}
	if c.HashEntries == 0 && (c.HashMB < 1 || c.HashMB > MaxHashMB) {
		return errors.Errorf("hash size %d MB: want 1..%d", c.HashMB, MaxHashMB)
	}
	return nil
}

// NewHashTable builds the transposition table c describes.
func (c Config) NewHashTable() (*HashTable, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	if c.HashEntries > 0 {
		return NewHashTable(c.HashEntries), nil
	}
	return NewHashTableMB(c.HashMB), nil
}

// LoadBook reads the configured book, or returns an empty one.
func (c Config) LoadBook() (*Book, error) {
	if c.BookPath == "" {
		return NewBook(), nil
	}
	return LoadBook(c.BookPath)
}
