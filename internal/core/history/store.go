// Package history persists the log of dispatched requests.
//
// The log is a single JSON array stored under LogKey in a key-value backend.
// Every backend supports whole-log Read and Write; backends that can append
// atomically also implement Appender.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sadopc/qconsole/internal/config"
)

// LogKey is the fixed key the log is stored under.
const LogKey = "history"

// ErrCorrupt is returned when the stored log does not decode.
var ErrCorrupt = errors.New("history log is corrupt")

// Store reads and writes the whole log.
type Store interface {
	// Read returns the log oldest first. A missing log is an empty slice.
	Read(ctx context.Context) ([]Entry, error)
	// Write replaces the log.
	Write(ctx context.Context, entries []Entry) error
	Close() error
}

// Appender adds one entry without losing concurrent appends.
type Appender interface {
	Append(ctx context.Context, e Entry) error
}

// Open returns the backend named in cfg. Relative and empty paths are placed
// under dataDir.
func Open(cfg config.HistoryConfig, dataDir string) (Store, error) {
	path := cfg.Path
	switch cfg.Backend {
	case "memory":
		return NewMemoryStore(), nil
	case "file":
		if path == "" {
			path = dataDir
		} else if !filepath.IsAbs(path) {
			path = filepath.Join(dataDir, path)
		}
		fs, err := NewFileStore(path)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case "", "sqlite":
		if path == "" {
			path = filepath.Join(dataDir, "history.db")
		} else if path != ":memory:" && !filepath.IsAbs(path) {
			path = filepath.Join(dataDir, path)
		}
		db, err := NewSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}
}

func decodeLog(data []byte) ([]Entry, error) {
	entries := []Entry{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func encodeLog(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encoding history: %w", err)
	}
	return data, nil
}
