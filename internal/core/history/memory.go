package history

import (
	"context"
	"sync"
)

// MemoryStore keeps the log in process memory. The encoded form is stored so
// it behaves like the persistent backends, including corruption.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Read(_ context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decodeLog(s.data[LogKey])
}

func (s *MemoryStore) Write(_ context.Context, entries []Entry) error {
	data, err := encodeLog(entries)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[LogKey] = data
	s.mu.Unlock()
	return nil
}

// Append adds e under the store lock.
func (s *MemoryStore) Append(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := decodeLog(s.data[LogKey])
	if err != nil {
		return err
	}
	data, err := encodeLog(append(entries, e))
	if err != nil {
		return err
	}
	s.data[LogKey] = data
	return nil
}

func (s *MemoryStore) Close() error { return nil }
