package history

import (
	"context"
	"time"
)

// SetRaw stores raw bytes under LogKey.
func (s *MemoryStore) SetRaw(data []byte) {
	s.mu.Lock()
	s.data[LogKey] = data
	s.mu.Unlock()
}

// SetRaw stores raw bytes under LogKey.
func (s *SQLiteStore) SetRaw(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		LogKey, string(data), time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}
