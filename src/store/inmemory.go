// Package store provides an in-memory store implementation.
package store

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore keeps verification records in memory. Used in tests and
// when no audit DSN is configured but history is still wanted in-process.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []Record
}

// NewInMemoryStore creates a new in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// SaveVerification appends one verification record.
func (s *InMemoryStore) SaveVerification(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := *rec
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	s.records = append(s.records, r)
	return nil
}

// ListVerifications returns the most recent records for a repo, newest first.
func (s *InMemoryStore) ListVerifications(ctx context.Context, repo string, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Record
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].Repo != repo {
			continue
		}
		out = append(out, s.records[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
