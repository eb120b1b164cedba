// Package memstore is an in-process journal store. Nothing survives a restart.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/moodmap/moodmap/internal/domain"
)

var _ domain.JournalStore = (*Store)(nil)

// Store keeps records in insertion order behind a RWMutex.
type Store struct {
	mu      sync.RWMutex
	records []domain.Record
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Append adds r. A duplicate id is rejected, matching the sqlite store.
func (s *Store) Append(_ context.Context, r domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.records {
		if existing.ID == r.ID {
			return fmt.Errorf("record %s already stored", r.ID)
		}
	}
	s.records = append(s.records, r)
	return nil
}

// FetchAll returns a copy of every record in insertion order.
func (s *Store) FetchAll(_ context.Context) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Record(nil), s.records...), nil
}

// DeleteMatching removes the record with id at the given coordinate.
func (s *Store) DeleteMatching(_ context.Context, id string, at domain.Coordinate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.records {
		if r.Matches(id, at) {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("record %s at %s: %w", id, at, domain.ErrNotFound)
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
