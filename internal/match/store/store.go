// In-memory reference-table snapshot. Uploads replace the whole slice
// atomically so a match pass never observes a half-updated table; records
// themselves are immutable after construction.
package store

import (
	"sync"
	"time"

	"labelmatch-service/internal/match/model"
)

type Store struct {
	mu         sync.RWMutex
	records    []model.Record
	source     string
	uploadedAt time.Time
}

type Stats struct {
	Records    int       `json:"records"`
	Source     string    `json:"source,omitempty"`
	UploadedAt time.Time `json:"uploadedAt,omitzero"`
}

func New() *Store { return &Store{} }

// Replace swaps in a whole new table. Callers must not mutate recs afterwards.
func (s *Store) Replace(recs []model.Record, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = recs
	s.source = source
	s.uploadedAt = time.Now()
}

// Snapshot returns the current table. The slice is read-only by contract;
// a concurrent Replace leaves previously returned snapshots intact.
func (s *Store) Snapshot() []model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.source = ""
	s.uploadedAt = time.Time{}
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{Records: len(s.records), Source: s.source, UploadedAt: s.uploadedAt}
}
