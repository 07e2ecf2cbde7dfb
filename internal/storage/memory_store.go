package storage

import (
	"sync"
	"time"

	"metricshub/internal/ingest"
)

// MemoryStore holds the latest dashboard snapshot. Snapshots are replaced
// wholesale; readers get copies of the slice headers, never shared mutable
// state.
type MemoryStore struct {
	mu         sync.RWMutex
	snapshot   ingest.DashboardSnapshot
	hasData    bool
	lastIngest time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) StoreSnapshot(snap ingest.DashboardSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = snap
	s.hasData = true
	s.lastIngest = time.Now()
}

func (s *MemoryStore) Snapshot() (ingest.DashboardSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.hasData
}

func (s *MemoryStore) GetLastIngestTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastIngest
}

func (s *MemoryStore) HasData() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasData
}
