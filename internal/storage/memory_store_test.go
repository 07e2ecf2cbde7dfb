package storage

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metricshub/internal/ingest"
)

func TestMemoryStoreEmpty(t *testing.T) {
	s := NewMemoryStore()

	assert.False(t, s.HasData())
	_, ok := s.Snapshot()
	assert.False(t, ok)
	assert.True(t, s.GetLastIngestTime().IsZero())
}

func TestMemoryStoreReplacesWholesale(t *testing.T) {
	s := NewMemoryStore()

	s.StoreSnapshot(ingest.DashboardSnapshot{RunID: "first"})
	s.StoreSnapshot(ingest.DashboardSnapshot{RunID: "second"})

	snap, ok := s.Snapshot()
	require.True(t, ok)
	assert.Equal(t, "second", snap.RunID)
	assert.True(t, s.HasData())
	assert.False(t, s.GetLastIngestTime().IsZero())
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.StoreSnapshot(ingest.DashboardSnapshot{RunID: "r"})
		}()
		go func() {
			defer wg.Done()
			s.Snapshot()
			s.HasData()
		}()
	}
	wg.Wait()

	snap, ok := s.Snapshot()
	require.True(t, ok)
	assert.Equal(t, "r", snap.RunID)
}
