package feed

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreNotReadyBeforeFirstPublish(t *testing.T) {
	s := NewStore()
	_, err := s.Current()
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestStorePublishReplacesWholesale(t *testing.T) {
	s := NewStore()

	first := &Snapshot{CapturedAt: time.Now(), VehiclesAt: 100}
	s.Publish(first)
	got, err := s.Current()
	require.NoError(t, err)
	assert.Same(t, first, got)

	second := &Snapshot{CapturedAt: time.Now(), VehiclesAt: 200}
	s.Publish(second)
	got, err = s.Current()
	require.NoError(t, err)
	assert.Same(t, second, got)
}

// Concurrent readers must always observe a complete published snapshot, never
// a mix of two publishes' fields. Each snapshot here carries matching values
// in both fields so any interleaving would be visible.
func TestStoreConcurrentReadersSeeCompleteSnapshots(t *testing.T) {
	s := NewStore()
	done := make(chan struct{})

	var wg sync.WaitGroup
	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				sn, err := s.Current()
				if err != nil {
					continue
				}
				assert.Equal(t, sn.VehiclesAt, sn.TripUpdatesAt)
			}
		}()
	}

	for i := int64(1); i <= 1000; i++ {
		s.Publish(&Snapshot{CapturedAt: time.Now(), VehiclesAt: i, TripUpdatesAt: i})
	}
	close(done)
	wg.Wait()
}
