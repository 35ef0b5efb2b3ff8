package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock_ReportsUTC(t *testing.T) {
	zone := time.FixedZone("plus2", 2*60*60)
	clock := NewFixedClock(time.Date(2027, 7, 31, 2, 0, 0, 0, zone))

	assert.Equal(t, time.Date(2027, 7, 31, 0, 0, 0, 0, time.UTC), clock.Now())
	assert.Equal(t, time.UTC, clock.Now().Location())
}

func TestFixedClock_DoesNotMoveOnItsOwn(t *testing.T) {
	start := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewFixedClock(start)

	assert.Equal(t, start, clock.Now())
	assert.Equal(t, start, clock.Now())
}

func TestFixedClock_ConcurrentReads(t *testing.T) {
	start := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewFixedClock(start)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, start, clock.Now())
		}()
	}
	wg.Wait()
}
