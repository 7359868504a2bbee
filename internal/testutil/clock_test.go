package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualClock_StartsAtGivenTime(t *testing.T) {
	clock := NewManualClock(1000)
	assert.Equal(t, int64(1000), clock.Millis())
	assert.Equal(t, int64(1000), clock.Now().UnixMilli())
}

func TestManualClock_SetAndAdvance(t *testing.T) {
	clock := NewManualClock(0)

	clock.Set(5000)
	assert.Equal(t, int64(5000), clock.Millis())

	assert.Equal(t, int64(5150), clock.Advance(150*time.Millisecond))
	assert.Equal(t, int64(5150), clock.Advance(999*time.Microsecond), "sub-millisecond advance truncates")

	clock.Set(10)
	assert.Equal(t, int64(10), clock.Millis())
}

func TestManualClock_ThreadSafe(t *testing.T) {
	clock := NewManualClock(0)
	const numGoroutines = 50
	const callsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerGoroutine; j++ {
				clock.Advance(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(numGoroutines*callsPerGoroutine), clock.Millis())
}
