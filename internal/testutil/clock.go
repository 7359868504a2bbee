package testutil

import (
	"sync"
	"time"
)

// ManualClock is a wall clock that only moves when told to.
//
// Tests and scenarios use it to stamp events with known epoch milliseconds,
// so persisted logs and rendered history are reproducible.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type ManualClock struct {
	mu  sync.Mutex
	now int64 // epoch milliseconds
}

// NewManualClock creates a clock reading ms epoch milliseconds.
func NewManualClock(ms int64) *ManualClock {
	return &ManualClock{now: ms}
}

// Now returns the current reading.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.UnixMilli(c.now)
}

// Millis returns the current reading in epoch milliseconds.
func (c *ManualClock) Millis() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to ms. Moving backwards is allowed.
func (c *ManualClock) Set(ms int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = ms
}

// Advance moves the clock forward by d, truncated to milliseconds.
func (c *ManualClock) Advance(d time.Duration) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d.Milliseconds()
	return c.now
}
