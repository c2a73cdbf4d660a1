package testutil

import "sync"

// FixedClock provides deterministic unix-millisecond timestamps for tests.
//
// Each call to Now() returns the current value and advances by a fixed
// step, so call timings captured in tests are stable across runs and
// safe for golden comparison.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu    sync.Mutex
	start int64
	now   int64
	step  int64
}

// NewFixedClock creates a clock starting at start, advancing by step
// milliseconds per call.
func NewFixedClock(start, step int64) *FixedClock {
	return &FixedClock{start: start, now: start, step: step}
}

// Now returns the current timestamp and advances the clock.
func (c *FixedClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now += c.step
	return t
}

// Reset rewinds the clock to its start value for test reuse.
func (c *FixedClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.start
}
