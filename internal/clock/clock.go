package clock

import (
	"sync"
	"time"
)

// Clock provides an abstraction for time operations
type Clock interface {
	// Now returns the current time
	Now() time.Time
	// Since returns the duration since the given time
	Since(t time.Time) time.Duration
}

// Real uses the actual system time
type Real struct{}

// NewReal creates a clock backed by time.Now
func NewReal() Real {
	return Real{}
}

func (Real) Now() time.Time { return time.Now() }

func (Real) Since(t time.Time) time.Duration { return time.Since(t) }

// Manual only moves when told to. It is safe for concurrent use so a test
// can advance it while a session loop reads it.
type Manual struct {
	mu      sync.RWMutex
	current time.Time
}

// NewManual creates a Manual clock starting at the given time
func NewManual(start time.Time) *Manual {
	return &Manual{current: start}
}

func (c *Manual) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

func (c *Manual) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// Advance moves the clock forward by d
func (c *Manual) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	c.mu.Unlock()
}

// Set moves the clock to t
func (c *Manual) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}

// DateKey formats t as the UTC calendar day used for daily keys.
func DateKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}
