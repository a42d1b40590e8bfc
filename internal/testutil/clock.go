// Package testutil provides deterministic fixtures shared by tests
// across the module.
package testutil

import (
	"sync"
	"time"

	"github.com/roach88/tally/internal/epoch"
)

// FixedClock is an epoch.Clock that hands out a controllable stamp, so
// commit and merge behavior is reproducible in tests.
//
// Thread-safety: all methods are safe for concurrent use.
type FixedClock struct {
	mu sync.Mutex
	at time.Time
}

// NewFixedClock returns a clock pinned to the given instant.
func NewFixedClock(at time.Time) *FixedClock {
	return &FixedClock{at: at.UTC()}
}

// Now implements epoch.Clock.
func (c *FixedClock) Now() epoch.Stamp {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, err := epoch.Encode(c.at)
	if err != nil {
		panic(err)
	}
	return s
}

// Advance moves the clock forward.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = c.at.Add(d)
}

// Set pins the clock to a new instant.
func (c *FixedClock) Set(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = at.UTC()
}
