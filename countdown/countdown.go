// Package countdown implements Countdown: a latch that lets one or more
// goroutines wait until a counter reaches zero or below. Arithmetic is
// atomic; waiting and waking go through a mutex and condition variable.
package countdown

import (
	"sync"
	"sync/atomic"

	"github.com/example/uconc/internal/xpanic"
)

// Countdown is a latch initialized to a positive value and decremented (or
// otherwise mutated) by worker goroutines until it reaches zero or below,
// at which point every blocked Wait call is released.
type Countdown struct {
	n    atomic.Int64
	mu   sync.Mutex
	cond *sync.Cond
}

// New creates a countdown initialized to n, which must be positive.
func New(n int) *Countdown {
	xpanic.Require(n > 0, "countdown: initial value must be positive, got %d", n)
	c := &Countdown{}
	c.cond = sync.NewCond(&c.mu)
	c.n.Store(int64(n))
	return c
}

// broadcast wakes every goroutine blocked in Wait.
func (c *Countdown) broadcast() {
	c.mu.Lock()
	c.cond.Broadcast()
	c.mu.Unlock()
}

// Add adds delta to the counter (delta may be negative) and broadcasts if
// the counter transitions to at most zero. atomic.Int64.Add returns the
// counter's new value directly, so no separate pre/post arithmetic is
// needed to decide whether to broadcast.
func (c *Countdown) Add(delta int) {
	if c.n.Add(int64(delta)) <= 0 {
		c.broadcast()
	}
}

// Sub subtracts delta from the counter and broadcasts if it transitions to
// at most zero.
func (c *Countdown) Sub(delta int) {
	c.Add(-delta)
}

// Inc increments the counter by one.
func (c *Countdown) Inc() {
	c.Add(1)
}

// Dec decrements the counter by one.
func (c *Countdown) Dec() {
	c.Add(-1)
}

// Set stores n directly, broadcasting if n is at most zero.
func (c *Countdown) Set(n int) {
	c.n.Store(int64(n))
	if n <= 0 {
		c.broadcast()
	}
}

// Wait blocks until the counter is at most zero. A goroutine that calls
// Wait after the counter has already reached zero does not block.
func (c *Countdown) Wait() {
	c.mu.Lock()
	for c.n.Load() > 0 {
		c.cond.Wait()
	}
	c.mu.Unlock()
}

// Get returns the current counter value. Advisory: it may change
// immediately after the call returns.
func (c *Countdown) Get() int {
	return int(c.n.Load())
}

// Finished reports whether the counter is at most zero.
func (c *Countdown) Finished() bool {
	return c.n.Load() <= 0
}

// Free broadcasts to every goroutine blocked in Wait and drops this
// countdown's resources. Note that a goroutine only actually leaves Wait
// once the counter itself is at most zero: Free wakes the wait loop to let
// it re-check that condition, it does not force the condition to become
// true. A caller that wants Wait to return unconditionally should Set(0)
// before calling Free.
func (c *Countdown) Free() {
	c.broadcast()
}
