// Package uchan implements UChan: an unbounded, multi-producer,
// multi-consumer FIFO channel for goroutines in a single process.
//
// Unlike a native Go channel, capacity is unbounded — Send never blocks on
// space, it only ever contends on the mutex that also guards the receive
// condition. The element type is a generic parameter: Chan[int] is the
// integer channel, Chan[MyStruct] is the struct channel, with no payload
// boxing or bit-casting in sight.
package uchan

import (
	"sync"
	"sync/atomic"

	"github.com/example/uconc/internal/ringqueue"
	"github.com/example/uconc/internal/xpanic"
)

// Chan is an unbounded FIFO channel of values of type T. The zero value is
// not usable; construct one with New.
type Chan[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  *ringqueue.Queue[T]
	closed bool
}

// New returns an open, empty channel.
func New[T any]() *Chan[T] {
	c := &Chan[T]{queue: ringqueue.New[T]()}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Send appends x to the channel and wakes any blocked receiver. x may be
// the zero value of T. Sending on a closed channel is a programmer error.
func (c *Chan[T]) Send(x T) {
	c.mu.Lock()
	xpanic.Require(!c.closed, "uchan: send on closed channel")
	c.queue.Put(x)
	c.cond.Broadcast()
	c.mu.Unlock()
}

// Receive blocks until a value is available or the channel is closed and
// drained. ok is false only in the latter case, and once false for a given
// channel it remains false for every subsequent call: a closed, drained
// channel is absorbing.
func (c *Chan[T]) Receive() (value T, ok bool) {
	value, ok, _ = c.receive(nil, nil)
	return value, ok
}

// TryReceive returns immediately. ok is false if the channel was
// momentarily empty, which does not by itself indicate the channel is
// closed — callers distinguish end-of-stream from a momentary miss only by
// prior knowledge that the channel was closed.
func (c *Chan[T]) TryReceive() (value T, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.queue.Empty() {
		var zero T
		return zero, false
	}
	return c.queue.Get(), true
}

// Close marks the channel closed and wakes every blocked receiver. Closing
// an already-closed channel is a programmer error.
func (c *Chan[T]) Close() {
	c.mu.Lock()
	xpanic.Require(!c.closed, "uchan: close of closed channel")
	c.closed = true
	c.cond.Broadcast()
	c.mu.Unlock()
}

// Len returns the instantaneous number of buffered values. The result is
// advisory: it may change immediately after the call returns.
func (c *Chan[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Len()
}

// Free closes the channel if it is not already closed, waking any blocked
// receiver. It releases nothing else: Go's garbage collector reclaims the
// channel once it is no longer referenced. Free exists so callers have a
// single symmetric lifecycle call regardless of whether they already closed
// the channel explicitly.
func (c *Chan[T]) Free() {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if !closed {
		c.Close()
	}
}

// Nudge wakes every goroutine currently blocked in this channel's receive
// wait loop without changing any channel state. xselect uses it to rouse
// losing workers after a winner has been committed on another channel; an
// ordinary receiver that wakes spuriously from it simply re-checks its wait
// condition and, finding nothing changed, waits again.
func (c *Chan[T]) Nudge() {
	c.mu.Lock()
	c.cond.Broadcast()
	c.mu.Unlock()
}

// ReceiveForSelect is the select-aware receive used exclusively by
// xselect.Select. cancel is a second wait-loop exit condition shared by
// every worker racing on the same Select call; claim is invoked under this
// channel's own mutex — the same critical section, and the same point in
// the control flow, as the moment a plain Receive is about to report
// success — and decides whether this goroutine is allowed to actually
// consume the value it is about to see.
//
// won reports whether claim returned true, making this call the winner. It
// is false both when cancel fired first and when claim returned false (the
// caller lost the race); in either case ok is also false and no value was
// read: the queue, if any, is untouched.
//
// Outside xselect this method should not be called: it bypasses the
// ordinary Receive contract's "always wins" guarantee.
func (c *Chan[T]) ReceiveForSelect(cancel *atomic.Bool, claim func() bool) (value T, ok bool, won bool) {
	return c.receive(cancel, claim)
}

// receive is the shared wait loop behind Receive and ReceiveForSelect.
// cancel and claim are both nil for a plain Receive, which then always
// "wins" its own call.
func (c *Chan[T]) receive(cancel *atomic.Bool, claim func() bool) (value T, ok bool, won bool) {
	c.mu.Lock()
	for c.queue.Empty() && !c.closed && !cancelled(cancel) {
		c.cond.Wait()
	}

	if cancelled(cancel) {
		c.mu.Unlock()
		var zero T
		return zero, false, false
	}

	if claim != nil && !claim() {
		c.mu.Unlock()
		var zero T
		return zero, false, false
	}

	xpanic.Require(c.closed || !c.queue.Empty(), "uchan: woke with nothing to do")

	if !c.queue.Empty() {
		value = c.queue.Get()
		ok = true
	}
	c.mu.Unlock()
	return value, ok, true
}

func cancelled(flag *atomic.Bool) bool {
	return flag != nil && flag.Load()
}
