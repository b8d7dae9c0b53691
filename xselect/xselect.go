// Package xselect implements a multi-channel receive selector over
// uchan.Chan: Select picks exactly one of N channels that can deliver a
// value, choosing at random among simultaneously-ready channels so that
// repeated select loops make progress on every channel rather than
// starving some of them.
//
// The implementation is a two-phase algorithm: an opportunistic nonblocking
// sweep in random order, and — if nothing was immediately available — a
// race between one blocking-receive goroutine per channel, exactly one of
// which is allowed to commit.
package xselect

import (
	"sync"
	"sync/atomic"

	"github.com/example/uconc/internal/xpanic"
	"github.com/example/uconc/internal/xrand"
	"github.com/example/uconc/uchan"
)

// Select blocks until exactly one of channels can deliver, and returns its
// index, the delivered value (the zero value of T if ok is false), and
// whether a value was actually dequeued (false means that channel was
// closed and drained — a valid, deliberate winner, not an error).
//
// No channel other than the winner has its state changed by a call to
// Select: a losing channel's queue contents and closed flag are exactly as
// if it had never been passed to Select at all.
func Select[T any](channels ...*uchan.Chan[T]) (index int, value T, ok bool) {
	n := len(channels)
	xpanic.Require(n > 0, "xselect: select requires at least one channel")

	// Phase 1: opportunistic nonblocking sweep in random order. Avoids
	// spawning any goroutines when something is already available, and the
	// random order is what keeps repeated selects over continuously-ready
	// channels fair.
	for _, i := range xrand.Permutation(n) {
		if v, ok := channels[i].TryReceive(); ok {
			return i, v, true
		}
	}

	// Phase 2/3: race one blocking receive per channel; exactly one commits.
	return raceBlockingReceives(channels)
}

// slot holds the outcome of the winning worker's receive.
type slot[T any] struct {
	value T
	ok    bool
}

// state is the shared handle for one Select call: it tracks which worker
// (if any) has committed and how many of the N workers have finished,
// guarded by a single mutex+cond pair.
type state struct {
	mu        sync.Mutex
	cond      *sync.Cond
	selected  int // -1 until a worker commits
	remaining int
}

func newState(n int) *state {
	s := &state{selected: -1, remaining: n}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// tryClaim installs i as the winner if no winner exists yet. Called from
// inside a uchan.Chan's own critical section (see uchan.Chan.ReceiveForSelect):
// the channel mutex is already held by the caller, and tryClaim only ever
// acquires the select's own mutex on top of it, never the reverse.
func (s *state) tryClaim(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == -1 {
		s.selected = i
		s.cond.Broadcast()
		return true
	}
	return false
}

// workerDone records that a worker has finished, win or lose, and wakes the
// caller once every worker has finished.
func (s *state) workerDone() {
	s.mu.Lock()
	s.remaining--
	if s.remaining == 0 {
		s.cond.Broadcast()
	}
	s.mu.Unlock()
}

// wait blocks until a winner has been selected and every worker has
// finished, then returns the winning index. Waiting for every worker (not
// just the winner) is what guarantees Select never returns with a goroutine
// still running.
func (s *state) wait() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.selected == -1 || s.remaining > 0 {
		s.cond.Wait()
	}
	return s.selected
}

func raceBlockingReceives[T any](channels []*uchan.Chan[T]) (int, T, bool) {
	n := len(channels)
	st := newState(n)
	results := make([]slot[T], n)
	cancel := &atomic.Bool{}

	for i, ch := range channels {
		i, ch := i, ch
		go func() {
			defer st.workerDone()

			claim := func() bool { return st.tryClaim(i) }
			v, ok, won := ch.ReceiveForSelect(cancel, claim)
			if !won {
				return
			}
			results[i] = slot[T]{value: v, ok: ok}

			// This goroutine holds no channel mutex at this point (the
			// receive returned, releasing ch's lock) — nudging every other
			// channel here, rather than from inside tryClaim while ch's
			// mutex is still held, avoids a lock-order cycle between two
			// concurrent Select calls racing over overlapping channel sets.
			cancel.Store(true)
			for j, other := range channels {
				if j != i {
					other.Nudge()
				}
			}
		}()
	}

	winner := st.wait()
	r := results[winner]
	return winner, r.value, r.ok
}
