// Package ringqueue implements VQueue: a growable ring-buffer queue used by
// uchan.Chan as its backing store. It is not safe for concurrent use on its
// own — callers (uchan.Chan) provide the mutual exclusion.
package ringqueue

import "github.com/example/uconc/internal/xpanic"

// initialCapacity is the smallest capacity a Queue ever shrinks below.
const initialCapacity = 512

// Queue is a circular array of values of type T. The zero value is not
// usable; construct one with New.
type Queue[T any] struct {
	data   []T
	head   int // next position to read
	tail   int // next position to write
	length int // number of items currently stored
}

// New returns an empty queue with the initial capacity.
func New[T any]() *Queue[T] {
	return &Queue[T]{data: make([]T, initialCapacity)}
}

// Len returns the number of items currently stored.
func (q *Queue[T]) Len() int {
	return q.length
}

// Empty reports whether the queue holds no items.
func (q *Queue[T]) Empty() bool {
	return q.length == 0
}

// Put appends x to the queue, growing the backing array if it is full. The
// zero value of T is a legal value to store.
func (q *Queue[T]) Put(x T) {
	if q.length == cap(q.data) {
		q.grow()
	}
	q.data[q.tail] = x
	q.length++
	q.tail = (q.tail + 1) % cap(q.data)
}

// grow doubles the backing array, relocating the two logical segments
// [head, cap) and [0, tail) into a contiguous prefix starting at index 0.
func (q *Queue[T]) grow() {
	n := cap(q.data)
	newData := make([]T, 2*n)
	copy(newData, q.data[q.head:])
	copy(newData[n-q.head:], q.data[:q.tail])
	q.data = newData
	q.head = 0
	q.tail = n
}

// Get removes and returns the oldest value. The queue must not be empty;
// calling Get on an empty queue is a programmer error and panics.
func (q *Queue[T]) Get() T {
	xpanic.Require(!q.Empty(), "ringqueue: get on empty queue")

	x := q.data[q.head]
	var zero T
	q.data[q.head] = zero // avoid retaining a reference in the backing array
	q.head = (q.head + 1) % cap(q.data)
	q.length--

	if cap(q.data) > initialCapacity && q.length < cap(q.data)/4 {
		q.shrink()
	}
	return x
}

// shrink halves the backing array (never below initialCapacity), relocating
// the remaining elements in logical order starting at index 0.
func (q *Queue[T]) shrink() {
	n := cap(q.data)
	newCap := n / 2
	if newCap < initialCapacity {
		newCap = initialCapacity
	}
	newData := make([]T, newCap)
	if q.head <= q.tail {
		copy(newData, q.data[q.head:q.tail])
	} else {
		copy(newData, q.data[q.head:])
		copy(newData[n-q.head:], q.data[:q.tail])
	}
	q.data = newData
	q.head = 0
	q.tail = q.length
}
