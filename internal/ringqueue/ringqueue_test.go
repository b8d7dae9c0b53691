package ringqueue

import "testing"

func TestPutGetRoundTrip(t *testing.T) {
	q := New[int]()
	for i := 0; i < 10; i++ {
		q.Put(i)
	}
	for i := 0; i < 10; i++ {
		if got := q.Get(); got != i {
			t.Fatalf("element %d: got %d, want %d", i, got, i)
		}
	}
	if !q.Empty() {
		t.Fatal("expected queue to be empty after draining")
	}
}

func TestEmptyAndLen(t *testing.T) {
	q := New[string]()
	if !q.Empty() {
		t.Fatal("new queue should be empty")
	}
	q.Put("a")
	q.Put("b")
	if q.Empty() {
		t.Fatal("queue with two items should not be empty")
	}
	if got := q.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
}

func TestGrowPreservesOrder(t *testing.T) {
	q := New[int]()
	const n = initialCapacity*2 + 7 // forces at least one grow
	for i := 0; i < n; i++ {
		q.Put(i)
	}
	for i := 0; i < n; i++ {
		if got := q.Get(); got != i {
			t.Fatalf("element %d: got %d, want %d", i, got, i)
		}
	}
}

func TestShrinkPreservesOrderAcrossWrap(t *testing.T) {
	q := New[int]()
	// Fill past the initial capacity, then interleave puts/gets so head and
	// tail wrap around the backing array before the shrink threshold hits.
	for i := 0; i < initialCapacity+100; i++ {
		q.Put(i)
	}
	for i := 0; i < 90; i++ {
		if got := q.Get(); got != i {
			t.Fatalf("element %d: got %d, want %d", i, got, i)
		}
	}
	for i := initialCapacity + 100; i < initialCapacity+100+450; i++ {
		q.Put(i)
	}
	// Drain everything that remains and check it is a suffix of the input
	// in order, regardless of how many grows/shrinks happened along the way.
	want := 90
	for !q.Empty() {
		got := q.Get()
		if got != want {
			t.Fatalf("got %d, want %d", got, want)
		}
		want++
	}
}

func TestCapacityNeverBelowInitialOrLength(t *testing.T) {
	q := New[int]()
	for i := 0; i < initialCapacity*4; i++ {
		q.Put(i)
	}
	for !q.Empty() {
		q.Get()
		if cap(q.data) < initialCapacity {
			t.Fatalf("capacity %d fell below initial capacity %d", cap(q.data), initialCapacity)
		}
		if cap(q.data) < q.Len() {
			t.Fatalf("capacity %d below length %d", cap(q.data), q.Len())
		}
	}
}

func TestGetOnEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Get on empty queue to panic")
		}
	}()
	New[int]().Get()
}

func TestNilValueIsLegal(t *testing.T) {
	q := New[*int]()
	q.Put(nil)
	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", q.Len())
	}
	if got := q.Get(); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}
