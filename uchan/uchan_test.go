package uchan

import (
	"sync"
	"testing"
	"time"
)

// TestFIFOSingleChannel is scenario S1: one sender sends 1, 2, 3, closes;
// a separate receiver performs four blocking receives.
func TestFIFOSingleChannel(t *testing.T) {
	ch := New[int]()

	go func() {
		ch.Send(1)
		ch.Send(2)
		ch.Send(3)
		ch.Close()
	}()

	want := []struct {
		value int
		ok    bool
	}{
		{1, true}, {2, true}, {3, true}, {0, false},
	}
	for i, w := range want {
		v, ok := recvWithTimeout(t, ch)
		if v != w.value || ok != w.ok {
			t.Fatalf("receive %d: got (%d, %v), want (%d, %v)", i, v, ok, w.value, w.ok)
		}
	}
}

// TestAbsorbingDrainedClose checks that once a channel is closed and
// drained, every subsequent receive returns (zero, false) without blocking.
func TestAbsorbingDrainedClose(t *testing.T) {
	ch := New[string]()
	ch.Close()

	for i := 0; i < 3; i++ {
		v, ok := recvWithTimeout(t, ch)
		if ok || v != "" {
			t.Fatalf("receive %d: got (%q, %v), want (\"\", false)", i, v, ok)
		}
	}
}

// TestFreeWithPendingReceiver is scenario S2: a receiver blocks on an empty
// open channel; the main goroutine sends one value, then frees the channel
// without an explicit close. The receiver must observe the value, then see
// end-of-stream, without the test deadlocking.
func TestFreeWithPendingReceiver(t *testing.T) {
	ch := New[int]()
	results := make(chan struct {
		v  int
		ok bool
	}, 2)

	go func() {
		v, ok := ch.Receive()
		results <- struct {
			v  int
			ok bool
		}{v, ok}
		v, ok = ch.Receive()
		results <- struct {
			v  int
			ok bool
		}{v, ok}
	}()

	ch.Send(7)
	time.Sleep(20 * time.Millisecond)
	ch.Free()

	first := <-results
	if first.v != 7 || !first.ok {
		t.Fatalf("first receive = %+v, want (7, true)", first)
	}
	second := <-results
	if second.ok {
		t.Fatalf("second receive = %+v, want ok=false", second)
	}
}

func TestTryReceiveNeverBlocks(t *testing.T) {
	ch := New[int]()
	if _, ok := ch.TryReceive(); ok {
		t.Fatal("TryReceive on empty channel should report ok=false")
	}
	ch.Send(1)
	v, ok := ch.TryReceive()
	if !ok || v != 1 {
		t.Fatalf("TryReceive = (%d, %v), want (1, true)", v, ok)
	}
	if _, ok := ch.TryReceive(); ok {
		t.Fatal("TryReceive on drained channel should report ok=false")
	}
}

func TestSendOnClosedChannelPanics(t *testing.T) {
	ch := New[int]()
	ch.Close()
	defer func() {
		if recover() == nil {
			t.Fatal("expected send on closed channel to panic")
		}
	}()
	ch.Send(1)
}

func TestDoubleClosePanics(t *testing.T) {
	ch := New[int]()
	ch.Close()
	defer func() {
		if recover() == nil {
			t.Fatal("expected double close to panic")
		}
	}()
	ch.Close()
}

func TestLenIsAdvisory(t *testing.T) {
	ch := New[int]()
	ch.Send(1)
	ch.Send(2)
	if got := ch.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	ch.Receive()
	if got := ch.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
}

// TestFIFOPerSender verifies property 1: the order a single sender sent
// values in matches the order a single receiver observes them, even with
// other senders interleaving on the same channel.
func TestFIFOPerSender(t *testing.T) {
	ch := New[int]()
	const n = 500

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			ch.Send(i)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			ch.Send(-i - 1)
		}
	}()

	seenPositive := -1
	seenNegative := 1
	for i := 0; i < 2*n; i++ {
		v, ok := recvWithTimeout(t, ch)
		if !ok {
			t.Fatal("unexpected closed channel")
		}
		if v >= 0 {
			if v <= seenPositive {
				t.Fatalf("positive sender out of order: got %d after %d", v, seenPositive)
			}
			seenPositive = v
		} else {
			if v >= seenNegative {
				t.Fatalf("negative sender out of order: got %d after %d", v, seenNegative)
			}
			seenNegative = v
		}
	}
	wg.Wait()
}

func recvWithTimeout[T any](t *testing.T, ch *Chan[T]) (T, bool) {
	t.Helper()
	type result struct {
		v  T
		ok bool
	}
	done := make(chan result, 1)
	go func() {
		v, ok := ch.Receive()
		done <- result{v, ok}
	}()
	select {
	case r := <-done:
		return r.v, r.ok
	case <-time.After(2 * time.Second):
		t.Fatal("receive timed out")
		var zero T
		return zero, false
	}
}
