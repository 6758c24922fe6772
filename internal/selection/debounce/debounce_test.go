package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	m := NewManual()
	var calls int
	var sizeAtCall int
	size := 0

	d := New(m, 500*time.Millisecond, func() {
		calls++
		sizeAtCall = size
	})

	for i := 1; i <= 10; i++ {
		size = i * 10
		d.Trigger()
		m.Advance(40 * time.Millisecond)
	}

	if calls != 0 {
		t.Fatalf("calls during burst = %d, want 0", calls)
	}

	m.Advance(500 * time.Millisecond)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if sizeAtCall != 100 {
		t.Errorf("size seen by call = %d, want 100 (last signal)", sizeAtCall)
	}
	if d.Fired() != 1 {
		t.Errorf("Fired() = %d, want 1", d.Fired())
	}
	if d.Pending() {
		t.Error("Pending() = true after fire")
	}
}

func TestDebouncerQuietWindowBoundary(t *testing.T) {
	m := NewManual()
	var calls int
	d := New(m, 500*time.Millisecond, func() { calls++ })

	d.Trigger()
	m.Advance(499 * time.Millisecond)
	if calls != 0 {
		t.Fatalf("calls before window = %d, want 0", calls)
	}
	m.Advance(time.Millisecond)
	if calls != 1 {
		t.Errorf("calls at window = %d, want 1", calls)
	}
}

func TestDebouncerSeparateBursts(t *testing.T) {
	m := NewManual()
	var calls int
	d := New(m, 100*time.Millisecond, func() { calls++ })

	d.Trigger()
	d.Trigger()
	m.Advance(200 * time.Millisecond)
	d.Trigger()
	m.Advance(200 * time.Millisecond)

	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestDebouncerCancel(t *testing.T) {
	m := NewManual()
	var calls int
	d := New(m, 100*time.Millisecond, func() { calls++ })

	d.Trigger()
	if !d.Pending() {
		t.Fatal("Pending() = false after Trigger")
	}
	d.Cancel()
	if d.Pending() {
		t.Error("Pending() = true after Cancel")
	}
	if m.Pending() != 0 {
		t.Errorf("scheduler still holds %d timers", m.Pending())
	}

	m.Advance(time.Second)
	if calls != 0 {
		t.Errorf("calls after Cancel = %d, want 0", calls)
	}
}

func TestDebouncerIgnoresStaleFire(t *testing.T) {
	// A scheduler whose Stop never succeeds models a timer that already
	// started running when it was cancelled.
	var pending []func()
	sched := SchedulerFunc(func(_ time.Duration, f func()) Timer {
		pending = append(pending, f)
		return stuckTimer{}
	})

	var calls int
	d := New(sched, time.Millisecond, func() { calls++ })
	d.Trigger()
	d.Trigger()

	pending[0]()
	if calls != 0 {
		t.Errorf("stale fire ran fn, calls = %d", calls)
	}
	pending[1]()
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	d.Trigger()
	d.Cancel()
	pending[2]()
	if calls != 1 {
		t.Errorf("fire after Cancel ran fn, calls = %d", calls)
	}
}

type stuckTimer struct{}

func (stuckTimer) Stop() bool { return false }

func TestRealScheduler(t *testing.T) {
	var calls atomic.Int32
	done := make(chan struct{})
	d := New(nil, 10*time.Millisecond, func() {
		calls.Add(1)
		close(done)
	})

	for i := 0; i < 5; i++ {
		d.Trigger()
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced call never ran")
	}

	time.Sleep(30 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestManualOrdering(t *testing.T) {
	m := NewManual()
	var order []int
	m.AfterFunc(30*time.Millisecond, func() { order = append(order, 3) })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, 1) })
	m.AfterFunc(20*time.Millisecond, func() {
		order = append(order, 2)
		m.AfterFunc(5*time.Millisecond, func() { order = append(order, 25) })
	})

	m.Advance(time.Second)

	want := []int{1, 2, 25, 3}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if m.Now() != time.Second {
		t.Errorf("Now() = %v, want 1s", m.Now())
	}
}
