// Package debounce coalesces bursts of signals into a single call after a
// quiet period.
package debounce

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending scheduled call.
type Timer interface {
	// Stop cancels the call. Returns false if it already ran or was stopped.
	Stop() bool
}

// Scheduler schedules a function to run after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(d time.Duration, f func()) Timer

// AfterFunc calls fn(d, f).
func (fn SchedulerFunc) AfterFunc(d time.Duration, f func()) Timer {
	return fn(d, f)
}

// RealScheduler schedules with time.AfterFunc. The function runs on its own
// goroutine; single-threaded hosts should wrap it to hop back onto their
// event loop.
var RealScheduler Scheduler = SchedulerFunc(func(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
})

// Debouncer runs fn once no Trigger has arrived for the quiet window.
// It owns a single timer slot: every Trigger cancels the pending timer and
// schedules a new one.
type Debouncer struct {
	mu    sync.Mutex
	sched Scheduler
	wait  time.Duration
	fn    func()

	timer Timer
	seq   uint64
	fired uint64
}

// New creates a debouncer that calls fn after wait of silence.
func New(sched Scheduler, wait time.Duration, fn func()) *Debouncer {
	if sched == nil {
		sched = RealScheduler
	}
	return &Debouncer{
		sched: sched,
		wait:  wait,
		fn:    fn,
	}
}

// Trigger records a signal and restarts the quiet window.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = d.sched.AfterFunc(d.wait, func() { d.fire(seq) })
}

// fire runs fn if seq is still the latest scheduled timer. A timer that
// lost a Stop race against a later Trigger is ignored.
func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	if seq != d.seq || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.fired++
	fn := d.fn
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Fired returns how many times fn has run.
func (d *Debouncer) Fired() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fired
}

// Manual is a deterministic Scheduler driven by Advance. It is used by
// tests and by headless hosts that own their own clock.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	nextID uint64
	timers []*manualTimer
}

type manualTimer struct {
	m       *Manual
	id      uint64
	at      time.Duration
	f       func()
	stopped bool
}

// NewManual creates a manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc schedules f to run when the clock passes d from now.
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	t := &manualTimer{m: m, id: m.nextID, at: m.now + d, f: f}
	m.timers = append(m.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	for i, other := range t.m.timers {
		if other == t {
			t.m.timers = append(t.m.timers[:i], t.m.timers[i+1:]...)
			t.stopped = true
			return true
		}
	}
	return false
}

// Advance moves the clock forward by d and runs every timer that comes
// due, in deadline order. Timers scheduled by those callbacks run too if
// they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		sort.SliceStable(m.timers, func(i, j int) bool {
			if m.timers[i].at == m.timers[j].at {
				return m.timers[i].id < m.timers[j].id
			}
			return m.timers[i].at < m.timers[j].at
		})
		if len(m.timers) == 0 || m.timers[0].at > target {
			m.now = target
			m.mu.Unlock()
			return
		}
		t := m.timers[0]
		m.timers = m.timers[1:]
		m.now = t.at
		m.mu.Unlock()

		t.f()
	}
}

// Pending returns the number of scheduled timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Now returns the elapsed manual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}
