package app

import (
	"math"
	"sync/atomic"
	"time"
)

// Metrics tracks event loop performance. Counters are atomic so the input
// goroutine can record drops while the loop records everything else.
type Metrics struct {
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMinNs   atomic.Int64
	frameMaxNs   atomic.Int64
	lastFrameNs  atomic.Uint64

	eventCount   atomic.Uint64
	eventTotalNs atomic.Int64
	pointerCount atomic.Uint64
	inputDropped atomic.Uint64

	taskCount   atomic.Uint64
	changeCount atomic.Uint64
	reloadCount atomic.Uint64
	reloadFails atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	m.frameMinNs.Store(math.MaxInt64)
	return m
}

// RecordFrame records the time taken to draw and show one frame.
func (m *Metrics) RecordFrame(d time.Duration) {
	ns := d.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(uint64(ns))

	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordEvent records the handling time of one backend event.
func (m *Metrics) RecordEvent(d time.Duration) {
	m.eventCount.Add(1)
	m.eventTotalNs.Add(d.Nanoseconds())
}

// RecordPointer counts a pointer event published to the engine.
func (m *Metrics) RecordPointer() {
	m.pointerCount.Add(1)
}

// RecordInputDropped counts a backend event dropped on a full queue.
func (m *Metrics) RecordInputDropped() {
	m.inputDropped.Add(1)
}

// RecordTask counts a timer or watcher callback run on the loop.
func (m *Metrics) RecordTask() {
	m.taskCount.Add(1)
}

// RecordChange counts a selection change notification.
func (m *Metrics) RecordChange() {
	m.changeCount.Add(1)
}

// RecordReload counts a configuration reload attempt.
func (m *Metrics) RecordReload(err error) {
	m.reloadCount.Add(1)
	if err != nil {
		m.reloadFails.Add(1)
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	FrameCount     uint64
	AvgFrameTimeNs int64
	MinFrameTimeNs int64
	MaxFrameTimeNs int64
	LastFrameNs    int64
	EventCount     uint64
	AvgEventNs     int64
	PointerEvents  uint64
	InputDropped   uint64
	Tasks          uint64
	Changes        uint64
	Reloads        uint64
	ReloadFailures uint64
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frames := m.frameCount.Load()
	events := m.eventCount.Load()

	s := MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		FrameCount:     frames,
		MinFrameTimeNs: m.frameMinNs.Load(),
		MaxFrameTimeNs: m.frameMaxNs.Load(),
		LastFrameNs:    int64(m.lastFrameNs.Load()),
		EventCount:     events,
		PointerEvents:  m.pointerCount.Load(),
		InputDropped:   m.inputDropped.Load(),
		Tasks:          m.taskCount.Load(),
		Changes:        m.changeCount.Load(),
		Reloads:        m.reloadCount.Load(),
		ReloadFailures: m.reloadFails.Load(),
	}
	if frames > 0 {
		s.AvgFrameTimeNs = m.frameTotalNs.Load() / int64(frames)
	}
	if events > 0 {
		s.AvgEventNs = m.eventTotalNs.Load() / int64(events)
	}
	if s.MinFrameTimeNs == math.MaxInt64 {
		s.MinFrameTimeNs = 0
	}
	return s
}

// AvgFPS returns the frame rate implied by the average frame time.
func (s MetricsSnapshot) AvgFPS() float64 {
	if s.AvgFrameTimeNs == 0 {
		return 0
	}
	return 1e9 / float64(s.AvgFrameTimeNs)
}

// DropRate returns the percentage of backend events dropped.
func (s MetricsSnapshot) DropRate() float64 {
	total := s.EventCount + s.InputDropped
	if total == 0 {
		return 0
	}
	return float64(s.InputDropped) / float64(total) * 100
}

// Timer measures elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
