package app

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	s := NewMetrics().Snapshot()
	if s.FrameCount != 0 {
		t.Errorf("FrameCount = %d, want 0", s.FrameCount)
	}
	if s.MinFrameTimeNs != 0 {
		t.Errorf("MinFrameTimeNs = %d, want 0 before any frame", s.MinFrameTimeNs)
	}
}

func TestMetrics_RecordFrame(t *testing.T) {
	m := NewMetrics()

	m.RecordFrame(10 * time.Millisecond)
	m.RecordFrame(20 * time.Millisecond)
	m.RecordFrame(6 * time.Millisecond)

	s := m.Snapshot()
	if s.FrameCount != 3 {
		t.Errorf("FrameCount = %d, want 3", s.FrameCount)
	}
	if s.MinFrameTimeNs != int64(6*time.Millisecond) {
		t.Errorf("MinFrameTimeNs = %d, want 6ms", s.MinFrameTimeNs)
	}
	if s.MaxFrameTimeNs != int64(20*time.Millisecond) {
		t.Errorf("MaxFrameTimeNs = %d, want 20ms", s.MaxFrameTimeNs)
	}
	if s.AvgFrameTimeNs != int64(12*time.Millisecond) {
		t.Errorf("AvgFrameTimeNs = %d, want 12ms", s.AvgFrameTimeNs)
	}
	if s.LastFrameNs != int64(6*time.Millisecond) {
		t.Errorf("LastFrameNs = %d, want 6ms", s.LastFrameNs)
	}
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.RecordEvent(100 * time.Microsecond)
	m.RecordEvent(300 * time.Microsecond)
	m.RecordPointer()
	m.RecordInputDropped()
	m.RecordTask()
	m.RecordTask()
	m.RecordChange()
	m.RecordReload(nil)
	m.RecordReload(errors.New("bad"))

	s := m.Snapshot()
	tests := []struct {
		name string
		got  uint64
		want uint64
	}{
		{"EventCount", s.EventCount, 2},
		{"PointerEvents", s.PointerEvents, 1},
		{"InputDropped", s.InputDropped, 1},
		{"Tasks", s.Tasks, 2},
		{"Changes", s.Changes, 1},
		{"Reloads", s.Reloads, 2},
		{"ReloadFailures", s.ReloadFailures, 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
	if s.AvgEventNs != int64(200*time.Microsecond) {
		t.Errorf("AvgEventNs = %d, want 200us", s.AvgEventNs)
	}
}

func TestMetrics_ConcurrentFrames(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(d time.Duration) {
			defer wg.Done()
			m.RecordFrame(d)
		}(time.Duration(i) * time.Millisecond)
	}
	wg.Wait()

	s := m.Snapshot()
	if s.FrameCount != 50 {
		t.Errorf("FrameCount = %d, want 50", s.FrameCount)
	}
	if s.MinFrameTimeNs != int64(time.Millisecond) || s.MaxFrameTimeNs != int64(50*time.Millisecond) {
		t.Errorf("min/max = %d/%d, want 1ms/50ms", s.MinFrameTimeNs, s.MaxFrameTimeNs)
	}
}

func TestMetricsSnapshot_AvgFPS(t *testing.T) {
	tests := []struct {
		avgNs int64
		want  float64
	}{
		{0, 0},
		{16666666, 60},
		{1000000000 / 120, 120},
	}

	for _, tt := range tests {
		got := MetricsSnapshot{AvgFrameTimeNs: tt.avgNs}.AvgFPS()
		if d := got - tt.want; d < -1 || d > 1 {
			t.Errorf("AvgFPS() for %d ns = %f, want ~%f", tt.avgNs, got, tt.want)
		}
	}
}

func TestMetricsSnapshot_DropRate(t *testing.T) {
	tests := []struct {
		events, dropped uint64
		want            float64
	}{
		{0, 0, 0},
		{100, 0, 0},
		{75, 25, 25},
	}

	for _, tt := range tests {
		s := MetricsSnapshot{EventCount: tt.events, InputDropped: tt.dropped}
		if got := s.DropRate(); got != tt.want {
			t.Errorf("DropRate(%d, %d) = %f, want %f", tt.events, tt.dropped, got, tt.want)
		}
	}
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(5 * time.Millisecond)
	if e := timer.Elapsed(); e < 5*time.Millisecond {
		t.Errorf("Elapsed() = %v, want >= 5ms", e)
	}
}
