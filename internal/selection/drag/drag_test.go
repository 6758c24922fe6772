package drag

import (
	"testing"
	"time"

	"github.com/dshills/boxselect/internal/selection/geom"
)

var content = geom.Size{Width: 100, Height: 100}

func fixedNow() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateIdle, "idle"},
		{StateDragging, "dragging"},
		{State(9), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State.String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestMachineStartsIdle(t *testing.T) {
	m := NewMachine(nil)
	if m.Active() {
		t.Error("new machine is active")
	}
	if m.State() != StateIdle {
		t.Errorf("State() = %v, want idle", m.State())
	}
	if _, ok := m.Session(); ok {
		t.Error("Session() ok on idle machine")
	}
}

func TestPressOpensSession(t *testing.T) {
	m := NewMachine(fixedNow)
	s := m.Press(geom.Pt(5, 5))

	if !m.Active() {
		t.Fatal("Active() = false after Press")
	}
	if s.Anchor != geom.Pt(5, 5) {
		t.Errorf("Anchor = %v, want (5,5)", s.Anchor)
	}
	if !s.Started.Equal(fixedNow()) {
		t.Errorf("Started = %v, want %v", s.Started, fixedNow())
	}
	if m.Bound() != geom.R(5, 5, 0, 0) {
		t.Errorf("Bound() = %v, want zero-size at anchor", m.Bound())
	}
}

func TestPressReplacesSession(t *testing.T) {
	m := NewMachine(nil)
	first := m.Press(geom.Pt(1, 1))
	second := m.Press(geom.Pt(9, 9))

	if first.ID == second.ID {
		t.Error("second press reused session ID")
	}
	got, _ := m.Session()
	if got.Anchor != geom.Pt(9, 9) {
		t.Errorf("Anchor = %v, want (9,9)", got.Anchor)
	}
}

func TestMoveWhileIdle(t *testing.T) {
	m := NewMachine(nil)
	if _, ok := m.Move(geom.Pt(10, 10), content); ok {
		t.Error("Move() ok while idle")
	}
}

func TestMoveClamps(t *testing.T) {
	m := NewMachine(nil)
	m.Press(geom.Pt(50, 50))

	r, ok := m.Move(geom.Pt(500, -20), content)
	if !ok {
		t.Fatal("Move() not ok while dragging")
	}
	want := geom.R(50, 0, 50, 50)
	if r != want {
		t.Errorf("Move() = %v, want %v", r, want)
	}
	if m.Bound() != want {
		t.Errorf("Bound() = %v, want %v", m.Bound(), want)
	}
	if !m.Active() {
		t.Error("Move ended the session")
	}
}

func TestReleaseReturnsToIdle(t *testing.T) {
	m := NewMachine(nil)
	m.Press(geom.Pt(5, 5))
	m.Move(geom.Pt(10, 10), content)

	r, ok := m.Release(geom.Pt(25, 25), content)
	if !ok {
		t.Fatal("Release() not ok")
	}
	if r != geom.R(5, 5, 20, 20) {
		t.Errorf("Release() = %v, want (5,5 20x20)", r)
	}
	if m.Active() {
		t.Error("still active after Release")
	}
	if m.Bound() != (geom.Rect{}) {
		t.Errorf("Bound() = %v after Release, want zero", m.Bound())
	}
}

func TestSpuriousRelease(t *testing.T) {
	m := NewMachine(nil)
	if _, ok := m.Release(geom.Pt(3, 3), content); ok {
		t.Error("Release() ok while idle")
	}
	if m.Active() {
		t.Error("spurious release opened a session")
	}
}

func TestZeroMovementRelease(t *testing.T) {
	m := NewMachine(nil)
	m.Press(geom.Pt(12, 34))
	r, ok := m.Release(geom.Pt(12, 34), content)
	if !ok {
		t.Fatal("Release() not ok")
	}
	if r != geom.R(12, 34, 0, 0) {
		t.Errorf("Release() = %v, want zero-area at (12,34)", r)
	}
}

func TestAbort(t *testing.T) {
	m := NewMachine(nil)
	m.Press(geom.Pt(1, 1))
	m.Abort()
	if m.Active() {
		t.Error("Active() after Abort")
	}
	if _, ok := m.Release(geom.Pt(2, 2), content); ok {
		t.Error("Release() after Abort reported ok")
	}
}
