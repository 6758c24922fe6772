// Package drag implements the two-state marquee interaction: Idle, and
// Dragging with an anchor point. The presence of a Session is the only
// discriminator between the two.
package drag

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/boxselect/internal/selection/geom"
)

// State names the machine's current state.
type State uint8

const (
	// StateIdle means no drag is open.
	StateIdle State = iota
	// StateDragging means a session holds an anchor point.
	StateDragging
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Session is the data held while dragging.
type Session struct {
	// ID identifies the drag in logs and engine stats.
	ID uuid.UUID

	// Anchor is the container-local point captured at pointer-down.
	Anchor geom.Point

	// Started is when the press happened.
	Started time.Time
}

// Machine tracks the drag session and the latest drag rectangle.
// It is not safe for concurrent use; the engine drives it from a single
// event loop.
type Machine struct {
	session *Session
	bound   geom.Rect
	now     func() time.Time
}

// NewMachine creates an idle machine. now may be nil.
func NewMachine(now func() time.Time) *Machine {
	if now == nil {
		now = time.Now
	}
	return &Machine{now: now}
}

// Press opens a new session anchored at p, replacing any session left
// over from an aborted drag.
func (m *Machine) Press(p geom.Point) *Session {
	m.session = &Session{
		ID:      uuid.New(),
		Anchor:  p,
		Started: m.now(),
	}
	m.bound = geom.Rect{X: p.X, Y: p.Y}
	return m.session
}

// Move recomputes the clamped drag rectangle for pointer position p.
// ok is false when idle.
func (m *Machine) Move(p geom.Point, content geom.Size) (geom.Rect, bool) {
	if m.session == nil {
		return geom.Rect{}, false
	}
	m.bound = geom.DragRect(p, m.session.Anchor, content)
	return m.bound, true
}

// Release computes the final drag rectangle and returns to Idle. A release
// while idle is a no-op and reports ok false.
func (m *Machine) Release(p geom.Point, content geom.Size) (geom.Rect, bool) {
	if m.session == nil {
		return geom.Rect{}, false
	}
	defer m.Abort()
	return geom.DragRect(p, m.session.Anchor, content), true
}

// Abort drops the session without computing a result.
func (m *Machine) Abort() {
	m.session = nil
	m.bound = geom.Rect{}
}

// Active reports whether a session is open.
func (m *Machine) Active() bool {
	return m.session != nil
}

// State returns the current state.
func (m *Machine) State() State {
	if m.session == nil {
		return StateIdle
	}
	return StateDragging
}

// Session returns a copy of the open session.
func (m *Machine) Session() (Session, bool) {
	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}

// Bound returns the most recent drag rectangle. It is the zero rectangle
// while idle.
func (m *Machine) Bound() geom.Rect {
	return m.bound
}
