package mouse

import (
	"time"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonScrollUp indicates scroll wheel up.
	ButtonScrollUp
	// ButtonScrollDown indicates scroll wheel down.
	ButtonScrollDown
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonScrollUp:
		return "scroll-up"
	case ButtonScrollDown:
		return "scroll-down"
	default:
		return "none"
	}
}

// IsScroll returns true if this is a scroll button.
func (b Button) IsScroll() bool {
	return b == ButtonScrollUp || b == ButtonScrollDown
}

// Action represents the type of mouse action.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionPress indicates a button press.
	ActionPress
	// ActionRelease indicates a button release.
	ActionRelease
	// ActionMove indicates mouse movement (no button held).
	ActionMove
	// ActionDrag indicates mouse movement with a button held.
	ActionDrag
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	case ActionMove:
		return "move"
	case ActionDrag:
		return "drag"
	default:
		return "none"
	}
}

// IsMotion reports whether the action is pointer motion with or without a
// button held.
func (a Action) IsMotion() bool {
	return a == ActionMove || a == ActionDrag
}

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Event represents a mouse input event.
type Event struct {
	// Position is the screen coordinates.
	Position Position

	// Button is the mouse button involved. For a release it is the button
	// that was let go.
	Button Button

	// Action is the type of mouse action.
	Action Action

	// Timestamp is when the event occurred.
	Timestamp time.Time
}
