package mouse

import "time"

// Tracker derives pointer transitions from successive button-state
// reports.
type Tracker struct {
	held Button
	last Position
	seen bool
}

// NewTracker creates a tracker with no button held.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Update records a report of the pointer at (x, y) with buttons held and
// returns the resulting events in order. Scroll reports never change the
// held button. A report identical to the previous one yields no events.
// A button change without an intervening release yields a release of the
// old button followed by a press of the new one.
func (t *Tracker) Update(x, y int, buttons Button, at time.Time) []Event {
	pos := Position{X: x, Y: y}
	ev := Event{Position: pos, Timestamp: at}

	if buttons.IsScroll() {
		ev.Button = buttons
		ev.Action = ActionPress
		return []Event{ev}
	}

	moved := !t.seen || !pos.Equal(t.last)
	t.seen = true
	t.last = pos

	switch {
	case t.held == ButtonNone && buttons != ButtonNone:
		t.held = buttons
		ev.Button = buttons
		ev.Action = ActionPress
		return []Event{ev}

	case t.held != ButtonNone && buttons == ButtonNone:
		ev.Button = t.held
		ev.Action = ActionRelease
		t.held = ButtonNone
		return []Event{ev}

	case t.held != ButtonNone && buttons != t.held:
		release := ev
		release.Button = t.held
		release.Action = ActionRelease

		press := ev
		press.Button = buttons
		press.Action = ActionPress
		t.held = buttons
		return []Event{release, press}

	case t.held != ButtonNone:
		if !moved {
			return nil
		}
		ev.Button = t.held
		ev.Action = ActionDrag
		return []Event{ev}

	default:
		if !moved {
			return nil
		}
		ev.Action = ActionMove
		return []Event{ev}
	}
}

// Held returns the button currently held.
func (t *Tracker) Held() Button {
	return t.held
}

// Reset forgets the held button, e.g. after the terminal lost focus.
func (t *Tracker) Reset() {
	t.held = ButtonNone
	t.seen = false
	t.last = Position{}
}
