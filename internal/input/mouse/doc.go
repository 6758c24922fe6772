// Package mouse turns raw terminal mouse reports into pointer events and
// fans them out to subscribers.
//
// Terminals report mouse state, not transitions: every report carries the
// position and the set of buttons currently held. The Tracker compares
// each report with the previous one and emits press, release, drag and
// move events:
//
//	tracker := mouse.NewTracker()
//	for _, ev := range tracker.Update(x, y, mouse.ButtonLeft, time.Now()) {
//	    hub.Publish(ev)
//	}
//
// # Hub
//
// Hub delivers events to subscribers. A subscription is either global
// (sees every event, used for move and release so a drag can end anywhere
// on screen) or scoped by a filter (used for press so a drag only starts
// inside a container):
//
//	sub := hub.Subscribe(handler, mouse.WithFilter(mouse.Within(bounds)))
//	defer sub.Cancel()
//
// Subscriptions are explicit objects; cancelling one is the only way to
// stop delivery and leaves no state behind in the hub.
//
// # Thread Safety
//
// Tracker is not safe for concurrent use. Hub may be subscribed to from
// any goroutine, but Publish calls handlers synchronously on the caller's
// goroutine, so handlers run in delivery order.
package mouse
