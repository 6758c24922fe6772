// Package diff decides when a new selection differs from the remembered
// one and keeps the remembered selection.
package diff

import "github.com/dshills/boxselect/internal/selection/registry"

// NotifyFunc receives the new selection and the one it replaces.
type NotifyFunc func(selection, previous []registry.ID)

// HasChanged reports whether candidate differs from previous. The two are
// unchanged only when they have the same length and the same set of item
// identities; order and duplicates are otherwise ignored.
func HasChanged(previous, candidate []registry.ID) bool {
	if len(previous) != len(candidate) {
		return true
	}
	prev := toSet(previous)
	cand := toSet(candidate)
	if len(prev) != len(cand) {
		return true
	}
	for id := range cand {
		if _, ok := prev[id]; !ok {
			return true
		}
	}
	return false
}

// Added returns the items in candidate that are not in previous, in
// candidate order.
func Added(previous, candidate []registry.ID) []registry.ID {
	return subtract(candidate, previous)
}

// Removed returns the items in previous that are not in candidate, in
// previous order.
func Removed(previous, candidate []registry.ID) []registry.ID {
	return subtract(previous, candidate)
}

func subtract(from, minus []registry.ID) []registry.ID {
	drop := toSet(minus)
	out := make([]registry.ID, 0, len(from))
	for _, id := range from {
		if _, ok := drop[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func toSet(ids []registry.ID) map[registry.ID]struct{} {
	set := make(map[registry.ID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Tracker remembers the current selection across interactions.
type Tracker struct {
	current []registry.ID
}

// NewTracker creates a tracker seeded with initial.
func NewTracker(initial []registry.ID) *Tracker {
	if initial == nil {
		initial = []registry.ID{}
	}
	return &Tracker{current: initial}
}

// Apply compares candidate with the remembered selection. When they differ
// notify is called with (candidate, previous) and candidate becomes the
// remembered selection. When they do not differ nothing happens and the
// remembered slice is left as is. Returns whether a change was applied.
func (t *Tracker) Apply(candidate []registry.ID, notify NotifyFunc) bool {
	if !HasChanged(t.current, candidate) {
		return false
	}
	previous := t.current
	t.current = candidate
	if notify != nil {
		notify(candidate, previous)
	}
	return true
}

// Selection returns the remembered selection. The slice is shared; callers
// must not modify it.
func (t *Tracker) Selection() []registry.ID {
	return t.current
}

// Len returns the number of remembered items.
func (t *Tracker) Len() int {
	return len(t.current)
}
