// Package registry caches the container-local geometry of every selectable
// item under a container.
//
// The cache is an arena keyed by item ID and is only ever rebuilt
// wholesale. Items that move without the container resizing keep their old
// rectangle until the next rebuild; callers invalidate explicitly when they
// know layout changed.
package registry

import (
	"sync"

	"github.com/dshills/boxselect/internal/selection/geom"
)

// ID is the stable identity of a selectable item.
type ID string

// Container is the layout collaborator the registry measures against.
type Container interface {
	// Origin returns the container's current top-left screen offset.
	Origin() geom.Point

	// Query returns every item currently carrying marker, in layout order.
	Query(marker string) []ID

	// Measure returns the item's on-screen bounding box. ok is false when
	// the item is no longer displayed.
	Measure(id ID) (rect geom.Rect, ok bool)
}

// snapshot is one rebuild's worth of geometry. It is never mutated after
// construction.
type snapshot struct {
	items []ID
	rects map[ID]geom.Rect
}

// Registry maps items to their container-local rectangles.
type Registry struct {
	mu         sync.RWMutex
	snap       snapshot
	generation uint64
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		snap: snapshot{rects: make(map[ID]geom.Rect)},
	}
}

// Rebuild re-queries the container and replaces the cached geometry in one
// step. The container origin is read once so every item shares the same
// coordinate frame. Items that cannot be measured stay in the item list
// without a rectangle and are never selectable. Returns the number of
// items with geometry.
func (r *Registry) Rebuild(c Container, marker string) int {
	origin := c.Origin()
	ids := c.Query(marker)

	next := snapshot{
		items: make([]ID, 0, len(ids)),
		rects: make(map[ID]geom.Rect, len(ids)),
	}
	seen := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		next.items = append(next.items, id)

		rect, ok := c.Measure(id)
		if !ok {
			continue
		}
		next.rects[id] = rect.Translate(origin)
	}

	r.mu.Lock()
	r.snap = next
	r.generation++
	r.mu.Unlock()

	return len(next.rects)
}

// Lookup returns the cached rectangle for id.
func (r *Registry) Lookup(id ID) (geom.Rect, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rect, ok := r.snap.rects[id]
	return rect, ok
}

// Items returns a copy of the known items in layout order.
func (r *Registry) Items() []ID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ID, len(r.snap.items))
	copy(out, r.snap.items)
	return out
}

// Len returns the number of known items.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.snap.items)
}

// Generation returns how many rebuilds have completed.
func (r *Registry) Generation() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.generation
}

// Hits returns every item whose cached rectangle intersects bound, in
// layout order. Items without geometry are skipped.
func (r *Registry) Hits(bound geom.Rect) []ID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hits := make([]ID, 0)
	for _, id := range r.snap.items {
		rect, ok := r.snap.rects[id]
		if !ok {
			continue
		}
		if geom.Intersects(&bound, &rect) {
			hits = append(hits, id)
		}
	}
	return hits
}

// Reset discards all cached geometry.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = snapshot{rects: make(map[ID]geom.Rect)}
}
