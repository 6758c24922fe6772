// Package selection implements drag-box ("marquee") multi-selection.
//
// A user presses the pointer inside a container, drags, and every
// registered item whose bounding box intersects the drag rectangle is
// selected when the pointer is released. Only releases that change the
// remembered selection produce a notification.
//
// # Components
//
// The engine wires five leaf packages together:
//
//   - geom: Point, Rect, clamping and the inclusive intersection test
//   - registry: item geometry cached in container-local coordinates
//   - debounce: coalesces container resize signals into one rebuild
//   - drag: the Idle/Dragging state machine
//   - diff: change detection against the remembered selection
//
// # Collaborators
//
// The engine never draws and never reads input directly. A Host supplies
// layout (item queries, bounding boxes, container origin and content size,
// resize observation) and renders the overlay on request. A Pointer
// supplies press, move and release events; presses are subscribed with a
// filter scoped to the container while moves and releases are global so a
// drag can end anywhere.
//
//	eng, err := selection.Attach(host, hub, selection.Config{
//	    SelectableMarker: "cell",
//	    OverlayMarker:    "mark",
//	    OnChange: func(sel, prev []registry.ID) {
//	        // restyle, update counters
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	defer eng.Detach()
//
// # Geometry staleness
//
// Item geometry is rebuilt on attach, on explicit Rebuild, and after the
// container has stopped resizing for the quiet window. An item that moves
// while the container keeps its size is not re-measured until one of those
// happens.
//
// # Thread Safety
//
// Engine methods and pointer handlers are serialized by a mutex. OnChange
// runs after the mutex is released, so it may call back into the engine.
package selection
