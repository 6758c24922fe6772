package selection

import (
	"github.com/dshills/boxselect/internal/input/mouse"
	"github.com/dshills/boxselect/internal/selection/geom"
	"github.com/dshills/boxselect/internal/selection/registry"
)

// Overlay is a live marquee element owned by the renderer.
type Overlay interface {
	// Reposition moves and resizes the overlay to exactly r, in
	// container-local coordinates.
	Reposition(r geom.Rect)

	// Remove takes the overlay off screen. It is called exactly once.
	Remove()
}

// Host is the layout and rendering collaborator for one container.
type Host interface {
	registry.Container

	// ContentSize returns the container's scrollable content extent.
	ContentSize() geom.Size

	// Contains reports whether a screen point lies inside the container.
	Contains(screen geom.Point) bool

	// ObserveResize calls fn whenever the container's size changes and
	// returns a function that stops observing.
	ObserveResize(fn func()) (unobserve func())

	// CreateOverlay creates a marquee overlay carrying marker at r.
	CreateOverlay(marker string, r geom.Rect) Overlay
}

// TextSelectionClearer is implemented by hosts that have a native text
// selection which would otherwise be extended by the drag.
type TextSelectionClearer interface {
	ClearTextSelection()
}

// PointMapper is implemented by hosts whose pointer positions name whole
// cells rather than points. ScreenPoint returns the screen point the engine
// uses for pos. Hosts without it get pos as an exact point.
type PointMapper interface {
	ScreenPoint(pos mouse.Position) geom.Point
}

// Pointer is the event collaborator. mouse.Hub implements it.
type Pointer interface {
	Subscribe(handler mouse.Handler, opts ...mouse.SubscriptionOption) mouse.Subscription
}

// Logger is the subset of the application logger used by the engine.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
