package selection

import (
	"time"

	"github.com/dshills/boxselect/internal/selection/registry"
)

// Default markers and quiet window.
const (
	DefaultSelectableMarker = "boxselection-cell"
	DefaultOverlayMarker    = "boxselection-mark"
	DefaultResizeQuiet      = 500 * time.Millisecond
)

// ChangeFunc receives the new selection and the one it replaced. Consumers
// derive removed items as previous minus selection.
type ChangeFunc func(selection, previous []registry.ID)

// Config is fixed for the lifetime of one attachment. Changing it goes
// through Engine.Reconfigure, which tears down and re-attaches.
type Config struct {
	// SelectableMarker identifies candidate items.
	SelectableMarker string

	// OverlayMarker identifies the marquee overlay for the renderer.
	OverlayMarker string

	// OnChange is called when a release changes the selection. May be nil.
	OnChange ChangeFunc

	// ResizeQuiet is the debounce window for container resizes.
	ResizeQuiet time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		SelectableMarker: DefaultSelectableMarker,
		OverlayMarker:    DefaultOverlayMarker,
		ResizeQuiet:      DefaultResizeQuiet,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.SelectableMarker == "" {
		c.SelectableMarker = def.SelectableMarker
	}
	if c.OverlayMarker == "" {
		c.OverlayMarker = def.OverlayMarker
	}
	if c.ResizeQuiet <= 0 {
		c.ResizeQuiet = def.ResizeQuiet
	}
	return c
}

// SameAttachment reports whether two configs would produce an identical
// attachment, ignoring the callback.
func (c Config) SameAttachment(other Config) bool {
	a, b := c.withDefaults(), other.withDefaults()
	return a.SelectableMarker == b.SelectableMarker &&
		a.OverlayMarker == b.OverlayMarker &&
		a.ResizeQuiet == b.ResizeQuiet
}
