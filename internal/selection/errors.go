package selection

import "errors"

// Sentinel errors for engine lifecycle.
var (
	// ErrNoContainer is returned when attaching without a host container.
	ErrNoContainer = errors.New("selection: container not available")

	// ErrNoPointer is returned when attaching without a pointer source.
	ErrNoPointer = errors.New("selection: pointer source not available")

	// ErrDetached is returned by operations on a detached engine.
	ErrDetached = errors.New("selection: engine detached")
)
