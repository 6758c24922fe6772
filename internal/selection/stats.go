package selection

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Stats is a point-in-time view of engine counters.
type Stats struct {
	Drags            uint64
	Rebuilds         uint64
	Notifications    uint64
	SpuriousReleases uint64
	Aborts           uint64
	Items            int
	Selected         int

	// Session is the ID of the most recent drag, open or finished. It is
	// uuid.Nil before the first press.
	Session uuid.UUID
}

type counters struct {
	drags         atomic.Uint64
	rebuilds      atomic.Uint64
	notifications atomic.Uint64
	spurious      atomic.Uint64
	aborts        atomic.Uint64
}
