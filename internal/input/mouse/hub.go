package mouse

import (
	"sync"
	"sync/atomic"
)

// Handler receives mouse events.
type Handler func(Event)

// FilterFunc decides whether an event is delivered to a subscription.
type FilterFunc func(Event) bool

// SubscriptionConfig contains configuration for a subscription.
type SubscriptionConfig struct {
	// Filter is an optional predicate. If set, events are only delivered
	// if Filter returns true.
	Filter FilterFunc

	// Actions restricts delivery to the listed actions. Empty means all.
	Actions []Action
}

// SubscriptionOption is a function that configures a subscription.
type SubscriptionOption func(*SubscriptionConfig)

// WithFilter sets a filter predicate.
func WithFilter(f FilterFunc) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Filter = f
	}
}

// WithActions restricts the subscription to the given actions.
func WithActions(actions ...Action) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Actions = append(c.Actions, actions...)
	}
}

// Within returns a filter accepting events whose position satisfies
// contains. The predicate is evaluated on every event so it always sees the
// current bounds.
func Within(contains func(Position) bool) FilterFunc {
	return func(ev Event) bool {
		return contains(ev.Position)
	}
}

// Subscription is an active registration with a Hub.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() uint64

	// IsActive returns true until the subscription is cancelled.
	IsActive() bool

	// Cancel permanently stops delivery. It is safe to call more than once.
	Cancel()
}

type subscription struct {
	id        uint64
	hub       *Hub
	handler   Handler
	config    SubscriptionConfig
	cancelled atomic.Bool
}

func (s *subscription) ID() uint64 { return s.id }

func (s *subscription) IsActive() bool { return !s.cancelled.Load() }

func (s *subscription) Cancel() {
	if s.cancelled.Swap(true) {
		return
	}
	s.hub.remove(s.id)
}

func (s *subscription) accepts(ev Event) bool {
	if len(s.config.Actions) > 0 {
		found := false
		for _, a := range s.config.Actions {
			if a == ev.Action {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if s.config.Filter != nil && !s.config.Filter(ev) {
		return false
	}
	return true
}

// Hub fans mouse events out to subscriptions.
type Hub struct {
	mu     sync.RWMutex
	subs   []*subscription
	nextID atomic.Uint64
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{}
}

// Subscribe registers handler. A nil handler yields an already-cancelled
// subscription.
func (h *Hub) Subscribe(handler Handler, opts ...SubscriptionOption) Subscription {
	var cfg SubscriptionConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &subscription{
		id:      h.nextID.Add(1),
		hub:     h,
		handler: handler,
		config:  cfg,
	}
	if handler == nil {
		s.cancelled.Store(true)
		return s
	}

	h.mu.Lock()
	h.subs = append(h.subs, s)
	h.mu.Unlock()
	return s
}

// Publish delivers ev to every matching subscription in subscription
// order. Handlers run on the caller's goroutine. A subscription cancelled
// by an earlier handler in the same Publish is skipped.
func (h *Hub) Publish(ev Event) {
	if ev.Action == ActionNone {
		return
	}

	h.mu.RLock()
	subs := make([]*subscription, len(h.subs))
	copy(subs, h.subs)
	h.mu.RUnlock()

	for _, s := range subs {
		if !s.IsActive() || !s.accepts(ev) {
			continue
		}
		s.handler(ev)
	}
}

// Count returns the number of active subscriptions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, s := range h.subs {
		if s.id == id {
			h.subs = append(h.subs[:i], h.subs[i+1:]...)
			return
		}
	}
}
