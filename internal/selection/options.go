package selection

import (
	"time"

	"github.com/dshills/boxselect/internal/selection/debounce"
	"github.com/dshills/boxselect/internal/selection/registry"
)

type options struct {
	logger    Logger
	scheduler debounce.Scheduler
	now       func() time.Time
	initial   []registry.ID
}

// Option configures an Engine.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithScheduler sets the scheduler used by the resize debouncer. Hosts with
// a single event loop should pass a scheduler that runs callbacks on that
// loop.
func WithScheduler(s debounce.Scheduler) Option {
	return func(o *options) {
		if s != nil {
			o.scheduler = s
		}
	}
}

// WithClock sets the time source for drag sessions.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithInitialSelection seeds the remembered selection.
func WithInitialSelection(ids []registry.ID) Option {
	return func(o *options) {
		o.initial = ids
	}
}

func defaultOptions() options {
	return options{
		logger:    nopLogger{},
		scheduler: debounce.RealScheduler,
		now:       time.Now,
	}
}
