package selection

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/boxselect/internal/input/mouse"
	"github.com/dshills/boxselect/internal/selection/debounce"
	"github.com/dshills/boxselect/internal/selection/diff"
	"github.com/dshills/boxselect/internal/selection/drag"
	"github.com/dshills/boxselect/internal/selection/geom"
	"github.com/dshills/boxselect/internal/selection/registry"
)

// Engine is a marquee selection engine attached to one container.
type Engine struct {
	mu sync.Mutex

	host    Host
	pointer Pointer
	cfg     Config
	opts    options

	registry  *registry.Registry
	machine   *drag.Machine
	tracker   *diff.Tracker
	debouncer *debounce.Debouncer
	overlay   Overlay

	subs        []mouse.Subscription
	unobserve   func()
	attached    bool
	lastSession uuid.UUID

	counters counters
}

// Attach creates an engine bound to host and starts listening. The host
// must be ready: its geometry is measured before Attach returns.
func Attach(host Host, pointer Pointer, cfg Config, opts ...Option) (*Engine, error) {
	if host == nil {
		return nil, ErrNoContainer
	}
	if pointer == nil {
		return nil, ErrNoPointer
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		host:     host,
		pointer:  pointer,
		opts:     o,
		registry: registry.New(),
		machine:  drag.NewMachine(o.now),
		tracker:  diff.NewTracker(o.initial),
	}

	e.mu.Lock()
	e.attach(cfg)
	e.mu.Unlock()

	return e, nil
}

// attach must be called with mu held.
func (e *Engine) attach(cfg Config) {
	e.cfg = cfg.withDefaults()
	e.rebuild()

	e.debouncer = debounce.New(e.opts.scheduler, e.cfg.ResizeQuiet, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.attached {
			e.rebuild()
		}
	})
	e.unobserve = e.host.ObserveResize(e.debouncer.Trigger)

	inside := func(ev mouse.Event) bool {
		return e.host.Contains(e.screenPoint(ev.Position))
	}
	e.subs = []mouse.Subscription{
		e.pointer.Subscribe(e.handlePress,
			mouse.WithActions(mouse.ActionPress), mouse.WithFilter(inside)),
		e.pointer.Subscribe(e.handleMove,
			mouse.WithActions(mouse.ActionMove, mouse.ActionDrag)),
		e.pointer.Subscribe(e.handleRelease,
			mouse.WithActions(mouse.ActionRelease)),
	}
	e.attached = true

	e.opts.logger.Debug("selection attached marker=%s overlay=%s items=%d",
		e.cfg.SelectableMarker, e.cfg.OverlayMarker, e.registry.Len())
}

// detach must be called with mu held. It leaves no timers, listeners or
// overlays behind.
func (e *Engine) detach() {
	if !e.attached {
		return
	}
	e.attached = false

	e.debouncer.Cancel()
	if e.unobserve != nil {
		e.unobserve()
		e.unobserve = nil
	}
	for _, s := range e.subs {
		s.Cancel()
	}
	e.subs = nil

	e.removeOverlay()
	e.machine.Abort()

	e.opts.logger.Debug("selection detached")
}

// Detach stops listening, cancels any pending rebuild and removes a live
// overlay. It is safe to call more than once.
func (e *Engine) Detach() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.detach()
}

// Reconfigure tears the engine down and re-attaches it with cfg. The
// remembered selection survives; an open drag does not.
func (e *Engine) Reconfigure(cfg Config) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.detach()
	e.attach(cfg)
}

// Rebuild re-measures every item immediately.
func (e *Engine) Rebuild() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.attached {
		return ErrDetached
	}
	e.rebuild()
	return nil
}

// rebuild must be called with mu held.
func (e *Engine) rebuild() {
	n := e.registry.Rebuild(e.host, e.cfg.SelectableMarker)
	e.counters.rebuilds.Add(1)
	e.opts.logger.Debug("registry rebuilt items=%d measured=%d generation=%d",
		e.registry.Len(), n, e.registry.Generation())
}

// Abort cancels an open drag without notifying. Returns false when idle.
func (e *Engine) Abort() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.machine.Active() {
		return false
	}
	e.removeOverlay()
	e.machine.Abort()
	e.counters.aborts.Add(1)
	return true
}

func (e *Engine) handlePress(ev mouse.Event) {
	if ev.Button != mouse.ButtonLeft {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.removeOverlay()

	anchor := geom.PointFromScreen(e.screenPoint(ev.Position), e.host.Origin())
	session := e.machine.Press(anchor)
	e.lastSession = session.ID

	if c, ok := e.host.(TextSelectionClearer); ok {
		c.ClearTextSelection()
	}
	e.overlay = e.host.CreateOverlay(e.cfg.OverlayMarker, e.machine.Bound())
	e.counters.drags.Add(1)

	e.opts.logger.Debug("drag started session=%s anchor=%v", session.ID, anchor)
}

func (e *Engine) handleMove(ev mouse.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.machine.Active() || e.overlay == nil {
		return
	}
	p := geom.PointFromScreen(e.screenPoint(ev.Position), e.host.Origin())
	bound, ok := e.machine.Move(p, e.host.ContentSize())
	if !ok {
		return
	}
	e.overlay.Reposition(bound)
}

func (e *Engine) handleRelease(ev mouse.Event) {
	notify := e.release(ev)
	if notify != nil {
		notify()
	}
}

// release finalizes the drag under the lock and returns the change
// notification to run once the lock is released.
func (e *Engine) release(ev mouse.Event) (notify func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, ok := e.machine.Session()
	if !ok {
		e.counters.spurious.Add(1)
		return nil
	}
	defer func() {
		e.removeOverlay()
		e.machine.Abort()
	}()

	p := geom.PointFromScreen(e.screenPoint(ev.Position), e.host.Origin())
	bound, _ := e.machine.Release(p, e.host.ContentSize())
	candidate := e.registry.Hits(bound)

	onChange := e.cfg.OnChange
	changed := e.tracker.Apply(candidate, func(sel, prev []registry.ID) {
		e.counters.notifications.Add(1)
		if onChange != nil {
			notify = func() { onChange(sel, prev) }
		}
	})

	e.opts.logger.Debug("drag finished session=%s bound=%v hits=%d changed=%t",
		session.ID, bound, len(candidate), changed)
	return notify
}

// removeOverlay must be called with mu held.
func (e *Engine) removeOverlay() {
	if e.overlay == nil {
		return
	}
	e.overlay.Remove()
	e.overlay = nil
}

// Selection returns the remembered selection. Callers must not modify it.
func (e *Engine) Selection() []registry.ID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.Selection()
}

// SelectableMarker returns the marker items must carry to be candidates.
func (e *Engine) SelectableMarker() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.SelectableMarker
}

// OverlayMarker returns the marker given to overlays.
func (e *Engine) OverlayMarker() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.OverlayMarker
}

// Config returns the active configuration.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Dragging reports whether a drag is open.
func (e *Engine) Dragging() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machine.Active()
}

// Attached reports whether the engine is listening.
func (e *Engine) Attached() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.attached
}

// Lookup returns the cached container-local geometry for id.
func (e *Engine) Lookup(id registry.ID) (geom.Rect, bool) {
	return e.registry.Lookup(id)
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	selected := e.tracker.Len()
	session := e.lastSession
	e.mu.Unlock()

	return Stats{
		Drags:            e.counters.drags.Load(),
		Rebuilds:         e.counters.rebuilds.Load(),
		Notifications:    e.counters.notifications.Load(),
		SpuriousReleases: e.counters.spurious.Load(),
		Aborts:           e.counters.aborts.Load(),
		Items:            e.registry.Len(),
		Selected:         selected,
		Session:          session,
	}
}

// screenPoint converts a pointer position through the host's PointMapper
// when it has one.
func (e *Engine) screenPoint(p mouse.Position) geom.Point {
	if m, ok := e.host.(PointMapper); ok {
		return m.ScreenPoint(p)
	}
	return geom.Pt(float64(p.X), float64(p.Y))
}
