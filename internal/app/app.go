// Package app wires the marquee selection engine to a terminal grid and
// runs the single event loop that drives both.
//
// Backend events, debounce timer fires and config reloads are all
// serialized onto the goroutine that called Run. Timers and the file
// watcher never touch the engine directly; they post a task to the loop.
package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/boxselect/internal/config"
	"github.com/dshills/boxselect/internal/config/watcher"
	"github.com/dshills/boxselect/internal/input/mouse"
	"github.com/dshills/boxselect/internal/renderer/backend"
	"github.com/dshills/boxselect/internal/renderer/core"
	"github.com/dshills/boxselect/internal/renderer/grid"
	"github.com/dshills/boxselect/internal/script"
	"github.com/dshills/boxselect/internal/selection"
	"github.com/dshills/boxselect/internal/selection/debounce"
	"github.com/dshills/boxselect/internal/selection/registry"
)

// Application owns the grid, the selection engine and the event loop.
type Application struct {
	mu sync.Mutex

	opts    Options
	config  *config.Config
	logger  *Logger
	metrics *Metrics

	backend backend.Backend
	grid    *grid.Grid
	hub     *mouse.Hub
	tracker *mouse.Tracker
	engine  *selection.Engine
	hook    *script.Hook
	watcher *watcher.Watcher

	scheduler debounce.Scheduler
	now       func() time.Time
	tasks     chan func()

	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
	release  sync.Once
}

// Options configures the application.
type Options struct {
	// ConfigPath is the TOML or YAML configuration file.
	ConfigPath string

	// LogLevel overrides logging.level when set.
	LogLevel string

	// LogFile overrides logging.file when set.
	LogFile string

	// ScriptPath overrides script.path when set.
	ScriptPath string

	// Watch reloads the configuration file when it changes.
	Watch bool

	// ConfigOptions are appended to the options New builds the
	// configuration with.
	ConfigOptions []config.Option
}

// New loads the configuration and builds every component that does not
// need a terminal. Call SetBackend and Run to start.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		metrics: NewMetrics(),
		hub:     mouse.NewHub(),
		tracker: mouse.NewTracker(),
		now:     time.Now,
		tasks:   make(chan func(), 64),
		done:    make(chan struct{}),
	}
	app.scheduler = loopScheduler{app: app}

	app.config = config.New(app.configOptions()...)
	if err := app.config.Load(context.Background()); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	lc := app.config.Logging()
	logger, err := OpenLogger(lc.File, ParseLogLevel(lc.Level))
	if err != nil {
		return nil, &InitError{Component: "logging", Err: err}
	}
	app.logger = logger

	theme, err := themeFrom(app.config.Theme())
	if err != nil {
		_ = logger.Close()
		return nil, &InitError{Component: "theme", Err: err}
	}
	app.grid = grid.New(core.ScreenRect{}, layoutFrom(app.config.Grid()), app.config.Selection().CellMarker)
	app.grid.SetTheme(theme)

	if err := app.loadScript(); err != nil {
		_ = logger.Close()
		return nil, &InitError{Component: "script", Err: err}
	}

	logger.Info("boxselect starting (config=%q)", app.config.Path())
	return app, nil
}

func (app *Application) configOptions() []config.Option {
	opts := []config.Option{config.WithFile(app.opts.ConfigPath)}
	if app.opts.LogLevel != "" {
		opts = append(opts, config.WithOverride("logging.level", app.opts.LogLevel))
	}
	if app.opts.LogFile != "" {
		opts = append(opts, config.WithOverride("logging.file", app.opts.LogFile))
	}
	if app.opts.ScriptPath != "" {
		opts = append(opts, config.WithOverride("script.path", app.opts.ScriptPath))
	}
	return append(opts, app.opts.ConfigOptions...)
}

// SetBackend sets the terminal backend. Must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run initializes the backend, attaches the engine and processes events
// until Shutdown or a quit key. A quit key returns ErrQuit.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.setup(); err != nil {
		app.releaseResources()
		return err
	}
	defer app.teardown()

	return app.eventLoop(app.startInputPolling())
}

// setup brings up the terminal and attaches the engine to the grid.
func (app *Application) setup() error {
	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	b.HideCursor()
	b.EnableMouse()

	w, h := b.Size()
	app.grid.Resize(gridRegion(w, h))

	engine, err := selection.Attach(app.grid, app.hub, app.selectionConfig(),
		selection.WithScheduler(app.scheduler),
		selection.WithLogger(app.logger.WithComponent("selection")),
	)
	if err != nil {
		b.Shutdown()
		return &InitError{Component: "selection", Err: err}
	}
	app.engine = engine
	app.grid.SetLabel(defaultLabel(engine.Selection()))

	if app.opts.Watch && app.config.Path() != "" {
		if err := app.startWatcher(); err != nil {
			app.logComponentError("watcher", err)
		}
	}

	app.logger.Debug("attached: %d cells, screen %dx%d", engine.Stats().Items, w, h)
	return nil
}

// teardown detaches the engine and finalizes the terminal.
func (app *Application) teardown() {
	app.stopOnce.Do(func() {
		close(app.done)
	})
	if app.engine != nil {
		app.engine.Detach()
	}

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	b.DisableMouse()
	b.Shutdown()

	s := app.metrics.Snapshot()
	app.logger.Info("shutting down after %v: %d events, %d frames, %d changes, %d dropped",
		s.Uptime.Round(time.Millisecond), s.EventCount, s.FrameCount, s.Changes, s.InputDropped)
	app.releaseResources()
}

// releaseResources closes everything New and setup opened. Safe to call
// more than once.
func (app *Application) releaseResources() {
	app.release.Do(func() {
		var errs ErrorList
		if app.watcher != nil {
			errs.Add(app.watcher.Close())
		}
		if app.hook != nil {
			app.hook.Close()
		}
		if err := errs.AsError(); err != nil {
			app.logComponentError("shutdown", err)
		}
		_ = app.logger.Close()
	})
}

// Shutdown stops the event loop. It may be called from any goroutine and
// more than once.
func (app *Application) Shutdown() {
	app.stopOnce.Do(func() {
		close(app.done)
	})

	if !app.running.Load() {
		app.releaseResources()
		return
	}

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b != nil {
		b.Wake()
	}
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Grid returns the grid the engine is attached to.
func (app *Application) Grid() *grid.Grid {
	return app.grid
}

// Engine returns the selection engine, or nil before Run.
func (app *Application) Engine() *selection.Engine {
	return app.engine
}

func (app *Application) selectionConfig() selection.Config {
	sc := app.config.Selection()
	return selection.Config{
		SelectableMarker: sc.CellMarker,
		OverlayMarker:    sc.MarkMarker,
		ResizeQuiet:      sc.ResizeQuiet,
		OnChange:         app.onSelectionChange,
	}
}

// onSelectionChange runs on the loop after a release changed the selection.
func (app *Application) onSelectionChange(selected, previous []registry.ID) {
	app.metrics.RecordChange()
	app.grid.SetSelection(selected)
	app.grid.SetLabel(app.label(selected, previous))
	app.logger.WithField("session", app.engine.Stats().Session).
		Debug("selection changed: %d -> %d items", len(previous), len(selected))
}

// label asks the script hook for the label text and falls back to the
// item count.
func (app *Application) label(selected, previous []registry.ID) string {
	if app.hook == nil || !app.hook.Defined() {
		return defaultLabel(selected)
	}
	text, ok, err := app.hook.OnChange(context.Background(), selected, previous)
	if err != nil {
		app.logComponentError("script", err)
		return defaultLabel(selected)
	}
	if !ok {
		return defaultLabel(selected)
	}
	return text
}

func defaultLabel(selected []registry.ID) string {
	return fmt.Sprintf("Selected %d", len(selected))
}

// gridRegion leaves the bottom row of the screen for the label.
func gridRegion(width, height int) core.ScreenRect {
	return core.RectFromSize(0, 0, max(0, height-1), max(0, width))
}

func layoutFrom(gc config.GridConfig) grid.Layout {
	return grid.Layout{
		Cells:      gc.Cells,
		CellWidth:  gc.CellWidth,
		CellHeight: gc.CellHeight,
		Gap:        gc.Gap,
	}
}

func themeFrom(tc config.ThemeConfig) (grid.Theme, error) {
	var t grid.Theme
	for _, c := range []struct {
		dst *core.Color
		hex string
	}{
		{&t.Cell, tc.Cell},
		{&t.Selected, tc.Selected},
		{&t.Marquee, tc.Marquee},
		{&t.Label, tc.Label},
	} {
		color, err := core.ColorFromHex(c.hex)
		if err != nil {
			return grid.Theme{}, err
		}
		*c.dst = color
	}
	return t, nil
}

// loopScheduler runs debounced callbacks on the event loop.
type loopScheduler struct {
	app *Application
}

func (s loopScheduler) AfterFunc(d time.Duration, f func()) debounce.Timer {
	return time.AfterFunc(d, func() { s.app.post(f) })
}

// post hands f to the event loop. It gives up once the loop has stopped.
func (app *Application) post(f func()) {
	select {
	case app.tasks <- f:
	case <-app.done:
	}
}
