// Package watcher reports changes to configuration files.
//
// Files are watched through their parent directory so that editors which
// save by writing a temporary file and renaming it over the original are
// still seen. Bursts of events for the same file are coalesced: handlers
// run once, after the file has been quiet for the debounce window.
package watcher

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/boxselect/internal/selection/debounce"
)

// ErrWatcherClosed is returned by operations on a closed watcher.
var ErrWatcherClosed = errors.New("watcher closed")

// Event represents a file change event.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the last operation seen during the burst.
	Op Operation

	// Time is when the event was dispatched.
	Time time.Time
}

// Operation represents the type of file operation.
type Operation int

const (
	OpWrite Operation = iota
	OpCreate
	OpRemove
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

func convertOp(op fsnotify.Op) (Operation, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	default:
		return 0, false
	}
}

// Handler is called when a file change is detected.
type Handler func(event Event)

// ErrorHandler is called for errors reported by the OS watcher.
type ErrorHandler func(err error)

// Watcher monitors files for changes.
type Watcher struct {
	mu sync.Mutex

	fsw   *fsnotify.Watcher
	files map[string]bool
	dirs  map[string]int

	handlers []Handler
	onError  ErrorHandler

	debounce  time.Duration
	scheduler debounce.Scheduler
	pending   map[string]*pendingFile

	started bool
	closed  bool
	done    chan struct{}
	wg      sync.WaitGroup
}

type pendingFile struct {
	op        Operation
	debouncer *debounce.Debouncer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet window for coalescing bursts.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithScheduler sets where debounced dispatches are scheduled.
func WithScheduler(s debounce.Scheduler) Option {
	return func(w *Watcher) {
		if s != nil {
			w.scheduler = s
		}
	}
}

// WithErrorHandler sets the callback for OS watcher errors.
func WithErrorHandler(h ErrorHandler) Option {
	return func(w *Watcher) {
		w.onError = h
	}
}

// New creates a new file watcher.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:       fsw,
		files:     make(map[string]bool),
		dirs:      make(map[string]int),
		debounce:  100 * time.Millisecond,
		scheduler: debounce.RealScheduler,
		pending:   make(map[string]*pendingFile),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch adds a file to the watch list. The file need not exist yet, but
// its directory must.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.files[abs] {
		return nil
	}

	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[abs] = true
	return nil
}

// Unwatch removes a file from the watch list.
func (w *Watcher) Unwatch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if !w.files[abs] {
		return nil
	}
	delete(w.files, abs)
	if p, ok := w.pending[abs]; ok {
		p.debouncer.Cancel()
		delete(w.pending, abs)
	}

	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		return w.fsw.Remove(dir)
	}
	return nil
}

// OnChange registers a handler for file change events.
func (w *Watcher) OnChange(handler Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Start begins processing events. It is a no-op if already started.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.closed {
		return
	}
	w.started = true
	w.wg.Add(1)
	go w.loop()
}

// Close stops the watcher and cancels pending dispatches.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	for path, p := range w.pending {
		p.debouncer.Cancel()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			onError := w.onError
			w.mu.Unlock()
			if onError != nil {
				onError(err)
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	op, ok := convertOp(ev.Op)
	if !ok {
		return
	}
	path := filepath.Clean(ev.Name)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || !w.files[path] {
		return
	}

	p, ok := w.pending[path]
	if !ok {
		p = &pendingFile{}
		p.debouncer = debounce.New(w.scheduler, w.debounce, func() { w.dispatch(path) })
		w.pending[path] = p
	}
	p.op = op
	p.debouncer.Trigger()
}

func (w *Watcher) dispatch(path string) {
	w.mu.Lock()
	p, ok := w.pending[path]
	if !ok || w.closed {
		w.mu.Unlock()
		return
	}
	delete(w.pending, path)
	handlers := append([]Handler(nil), w.handlers...)
	w.mu.Unlock()

	ev := Event{Path: path, Op: p.op, Time: time.Now()}
	for _, h := range handlers {
		h(ev)
	}
}
