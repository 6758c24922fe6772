// Package backend provides the terminal abstraction the demo draws on and
// reads pointer and key input from.
package backend

import (
	"sync"

	"github.com/dshills/boxselect/internal/input/mouse"
	"github.com/dshills/boxselect/internal/renderer/core"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventFocus
	EventWake
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse event fields. Buttons is the full set held at report time;
	// ButtonNone means the pointer moved or all buttons were released.
	MouseX, MouseY int
	Buttons        mouse.Button

	// Resize event fields
	Width, Height int

	// Focus event fields
	Focused bool
}

// Key represents a keyboard key.
type Key int

// Keys the demo reacts to. Everything else arrives as KeyNone.
const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyCtrlC
	KeyCtrlL
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Backend defines the interface for terminal backends.
type Backend interface {
	// Init initializes the backend. Must be called before any other method.
	Init() error

	// Shutdown releases resources and restores the terminal.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets a single cell. Positions off screen are ignored.
	SetCell(x, y int, cell core.Cell)

	// GetCell returns the cell at the given position, or an empty cell
	// off screen.
	GetCell(x, y int) core.Cell

	// Fill fills a rectangular region with the given cell.
	Fill(rect core.ScreenRect, cell core.Cell)

	// Clear clears the screen with the default style.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// HideCursor hides the text cursor.
	HideCursor()

	// PollEvent blocks for the next event. It returns an EventNone event
	// once the backend has been shut down.
	PollEvent() Event

	// Wake posts an EventWake so a blocked PollEvent returns.
	Wake()

	// EnableMouse turns on pointer reporting including motion.
	EnableMouse()

	// DisableMouse turns pointer reporting off.
	DisableMouse()
}

// NullBackend is an in-memory backend for tests.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	cells         [][]core.Cell
	mouse         bool
	shows         int
	events        chan Event
	closed        chan struct{}
	closeOnce     sync.Once
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
		closed: make(chan struct{}),
	}
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allocate()
	return nil
}

func (b *NullBackend) allocate() {
	b.cells = make([][]core.Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]core.Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = core.EmptyCell()
		}
	}
}

func (b *NullBackend) Shutdown() {
	b.closeOnce.Do(func() { close(b.closed) })
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

func (b *NullBackend) GetCell(x, y int) core.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return core.EmptyCell()
}

func (b *NullBackend) Fill(rect core.ScreenRect, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for y := max(0, rect.Top); y < rect.Bottom && y < b.height; y++ {
		for x := max(0, rect.Left); x < rect.Right && x < b.width; x++ {
			b.cells[y][x] = cell
		}
	}
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	empty := core.EmptyCell()
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = empty
		}
	}
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	b.shows++
	b.mu.Unlock()
}

func (b *NullBackend) HideCursor() {}

func (b *NullBackend) PollEvent() Event {
	select {
	case ev := <-b.events:
		return ev
	case <-b.closed:
		return Event{}
	}
}

// PostEvent queues ev. Events are dropped when the queue is full.
func (b *NullBackend) PostEvent(ev Event) {
	select {
	case b.events <- ev:
	default:
	}
}

func (b *NullBackend) Wake() {
	b.PostEvent(Event{Type: EventWake})
}

func (b *NullBackend) EnableMouse() {
	b.mu.Lock()
	b.mouse = true
	b.mu.Unlock()
}

func (b *NullBackend) DisableMouse() {
	b.mu.Lock()
	b.mouse = false
	b.mu.Unlock()
}

// MouseEnabled reports whether pointer reporting is on.
func (b *NullBackend) MouseEnabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mouse
}

// Shows returns how many times Show was called.
func (b *NullBackend) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

// Row returns the runes of row y as a string.
func (b *NullBackend) Row(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return ""
	}
	runes := make([]rune, 0, b.width)
	for _, c := range b.cells[y] {
		runes = append(runes, c.Rune)
	}
	return string(runes)
}

// Resize simulates a terminal resize and queues the resize event.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.allocate()
	b.mu.Unlock()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
