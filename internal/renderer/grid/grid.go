package grid

import (
	"strconv"
	"sync"

	"github.com/dshills/boxselect/internal/input/mouse"
	"github.com/dshills/boxselect/internal/renderer/core"
	"github.com/dshills/boxselect/internal/selection"
	"github.com/dshills/boxselect/internal/selection/geom"
	"github.com/dshills/boxselect/internal/selection/registry"
)

// Layout describes how cells are arranged.
type Layout struct {
	Cells      int
	CellWidth  int
	CellHeight int
	Gap        int
}

// DefaultLayout returns a 100-cell layout.
func DefaultLayout() Layout {
	return Layout{Cells: 100, CellWidth: 6, CellHeight: 3, Gap: 1}
}

// Columns returns how many cells fit side by side in width columns.
func (l Layout) Columns(width int) int {
	step := l.CellWidth + l.Gap
	if step <= 0 {
		return 1
	}
	return max(1, (width+l.Gap)/step)
}

var (
	_ selection.Host        = (*Grid)(nil)
	_ selection.PointMapper = (*Grid)(nil)
)

// Grid is a wrapping layout of numbered cells. It implements
// selection.Host.
type Grid struct {
	mu sync.Mutex

	region core.ScreenRect
	layout Layout
	theme  Theme
	marker string

	ids   []registry.ID
	rects map[registry.ID]core.ScreenRect

	selected map[registry.ID]struct{}
	label    string

	overlays  map[*marquee]struct{}
	observers map[int]func()
	nextObs   int
}

// New creates a grid laid out in region with cells tagged by marker.
func New(region core.ScreenRect, layout Layout, marker string) *Grid {
	g := &Grid{
		region:    region,
		layout:    layout,
		theme:     DefaultTheme(),
		marker:    marker,
		selected:  make(map[registry.ID]struct{}),
		overlays:  make(map[*marquee]struct{}),
		observers: make(map[int]func()),
	}
	g.relayout()
	return g
}

// relayout must be called with mu held.
func (g *Grid) relayout() {
	n := max(0, g.layout.Cells)
	g.ids = make([]registry.ID, n)
	g.rects = make(map[registry.ID]core.ScreenRect, n)

	cols := g.layout.Columns(g.region.Width())
	stepX := g.layout.CellWidth + g.layout.Gap
	stepY := g.layout.CellHeight + g.layout.Gap
	for i := 0; i < n; i++ {
		id := registry.ID(strconv.Itoa(i))
		g.ids[i] = id
		g.rects[id] = core.RectFromSize(
			g.region.Top+(i/cols)*stepY,
			g.region.Left+(i%cols)*stepX,
			g.layout.CellHeight,
			g.layout.CellWidth,
		)
	}
}

// Resize moves the grid into region and notifies resize observers.
func (g *Grid) Resize(region core.ScreenRect) {
	g.mu.Lock()
	if region == g.region {
		g.mu.Unlock()
		return
	}
	g.region = region
	g.relayout()
	fns := g.observerList()
	g.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// SetLayout replaces the layout and notifies resize observers.
func (g *Grid) SetLayout(layout Layout) {
	g.mu.Lock()
	if layout == g.layout {
		g.mu.Unlock()
		return
	}
	g.layout = layout
	g.relayout()
	fns := g.observerList()
	g.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (g *Grid) observerList() []func() {
	fns := make([]func(), 0, len(g.observers))
	for _, fn := range g.observers {
		fns = append(fns, fn)
	}
	return fns
}

// SetMarker changes the marker the cells carry.
func (g *Grid) SetMarker(marker string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.marker = marker
}

// SetTheme replaces the colors used by Draw.
func (g *Grid) SetTheme(t Theme) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.theme = t
}

// SetSelection marks ids as selected for drawing.
func (g *Grid) SetSelection(ids []registry.ID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.selected = make(map[registry.ID]struct{}, len(ids))
	for _, id := range ids {
		g.selected[id] = struct{}{}
	}
}

// SetLabel sets the status label drawn under the grid.
func (g *Grid) SetLabel(label string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.label = label
}

// Label returns the current status label.
func (g *Grid) Label() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.label
}

// Region returns the screen region the grid occupies.
func (g *Grid) Region() core.ScreenRect {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.region
}

// CellRect returns the screen rectangle of cell id.
func (g *Grid) CellRect(id registry.ID) (core.ScreenRect, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rects[id]
	return r, ok
}

// Origin implements selection.Host.
func (g *Grid) Origin() geom.Point {
	g.mu.Lock()
	defer g.mu.Unlock()
	return geom.Pt(float64(g.region.Left), float64(g.region.Top))
}

// Query implements selection.Host.
func (g *Grid) Query(marker string) []registry.ID {
	g.mu.Lock()
	defer g.mu.Unlock()
	if marker != g.marker {
		return nil
	}
	return append([]registry.ID(nil), g.ids...)
}

// ScreenPoint implements selection.PointMapper. A terminal position maps
// to the centre of its character cell.
func (g *Grid) ScreenPoint(pos mouse.Position) geom.Point {
	return geom.Pt(float64(pos.X)+0.5, float64(pos.Y)+0.5)
}

// Measure implements selection.Host. Cells that do not fit entirely inside
// the region cannot be measured.
func (g *Grid) Measure(id registry.ID) (geom.Rect, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rects[id]
	if !ok || r.Intersection(g.region) != r {
		return geom.Rect{}, false
	}
	return geom.R(float64(r.Left), float64(r.Top), float64(r.Width()), float64(r.Height())), true
}

// ContentSize implements selection.Host.
func (g *Grid) ContentSize() geom.Size {
	g.mu.Lock()
	defer g.mu.Unlock()
	return geom.Size{Width: float64(g.region.Width()), Height: float64(g.region.Height())}
}

// Contains implements selection.Host.
func (g *Grid) Contains(screen geom.Point) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.region.Contains(int(screen.X), int(screen.Y)) && screen.X >= 0 && screen.Y >= 0
}

// ObserveResize implements selection.Host. fn is called after every
// relayout.
func (g *Grid) ObserveResize(fn func()) func() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextObs++
	id := g.nextObs
	g.observers[id] = fn
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.observers, id)
	}
}

// Observers returns the number of registered resize observers.
func (g *Grid) Observers() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.observers)
}

// CreateOverlay implements selection.Host.
func (g *Grid) CreateOverlay(marker string, r geom.Rect) selection.Overlay {
	g.mu.Lock()
	defer g.mu.Unlock()
	m := &marquee{grid: g, marker: marker, local: r}
	g.overlays[m] = struct{}{}
	return m
}

// Overlays returns the screen rectangles of live overlays.
func (g *Grid) Overlays() []core.ScreenRect {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]core.ScreenRect, 0, len(g.overlays))
	for m := range g.overlays {
		out = append(out, m.screenRect(g.region))
	}
	return out
}
