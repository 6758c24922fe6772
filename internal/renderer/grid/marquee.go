package grid

import (
	"math"

	"github.com/dshills/boxselect/internal/renderer/core"
	"github.com/dshills/boxselect/internal/selection/geom"
)

// marquee is the drag rectangle overlay. Its rectangle is stored in
// container-local coordinates and mapped to cells when drawn.
type marquee struct {
	grid   *Grid
	marker string
	local  geom.Rect
}

func (m *marquee) Reposition(r geom.Rect) {
	m.grid.mu.Lock()
	defer m.grid.mu.Unlock()
	m.local = r
}

func (m *marquee) Remove() {
	m.grid.mu.Lock()
	defer m.grid.mu.Unlock()
	delete(m.grid.overlays, m)
}

// screenRect returns the cells covered by the marquee. A zero-size
// marquee still covers the cell under the anchor.
func (m *marquee) screenRect(region core.ScreenRect) core.ScreenRect {
	left := region.Left + int(math.Floor(m.local.X))
	top := region.Top + int(math.Floor(m.local.Y))
	right := region.Left + int(math.Ceil(m.local.Right()))
	bottom := region.Top + int(math.Ceil(m.local.Bottom()))
	return core.ScreenRect{
		Top:    top,
		Left:   left,
		Bottom: max(bottom, top+1),
		Right:  max(right, left+1),
	}
}
