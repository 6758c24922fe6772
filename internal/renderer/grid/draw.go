package grid

import (
	"strconv"

	"github.com/dshills/boxselect/internal/renderer/backend"
	"github.com/dshills/boxselect/internal/renderer/core"
)

// Draw renders the grid, live overlays and the label row below the region.
// It does not call Show.
func (g *Grid) Draw(b backend.Backend) {
	g.mu.Lock()
	defer g.mu.Unlock()

	b.Fill(g.region, core.EmptyCell())

	for i, id := range g.ids {
		r := g.rects[id]
		if r.Intersection(g.region) != r {
			continue
		}
		_, sel := g.selected[id]
		style := g.theme.cellStyle(sel)
		b.Fill(r, core.NewStyledCell(' ', style))

		text := strconv.Itoa(i)
		row := r.Top + r.Height()/2
		col := r.Left + core.Center(text, r.Width())
		drawText(b, col, row, core.Truncate(text, r.Width(), ""), style)
	}

	for m := range g.overlays {
		g.drawMarquee(b, m.screenRect(g.region).Intersection(g.region))
	}

	g.drawLabel(b)
}

func (g *Grid) drawMarquee(b backend.Backend, r core.ScreenRect) {
	if r.IsEmpty() {
		return
	}
	for y := r.Top; y < r.Bottom; y++ {
		for x := r.Left; x < r.Right; x++ {
			c := b.GetCell(x, y)
			c.Style = g.theme.tint(c.Style)
			b.SetCell(x, y, c)
		}
	}

	border := g.theme.marqueeBorder()
	last := r.Right - 1
	bottom := r.Bottom - 1
	for x := r.Left; x <= last; x++ {
		g.borderCell(b, x, r.Top, '─', border)
		g.borderCell(b, x, bottom, '─', border)
	}
	for y := r.Top; y <= bottom; y++ {
		g.borderCell(b, r.Left, y, '│', border)
		g.borderCell(b, last, y, '│', border)
	}
	if r.Width() > 1 && r.Height() > 1 {
		g.borderCell(b, r.Left, r.Top, '┌', border)
		g.borderCell(b, last, r.Top, '┐', border)
		g.borderCell(b, r.Left, bottom, '└', border)
		g.borderCell(b, last, bottom, '┘', border)
	}
}

// borderCell draws r over the tinted background already at (x, y).
func (g *Grid) borderCell(b backend.Backend, x, y int, r rune, s core.Style) {
	under := b.GetCell(x, y).Style
	b.SetCell(x, y, core.NewStyledCell(r, under.Merge(s)))
}

func (g *Grid) drawLabel(b backend.Backend) {
	row := g.region.Bottom
	width := g.region.Width()
	b.Fill(core.RectFromSize(row, g.region.Left, 1, width), core.EmptyCell())

	text := core.Truncate(g.label, width, "…")
	drawText(b, g.region.Left+core.Center(text, width), row, text, g.theme.labelStyle())
}

func drawText(b backend.Backend, x, y int, text string, style core.Style) {
	for _, r := range text {
		c := core.NewStyledCell(r, style)
		b.SetCell(x, y, c)
		x += max(1, c.Width)
	}
}
