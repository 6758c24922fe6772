package core

// ScreenRect is a rectangular region of terminal cells. Top and Left are
// inclusive; Bottom and Right are exclusive.
type ScreenRect struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// RectFromSize creates a rectangle from its top-left corner and size.
func RectFromSize(top, left, height, width int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

// Width returns the width of the rectangle.
func (r ScreenRect) Width() int {
	return max(0, r.Right-r.Left)
}

// Height returns the height of the rectangle.
func (r ScreenRect) Height() int {
	return max(0, r.Bottom-r.Top)
}

// IsEmpty returns true if the rectangle has no area.
func (r ScreenRect) IsEmpty() bool {
	return r.Width() == 0 || r.Height() == 0
}

// Contains reports whether column x, row y lies inside r.
func (r ScreenRect) Contains(x, y int) bool {
	return y >= r.Top && y < r.Bottom && x >= r.Left && x < r.Right
}

// Intersection returns the overlap of two rectangles, or the zero
// rectangle when they are disjoint.
func (r ScreenRect) Intersection(other ScreenRect) ScreenRect {
	out := ScreenRect{
		Top:    max(r.Top, other.Top),
		Left:   max(r.Left, other.Left),
		Bottom: min(r.Bottom, other.Bottom),
		Right:  min(r.Right, other.Right),
	}
	if out.IsEmpty() {
		return ScreenRect{}
	}
	return out
}
