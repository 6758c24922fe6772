// Package geom provides the value types and pure functions used by the
// selection engine: points, rectangles, clamping and the inclusive
// intersection test.
//
// All coordinates are container-local unless stated otherwise. The origin
// is the container's top-left corner and values grow right and down.
package geom

import (
	"fmt"
	"math"
)

// Point is an immutable coordinate pair.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Add returns p + o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// String returns a human-readable representation.
func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// PointFromScreen translates a screen-space pointer position into
// container-local coordinates by subtracting the container's current
// top-left screen offset. The origin is read by the caller on every call;
// it is never cached since the container may move between events.
func PointFromScreen(screen, origin Point) Point {
	return screen.Sub(origin)
}

// Size is the scrollable content extent of a container.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned rectangle. Width and Height are never negative
// when produced by this package.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// R is shorthand for Rect{X: x, Y: y, Width: w, Height: h}.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// RectFromPoints returns the rectangle spanned by two corner points.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(a.X - b.X),
		Height: math.Abs(a.Y - b.Y),
	}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Translate returns r moved by -origin, converting a screen rectangle into
// the coordinate frame whose top-left is origin.
func (r Rect) Translate(origin Point) Rect {
	return Rect{X: r.X - origin.X, Y: r.Y - origin.Y, Width: r.Width, Height: r.Height}
}

// Contains reports whether p lies inside r or on its boundary.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Intersects reports whether r and o overlap. Touching edges count as
// intersecting, so a zero-area rectangle intersects every rectangle that
// contains its point.
func (r Rect) Intersects(o Rect) bool {
	if o.X > r.Right() {
		return false
	}
	if o.Y > r.Bottom() {
		return false
	}
	if o.Right() < r.X {
		return false
	}
	if o.Bottom() < r.Y {
		return false
	}
	return true
}

// IsEmpty reports whether r has zero area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// String returns a human-readable representation.
func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}

// Intersects is the nil-tolerant form of Rect.Intersects. An absent
// rectangle never intersects anything.
func Intersects(a, b *Rect) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Intersects(*b)
}

// Clamp limits p to [0, content.Width] x [0, content.Height].
func Clamp(p Point, content Size) Point {
	return Point{
		X: clamp(p.X, 0, content.Width),
		Y: clamp(p.Y, 0, content.Height),
	}
}

// DragRect returns the rectangle spanned by anchor and pointer after the
// pointer has been clamped to the container's content bounds. Clamping
// keeps the marquee inside the container when pointer capture delivers
// positions from outside it.
func DragRect(pointer, anchor Point, content Size) Rect {
	return RectFromPoints(Clamp(pointer, content), anchor)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
