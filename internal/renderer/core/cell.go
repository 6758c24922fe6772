package core

import "github.com/mattn/go-runewidth"

// Cell is a single terminal cell.
type Cell struct {
	Rune  rune
	Width int
	Style Style
}

// EmptyCell returns a blank cell with the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1, Style: DefaultStyle()}
}

// NewCell creates a cell with the default style.
func NewCell(r rune) Cell {
	return NewStyledCell(r, DefaultStyle())
}

// NewStyledCell creates a cell with the given style.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{Rune: r, Width: RuneWidth(r), Style: style}
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c.Rune == other.Rune && c.Width == other.Width && c.Style.Equals(other.Style)
}

// RuneWidth returns the number of columns r occupies.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// StringWidth returns the number of columns s occupies.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most width columns, ending with tail when it
// had to cut.
func Truncate(s string, width int, tail string) string {
	return runewidth.Truncate(s, width, tail)
}

// Center returns the column offset that centers s in a span of width
// columns. Text wider than the span starts at 0.
func Center(s string, width int) int {
	return max(0, (width-StringWidth(s))/2)
}
