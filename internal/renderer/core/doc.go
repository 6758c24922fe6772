// Package core provides the drawing primitives shared by the renderer
// packages: colors, styles, cells and screen rectangles.
//
// Colors are parsed and blended through go-colorful so theme values can be
// written as hex strings in configuration. Cell widths come from
// go-runewidth, which keeps wide glyphs in labels aligned on the grid.
package core
