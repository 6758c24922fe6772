// Package grid lays out a fixed set of numbered cells inside a screen
// region and draws them, the marquee overlay and a status label.
//
// A Grid is the container a selection.Engine attaches to. It answers
// marker queries, measures cells in screen coordinates, reports the region
// origin and signals resize observers whenever its layout changes. Cells
// that fall outside the region after a relayout are still listed but
// cannot be measured, so the engine never selects what is not drawn.
//
// Drawing is separate from layout. The owner calls Draw on its event loop
// after state changes; Grid never touches the backend on its own.
package grid
