// Package geom provides the integer geometry used by the grid resolver.
//
// All coordinates are measured in grid cells. A [Vector2] is either a cell
// coordinate or a cell-count size; a [Rect2] pairs a top-left cell with a
// size and covers the half-open cell ranges
//
//	[Position.X, Position.X+Size.X) × [Position.Y, Position.Y+Size.Y)
//
// Both types are small values and are passed and compared by value:
//
//	a := geom.R(0, 0, 3, 3)
//	b := geom.R(2, 2, 3, 3)
//	a.Overlaps(b)             // true, both cover cell (2,2)
//	a.InBounds(geom.V(15, 15)) // true
package geom
