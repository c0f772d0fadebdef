// Package occupancy provides a per-cell occupancy cache for a bounded grid.
//
// A [Grid] answers "is any cell of this rectangle taken?" in time
// proportional to the rectangle's area rather than to the number of
// rectangles already placed, which keeps the resolver's first-fit scan cheap
// when many widgets are on the board.
//
// Cells are stored row-major in a single slice (index = y*width + x). Cells
// outside the grid are never occupied: queries ignore them and commits drop
// them silently, so callers may pass rectangles that straddle the border.
//
// Grids hold at most [MaxCells] cells. Use [ValidSize] to check a size
// before calling [New].
//
// A Grid is not safe for concurrent use.
package occupancy

import (
	"fmt"

	"github.com/matzehuels/tilegrid/pkg/geom"
)

// MaxCells is the largest grid area, in cells, that New accepts.
const MaxCells = 1 << 20

// ValidSize reports whether size is positive and its area is at most
// MaxCells.
func ValidSize(size geom.Vector2) bool {
	return size.Positive() && size.X <= MaxCells/size.Y
}

// Grid is a fixed-size boolean occupancy map.
type Grid struct {
	size     geom.Vector2
	cells    []bool
	occupied int
}

// New creates a grid of the given size with every cell free.
// Negative dimensions are treated as zero. New panics if the area exceeds
// MaxCells.
func New(size geom.Vector2) *Grid {
	size.X = max(size.X, 0)
	size.Y = max(size.Y, 0)
	if size.Positive() && !ValidSize(size) {
		panic(fmt.Sprintf("occupancy: grid %v exceeds %d cells", size, MaxCells))
	}
	return &Grid{
		size:  size,
		cells: make([]bool, size.X*size.Y),
	}
}

// Size returns the grid dimensions.
func (g *Grid) Size() geom.Vector2 { return g.size }

// HasWidget reports whether any in-bounds cell covered by r is occupied.
func (g *Grid) HasWidget(r geom.Rect2) bool {
	x0, y0, x1, y1, ok := g.clip(r)
	if !ok {
		return false
	}
	for y := y0; y < y1; y++ {
		row := y * g.size.X
		for x := x0; x < x1; x++ {
			if g.cells[row+x] {
				return true
			}
		}
	}
	return false
}

// AddWidgetRect marks every in-bounds cell covered by r as occupied.
// Marking an occupied cell again is a no-op.
func (g *Grid) AddWidgetRect(r geom.Rect2) {
	x0, y0, x1, y1, ok := g.clip(r)
	if !ok {
		return
	}
	for y := y0; y < y1; y++ {
		row := y * g.size.X
		for x := x0; x < x1; x++ {
			if !g.cells[row+x] {
				g.cells[row+x] = true
				g.occupied++
			}
		}
	}
}

// Occupied reports whether cell (x, y) is occupied. Out-of-bounds cells are free.
func (g *Grid) Occupied(x, y int) bool {
	if x < 0 || y < 0 || x >= g.size.X || y >= g.size.Y {
		return false
	}
	return g.cells[y*g.size.X+x]
}

// OccupiedCount returns the number of occupied cells.
func (g *Grid) OccupiedCount() int { return g.occupied }

// FreeCount returns the number of free cells.
func (g *Grid) FreeCount() int { return len(g.cells) - g.occupied }

// Reset frees every cell.
func (g *Grid) Reset() {
	clear(g.cells)
	g.occupied = 0
}

// clip intersects r with the grid and returns the half-open cell range.
func (g *Grid) clip(r geom.Rect2) (x0, y0, x1, y1 int, ok bool) {
	if r.Empty() {
		return 0, 0, 0, 0, false
	}
	var okX, okY bool
	x0, x1, okX = clipSpan(r.Position.X, r.Size.X, g.size.X)
	y0, y1, okY = clipSpan(r.Position.Y, r.Size.Y, g.size.Y)
	return x0, y0, x1, y1, okX && okY
}

// clipSpan intersects [start, start+n) with [0, limit) for n > 0 without
// computing an end point that could overflow.
func clipSpan(start, n, limit int) (lo, hi int, ok bool) {
	if start >= limit {
		return 0, 0, false
	}
	if start >= 0 {
		// limit-start cannot overflow: 0 <= start < limit.
		return start, start + min(n, limit-start), true
	}
	// start < 0 < n, so start+n cannot overflow.
	end := start + n
	if end <= 0 {
		return 0, 0, false
	}
	return 0, min(end, limit), true
}
