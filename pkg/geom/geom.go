package geom

import (
	"fmt"
	"math"
)

// Vector2 is an integer pair used for cell coordinates and cell-count sizes.
type Vector2 struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
}

// V is shorthand for Vector2{X: x, Y: y}.
func V(x, y int) Vector2 { return Vector2{X: x, Y: y} }

// Add returns the component-wise sum of v and o.
func (v Vector2) Add(o Vector2) Vector2 { return Vector2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns the component-wise difference v - o.
func (v Vector2) Sub(o Vector2) Vector2 { return Vector2{X: v.X - o.X, Y: v.Y - o.Y} }

// Equal reports whether v and o are equal component-wise.
func (v Vector2) Equal(o Vector2) bool { return v.X == o.X && v.Y == o.Y }

// Positive reports whether both components are greater than zero.
func (v Vector2) Positive() bool { return v.X > 0 && v.Y > 0 }

// Fits reports whether a size v fits inside a grid of size g on both axes.
func (v Vector2) Fits(g Vector2) bool { return v.X <= g.X && v.Y <= g.Y }

// Area returns X*Y. Callers only use it on sizes.
func (v Vector2) Area() int { return v.X * v.Y }

// String formats the vector as "(x,y)".
func (v Vector2) String() string { return fmt.Sprintf("(%d,%d)", v.X, v.Y) }

// Rect2 is an axis-aligned rectangle of grid cells.
type Rect2 struct {
	Position Vector2 `json:"position"`
	Size     Vector2 `json:"size"`
}

// NewRect builds a rectangle from a top-left cell and a size.
func NewRect(position, size Vector2) Rect2 { return Rect2{Position: position, Size: size} }

// R is shorthand for NewRect(V(x, y), V(w, h)).
func R(x, y, w, h int) Rect2 { return Rect2{Position: V(x, y), Size: V(w, h)} }

// Right returns the exclusive right edge, saturated at the int range.
func (r Rect2) Right() int { return addSat(r.Position.X, r.Size.X) }

// Bottom returns the exclusive bottom edge, saturated at the int range.
func (r Rect2) Bottom() int { return addSat(r.Position.Y, r.Size.Y) }

// Empty reports whether the rectangle covers no cells.
func (r Rect2) Empty() bool { return r.Size.X <= 0 || r.Size.Y <= 0 }

// Contains reports whether cell (x, y) lies inside r.
func (r Rect2) Contains(x, y int) bool {
	if r.Empty() {
		return false
	}
	return spanContains(r.Position.X, r.Size.X, x) && spanContains(r.Position.Y, r.Size.Y, y)
}

// Overlaps reports whether r and o share at least one cell. Each axis is
// tested independently as a half-open interval intersection.
func (r Rect2) Overlaps(o Rect2) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return spanOverlaps(r.Position.X, r.Size.X, o.Position.X, o.Size.X) &&
		spanOverlaps(r.Position.Y, r.Size.Y, o.Position.Y, o.Size.Y)
}

// InBounds reports whether r lies entirely inside a grid of size g.
// Rects with a negative size are never in bounds.
func (r Rect2) InBounds(g Vector2) bool {
	return spanInside(r.Position.X, r.Size.X, g.X) && spanInside(r.Position.Y, r.Size.Y, g.Y)
}

// String formats the rectangle as "(x,y)+(w,h)".
func (r Rect2) String() string { return r.Position.String() + "+" + r.Size.String() }

// The span helpers compare offsets instead of end points so that
// coordinates near the int limits cannot wrap. Differences of ordered ints
// always fit in a uint.

func spanOverlaps(a, alen, b, blen int) bool {
	return spanContains(a, alen, b) || spanContains(b, blen, a)
}

// spanContains reports whether v lies in [start, start+n) for n > 0.
func spanContains(start, n, v int) bool {
	return v >= start && uint(v-start) < uint(n)
}

// spanInside reports whether [start, start+n) lies in [0, limit).
func spanInside(start, n, limit int) bool {
	return start >= 0 && n >= 0 && n <= limit && start <= limit-n
}

func addSat(a, b int) int {
	s := a + b
	switch {
	case b > 0 && s < a:
		return math.MaxInt
	case b < 0 && s > a:
		return math.MinInt
	}
	return s
}
