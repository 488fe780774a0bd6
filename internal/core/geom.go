// Package core provides fundamental types and utilities for the puzzle.
// It contains no external dependencies (especially no Bubble Tea) to keep
// board logic pure and testable.
package core

// Point is a column/row pair, used both for grid slots and screen cells.
type Point struct {
	X, Y int
}

// Add returns p offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Rect represents an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Offset returns the rectangle moved by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Inset shrinks the rectangle by n cells on every side.
// A negative n grows it. The size never drops below zero.
func (r Rect) Inset(n int) Rect {
	out := Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Union returns the smallest rectangle containing both r and other.
// Unlike a set union it does not skip empty operands, so a zero-sized
// rectangle still pulls the bounds toward its origin.
func (r Rect) Union(other Rect) Rect {
	left := Min(r.X, other.X)
	top := Min(r.Y, other.Y)
	return Rect{
		X: left,
		Y: top,
		W: Max(r.Right(), other.Right()) - left,
		H: Max(r.Bottom(), other.Bottom()) - top,
	}
}

// Lerp interpolates from r toward end by ratio. Left, top, width and
// height are interpolated independently and truncated toward zero.
func (r Rect) Lerp(end Rect, ratio float64) Rect {
	return Rect{
		X: lerpInt(r.X, end.X, ratio),
		Y: lerpInt(r.Y, end.Y, ratio),
		W: lerpInt(r.W, end.W, ratio),
		H: lerpInt(r.H, end.H, ratio),
	}
}

func lerpInt(start, end int, ratio float64) int {
	return int(float64(start) + float64(end-start)*ratio)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
