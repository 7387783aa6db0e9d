// Package core provides fundamental types and utilities for numrun.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect is an integer rectangle in screen space (y grows downward).
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

// RectF is an axis-aligned box in world space.
// X is the left edge in percent of world width, Y is the bottom edge in
// viewport-height units. Y grows upward.
type RectF struct {
	X, Y float64
	W, H float64
}

// NewRectF creates a world-space box from its bottom-left corner and size.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// Left returns the x-coordinate of the left edge.
func (r RectF) Left() float64 { return r.X }

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 { return r.X + r.W }

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 { return r.Y }

// Top returns the y-coordinate of the top edge.
func (r RectF) Top() float64 { return r.Y + r.H }

// OverlapsX reports whether the horizontal spans of r and o overlap.
// Touching edges do not count.
func (r RectF) OverlapsX(o RectF) bool {
	return r.Right() > o.Left() && r.Left() < o.Right()
}

// OverlapsY reports whether the vertical spans of r and o overlap.
// Touching edges do not count.
func (r RectF) OverlapsY(o RectF) bool {
	return r.Top() > o.Bottom() && r.Bottom() < o.Top()
}

// Intersects reports whether r and o overlap on both axes.
func (r RectF) Intersects(o RectF) bool {
	return r.OverlapsX(o) && r.OverlapsY(o)
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
