// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned bounding box in screen cells.
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

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Vec2 is a 2D point or vector in world units.
type Vec2 struct {
	X, Y float64
}

// V creates a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by a scalar.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// HeadingToUnitVector converts an angle in radians to a unit vector.
// Screen coordinates grow downwards, so 3π/2 points up.
func HeadingToUnitVector(angle float64) Vec2 {
	return Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

// WrapF maps val into [0, size) using a mathematical modulo, so negative
// inputs wrap to the far edge instead of staying negative.
func WrapF(val, size float64) float64 {
	if size <= 0 {
		return 0
	}
	r := math.Mod(val, size)
	if r < 0 {
		r += size
	}
	// -tiny + size rounds to size in float64.
	if r >= size {
		r = 0
	}
	return r
}

// Wrap maps v into the toroidal field [0, w) x [0, h).
func (v Vec2) Wrap(w, h float64) Vec2 {
	return Vec2{X: WrapF(v.X, w), Y: WrapF(v.Y, h)}
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
