// Package core holds the types shared by the simulation and the terminal
// front-end: world and cell geometry, the screen buffer, input frames and
// runtime settings. It has no terminal dependencies.
package core

import "math"

// Rect is an integer axis-aligned rectangle in screen cells (y grows down).
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

// Vec is a 2D vector in world units.
type Vec struct {
	X, Y float64
}

// V is shorthand for constructing a Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Box is a floating point axis-aligned box in world units.
// Min is the bottom-left corner; world y grows up.
type Box struct {
	Min  Vec
	Size Vec
}

// MaxX returns the right edge.
func (b Box) MaxX() float64 {
	return b.Min.X + b.Size.X
}

// MaxY returns the top edge.
func (b Box) MaxY() float64 {
	return b.Min.Y + b.Size.Y
}

// Touches reports whether two boxes overlap or share an edge.
// Resting contact counts, matching how a physics engine reports contacts.
func (b Box) Touches(o Box) bool {
	if b.Min.X > o.MaxX() || o.Min.X > b.MaxX() {
		return false
	}
	if b.Min.Y > o.MaxY() || o.Min.Y > b.MaxY() {
		return false
	}
	return true
}

// Penetration returns the overlap depth of b into o along each axis.
// Non-positive values mean no overlap on that axis.
func (b Box) Penetration(o Box) Vec {
	dx := math.Min(b.MaxX(), o.MaxX()) - math.Max(b.Min.X, o.Min.X)
	dy := math.Min(b.MaxY(), o.MaxY()) - math.Max(b.Min.Y, o.Min.Y)
	return Vec{X: dx, Y: dy}
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
