// Package sim is the flappy simulation core: rigid bodies, collision
// classification, the obstacle spawner, the scrolling world and the
// Idle/Running/Over state machine, sequenced by Scene.Tick.
//
// Everything here runs on the caller's goroutine. There is no locking.
package sim

import "github.com/vovakirdan/tui-flappy/internal/core"

// Category tags a body for contact classification.
// Values are bit flags so they can be combined into masks.
type Category uint32

const (
	CategoryPlayer   Category = 1 << iota // The bird
	CategoryObstacle                      // Top or bottom pipe
	CategoryGround                        // Looping ground tile
	CategoryBoundary                      // World frame (ceiling)
)

// String returns a human-readable name for the category.
func (c Category) String() string {
	switch c {
	case CategoryPlayer:
		return "player"
	case CategoryObstacle:
		return "obstacle"
	case CategoryGround:
		return "ground"
	case CategoryBoundary:
		return "boundary"
	default:
		return "mixed"
	}
}

// Has reports whether the mask contains the category.
func (c Category) Has(other Category) bool {
	return c&other != 0
}

// Body is a minimal rigid body. Rotation is not modeled.
type Body struct {
	Box      core.Box // Position (bottom-left) and size
	Vel      core.Vec // Units per second
	Category Category
	Dynamic  bool // Only dynamic bodies are integrated

	// CollidesWith lists categories this body is pushed out of.
	CollidesWith Category
	// ContactWith lists categories whose touches are reported as contacts.
	ContactWith Category

	Mass    float64
	Damping float64
}

// NewStatic creates a non-dynamic body.
func NewStatic(cat Category, pos, size core.Vec) *Body {
	return &Body{
		Box:      core.Box{Min: pos, Size: size},
		Category: cat,
	}
}

// Pos returns the bottom-left corner.
func (b *Body) Pos() core.Vec {
	return b.Box.Min
}

// SetPos moves the body without touching its velocity.
func (b *Body) SetPos(p core.Vec) {
	b.Box.Min = p
}

// Translate shifts the body by d.
func (b *Body) Translate(d core.Vec) {
	b.Box.Min = b.Box.Min.Add(d)
}

// Solid reports whether the body has area. Zero-height pipes are legal
// spawner output but never collide.
func (b *Body) Solid() bool {
	return b.Box.Size.X > 0 && b.Box.Size.Y > 0
}
