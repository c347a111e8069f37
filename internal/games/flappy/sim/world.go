package sim

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Pair is a top and bottom obstacle that live and die together.
type Pair struct {
	ID     uint64
	Top    *Body
	Bottom *Body
	Gap    float64
}

// Right returns the x coordinate of the pair's right edge.
func (p *Pair) Right() float64 {
	return p.Top.Box.MaxX()
}

// World owns the ground strip and the live obstacle pairs, and scrolls them.
type World struct {
	cfg    config.FlappyConfig
	ground [2]*Body
	pairs  []*Pair
	nextID uint64
}

// NewWorld lays the two ground tiles edge to edge starting at x=0.
func NewWorld(cfg config.FlappyConfig) *World {
	size := core.V(cfg.Ground.TileWidth, cfg.Ground.TileHeight)
	w := &World{cfg: cfg}
	w.ground[0] = NewStatic(CategoryGround, core.V(0, 0), size)
	w.ground[1] = NewStatic(CategoryGround, core.V(cfg.Ground.TileWidth, 0), size)
	return w
}

// Ground returns the two ground tiles.
func (w *World) Ground() [2]*Body {
	return w.ground
}

// Pairs returns the live obstacle pairs, oldest first.
func (w *World) Pairs() []*Pair {
	return w.pairs
}

// AddPair places a pair just past the right edge of the world:
// the top pipe flush with the world top, the bottom pipe on the ground.
func (w *World) AddPair(spec PairSpec) *Pair {
	width := w.cfg.Obstacles.PipeWidth
	x := w.cfg.World.Width

	w.nextID++
	p := &Pair{
		ID: w.nextID,
		Top: NewStatic(CategoryObstacle,
			core.V(x, w.cfg.World.Height-spec.Top),
			core.V(width, spec.Top)),
		Bottom: NewStatic(CategoryObstacle,
			core.V(x, w.cfg.Ground.TileHeight),
			core.V(width, spec.Bottom)),
		Gap: spec.Gap,
	}
	w.pairs = append(w.pairs, p)
	return p
}

// Scroll moves ground and obstacles left by the configured per-tick distance.
// A ground tile that has fully left the screen is re-attached to the right
// edge of the other tile.
func (w *World) Scroll() {
	d := core.V(-w.cfg.Physics.ScrollSpeed, 0)
	tileW := w.cfg.Ground.TileWidth

	w.ground[0].Translate(d)
	w.ground[1].Translate(d)
	if w.ground[0].Box.Min.X < -tileW {
		w.ground[0].Box.Min.X = w.ground[1].Box.Min.X + tileW
	}
	if w.ground[1].Box.Min.X < -tileW {
		w.ground[1].Box.Min.X = w.ground[0].Box.Min.X + tileW
	}

	for _, p := range w.pairs {
		p.Top.Translate(d)
		p.Bottom.Translate(d)
	}
}

// Cull drops pairs that are entirely left of x=0 and returns how many went.
func (w *World) Cull() int {
	kept := w.pairs[:0]
	for _, p := range w.pairs {
		if p.Right() >= 0 {
			kept = append(kept, p)
		}
	}
	removed := len(w.pairs) - len(kept)
	for i := len(kept); i < len(w.pairs); i++ {
		w.pairs[i] = nil
	}
	w.pairs = kept
	return removed
}

// Clear drops every pair.
func (w *World) Clear() {
	for i := range w.pairs {
		w.pairs[i] = nil
	}
	w.pairs = w.pairs[:0]
}

// Bodies appends the ground tiles and every obstacle body to dst.
func (w *World) Bodies(dst []*Body) []*Body {
	dst = append(dst, w.ground[0], w.ground[1])
	for _, p := range w.pairs {
		dst = append(dst, p.Top, p.Bottom)
	}
	return dst
}
