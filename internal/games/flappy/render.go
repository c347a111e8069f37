package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy/sim"
)

// Visual characters for rendering
const (
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '░'
	GrassChar     = '▀'
	BirdChar      = '█'
	BeakChar      = '▶'
)

// wingFrames is indexed by the player's animation frame.
var wingFrames = []rune{'▀', '─', '▄'}

// grassStripe is the width of one grass color band, in world units.
const grassStripe = 20.0

// viewport maps y-up world units onto the y-down cell grid.
type viewport struct {
	sx, sy float64
	w, h   int
}

func newViewport(world core.Vec, w, h int) viewport {
	return viewport{
		sx: float64(w) / world.X,
		sy: float64(h) / world.Y,
		w:  w,
		h:  h,
	}
}

// rect returns the cells a world box covers. Partially covered cells count.
func (v viewport) rect(b core.Box) core.Rect {
	x0 := int(math.Floor(b.Min.X * v.sx))
	x1 := int(math.Ceil(b.MaxX() * v.sx))
	y0 := v.h - int(math.Ceil(b.MaxY()*v.sy))
	y1 := v.h - int(math.Floor(b.Min.Y*v.sy))
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// row returns the cell row of a world y coordinate.
func (v viewport) row(y float64) int {
	return core.Clamp(v.h-1-int(math.Floor(y*v.sy)), 0, v.h-1)
}

// worldX returns the world x coordinate at the centre of a cell column.
func (v viewport) worldX(col int) float64 {
	return (float64(col) + 0.5) / v.sx
}

func drawGround(dst *core.Screen, v viewport, box core.Box) {
	r := v.rect(box)
	if r.W <= 0 || r.H <= 0 {
		return
	}
	dst.FillRect(r, GroundChar, core.ColorOrange)

	// Stripes are anchored to the tile so they visibly scroll with it
	for x := r.X; x < r.Right(); x++ {
		c := core.ColorGreen
		if int(math.Floor((v.worldX(x)-box.Min.X)/grassStripe))%2 == 0 {
			c = core.ColorBrightGreen
		}
		dst.Set(x, r.Y, GrassChar, c)
	}
}

// drawPipe fills a pipe and puts a cap on the end facing the gap.
func drawPipe(dst *core.Screen, v viewport, box core.Box, bottom bool) {
	if box.Size.X <= 0 || box.Size.Y <= 0 {
		return
	}
	r := v.rect(box)
	if r.W <= 0 || r.H <= 0 {
		return
	}
	dst.FillRect(r, PipeChar, core.ColorGreen)

	capY, capChar := r.Bottom()-1, PipeCapTop
	if bottom {
		capY, capChar = r.Y, PipeCapBottom
	}
	for x := r.X; x < r.Right(); x++ {
		dst.Set(x, capY, capChar, core.ColorBrightGreen)
	}
}

func drawPlayer(dst *core.Screen, v viewport, p sim.Sprite) {
	r := v.rect(p.Box)
	if r.W <= 0 || r.H <= 0 {
		return
	}
	dst.FillRect(r, BirdChar, core.ColorBrightYellow)
	dst.Set(r.X, r.Y+r.H/2, wingFrames[p.Texture%len(wingFrames)], core.ColorYellow)
	dst.Set(r.Right()-1, r.Y, BeakChar, core.ColorOrange)
}

// drawMessage draws a boxed two-line message centred on row cy.
func drawMessage(dst *core.Screen, cy int, title, subtitle string) {
	w := dst.Width()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := core.Clamp(cy-boxH/2, 0, core.Max(dst.Height()-boxH, 0))

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.Frame(box, core.ColorWhite)

	dst.TextCentered(box, boxY+1, title, core.ColorBrightYellow)
	dst.TextCentered(box, boxY+3, subtitle, core.ColorDefault)
}
