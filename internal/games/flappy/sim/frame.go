package sim

import "github.com/vovakirdan/tui-flappy/internal/core"

// Sprite is a renderable body.
type Sprite struct {
	Box     core.Box
	Texture int // Animation frame index
}

// PairView is a renderable obstacle pair.
type PairView struct {
	ID     uint64
	Top    core.Box
	Bottom core.Box
}

// Banner describes the game over banner. It slides from the world top to
// the vertical centre as Progress goes from 0 to 1.
type Banner struct {
	Visible  bool
	Progress float64
	Y        float64 // Banner centre, world units
}

// Frame is everything a renderer needs after a tick. It holds copies, so it
// stays valid after further ticks.
type Frame struct {
	Tick        uint64
	Status      Status
	Meters      int
	World       core.Vec // Visible world size
	Player      Sprite
	Ground      [2]core.Box
	Obstacles   []PairView
	Banner      Banner
	InputLocked bool
}

// Frame snapshots the scene for rendering.
func (s *Scene) Frame() Frame {
	f := Frame{
		Tick:        s.tick,
		Status:      s.status.Get(),
		Meters:      s.meters,
		World:       core.V(s.cfg.World.Width, s.cfg.World.Height),
		Player:      Sprite{Box: s.player.Box, Texture: s.animFrame},
		Ground:      [2]core.Box{s.world.ground[0].Box, s.world.ground[1].Box},
		Obstacles:   make([]PairView, 0, len(s.world.pairs)),
		Banner:      s.banner(),
		InputLocked: s.locked,
	}
	for _, p := range s.world.pairs {
		f.Obstacles = append(f.Obstacles, PairView{ID: p.ID, Top: p.Top.Box, Bottom: p.Bottom.Box})
	}
	return f
}

func (s *Scene) banner() Banner {
	if !s.bannerShown {
		return Banner{}
	}
	progress := 1.0
	if d := s.cfg.GameOver.BannerDuration; d > 0 {
		progress = core.ClampF(float64(s.clock.Now()-s.bannerStart)/float64(d), 0, 1)
	}
	h := s.cfg.World.Height
	return Banner{
		Visible:  true,
		Progress: progress,
		Y:        h - progress*h/2,
	}
}
