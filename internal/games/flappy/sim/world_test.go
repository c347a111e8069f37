package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestGroundStaysContiguous(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	w := NewWorld(cfg)
	tileW := cfg.Ground.TileWidth

	for i := 0; i < 2000; i++ {
		w.Scroll()

		g := w.Ground()
		a, b := g[0].Box.Min.X, g[1].Box.Min.X
		if !near(math.Abs(a-b), tileW) {
			t.Fatalf("tick %d: tiles at %v and %v are not adjacent", i, a, b)
		}
		left := math.Min(a, b)
		if left < -tileW || left > 0 {
			t.Fatalf("tick %d: leftmost tile at %v, want within [%v, 0]", i, left, -tileW)
		}
		if left+2*tileW < cfg.World.Width {
			t.Fatalf("tick %d: ground ends at %v, short of the world width", i, left+2*tileW)
		}
	}
}

func TestAddPairLayout(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	w := NewWorld(cfg)

	p := w.AddPair(PairSpec{Top: 100, Bottom: 60, Gap: 100})

	if p.Top.Box.Min != core.V(cfg.World.Width, cfg.World.Height-100) {
		t.Errorf("top pipe at %v", p.Top.Box.Min)
	}
	if !near(p.Top.Box.MaxY(), cfg.World.Height) {
		t.Errorf("top pipe should reach the world top, MaxY = %v", p.Top.Box.MaxY())
	}
	if p.Bottom.Box.Min != core.V(cfg.World.Width, cfg.Ground.TileHeight) {
		t.Errorf("bottom pipe at %v", p.Bottom.Box.Min)
	}
	if gap := p.Top.Box.Min.Y - p.Bottom.Box.MaxY(); !near(gap, 100) {
		t.Errorf("gap between pipes = %v, want 100", gap)
	}
	if p.Top.Category != CategoryObstacle || p.Bottom.Category != CategoryObstacle {
		t.Error("pipes should be obstacles")
	}

	q := w.AddPair(PairSpec{Top: 10, Bottom: 150, Gap: 100})
	if q.ID == p.ID {
		t.Error("pair IDs should be unique")
	}
}

func TestScrollAndCull(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	w := NewWorld(cfg)
	p := w.AddPair(PairSpec{Top: 100, Bottom: 60, Gap: 100})
	w.AddPair(PairSpec{Top: 50, Bottom: 110, Gap: 100})

	w.Scroll()
	if !near(p.Top.Box.Min.X, cfg.World.Width-cfg.Physics.ScrollSpeed) {
		t.Errorf("top pipe x = %v after one scroll", p.Top.Box.Min.X)
	}
	if p.Top.Box.Min.X != p.Bottom.Box.Min.X {
		t.Error("pipes of a pair must move together")
	}

	// Right edge exactly at zero is still kept
	p.Top.Box.Min.X = -cfg.Obstacles.PipeWidth
	p.Bottom.Box.Min.X = -cfg.Obstacles.PipeWidth
	if n := w.Cull(); n != 0 {
		t.Fatalf("culled %d pairs with right edge at 0", n)
	}

	w.Scroll()
	if n := w.Cull(); n != 1 {
		t.Fatalf("culled %d pairs, want 1", n)
	}
	if len(w.Pairs()) != 1 || w.Pairs()[0] == p {
		t.Error("wrong pair culled")
	}

	w.Clear()
	if len(w.Pairs()) != 0 {
		t.Errorf("Clear left %d pairs", len(w.Pairs()))
	}
}

func TestWorldBodies(t *testing.T) {
	w := NewWorld(config.DefaultFlappyConfig())
	w.AddPair(PairSpec{Top: 100, Bottom: 60, Gap: 100})

	bodies := w.Bodies(nil)
	if len(bodies) != 4 {
		t.Fatalf("got %d bodies, want 2 ground + 2 pipes", len(bodies))
	}
}
