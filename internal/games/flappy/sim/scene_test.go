package sim

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

const frameDT = time.Second / 60

// floatingConfig disables gravity so the player hovers in place.
func floatingConfig() config.FlappyConfig {
	cfg := config.DefaultFlappyConfig()
	cfg.Physics.Gravity = 0
	return cfg
}

func newTestScene(t *testing.T, cfg config.FlappyConfig) *Scene {
	t.Helper()
	s, err := NewScene(cfg, 12345)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return s
}

// crash drops a pipe onto the player's current position.
func crash(s *Scene) *Pair {
	p := s.World().AddPair(PairSpec{Top: 10, Bottom: 110, Gap: 140})
	x := s.Player().Box.Min.X
	p.Top.Box.Min.X = x
	p.Bottom.Box.Min.X = x
	return p
}

func TestNewSceneStartsIdle(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	s := newTestScene(t, cfg)

	if s.Status() != StatusIdle {
		t.Errorf("status = %v, want idle", s.Status())
	}
	if s.Player().Dynamic {
		t.Error("player should not be dynamic while idle")
	}
	want := core.V((cfg.World.Width-cfg.Player.Width)/2, (cfg.World.Height-cfg.Player.Height)/2)
	if s.Player().Pos() != want {
		t.Errorf("player at %v, want %v", s.Player().Pos(), want)
	}
	if s.Spawner().Active() {
		t.Error("spawner should not run while idle")
	}
}

func TestNewSceneInvalidConfig(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Player.Height = 200

	_, err := NewScene(cfg, 1)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("err = %v, should also wrap config.ErrInvalid", err)
	}
}

func TestIdleTicks(t *testing.T) {
	s := newTestScene(t, config.DefaultFlappyConfig())
	start := s.Player().Pos()
	groundX := s.World().Ground()[0].Box.Min.X

	for i := 0; i < 600; i++ {
		s.Tick(frameDT)
	}

	if s.Meters() != 0 {
		t.Errorf("meters = %d while idle, want 0", s.Meters())
	}
	if s.Player().Pos() != start {
		t.Errorf("idle player moved to %v", s.Player().Pos())
	}
	if len(s.World().Pairs()) != 0 {
		t.Error("pipes spawned while idle")
	}
	if s.World().Ground()[0].Box.Min.X == groundX {
		t.Error("ground should scroll while idle")
	}
	if s.Ticks() != 600 {
		t.Errorf("Ticks() = %d, want 600", s.Ticks())
	}
}

func TestFullRound(t *testing.T) {
	s := newTestScene(t, floatingConfig())

	var transitions [][2]Status
	s.OnStatus(func(old, new Status) {
		transitions = append(transitions, [2]Status{old, new})
	})

	s.Tap()
	if s.Status() != StatusRunning {
		t.Fatalf("status = %v after tap, want running", s.Status())
	}
	if s.Meters() != 0 {
		t.Errorf("meters = %d at start, want 0", s.Meters())
	}
	if !s.Player().Dynamic {
		t.Error("player should be dynamic after start")
	}

	for i := 1; i <= 100; i++ {
		s.Tick(frameDT)
		if s.Meters() != i {
			t.Fatalf("tick %d: meters = %d", i, s.Meters())
		}
	}

	// The longest possible first period is 5.5s = 330 ticks
	for i := 0; i < 340 && len(s.World().Pairs()) == 0; i++ {
		s.Tick(frameDT)
	}
	if len(s.World().Pairs()) == 0 {
		t.Fatal("no pair spawned after the maximum spawn period")
	}
	if s.Status() != StatusRunning {
		t.Fatalf("status = %v before the crash, want running", s.Status())
	}

	metersBefore := s.Meters()
	crash(s)
	s.Tick(frameDT)

	if s.Status() != StatusOver {
		t.Fatalf("status = %v after hitting a pipe, want over", s.Status())
	}
	if s.Meters() != metersBefore+1 {
		t.Errorf("meters = %d, want the collision tick counted (%d)", s.Meters(), metersBefore+1)
	}
	if !s.InputLocked() {
		t.Error("input should be locked right after game over")
	}
	if s.Spawner().Active() {
		t.Error("spawner still active after game over")
	}

	spawned := s.Spawner().Spawned()
	pairs := len(s.World().Pairs())
	firstX := s.World().Pairs()[0].Top.Box.Min.X
	for i := 0; i < 600; i++ {
		s.Tick(frameDT)
	}
	if s.Spawner().Spawned() != spawned || len(s.World().Pairs()) != pairs {
		t.Error("pipes spawned after game over")
	}
	if s.World().Pairs()[0].Top.Box.Min.X != firstX {
		t.Error("world kept scrolling after game over")
	}
	if s.Meters() != metersBefore+1 {
		t.Errorf("meters changed after game over: %d", s.Meters())
	}
	if s.InputLocked() {
		t.Error("input lock should clear after the banner duration")
	}

	if !s.Reset() {
		t.Fatal("Reset refused after the lock cleared")
	}
	if s.Status() != StatusIdle || s.Meters() != 0 || len(s.World().Pairs()) != 0 {
		t.Errorf("after reset: status=%v meters=%d pairs=%d", s.Status(), s.Meters(), len(s.World().Pairs()))
	}
	if s.Player().Dynamic || s.Player().Vel != (core.Vec{}) {
		t.Error("player should be parked after reset")
	}

	want := [][2]Status{
		{StatusIdle, StatusRunning},
		{StatusRunning, StatusOver},
		{StatusOver, StatusIdle},
	}
	if len(transitions) != len(want) {
		t.Fatalf("transitions = %v, want %v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transition %d = %v, want %v", i, transitions[i], want[i])
		}
	}
}

func TestSpawnedPairStartsAtRightEdge(t *testing.T) {
	cfg := floatingConfig()
	s := newTestScene(t, cfg)
	s.Tap()

	for i := 0; i < 340 && len(s.World().Pairs()) == 0; i++ {
		s.Tick(frameDT)
	}
	pairs := s.World().Pairs()
	if len(pairs) == 0 {
		t.Fatal("no pair spawned after the maximum spawn period")
	}
	if x := pairs[0].Top.Box.Min.X; x != cfg.World.Width {
		t.Errorf("new pair at x=%v on its spawn tick, want %v", x, cfg.World.Width)
	}
}

func TestResetRefusedWhileLocked(t *testing.T) {
	s := newTestScene(t, floatingConfig())
	s.Tap()
	crash(s)
	s.Tick(frameDT)
	if s.Status() != StatusOver {
		t.Fatalf("status = %v, want over", s.Status())
	}

	if s.Reset() {
		t.Fatal("Reset should be refused while the banner animates")
	}
	if s.Status() != StatusOver {
		t.Errorf("refused reset changed status to %v", s.Status())
	}

	ticks := 0
	for s.InputLocked() && ticks < 1000 {
		s.Tick(frameDT)
		ticks++
	}
	// 500ms at 60 ticks per second
	if ticks < 30 || ticks > 31 {
		t.Errorf("lock lasted %d ticks, want about 30", ticks)
	}
	if !s.Reset() {
		t.Error("Reset refused after the lock cleared")
	}
}

func TestResetIsIdempotent(t *testing.T) {
	s := newTestScene(t, floatingConfig())
	s.Tap()
	for i := 0; i < 400; i++ {
		s.Tick(frameDT)
	}

	s.Reset()
	first := s.Frame()
	s.Reset()
	second := s.Frame()

	if first.Status != second.Status || first.Meters != second.Meters ||
		first.Player.Box != second.Player.Box || len(first.Obstacles) != len(second.Obstacles) {
		t.Errorf("second reset changed the scene: %+v vs %+v", first, second)
	}
}

func TestObserverSeesRedundantAssignments(t *testing.T) {
	s := newTestScene(t, config.DefaultFlappyConfig())

	var calls [][2]Status
	s.OnStatus(func(old, new Status) {
		calls = append(calls, [2]Status{old, new})
	})

	s.Reset()
	if len(calls) != 1 || calls[0] != [2]Status{StatusIdle, StatusIdle} {
		t.Errorf("observer calls = %v, want one idle->idle", calls)
	}
}

func TestTapIgnoredWhenOver(t *testing.T) {
	s := newTestScene(t, floatingConfig())
	s.Tap()
	crash(s)
	s.Tick(frameDT)

	vel := s.Player().Vel
	s.Tap()
	if s.Status() != StatusOver {
		t.Errorf("tap changed status to %v", s.Status())
	}
	if s.Player().Vel != vel {
		t.Error("tap applied an impulse after game over")
	}
}

func TestFlapImpulse(t *testing.T) {
	cfg := floatingConfig()
	s := newTestScene(t, cfg)
	s.Tap()
	s.Tap()

	want := cfg.Player.FlapImpulse / cfg.Player.Mass
	if !near(s.Player().Vel.Y, want) {
		t.Errorf("Vel.Y = %v, want %v", s.Player().Vel.Y, want)
	}
}

func TestFallingPlayerHitsGround(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	s := newTestScene(t, cfg)
	s.Tap()

	for i := 0; i < 300 && s.Status() == StatusRunning; i++ {
		s.Tick(frameDT)
	}
	if s.Status() != StatusOver {
		t.Fatalf("status = %v, player should have hit the ground", s.Status())
	}

	// The body keeps falling after game over and comes to rest on the ground
	for i := 0; i < 120; i++ {
		s.Tick(frameDT)
	}
	if !near(s.Player().Box.Min.Y, cfg.Ground.TileHeight) {
		t.Errorf("player rests at y=%v, want %v", s.Player().Box.Min.Y, cfg.Ground.TileHeight)
	}
}

func TestLowTickRateStillHitsGround(t *testing.T) {
	for _, fps := range []int{5, 10, 20, 30} {
		t.Run(fmt.Sprintf("%dfps", fps), func(t *testing.T) {
			cfg := config.DefaultFlappyConfig()
			s := newTestScene(t, cfg)
			dt := time.Second / time.Duration(fps)
			s.Tap()

			for i := 0; i < 60*fps && s.Status() == StatusRunning; i++ {
				s.Tick(dt)
			}
			if s.Status() != StatusOver {
				t.Fatalf("status = %v after %d ticks, want over", s.Status(), s.Ticks())
			}
			meters := s.Meters()

			for i := 0; i < 30; i++ {
				s.Tick(dt)
				if y := s.Player().Box.Min.Y; y < cfg.Ground.TileHeight-eps {
					t.Fatalf("tick %d after game over: player at y=%v, below the ground top %v", i, y, cfg.Ground.TileHeight)
				}
			}
			if s.Meters() != meters {
				t.Errorf("meters moved after game over: %d -> %d", meters, s.Meters())
			}
		})
	}
}

func TestCeilingIsNotFatal(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	s := newTestScene(t, cfg)
	s.Tap()

	for i := 0; i < 60; i++ {
		s.Tap()
		s.Tick(frameDT)
		if s.Player().Box.MaxY() > cfg.World.Height+eps {
			t.Fatalf("tick %d: player top %v above the world", i, s.Player().Box.MaxY())
		}
	}
	if s.Status() != StatusRunning {
		t.Errorf("status = %v, touching the ceiling should not end the game", s.Status())
	}
}

func TestFlapAnimation(t *testing.T) {
	cfg := floatingConfig()
	s := newTestScene(t, cfg)

	seen := map[int]bool{}
	for i := 0; i < 60; i++ {
		s.Tick(frameDT)
		seen[s.Frame().Player.Texture] = true
	}
	if len(seen) != cfg.Player.AnimFrames {
		t.Errorf("saw %d animation frames in one second, want %d", len(seen), cfg.Player.AnimFrames)
	}

	s.Tap()
	crash(s)
	s.Tick(frameDT)
	frozen := s.Frame().Player.Texture
	for i := 0; i < 60; i++ {
		s.Tick(frameDT)
		if s.Frame().Player.Texture != frozen {
			t.Fatal("animation kept running after game over")
		}
	}
}

func TestBannerSlides(t *testing.T) {
	cfg := floatingConfig()
	s := newTestScene(t, cfg)

	if s.Frame().Banner.Visible {
		t.Fatal("banner visible before game over")
	}

	s.Tap()
	crash(s)
	s.Tick(frameDT)

	b := s.Frame().Banner
	if !b.Visible || b.Progress != 0 || b.Y != cfg.World.Height {
		t.Errorf("banner at start = %+v", b)
	}

	last := b.Progress
	for i := 0; i < 40; i++ {
		s.Tick(frameDT)
		p := s.Frame().Banner.Progress
		if p < last {
			t.Fatalf("banner progress went backwards: %v -> %v", last, p)
		}
		last = p
	}

	b = s.Frame().Banner
	if b.Progress != 1 || !near(b.Y, cfg.World.Height/2) {
		t.Errorf("banner at end = %+v", b)
	}

	s.Reset()
	if s.Frame().Banner.Visible {
		t.Error("banner still visible after reset")
	}
}

func TestSceneDeterminism(t *testing.T) {
	run := func() Frame {
		s := newTestScene(t, config.DefaultFlappyConfig())
		for i := 0; i < 2000; i++ {
			if i%20 == 0 {
				s.Tap()
			}
			if s.Status() == StatusOver && s.Reset() {
				s.Tap()
			}
			s.Tick(frameDT)
		}
		return s.Frame()
	}

	a, b := run(), run()
	if a.Meters != b.Meters || a.Status != b.Status || a.Player.Box != b.Player.Box || len(a.Obstacles) != len(b.Obstacles) {
		t.Errorf("same seed and inputs diverged: %+v vs %+v", a, b)
	}
	for i := range a.Obstacles {
		if a.Obstacles[i] != b.Obstacles[i] {
			t.Errorf("obstacle %d differs", i)
		}
	}
}
