package sim

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Option configures a Scene.
type Option func(*Scene)

// WithLogger sets the scene logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.log = l
		}
	}
}

// Scene is the frame driver. It owns every body, the clock and the status.
type Scene struct {
	cfg     config.FlappyConfig
	log     *log.Logger
	rng     *rand.Rand
	clock   *Clock
	physics Physics
	world   *World
	spawner *Spawner
	status  statusCell

	player  *Body
	ceiling *Body
	scratch []*Body

	tick   uint64
	meters int

	locked      bool // Input lock while the game over banner animates
	bannerShown bool
	bannerStart time.Duration

	animFrame int
	animTimer TimerID
}

// NewScene builds a scene in the Idle state.
func NewScene(cfg config.FlappyConfig, seed int64, opts ...Option) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	s := &Scene{
		cfg:     cfg,
		log:     log.New(io.Discard),
		rng:     rand.New(rand.NewSource(seed)),
		clock:   NewClock(),
		physics: Physics{
			Gravity: cfg.Physics.Gravity,
			Ceiling: cfg.World.Height,
			Floor:   cfg.Ground.TileHeight,
		},
		world:   NewWorld(cfg),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.spawner = NewSpawner(cfg, s.rng, s.clock, s.addPair, s.rejectSpawn)

	s.player = &Body{
		Box:          core.Box{Min: s.startPos(), Size: core.V(cfg.Player.Width, cfg.Player.Height)},
		Category:     CategoryPlayer,
		CollidesWith: CategoryObstacle | CategoryGround | CategoryBoundary,
		ContactWith:  CategoryObstacle | CategoryGround | CategoryBoundary,
		Mass:         cfg.Player.Mass,
		Damping:      cfg.Player.Damping,
	}
	// One unit thick, sitting just above the visible world
	s.ceiling = NewStatic(CategoryBoundary, core.V(0, cfg.World.Height), core.V(cfg.World.Width, 1))

	s.status.Observe(func(old, new Status) {
		s.log.Debug("status", "from", old, "to", new, "tick", s.tick)
	})
	s.startFlapping()
	return s, nil
}

// startPos centres the player in the world.
func (s *Scene) startPos() core.Vec {
	return core.V(
		(s.cfg.World.Width-s.cfg.Player.Width)/2,
		(s.cfg.World.Height-s.cfg.Player.Height)/2,
	)
}

// OnStatus registers an observer for status assignments.
func (s *Scene) OnStatus(fn StatusObserver) {
	s.status.Observe(fn)
}

// Status returns the current status.
func (s *Scene) Status() Status {
	return s.status.Get()
}

// Meters returns the distance score.
func (s *Scene) Meters() int {
	return s.meters
}

// Ticks returns how many times Tick has run.
func (s *Scene) Ticks() uint64 {
	return s.tick
}

// Player returns the player body.
func (s *Scene) Player() *Body {
	return s.player
}

// World returns the scrolling world.
func (s *Scene) World() *World {
	return s.world
}

// Pairs returns the live obstacle pairs, oldest first.
func (s *Scene) Pairs() []*Pair {
	return s.world.Pairs()
}

// Spawner returns the obstacle spawner.
func (s *Scene) Spawner() *Spawner {
	return s.spawner
}

// InputLocked reports whether the game over transition is still running.
func (s *Scene) InputLocked() bool {
	return s.locked
}

// Tap is the single player input: start from Idle, flap while Running.
// It does nothing in Over.
func (s *Scene) Tap() {
	switch s.status.Get() {
	case StatusIdle:
		s.start()
	case StatusRunning:
		ApplyImpulse(s.player, core.V(0, s.cfg.Player.FlapImpulse))
	case StatusOver:
	}
}

// Reset returns the scene to Idle: obstacles cleared, score zeroed, player
// parked at the start position with dynamics off. It is refused while the
// game over banner is still animating, and reports whether it ran.
func (s *Scene) Reset() bool {
	if s.locked {
		return false
	}
	s.status.Set(StatusIdle)
	s.spawner.Stop()
	s.world.Clear()
	s.bannerShown = false
	s.player.SetPos(s.startPos())
	s.player.Vel = core.Vec{}
	s.player.Dynamic = false
	s.meters = 0
	s.startFlapping()
	return true
}

func (s *Scene) start() {
	s.status.Set(StatusRunning)
	s.player.Dynamic = true
	s.meters = 0
	s.spawner.Start()
}

func (s *Scene) gameOver(c Contact) {
	s.status.Set(StatusOver)
	s.log.Info("game over", "hit", c.B.Category, "meters", s.meters, "tick", s.tick)
	s.stopFlapping()
	s.spawner.Stop()
	s.locked = true
	s.bannerShown = true
	s.bannerStart = s.clock.Now()
	s.clock.After(s.cfg.GameOver.BannerDuration, func() {
		s.locked = false
	})
}

// Tick advances the simulation by one frame of dt real time.
// Scrolling and the score move a fixed amount per tick regardless of dt.
// The world scrolls before timers fire, so a pair spawned this tick starts
// exactly at the right edge.
func (s *Scene) Tick(dt time.Duration) {
	s.tick++

	if s.status.Get() != StatusOver {
		s.world.Scroll()
		s.world.Cull()
	}
	s.clock.Advance(dt)

	running := s.status.Get() == StatusRunning

	bodies := s.bodies()
	s.physics.Step(bodies, dt.Seconds())
	Resolve(DetectContacts(bodies), s.status.Get(), s.gameOver)

	if running {
		s.meters++
	}
}

// bodies collects every body into a reused slice.
func (s *Scene) bodies() []*Body {
	s.scratch = append(s.scratch[:0], s.player, s.ceiling)
	s.scratch = s.world.Bodies(s.scratch)
	return s.scratch
}

func (s *Scene) addPair(spec PairSpec) {
	p := s.world.AddPair(spec)
	s.log.Debug("spawned pair", "id", p.ID, "top", spec.Top, "gap", spec.Gap, "bottom", spec.Bottom)
}

func (s *Scene) rejectSpawn(err error) {
	s.log.Warn("spawn rejected", "err", err)
}

func (s *Scene) startFlapping() {
	if s.animTimer != 0 && s.clock.Pending(s.animTimer) {
		return
	}
	frames := s.cfg.Player.AnimFrames
	s.animTimer = s.clock.Repeat(
		func() time.Duration { return s.cfg.Player.FrameDuration },
		func() { s.animFrame = (s.animFrame + 1) % frames },
	)
}

func (s *Scene) stopFlapping() {
	s.clock.Cancel(s.animTimer)
	s.animTimer = 0
}
