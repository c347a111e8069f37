package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// PairSpec is the vertical layout of one obstacle pair.
// Top + Gap + Bottom always equals the available height.
type PairSpec struct {
	Top    float64 // Height of the pipe hanging from the world top
	Bottom float64 // Height of the pipe standing on the ground
	Gap    float64
}

// SplitGap places a gap of the given size at a random height within
// available. It fails instead of producing negative heights.
func SplitGap(rng *rand.Rand, available, gap float64) (PairSpec, error) {
	if gap <= 0 || available <= gap {
		return PairSpec{}, fmt.Errorf("%w: gap %.2f, available %.2f", ErrNoRoomForGap, gap, available)
	}
	top := rng.Float64() * (available - gap)
	return PairSpec{
		Top:    top,
		Bottom: available - top - gap,
		Gap:    gap,
	}, nil
}

// Spawner produces obstacle pairs on a randomized repeating timer.
type Spawner struct {
	cfg     config.FlappyConfig
	rng     *rand.Rand
	clock   *Clock
	timer   TimerID
	onSpawn func(PairSpec)
	onError func(error)
	spawned int
}

// NewSpawner creates a stopped spawner. onSpawn receives every accepted
// pair; onError receives rejected spawns and may be nil.
func NewSpawner(cfg config.FlappyConfig, rng *rand.Rand, clock *Clock, onSpawn func(PairSpec), onError func(error)) *Spawner {
	return &Spawner{
		cfg:     cfg,
		rng:     rng,
		clock:   clock,
		onSpawn: onSpawn,
		onError: onError,
	}
}

// Plan draws the gap for the next pair and splits the available height.
// The gap is uniform in [GapFactor, GapFactor+GapRange) player heights.
func (s *Spawner) Plan() (PairSpec, error) {
	h := s.cfg.Player.Height
	gap := s.rng.Float64()*h*s.cfg.Obstacles.GapRange + h*s.cfg.Obstacles.GapFactor
	return SplitGap(s.rng, s.cfg.AvailableHeight(), gap)
}

// Period draws the next wait: SpawnInterval ± SpawnJitter, uniform.
func (s *Spawner) Period() time.Duration {
	jitter := (s.rng.Float64()*2 - 1) * float64(s.cfg.Obstacles.SpawnJitter)
	return s.cfg.Obstacles.SpawnInterval + time.Duration(jitter)
}

// Start schedules spawning. Starting a running spawner is a no-op.
func (s *Spawner) Start() {
	if s.Active() {
		return
	}
	s.timer = s.clock.Repeat(s.Period, s.spawn)
}

// Stop cancels the timer. Nothing is spawned after Stop returns.
func (s *Spawner) Stop() {
	if s.timer != 0 {
		s.clock.Cancel(s.timer)
		s.timer = 0
	}
}

// Active reports whether the spawner timer is scheduled.
func (s *Spawner) Active() bool {
	return s.timer != 0 && s.clock.Pending(s.timer)
}

// Spawned returns how many pairs were produced since creation.
func (s *Spawner) Spawned() int {
	return s.spawned
}

func (s *Spawner) spawn() {
	spec, err := s.Plan()
	if err != nil {
		if s.onError != nil {
			s.onError(err)
		}
		return
	}
	s.spawned++
	s.onSpawn(spec)
}
