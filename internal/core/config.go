package core

import "time"

// RuntimeConfig is what the front-end hands a game on Reset: the screen it
// draws into, the fixed tick rate and the RNG seed.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in cells
	ScreenH  int   // Screen height in cells
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; the same seed replays the same game
}

// DefaultConfig returns an 80x24 screen at 60 ticks per second.
// A zero seed tells front-ends to pick one from the clock.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// TickDuration returns the fixed step length, falling back to the default
// rate when TickRate is unset.
func (c RuntimeConfig) TickDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultConfig().TickRate
	}
	return time.Second / time.Duration(rate)
}

// GameState is the summary a game reports after every step.
type GameState struct {
	Score    int    // Meters travelled in the current run
	Status   string // "idle", "running" or "over"
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
	Tick  uint64 // Scene ticks so far; paused steps do not advance it
}
