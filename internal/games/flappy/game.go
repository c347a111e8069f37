// Package flappy adapts the flappy simulation core to the arcade platform.
// The player taps to keep a bird airborne while pipes scroll in from the right.
package flappy

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy/sim"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// ID is the registry key of the game.
const ID = "flappy"

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
// Unknown names fall back to the config file's values.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParseDifficulty(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// SetLogger sets the logger handed to every new scene.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// LoadConfig resolves the active configuration: file search, then preset.
func LoadConfig() (config.FlappyConfig, error) {
	cfg, err := config.LoadFlappy(configPath)
	if err != nil {
		return config.DefaultFlappyConfig(), err
	}
	if difficultyPreset != "" {
		config.ApplyFlappyPreset(&cfg, difficultyPreset)
	}
	return cfg, nil
}

// Game implements registry.Game on top of a sim.Scene.
type Game struct {
	scene   *sim.Scene
	cfg     config.FlappyConfig
	fixed   bool // cfg was supplied by the caller and is never reloaded
	runtime core.RuntimeConfig
	dt      time.Duration
	paused  bool

	// Start/restart hint bookkeeping, driven by status changes
	played   bool
	showHint bool
}

// New creates a game that loads its configuration on every Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game bound to cfg. Used by replay, where the
// recorded config must win over whatever is on disk.
func NewWithConfig(cfg config.FlappyConfig) *Game {
	return &Game{cfg: cfg, fixed: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Config returns the configuration of the current scene.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}

// Scene exposes the simulation for tests and tooling.
func (g *Game) Scene() *sim.Scene {
	return g.scene
}

// Reset builds a fresh scene. The same seed and config always produce the
// same game.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.runtime = rt

	if !g.fixed {
		cfg, err := LoadConfig()
		if err != nil {
			logger.Warn("loading flappy config", "err", err)
		}
		g.cfg = cfg
	}

	g.dt = rt.TickDuration()

	scene, err := sim.NewScene(g.cfg, rt.Seed, sim.WithLogger(logger))
	if err != nil {
		logger.Warn("falling back to default config", "err", err)
		g.cfg = config.DefaultFlappyConfig()
		scene, err = sim.NewScene(g.cfg, rt.Seed, sim.WithLogger(logger))
		if err != nil {
			logger.Fatal("default flappy config is invalid", "err", err)
		}
	}

	g.scene = scene
	g.paused = false
	g.played = false
	g.showHint = true
	g.scene.OnStatus(g.observeStatus)
}

// observeStatus shows the start hint in Over, and in Idle only before the
// first play.
func (g *Game) observeStatus(_, next sim.Status) {
	switch next {
	case sim.StatusRunning:
		g.played = true
		g.showHint = false
	case sim.StatusOver:
		g.showHint = true
	case sim.StatusIdle:
		g.showHint = !g.played
	}
}

// Step applies one frame of input and advances the scene by one tick.
// While paused nothing but the pause toggle has any effect.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State(), Tick: g.scene.Ticks()}
	}

	if in.Has(core.ActionRestart) {
		if g.scene.Status() == sim.StatusIdle {
			g.scene.Tap()
		} else {
			g.scene.Reset()
		}
	}
	if in.Has(core.ActionJump) {
		g.scene.Tap()
	}

	g.scene.Tick(g.dt)
	return core.StepResult{State: g.State(), Tick: g.scene.Ticks()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	status := g.scene.Status()
	return core.GameState{
		Score:    g.scene.Meters(),
		Status:   status.String(),
		GameOver: status == sim.StatusOver,
		Paused:   g.paused,
	}
}

// HintVisible reports whether the start/restart hint is currently shown.
func (g *Game) HintVisible() bool {
	return g.showHint
}

// Render draws the current frame to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	f := g.scene.Frame()
	v := newViewport(f.World, dst.Width(), dst.Height())

	for _, box := range f.Ground {
		drawGround(dst, v, box)
	}
	for _, p := range f.Obstacles {
		drawPipe(dst, v, p.Top, false)
		drawPipe(dst, v, p.Bottom, true)
	}
	drawPlayer(dst, v, f.Player)

	dst.Text(1, 0, fmt.Sprintf(" meters: %d ", f.Meters), core.ColorWhite)

	switch {
	case g.paused:
		drawMessage(dst, dst.Height()/2, "PAUSED", "Press P to resume")
	case f.Banner.Visible:
		sub := fmt.Sprintf("meters: %d", f.Meters)
		if g.showHint && !f.InputLocked {
			sub += "  |  R to restart"
		}
		drawMessage(dst, v.row(f.Banner.Y), "GAME OVER", sub)
	case g.showHint && f.Status == sim.StatusIdle:
		drawMessage(dst, dst.Height()/3, "FLAPPY", "SPACE to flap  |  ENTER to start")
	}
}

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
