// Package tui is the Bubble Tea front-end: the game loop model, key bindings,
// the sessions browser and the Wish SSH server.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// statusBarHeight is the number of rows reserved under the playfield.
const statusBarHeight = 1

// Journal receives every step the model runs, in order.
type Journal interface {
	Record(in core.InputFrame, res core.StepResult)
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithJournal records every step into j.
func WithJournal(j Journal) ModelOption {
	return func(m *Model) {
		m.journal = j
	}
}

// WithScreenshotDir sets where Ctrl+S writes screenshots.
// An empty dir disables screenshots.
func WithScreenshotDir(dir string) ModelOption {
	return func(m *Model) {
		m.shotDir = dir
	}
}

// DefaultScreenshotDir returns ~/.arcade/screenshots, or "" without a home.
func DefaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "screenshots")
}

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd schedules the next tick.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	journal    Journal
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	shotDir    string
	notice     string // One-off status line message, cleared by the next key
	width      int
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playfieldHeight(cfg.ScreenH)),
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		shotDir:    DefaultScreenshotDir(),
		width:      cfg.ScreenW,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func playfieldHeight(h int) int {
	return core.Max(h-statusBarHeight, 1)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickDuration())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	if key.Matches(msg, m.keys.Screenshot) && m.shotDir != "" {
		path, err := m.saveScreenshot(time.Now())
		if err != nil {
			m.notice = "screenshot failed: " + err.Error()
		} else {
			m.notice = "saved " + path
		}
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events.
// The world is resolution independent, so the game keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.width = msg.Width
	m.help.Width = msg.Width
	m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.journal != nil {
		m.journal.Record(m.inputFrame, result)
	}

	m.inputFrame = core.NewInputFrame()

	return m, tickCmd(m.config.TickDuration())
}

// saveScreenshot writes the current frame as plain text and returns its path.
func (m Model) saveScreenshot(now time.Time) (string, error) {
	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		return "", err
	}
	m.game.Render(m.screen)

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), now.Format("20060102_150405"))
	path := filepath.Join(m.shotDir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()+"\n"), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	right := m.help.View(m.keys)
	if m.notice != "" {
		right = m.notice
	}
	return RenderScreen(m.screen) + "\n" + renderStatusBar(m.gameState, right, m.width)
}

// GameState returns the state after the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given model and blocks until
// the player quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, cfg, opts...)

	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
