package main

import (
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var (
	flagConfig     string
	flagDifficulty string
	flagNoRecord   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Space/Up/W - Flap
  Enter/R    - Start, or restart after game over
  P/Esc      - Pause
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy    - Wider gaps, pipes spawn less often
  normal  - The config file's values
  hard    - Pipes spawn more often

Examples:
  flappy play
  flappy play --difficulty hard
  flappy play --config ./my-flappy.yaml
  flappy play --seed 42 --no-record`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record this session")
}

func runPlay(_ *cobra.Command, _ []string) error {
	flappy.SetConfigPath(flagConfig)
	flappy.SetDifficultyPreset(flagDifficulty)

	gameCfg, err := flappy.LoadConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Resolve the seed up front so the recording can replay it
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}

	game := flappy.NewWithConfig(gameCfg)

	if flagNoRecord {
		return tui.Run(game, rt)
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		// Continue without recording - game still works
		return tui.Run(game, rt)
	}
	defer store.Close()

	rec, err := flappy.NewRecorder(uuid.NewString(), localUser(), rt, gameCfg, time.Now())
	if err != nil {
		return err
	}

	runErr := tui.Run(game, rt, tui.WithJournal(rec))

	sess := rec.Finish(time.Now())
	if saveErr := store.SaveSession(sess); saveErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save session: %v\n", saveErr)
	} else if len(sess.Runs) > 0 {
		fmt.Printf("Session %s: %d runs, best %d m\n", sess.ID, len(sess.Runs), tui.BestMeters(sess.Runs))
	}

	return runErr
}

func localUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
