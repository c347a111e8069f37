// flappy is a terminal flappy-bird game with a replayable session journal.
//
// Usage:
//
//	flappy play              - Play in this terminal
//	flappy serve             - Start SSH server for remote play
//	flappy sessions          - Browse recorded sessions
//	flappy replay <id>       - Replay a session and verify its runs
//	flappy config            - Print the default game config
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.arcade/flappy.db)
//	--log <path>    - Write debug logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - tap to fly through the pipes in your terminal",
	Long: `Flappy is a terminal flappy-bird game. Every session is recorded
with its seed, config and inputs so it can be replayed and verified later.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  sessions  - Browse recorded sessions
  replay    - Replay a session and verify its runs
  config    - Print the default game config

Examples:
  flappy play
  flappy play --difficulty hard
  flappy serve --ssh :2222
  flappy sessions --limit 20
  flappy replay 3f2a9c1e-...`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/flappy.db", "Path to session database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write debug logs to this file")

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		return setupLogging()
	}

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogging points the game logger at the --log file.
// The terminal belongs to the game, so nothing is logged without it.
func setupLogging() error {
	if flagLogPath == "" {
		return nil
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	flappy.SetLogger(log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
		Level:           log.DebugLevel,
	}))
	return nil
}

// openStore opens the session journal.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open session database: %w", err)
	}
	return store, nil
}
