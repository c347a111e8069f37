package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagLimit int
	flagPlain bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Browse recorded sessions",
	Long: `List recorded sessions, newest first. In a terminal this opens an
interactive browser; press Enter on a session to replay and verify it.

Examples:
  flappy sessions
  flappy sessions --limit 20
  flappy sessions --plain`,
	Args: cobra.NoArgs,
	RunE: runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagLimit, "limit", 50, "Maximum number of sessions to list")
	sessionsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain list instead of the browser")
}

func runSessions(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.RecentSessions(flagLimit)
	if err != nil {
		return fmt.Errorf("cannot list sessions: %w", err)
	}

	fd := int(os.Stdout.Fd())
	if flagPlain || !term.IsTerminal(fd) {
		printSessions(sessions)
		return nil
	}

	width, height, err := term.GetSize(fd)
	if err != nil {
		width, height = 80, 24
	}
	return tui.RunSessions(sessions, func(id string) (string, error) {
		return verifySession(store, id)
	}, width, height)
}

func printSessions(sessions []storage.Session) {
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'flappy play' to record one!")
		return
	}

	// Print header
	fmt.Printf("  %-36s  %-12s  %-16s  %-4s  %s\n", "Session", "User", "Started", "Runs", "Best")
	fmt.Printf("  %-36s  %-12s  %-16s  %-4s  %s\n", "-------", "----", "-------", "----", "----")

	for _, s := range sessions {
		fmt.Printf("  %-36s  %-12s  %-16s  %-4d  %d\n",
			s.ID, s.User, s.StartedAt.Format("2006-01-02 15:04"), len(s.Runs), tui.BestMeters(s.Runs))
	}
}
