package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <session-id>",
	Short: "Replay a session and verify its runs",
	Long: `Re-run a recorded session headlessly from its seed, config snapshot
and inputs, then compare every run with the recording. Exits non-zero
when the replay diverges.

Examples:
  flappy replay 3f2a9c1e-7b1d-4d8e-9a55-0c6f0b6d2e11`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(_ *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sess, err := store.Session(args[0])
	if err != nil {
		return err
	}

	runs, verifyErr := flappy.Verify(sess)
	if runs == nil {
		return verifyErr
	}

	fmt.Printf("Session %s (%s, seed %d, %d steps)\n", sess.ID, sess.User, sess.Seed, sess.Steps)
	fmt.Println()
	fmt.Printf("  %-4s  %-10s  %-10s  %-8s  %s\n", "Run", "Start", "End", "Meters", "Finished")
	fmt.Printf("  %-4s  %-10s  %-10s  %-8s  %s\n", "---", "-----", "---", "------", "--------")
	for _, r := range runs {
		fmt.Printf("  %-4d  %-10d  %-10d  %-8d  %t\n", r.Index+1, r.StartStep, r.EndStep, r.Meters, r.Finished)
	}
	fmt.Println()

	if verifyErr != nil {
		return verifyErr
	}
	fmt.Println("Replay matches the recording.")
	return nil
}

// verifySession replays one stored session and summarizes the result.
func verifySession(store *storage.Store, id string) (string, error) {
	sess, err := store.Session(id)
	if err != nil {
		return "", err
	}
	runs, err := flappy.Verify(sess)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("replay of %s matches: %d runs, best %d m", sess.ID, len(runs), tui.BestMeters(runs)), nil
}
