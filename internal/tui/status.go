package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running workout",
	Long: `Show the workout currently running in another hangtimer process.

Displays:
- Workout being run
- Interactive or print mode
- Start time
- Process ID`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printStatus(cmd.OutOrStdout(), sessionFilePath())
	},
}

func printStatus(out io.Writer, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // state dir file
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(out, "No active hangtimer session")
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var session sessionInfo
	if err := json.Unmarshal(data, &session); err != nil {
		fmt.Fprintln(out, "No active hangtimer session (corrupted session file, removed)")
		os.Remove(path)
		return nil //nolint:nilerr // intentional: corrupted file is not a user-facing error
	}

	if !isProcessRunning(session.PID) {
		fmt.Fprintln(out, "No active hangtimer session (stale session file, removed)")
		os.Remove(path)
		return nil
	}

	fmt.Fprintln(out, "Active hangtimer session:")
	fmt.Fprintf(out, "  Workout: %s (%s)\n", session.WorkoutName, session.WorkoutID)
	fmt.Fprintf(out, "  Mode:    %s\n", session.Mode)
	if startedAt, err := time.Parse(time.RFC3339, session.StartedAt); err == nil {
		elapsed := time.Since(startedAt).Truncate(time.Second)
		fmt.Fprintf(out, "  Started: %s (%s ago)\n", startedAt.Format("15:04:05"), elapsed)
	} else {
		fmt.Fprintf(out, "  Started: unknown\n")
	}
	fmt.Fprintf(out, "  PID:     %d\n", session.PID)

	return nil
}

func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	return err == nil
}
