package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexander-akhmetov/hangtimer/internal/catalog"
	"github.com/alexander-akhmetov/hangtimer/internal/cli"
	"github.com/alexander-akhmetov/hangtimer/internal/config"
	"github.com/alexander-akhmetov/hangtimer/internal/cue"
	"github.com/alexander-akhmetov/hangtimer/internal/dirs"
	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

var (
	printMode  bool
	muted      bool
	startStep  int
	cuePlayer  string
	noWakeLock bool
	overview   bool
)

var startCmd = &cobra.Command{
	Use:   "start [workout-id]",
	Short: "Start a workout",
	Long: `Start a hangboard workout. Without an id the configured default_workout
is used (falling back to the first catalog entry).

The timer counts a 15 second pre-roll, then runs every step in order and
plays a cue at each transition: begin at the pre-roll, hang at active steps,
rest at rest steps and at completion.

Controls:
  space/p - Start, pause or resume
  r       - Reset to the pre-roll
  m       - Mute or unmute cues
  w       - Switch to the next workout
  ↑/↓     - Select a step, enter to jump to it (paused)
  i       - Toggle the workout overview
  q       - Quit

With --print (or when stdout is not a terminal) events are streamed to
stdout instead, with a sticky progress footer in TTY mode. Line commands
typed on stdin control the headless timer.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStart,
}

func init() {
	startCmd.Flags().BoolVar(&printMode, "print", false, "Stream events to stdout instead of the interactive screen")
	startCmd.Flags().BoolVar(&muted, "muted", false, "Start with cues muted (overrides HANGTIMER_MUTED)")
	startCmd.Flags().IntVar(&startStep, "step", 0, "Start at step N (1-based), skipping the pre-roll")
	startCmd.Flags().StringVar(&cuePlayer, "cue", "", "Cue player: bell, command or none (overrides HANGTIMER_CUE_PLAYER)")
	startCmd.Flags().BoolVar(&noWakeLock, "no-wake-lock", false, "Do not inhibit system sleep while running")
	startCmd.Flags().BoolVar(&overview, "overview", false, "Print the step table before starting (--print only)")
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, cat, err := loadCatalog()
	if err != nil {
		return err
	}

	cfg.ApplyCLIFlags(muted, cuePlayer, noWakeLock)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	w, err := pickWorkout(cat, cfg, args)
	if err != nil {
		return err
	}

	player, err := cue.New(cfg.ToCueOptions(os.Stderr))
	if err != nil {
		return fmt.Errorf("failed to create cue player: %w", err)
	}

	headless := printMode || !isTerminal(os.Stdout)
	mode := "tui"
	if headless {
		mode = "print"
	}
	if err := writeSessionFile(w, mode); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not write session file: %v\n", err)
	}
	defer removeSessionFile()

	if headless {
		var controls io.Reader
		if isTerminal(os.Stdin) {
			controls = os.Stdin
		}
		_, err := cli.Run(cmd.Context(), w, cli.RunConfig{
			Player:    player,
			WakeLock:  cfg.ToWakeLock(),
			Muted:     cfg.Muted,
			StartStep: startStep,
			Overview:  overview,
			Controls:  controls,
			Out:       cmd.OutOrStdout(),
			IsTTY:     isTerminal(os.Stdout),
			TermWidth: terminalWidth(os.Stdout),
		})
		return err
	}

	return New(Options{
		Catalog:   cat,
		Workout:   w,
		Player:    player,
		WakeLock:  cfg.ToWakeLock(),
		Muted:     cfg.Muted,
		HideHelp:  cfg.HideHelp,
		StartStep: startStep,
	}).Run(cmd.Context())
}

// pickWorkout resolves an explicit id strictly and the configured default
// leniently.
func pickWorkout(cat *catalog.Catalog, cfg *config.Config, args []string) (workout.Workout, error) {
	if len(args) == 1 {
		w, err := cat.Get(args[0])
		if err != nil {
			return workout.Workout{}, fmt.Errorf("%w (try `hangtimer list`)", err)
		}
		return w, nil
	}
	return cat.Default(cfg.DefaultWorkout)
}

type sessionInfo struct {
	WorkoutID   string `json:"workout_id"`
	WorkoutName string `json:"workout_name"`
	Mode        string `json:"mode"`
	StartedAt   string `json:"started_at"`
	PID         int    `json:"pid"`
}

func sessionFilePath() string {
	return filepath.Join(dirs.StateDir(), "session.json")
}

func writeSessionFile(w workout.Workout, mode string) error {
	path := sessionFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	data, err := json.Marshal(sessionInfo{
		WorkoutID:   w.ID,
		WorkoutName: w.Name,
		Mode:        mode,
		StartedAt:   time.Now().Format(time.RFC3339),
		PID:         os.Getpid(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	return os.WriteFile(path, data, 0o600)
}

func removeSessionFile() {
	os.Remove(sessionFilePath())
}
