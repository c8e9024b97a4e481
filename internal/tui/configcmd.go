package tui

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexander-akhmetov/hangtimer/internal/config"
	"github.com/alexander-akhmetov/hangtimer/internal/wakelock"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage hangtimer configuration",
	Long:  `View and manage hangtimer configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resolved configuration with source annotations",
	Long: `Show the fully resolved configuration with annotations indicating
where each value came from.

Configuration is loaded from multiple sources with the following precedence:
  1. Embedded defaults (built into binary)
  2. Global config (~/.config/hangtimer/config.yaml)
  3. Environment variables (HANGTIMER_*)
  4. Local config (.hangtimer/config.yaml)
  5. CLI flags (highest precedence)`,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	printConfig(cmd.OutOrStdout(), cfg)
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "# Hangtimer Configuration")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "## Sources (in order of precedence)")
	for _, src := range cfg.Sources() {
		fmt.Fprintf(out, "  - %s\n", src)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "## Directories")
	fmt.Fprintf(out, "  Global config: %s\n", cfg.ConfigDir())
	if cfg.LocalDir() != "" {
		fmt.Fprintf(out, "  Local config:  %s\n", cfg.LocalDir())
	} else {
		fmt.Fprintf(out, "  Local config:  (none detected)\n")
	}
	fmt.Fprintln(out, "  Workouts:")
	for _, dir := range cfg.WorkoutDirs() {
		fmt.Fprintf(out, "    - %s\n", dir)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "## Timer Settings")
	fmt.Fprintf(out, "  default_workout: %s\n", cfg.DefaultWorkout)
	fmt.Fprintf(out, "  muted:           %t\n", cfg.Muted)
	fmt.Fprintf(out, "  hide_help:       %t\n", cfg.HideHelp)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "## Cue Settings")
	fmt.Fprintf(out, "  player:       %s\n", cfg.Cue.Player)
	fmt.Fprintf(out, "  unlock_probe: %s\n", orNone(cfg.Cue.UnlockProbe))
	fmt.Fprintln(out, "  commands:")
	fmt.Fprintf(out, "    begin: %s\n", orNone(cfg.Cue.Commands.Begin))
	fmt.Fprintf(out, "    hang:  %s\n", orNone(cfg.Cue.Commands.Hang))
	fmt.Fprintf(out, "    rest:  %s\n", orNone(cfg.Cue.Commands.Rest))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "## Wake Lock Settings")
	fmt.Fprintf(out, "  enabled: %t\n", cfg.WakeLock.Enabled)
	if cfg.WakeLock.Command != "" {
		fmt.Fprintf(out, "  command: %s\n", cfg.WakeLock.Command)
	} else if def := wakelock.DefaultCommand(); def != "" {
		fmt.Fprintf(out, "  command: %s (platform default)\n", def)
	} else {
		fmt.Fprintf(out, "  command: (none for this platform)\n")
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
