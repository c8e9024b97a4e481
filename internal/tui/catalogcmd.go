package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/alexander-akhmetov/hangtimer/internal/catalog"
	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

var (
	showRaw      bool
	exportFormat string
	exportOutput string
	importDir    string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available workouts",
	Long: `List the built-in workouts followed by user workouts loaded from the
workouts directories (see ` + "`hangtimer config show`" + `). The default workout is
marked with *.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, cat, err := loadCatalog()
		if err != nil {
			return err
		}
		def, err := cat.Default(cfg.DefaultWorkout)
		if err != nil {
			return err
		}
		printList(cmd.OutOrStdout(), cat, def.ID)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <workout-id>",
	Short: "Show a workout's steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cat, err := loadCatalog()
		if err != nil {
			return err
		}
		w, err := cat.Get(args[0])
		if err != nil {
			return err
		}

		md := catalog.Markdown(w, -1)
		if showRaw || !isTerminal(os.Stdout) {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		width := max(terminalWidth(os.Stdout)-4, 40)
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		out, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("failed to render workout: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <workout-id>",
	Short: "Export a workout as JSON or YAML",
	Long: `Export a workout. JSON output uses the web timer's format ("sound" tags
and a declared total duration) so it can be shared with the browser version;
YAML output is the catalog file format and can be dropped into a workouts
directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cat, err := loadCatalog()
		if err != nil {
			return err
		}
		w, err := cat.Get(args[0])
		if err != nil {
			return err
		}

		data, err := encodeWorkout(w, exportFormat)
		if err != nil {
			return err
		}
		if exportOutput == "" || exportOutput == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(exportOutput, data, 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", w.ID, exportOutput)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import workouts into the workouts directory",
	Long: `Import workouts from a JSON file (a single workout or an array, as
exported by the web timer) or a YAML catalog file. Each workout is saved as
<id>.yaml in the global workouts directory, or --dir. A workout with the id
of a built-in overrides it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := importDir
		if dir == "" {
			cfg, _, err := loadCatalog()
			if err != nil {
				return err
			}
			dir = filepath.Join(cfg.ConfigDir(), "workouts")
		}
		return importFile(cmd.OutOrStdout(), args[0], dir)
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff <workout-a> <workout-b>",
	Short: "Compare the step tables of two workouts",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cat, err := loadCatalog()
		if err != nil {
			return err
		}
		a, err := cat.Get(args[0])
		if err != nil {
			return err
		}
		b, err := cat.Get(args[1])
		if err != nil {
			return err
		}
		printDiff(cmd.OutOrStdout(), catalog.Diff(a, b), isTerminal(os.Stdout))
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print markdown without rendering")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	importCmd.Flags().StringVar(&importDir, "dir", "", "Directory to save into (default: <config dir>/workouts)")
}

func printList(out io.Writer, cat *catalog.Catalog, defaultID string) {
	idWidth := len("ID")
	for _, id := range cat.IDs() {
		idWidth = max(idWidth, len(id))
	}

	fmt.Fprintf(out, "  %-*s  %6s  %5s  %s\n", idWidth, "ID", "TOTAL", "STEPS", "NAME")
	for _, w := range cat.List() {
		mark := " "
		if w.ID == defaultID {
			mark = "*"
		}
		name := w.Name
		if src := cat.Source(w.ID); src != catalog.SourceBuiltin {
			name += "  (" + src + ")"
		}
		fmt.Fprintf(out, "%s %-*s  %6s  %5d  %s\n",
			mark, idWidth, w.ID, workout.FormatClock(w.TotalDuration()), w.StepCount(), name)
	}
}

func encodeWorkout(w workout.Workout, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return catalog.MarshalJSON(w)
	case "yaml", "yml":
		return catalog.MarshalYAML(w)
	default:
		return nil, fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

func importFile(out io.Writer, path, dir string) error {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied import file
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var workouts []workout.Workout
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		w, err := catalog.ParseYAML(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		workouts = append(workouts, w)
	default:
		workouts, err = catalog.ParseJSONAll(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	for _, w := range workouts {
		saved, err := catalog.Save(dir, w)
		if err != nil {
			return fmt.Errorf("failed to save %s: %w", w.ID, err)
		}
		fmt.Fprintf(out, "Imported %s (%d steps, %s) -> %s\n",
			w.ID, w.StepCount(), workout.FormatClock(w.TotalDuration()), saved)
	}
	return nil
}

func printDiff(out io.Writer, diff string, color bool) {
	if diff == "" {
		fmt.Fprintln(out, "No differences")
		return
	}
	if !color {
		fmt.Fprint(out, diff)
		return
	}
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			text = valueStyle.Bold(true).Render(text)
		case strings.HasPrefix(text, "@@"):
			text = restStyle.Render(text)
		case strings.HasPrefix(text, "+"):
			text = runningStyle.Render(text)
		case strings.HasPrefix(text, "-"):
			text = failureStyle.Render(text)
		default:
			text = labelStyle.Render(text)
		}
		fmt.Fprintln(out, text)
	}
}
