// Package config provides unified configuration management for hangtimer.
// Configuration is loaded from multiple sources with the following precedence:
// embedded defaults → global file → env vars → local file → CLI flags
package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexander-akhmetov/hangtimer/internal/dirs"
)

//go:embed defaults/config.yaml
var defaultsFS embed.FS

// LocalDirName is the per-directory override folder.
const LocalDirName = ".hangtimer"

// Cue player names accepted in cue.player.
var cuePlayers = []string{"bell", "command", "none"}

// CueCommands holds the command line run for each cue by the command player.
type CueCommands struct {
	Begin string `yaml:"begin"`
	Hang  string `yaml:"hang"`
	Rest  string `yaml:"rest"`
}

// CueConfig holds cue playback settings.
type CueConfig struct {
	Player      string      `yaml:"player"`
	UnlockProbe string      `yaml:"unlock_probe"`
	Commands    CueCommands `yaml:"commands"`
}

// WakeLockConfig holds sleep-inhibitor settings.
type WakeLockConfig struct {
	Enabled bool   `yaml:"enabled"`
	Command string `yaml:"command"`

	// Set tracking for merge
	EnabledSet bool `yaml:"-"`
}

// Config holds all configuration settings for hangtimer.
// Fields ending in *Set track whether that field was explicitly set in config.
// This allows distinguishing explicit false from "not set", so local config
// can turn off something global config turned on.
type Config struct {
	DefaultWorkout string `yaml:"default_workout"`
	Muted          bool   `yaml:"muted"`
	WorkoutsDir    string `yaml:"workouts_dir"`
	HideHelp       bool   `yaml:"hide_help"`

	Cue      CueConfig      `yaml:"cue"`
	WakeLock WakeLockConfig `yaml:"wake_lock"`

	// Set tracking for merge behavior
	MutedSet    bool `yaml:"-"`
	HideHelpSet bool `yaml:"-"`

	// Private: track where config was loaded from
	configDir string
	localDir  string
	sources   []string // ordered list of sources that contributed to this config
}

// Sources returns the ordered list of sources that contributed to this config.
func (c *Config) Sources() []string {
	return c.sources
}

// LocalDir returns the local config directory if one was detected.
func (c *Config) LocalDir() string {
	return c.localDir
}

// ConfigDir returns the global config directory.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// WorkoutDirs returns the directories to read user workouts from, lowest
// precedence first: global workouts/, workouts_dir, local workouts/.
func (c *Config) WorkoutDirs() []string {
	var out []string
	if c.configDir != "" {
		out = append(out, filepath.Join(c.configDir, "workouts"))
	}
	if c.WorkoutsDir != "" {
		out = append(out, expandHome(c.WorkoutsDir))
	}
	if c.localDir != "" {
		out = append(out, filepath.Join(c.localDir, "workouts"))
	}
	return out
}

// Load loads all configuration from the default locations.
// It auto-detects .hangtimer/ in the current working directory for local overrides.
// It installs defaults if needed.
func Load() (*Config, error) {
	globalDir := dirs.ConfigDir()

	var localDir string
	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, LocalDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			localDir = candidate
		}
	}

	return LoadWithDirs(globalDir, localDir)
}

// LoadWithDirs loads configuration with explicit global and local directories.
// Local config overrides global config per-field.
// If localDir is empty, only global config is used.
func LoadWithDirs(globalDir, localDir string) (*Config, error) {
	if err := InstallDefaults(globalDir); err != nil {
		return nil, fmt.Errorf("install defaults: %w", err)
	}

	// Load in order: embedded → global → env → local
	// Each layer only overwrites fields that were explicitly set

	cfg, err := loadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("load embedded defaults: %w", err)
	}
	cfg.sources = append(cfg.sources, "embedded")

	globalPath := filepath.Join(globalDir, "config.yaml")
	if globalCfg, err := loadFile(globalPath); err == nil {
		cfg.mergeFrom(globalCfg)
		cfg.sources = append(cfg.sources, globalPath)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("load global config: %w", err)
	}

	cfg.applyEnv()

	if localDir != "" {
		localPath := filepath.Join(localDir, "config.yaml")
		if localCfg, err := loadFile(localPath); err == nil {
			cfg.mergeFrom(localCfg)
			cfg.sources = append(cfg.sources, localPath)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load local config: %w", err)
		}
	}

	cfg.configDir = globalDir
	cfg.localDir = localDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InstallDefaults creates the config directory and installs default config if not exists.
func InstallDefaults(configDir string) error {
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	workoutsDir := filepath.Join(configDir, "workouts")
	if err := os.MkdirAll(workoutsDir, 0o700); err != nil {
		return fmt.Errorf("create workouts dir: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		data, err := defaultsFS.ReadFile("defaults/config.yaml")
		if err != nil {
			return fmt.Errorf("read embedded config: %w", err)
		}
		if err := os.WriteFile(configPath, data, 0o600); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}
	}

	return nil
}

// Validate checks values that cannot be caught by YAML decoding.
func (c *Config) Validate() error {
	if !slices.Contains(cuePlayers, c.Cue.Player) {
		return fmt.Errorf("invalid cue.player %q (want one of %s)", c.Cue.Player, strings.Join(cuePlayers, ", "))
	}
	return nil
}

func loadEmbedded() (*Config, error) {
	data, err := defaultsFS.ReadFile("defaults/config.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded defaults: %w", err)
	}
	return parseConfig(data)
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user's config file
	if err != nil {
		return nil, err
	}
	return parseConfigWithTracking(data)
}

func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// parseConfigWithTracking parses YAML config and tracks which fields were set.
func parseConfigWithTracking(data []byte) (*Config, error) {
	cfg, err := parseConfig(data)
	if err != nil {
		return nil, err
	}

	// Parse into a map to detect which fields were explicitly set
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if _, ok := raw["muted"]; ok {
		cfg.MutedSet = true
	}
	if _, ok := raw["hide_help"]; ok {
		cfg.HideHelpSet = true
	}
	if wl, ok := raw["wake_lock"].(map[string]any); ok {
		if _, ok := wl["enabled"]; ok {
			cfg.WakeLock.EnabledSet = true
		}
	}

	return cfg, nil
}

// applyEnv applies environment variables to the config.
// Env vars sit between global and local config in precedence.
func (c *Config) applyEnv() {
	if v := os.Getenv("HANGTIMER_DEFAULT_WORKOUT"); v != "" {
		c.DefaultWorkout = v
		c.sources = append(c.sources, "env:HANGTIMER_DEFAULT_WORKOUT")
	}

	if v := os.Getenv("HANGTIMER_MUTED"); v != "" {
		c.Muted = parseBool(v)
		c.MutedSet = true
		c.sources = append(c.sources, "env:HANGTIMER_MUTED")
	}

	if v := os.Getenv("HANGTIMER_WORKOUTS_DIR"); v != "" {
		c.WorkoutsDir = v
		c.sources = append(c.sources, "env:HANGTIMER_WORKOUTS_DIR")
	}

	if v := os.Getenv("HANGTIMER_CUE_PLAYER"); v != "" {
		c.Cue.Player = v
		c.sources = append(c.sources, "env:HANGTIMER_CUE_PLAYER")
	}

	if v := os.Getenv("HANGTIMER_WAKE_LOCK"); v != "" {
		c.WakeLock.Enabled = parseBool(v)
		c.WakeLock.EnabledSet = true
		c.sources = append(c.sources, "env:HANGTIMER_WAKE_LOCK")
	}

	if v := os.Getenv("HANGTIMER_WAKE_LOCK_COMMAND"); v != "" {
		c.WakeLock.Command = v
		c.sources = append(c.sources, "env:HANGTIMER_WAKE_LOCK_COMMAND")
	}
}

func parseBool(v string) bool {
	return v == "true" || v == "1"
}

// mergeFrom merges non-empty/set values from src into c.
func (c *Config) mergeFrom(src *Config) {
	if src.DefaultWorkout != "" {
		c.DefaultWorkout = src.DefaultWorkout
	}
	if src.MutedSet {
		c.Muted = src.Muted
		c.MutedSet = true
	}
	if src.WorkoutsDir != "" {
		c.WorkoutsDir = src.WorkoutsDir
	}
	if src.HideHelpSet {
		c.HideHelp = src.HideHelp
		c.HideHelpSet = true
	}

	// Cue config merge
	if src.Cue.Player != "" {
		c.Cue.Player = src.Cue.Player
	}
	if src.Cue.UnlockProbe != "" {
		c.Cue.UnlockProbe = src.Cue.UnlockProbe
	}
	if src.Cue.Commands.Begin != "" {
		c.Cue.Commands.Begin = src.Cue.Commands.Begin
	}
	if src.Cue.Commands.Hang != "" {
		c.Cue.Commands.Hang = src.Cue.Commands.Hang
	}
	if src.Cue.Commands.Rest != "" {
		c.Cue.Commands.Rest = src.Cue.Commands.Rest
	}

	// Wake lock config merge
	if src.WakeLock.EnabledSet {
		c.WakeLock.Enabled = src.WakeLock.Enabled
		c.WakeLock.EnabledSet = true
	}
	if src.WakeLock.Command != "" {
		c.WakeLock.Command = src.WakeLock.Command
	}
}

// ApplyCLIFlags applies CLI flag overrides to the config.
// CLI flags have the highest precedence; zero values mean "not given".
func (c *Config) ApplyCLIFlags(muted bool, cuePlayer string, noWakeLock bool) {
	if muted {
		c.Muted = true
		c.MutedSet = true
		c.sources = append(c.sources, "cli:muted")
	}
	if cuePlayer != "" {
		c.Cue.Player = cuePlayer
		c.sources = append(c.sources, "cli:cue")
	}
	if noWakeLock {
		c.WakeLock.Enabled = false
		c.WakeLock.EnabledSet = true
		c.sources = append(c.sources, "cli:no-wake-lock")
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
