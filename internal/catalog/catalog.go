// Package catalog holds the set of workouts hangtimer can run: the built-in
// routines embedded in the binary plus user workout files.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexander-akhmetov/hangtimer/internal/debug"
	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// builtinOrder is the display order of the embedded routines.
var builtinOrder = []string{
	"dave-macleod",
	"metolius-entry",
	"metolius-intermediate",
	"metolius-advanced",
}

// SourceBuiltin marks workouts that ship with the binary.
const SourceBuiltin = "builtin"

// ErrNotFound is returned when a workout id is not in the catalog.
var ErrNotFound = errors.New("workout not found")

// Catalog is an ordered set of validated workouts keyed by id.
type Catalog struct {
	order    []string
	byID     map[string]workout.Workout
	sources  map[string]string
	warnings []string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		byID:    make(map[string]workout.Workout),
		sources: make(map[string]string),
	}
}

// Builtin returns a catalog with only the embedded routines.
func Builtin() (*Catalog, error) {
	c := New()
	for _, id := range builtinOrder {
		data, err := builtinFS.ReadFile("builtin/" + id + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("read builtin workout %s: %w", id, err)
		}
		w, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("builtin workout %s: %w", id, err)
		}
		if err := c.Add(w, SourceBuiltin); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Load returns the built-in catalog extended with the workout files found in
// dirs. Later directories override earlier ones by id. Missing directories
// are skipped; unreadable or invalid files are recorded as warnings.
func Load(dirs ...string) (*Catalog, error) {
	c, err := Builtin()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := c.LoadDir(dir); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LoadDir adds every .yaml, .yml and .json workout file in dir, in name
// order. A missing dir is not an error.
func (c *Catalog) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read workouts dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		var parse func([]byte) (workout.Workout, error)
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			parse = ParseYAML
		case ".json":
			parse = ParseJSON
		default:
			continue
		}

		data, err := os.ReadFile(path) //nolint:gosec // user's workout file
		if err != nil {
			c.warn(path, err)
			continue
		}
		w, err := parse(data)
		if err == nil {
			err = c.Add(w, path)
		}
		if err != nil {
			c.warn(path, err)
		}
	}
	return nil
}

func (c *Catalog) warn(path string, err error) {
	debug.Logf("catalog: skip %s: %v", path, err)
	c.warnings = append(c.warnings, fmt.Sprintf("%s: %v", path, err))
}

// Add validates w and inserts it. A workout with an existing id replaces the
// old one in place.
func (c *Catalog) Add(w workout.Workout, source string) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if _, ok := c.byID[w.ID]; !ok {
		c.order = append(c.order, w.ID)
	}
	c.byID[w.ID] = w.Clone()
	c.sources[w.ID] = source
	return nil
}

// Get returns the workout with the given id.
func (c *Catalog) Get(id string) (workout.Workout, error) {
	w, ok := c.byID[id]
	if !ok {
		return workout.Workout{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return w.Clone(), nil
}

// Default returns the preferred workout if present, otherwise the first one.
func (c *Catalog) Default(preferred string) (workout.Workout, error) {
	if w, err := c.Get(preferred); err == nil {
		return w, nil
	}
	if len(c.order) == 0 {
		return workout.Workout{}, fmt.Errorf("%w: catalog is empty", ErrNotFound)
	}
	return c.Get(c.order[0])
}

// Next returns the workout after id, wrapping around. An unknown id yields
// the first workout.
func (c *Catalog) Next(id string) (workout.Workout, error) {
	if len(c.order) == 0 {
		return workout.Workout{}, fmt.Errorf("%w: catalog is empty", ErrNotFound)
	}
	i := slices.Index(c.order, id)
	return c.Get(c.order[(i+1)%len(c.order)])
}

// List returns all workouts in display order.
func (c *Catalog) List() []workout.Workout {
	out := make([]workout.Workout, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id].Clone())
	}
	return out
}

// IDs returns the workout ids in display order.
func (c *Catalog) IDs() []string {
	return slices.Clone(c.order)
}

// Len returns the number of workouts.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Source returns where the workout was loaded from: SourceBuiltin or a path.
func (c *Catalog) Source(id string) string {
	return c.sources[id]
}

// Warnings returns the files skipped while loading.
func (c *Catalog) Warnings() []string {
	return slices.Clone(c.warnings)
}

// ParseYAML decodes a single workout document.
func ParseYAML(data []byte) (workout.Workout, error) {
	var w workout.Workout
	if err := yaml.Unmarshal(data, &w); err != nil {
		return workout.Workout{}, fmt.Errorf("parse workout yaml: %w", err)
	}
	return w, nil
}

// MarshalYAML encodes w in the catalog file format.
func MarshalYAML(w workout.Workout) ([]byte, error) {
	data, err := yaml.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("marshal workout yaml: %w", err)
	}
	return data, nil
}

// Save writes w to dir as <id>.yaml and returns the path.
func Save(dir string, w workout.Workout) (string, error) {
	if err := w.Validate(); err != nil {
		return "", err
	}
	if strings.ContainsAny(w.ID, `/\`) || w.ID == "." || w.ID == ".." {
		return "", fmt.Errorf("workout id %q is not a valid file name", w.ID)
	}
	data, err := MarshalYAML(w)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create workouts dir: %w", err)
	}
	path := filepath.Join(dir, w.ID+".yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write workout file: %w", err)
	}
	return path, nil
}
