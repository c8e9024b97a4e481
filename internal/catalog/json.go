package catalog

import (
	"errors"
	"fmt"
	"math"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/alexander-akhmetov/hangtimer/internal/debug"
	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

// ErrInvalidJSON is returned for input that is not a JSON workout.
var ErrInvalidJSON = errors.New("invalid workout json")

// ParseJSON decodes one workout in the web app's shape:
//
//	{"id", "name", "description", "duration", "attribution": {"name", "url"},
//	 "steps": [{"name", "duration", "sound"}]}
//
// Steps may use "cue" instead of "sound". The top-level duration is derived
// data and is only checked against the steps.
func ParseJSON(data []byte) (workout.Workout, error) {
	if !gjson.ValidBytes(data) {
		return workout.Workout{}, fmt.Errorf("%w: malformed", ErrInvalidJSON)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return workout.Workout{}, fmt.Errorf("%w: expected an object", ErrInvalidJSON)
	}
	return parseJSONWorkout(root)
}

// ParseJSONAll decodes either a single workout object or an array of them.
func ParseJSONAll(data []byte) ([]workout.Workout, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed", ErrInvalidJSON)
	}
	root := gjson.ParseBytes(data)
	if root.IsObject() {
		w, err := parseJSONWorkout(root)
		if err != nil {
			return nil, err
		}
		return []workout.Workout{w}, nil
	}
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected an object or an array", ErrInvalidJSON)
	}

	var out []workout.Workout
	for i, item := range root.Array() {
		w, err := parseJSONWorkout(item)
		if err != nil {
			return nil, fmt.Errorf("workout %d: %w", i+1, err)
		}
		out = append(out, w)
	}
	return out, nil
}

func parseJSONWorkout(r gjson.Result) (workout.Workout, error) {
	steps := r.Get("steps")
	if !steps.IsArray() {
		return workout.Workout{}, fmt.Errorf("%w: steps must be an array", ErrInvalidJSON)
	}

	w := workout.Workout{
		ID:          r.Get("id").String(),
		Name:        r.Get("name").String(),
		Description: r.Get("description").String(),
		Attribution: workout.Attribution{
			Name: r.Get("attribution.name").String(),
			URL:  r.Get("attribution.url").String(),
		},
	}

	for i, s := range steps.Array() {
		dur := s.Get("duration")
		if dur.Type != gjson.Number || dur.Num != math.Trunc(dur.Num) {
			return workout.Workout{}, fmt.Errorf("%w: step %d: duration must be a whole number of seconds", ErrInvalidJSON, i+1)
		}
		tag := s.Get("sound")
		if !tag.Exists() {
			tag = s.Get("cue")
		}
		c, err := workout.ParseCue(tag.String())
		if err != nil {
			return workout.Workout{}, fmt.Errorf("%w: step %d: %w", ErrInvalidJSON, i+1, err)
		}
		w.Steps = append(w.Steps, workout.Step{
			Name:     s.Get("name").String(),
			Duration: int(dur.Int()),
			Cue:      c,
		})
	}

	if err := w.Validate(); err != nil {
		return workout.Workout{}, err
	}
	if total := r.Get("duration"); total.Exists() && int(total.Int()) != w.TotalDuration() {
		debug.Logf("catalog: %s declares duration %d, steps sum to %d", w.ID, total.Int(), w.TotalDuration())
	}
	return w, nil
}

// MarshalJSON encodes w in the web app's shape, indented.
func MarshalJSON(w workout.Workout) ([]byte, error) {
	doc := []byte(`{}`)
	var err error
	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.SetBytes(doc, path, v)
		}
	}

	set("id", w.ID)
	set("name", w.Name)
	set("description", w.Description)
	set("duration", w.TotalDuration())
	set("attribution.name", w.Attribution.Name)
	set("attribution.url", w.Attribution.URL)
	if err == nil {
		doc, err = sjson.SetRawBytes(doc, "steps", []byte(`[]`))
	}

	for _, s := range w.Steps {
		if err != nil {
			break
		}
		step := []byte(`{}`)
		for _, kv := range []struct {
			key string
			val any
		}{
			{"name", s.Name},
			{"duration", s.Duration},
			{"sound", string(s.Cue)},
		} {
			if step, err = sjson.SetBytes(step, kv.key, kv.val); err != nil {
				break
			}
		}
		if err == nil {
			doc, err = sjson.SetRawBytes(doc, "steps.-1", step)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("encode workout json: %w", err)
	}
	return pretty.Pretty(doc), nil
}
