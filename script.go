package nestbox

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFrameRate is the replay frame rate when a script does not set one.
const DefaultFrameRate = 60

// ScriptFormat selects how script bytes are decoded.
type ScriptFormat uint8

const (
	ScriptJSON ScriptFormat = iota
	ScriptYAML
)

// ScriptFormatFromPath picks a format from a file extension. Anything other
// than .yaml or .yml is treated as JSON.
func ScriptFormatFromPath(path string) ScriptFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ScriptYAML
	default:
		return ScriptJSON
	}
}

// ScriptStep is a single action in a replay script. Points are surface pixels.
type ScriptStep struct {
	Action string  `json:"action" yaml:"action"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty"`
	Button string  `json:"button,omitempty" yaml:"button,omitempty"`
	X      float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty" yaml:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty" yaml:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty" yaml:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty" yaml:"toY,omitempty"`
	Frames int     `json:"frames,omitempty" yaml:"frames,omitempty"`
	Ms     int     `json:"ms,omitempty" yaml:"ms,omitempty"`
}

// script is the top-level structure of a replay script.
type script struct {
	FrameRate int          `json:"frameRate,omitempty" yaml:"frameRate,omitempty"`
	Steps     []ScriptStep `json:"steps" yaml:"steps"`
}

var scriptActions = map[string]bool{
	"press":    true,
	"move":     true,
	"release":  true,
	"click":    true,
	"dblclick": true,
	"context":  true,
	"drag":     true,
	"wait":     true,
	"snapshot": true,
}

// ScriptRunner sequences injected input, waits and snapshots across frames.
// Call Step once per frame before Editor.Update.
type ScriptRunner struct {
	steps     []ScriptStep
	frameTime time.Duration
	cursor    int
	waitCount int
	done      bool

	// OnSnapshot is called for every snapshot step with the step's label.
	OnSnapshot func(label string)
}

// LoadScript parses a replay script and returns a runner for it.
func LoadScript(data []byte, format ScriptFormat) (*ScriptRunner, error) {
	var sc script
	var err error
	switch format {
	case ScriptYAML:
		err = yaml.Unmarshal(data, &sc)
	default:
		err = json.Unmarshal(data, &sc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		if _, err := parseButton(st.Button); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	rate := sc.FrameRate
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	return &ScriptRunner{
		steps:     sc.Steps,
		frameTime: time.Second / time.Duration(rate),
	}, nil
}

func parseButton(s string) (MouseButton, error) {
	switch strings.ToLower(s) {
	case "", "left", "primary":
		return MouseButtonLeft, nil
	case "right", "secondary":
		return MouseButtonRight, nil
	case "middle":
		return MouseButtonMiddle, nil
	}
	return 0, fmt.Errorf("unknown button %q", s)
}

// FrameDuration returns the simulated time of one frame.
func (r *ScriptRunner) FrameDuration() time.Duration {
	return r.frameTime
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame.
func (r *ScriptRunner) Step(e *Editor) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if e.PendingInput() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	p := Vec2{st.X, st.Y}
	switch st.Action {
	case "press":
		button, _ := parseButton(st.Button)
		e.InjectPress(p, button)
	case "move":
		e.InjectMove(p)
	case "release":
		e.InjectRelease(p)
	case "click":
		e.InjectClick(p)
	case "dblclick":
		e.InjectDoubleClick(p)
	case "context":
		e.InjectSecondaryClick(p)
	case "drag":
		e.InjectDrag(Vec2{st.FromX, st.FromY}, Vec2{st.ToX, st.ToY}, st.Frames)
	case "wait":
		frames := st.Frames
		if st.Ms > 0 {
			frames += int((time.Duration(st.Ms)*time.Millisecond + r.frameTime - 1) / r.frameTime)
		}
		if frames > 0 {
			r.waitCount = frames - 1 // this frame counts as one
		}
	case "snapshot":
		if r.OnSnapshot != nil {
			r.OnSnapshot(st.Label)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && e.PendingInput() == 0 {
		r.done = true
	}
}

// RunScript drives the editor headlessly until the runner finishes, advancing
// clock by one frame per iteration. It returns the number of frames run, or an
// error if the script has not finished after maxFrames.
func RunScript(e *Editor, clock *ManualClock, r *ScriptRunner, maxFrames int) (int, error) {
	frames := 0
	for !r.Done() {
		if frames >= maxFrames {
			return frames, fmt.Errorf("run script: not finished after %d frames", maxFrames)
		}
		r.Step(e)
		e.Update()
		clock.Advance(r.frameTime)
		frames++
	}
	return frames, nil
}
