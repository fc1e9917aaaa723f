package petalfx

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyScript is returned by LoadScript for a script without steps.
var ErrEmptyScript = errors.New("petalfx: script has no steps")

// scriptStep is a single environment event in a script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
	// Tween, when > 1, spreads a pointer move from the previous pointer
	// position over that many frames.
	Tween int `json:"tween,omitempty"`
}

// scriptDoc is the top-level JSON structure for a script.
type scriptDoc struct {
	Steps []scriptStep `json:"steps"`
}

// Script replays environment events (pointer moves, scrolls, visibility
// changes, resizes, bursts, waits) against a Driver, one step per frame.
// Scripts make scenarios reproducible in tests and demos.
//
// Actions: pointer, leave, scroll, hide, show, reduce, restore, resize,
// burst, wait.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	pointerX, pointerY float64
	queue              []scriptStep
}

var scriptActions = map[string]bool{
	"pointer": true, "leave": true, "scroll": true, "hide": true, "show": true,
	"reduce": true, "restore": true, "resize": true, "burst": true, "wait": true,
}

// LoadScript parses a JSON script of the form {"steps": [...]}.
func LoadScript(jsonData []byte) (*Script, error) {
	var doc scriptDoc
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", ErrEmptyScript)
	}
	for i, st := range doc.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: doc.Steps}, nil
}

// Done reports whether every step has been executed.
func (s *Script) Done() bool {
	return s.done
}

// Step applies at most one event to d. Call it once per frame before
// Driver.Tick.
func (s *Script) Step(d *Driver) {
	if s.done {
		return
	}
	// Drain interpolated pointer moves first.
	if len(s.queue) > 0 {
		st := s.queue[0]
		s.queue = s.queue[1:]
		s.apply(d, st)
		s.finishIfDone()
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		s.finishIfDone()
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch {
	case st.Action == "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case st.Action == "pointer" && st.Tween > 1:
		fromX, fromY := s.pointerX, s.pointerY
		for i := 1; i <= st.Tween; i++ {
			t := float64(i) / float64(st.Tween)
			s.queue = append(s.queue, scriptStep{
				Action: "pointer",
				X:      lerp(fromX, st.X, t),
				Y:      lerp(fromY, st.Y, t),
			})
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.apply(d, next)
	default:
		s.apply(d, st)
	}
	s.finishIfDone()
}

func (s *Script) finishIfDone() {
	if s.cursor >= len(s.steps) && s.waitCount == 0 && len(s.queue) == 0 {
		s.done = true
	}
}

func (s *Script) apply(d *Driver, st scriptStep) {
	switch st.Action {
	case "pointer":
		s.pointerX, s.pointerY = st.X, st.Y
		d.SetPointer(st.X, st.Y, true)
	case "leave":
		d.SetPointer(s.pointerX, s.pointerY, false)
	case "scroll":
		d.Scroll(st.Delta)
	case "hide":
		d.SetVisible(false)
	case "show":
		d.SetVisible(true)
	case "reduce":
		d.SetReducedMotion(true)
	case "restore":
		d.SetReducedMotion(false)
	case "resize":
		d.Resize(st.Width, st.Height)
	case "burst":
		d.Burst(st.X, st.Y)
	}
}
