package petalfx

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name, json, want string
	}{
		{"invalid json", `{"steps": [`, "parse script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "jump"}]}`, `unknown action "jump"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.json))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
	if _, err := LoadScript([]byte(`{}`)); !errors.Is(err, ErrEmptyScript) {
		t.Errorf("err = %v, want ErrEmptyScript", err)
	}
}

func TestScriptStepsOnePerFrame(t *testing.T) {
	s, err := LoadScript([]byte(`{"steps": [
		{"action": "pointer", "x": 100, "y": 200},
		{"action": "scroll", "delta": 3},
		{"action": "burst", "x": 5, "y": 6},
		{"action": "resize", "width": 320, "height": 240},
		{"action": "leave"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	d, _, f := newTestDriver(DriverConfig{})

	s.Step(d)
	if f.pointer != (Vec2{X: 100, Y: 200}) || !f.inside || len(f.scrolls) != 0 {
		t.Fatalf("after step 1: pointer=%v inside=%v scrolls=%v", f.pointer, f.inside, f.scrolls)
	}
	s.Step(d)
	if len(f.scrolls) != 1 || f.scrolls[0] != 3 {
		t.Errorf("scrolls = %v", f.scrolls)
	}
	s.Step(d)
	if len(f.bursts) != 1 {
		t.Errorf("bursts = %v", f.bursts)
	}
	s.Step(d)
	if w, h := d.Size(); w != 320 || h != 240 {
		t.Errorf("size = %vx%v", w, h)
	}
	if s.Done() {
		t.Error("done before the last step")
	}
	s.Step(d)
	if f.inside || f.pointer != (Vec2{X: 100, Y: 200}) {
		t.Errorf("leave: pointer=%v inside=%v", f.pointer, f.inside)
	}
	if !s.Done() {
		t.Error("not done after the last step")
	}
	s.Step(d)
}

func TestScriptVisibilityAndReducedMotion(t *testing.T) {
	s, err := LoadScript([]byte(`{"steps": [
		{"action": "hide"},
		{"action": "show"},
		{"action": "reduce"},
		{"action": "restore"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	d, _, _ := newTestDriver(DriverConfig{})
	want := []struct{ visible, reduced bool }{
		{false, false},
		{true, false},
		{true, true},
		{true, false},
	}
	for i, w := range want {
		s.Step(d)
		if d.Visible() != w.visible || d.ReducedMotion() != w.reduced {
			t.Errorf("step %d: visible=%v reduced=%v, want %v %v", i, d.Visible(), d.ReducedMotion(), w.visible, w.reduced)
		}
	}
}

func TestScriptWait(t *testing.T) {
	s, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "scroll", "delta": 1}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	d, _, f := newTestDriver(DriverConfig{})
	for i := range 3 {
		s.Step(d)
		if len(f.scrolls) != 0 {
			t.Fatalf("scrolled during wait frame %d", i)
		}
	}
	s.Step(d)
	if len(f.scrolls) != 1 {
		t.Errorf("scrolls = %v after the wait", f.scrolls)
	}
	if !s.Done() {
		t.Error("not done")
	}
}

func TestScriptPointerTween(t *testing.T) {
	s, err := LoadScript([]byte(`{"steps": [
		{"action": "pointer", "x": 0, "y": 0},
		{"action": "pointer", "x": 100, "y": 40, "tween": 4}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	d, _, f := newTestDriver(DriverConfig{})
	s.Step(d)

	wantX := []float64{25, 50, 75, 100}
	for i, x := range wantX {
		s.Step(d)
		if !approxEqual(f.pointer.X, x, 1e-9) || !approxEqual(f.pointer.Y, x*0.4, 1e-9) {
			t.Errorf("tween frame %d: pointer = %v, want (%v,%v)", i, f.pointer, x, x*0.4)
		}
	}
	if !s.Done() {
		t.Error("not done after the tween")
	}
}

func TestScriptDrivesScenario(t *testing.T) {
	s, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 30},
		{"action": "hide"},
		{"action": "wait", "frames": 10},
		{"action": "show"},
		{"action": "wait", "frames": 30}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	d, clock, f := newTestDriver(DriverConfig{})
	frames := 0
	for !s.Done() {
		s.Step(d)
		clock.Advance(16667 * time.Microsecond)
		d.Tick()
		frames++
	}
	if frames != 72 {
		t.Errorf("script ran %d frames, want 72", frames)
	}
	st := d.Stats()
	if st.PausedFrames != 11 {
		t.Errorf("paused frames = %d, want 11", st.PausedFrames)
	}
	// One recording tick at the start and one after showing again.
	if want := uint64(frames) - st.PausedFrames - 2; st.Frames != want {
		t.Errorf("frames = %d, want %d", st.Frames, want)
	}
	if uint64(len(f.dts)) != st.Frames {
		t.Errorf("effect updates = %d, frames = %d", len(f.dts), st.Frames)
	}
}
