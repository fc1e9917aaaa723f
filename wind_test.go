package petalfx

import (
	"math"
	"testing"
)

func TestWindSteadyDirection(t *testing.T) {
	var w windField
	w.set(100, math.Pi, 0)
	acc := w.sample(Vec2{X: 10, Y: 10}, 0)
	assertNear(t, "x", acc.X, -100, 1e-9)
	assertNear(t, "y", acc.Y, 0, 1e-9)
}

func TestWindSetSanitizes(t *testing.T) {
	var w windField
	w.set(math.NaN(), math.Inf(1), -4)
	if w.strength != 0 || w.direction != 0 || w.turbulence != 0 {
		t.Errorf("wind = %v %v %v, want zeros", w.strength, w.direction, w.turbulence)
	}
	if acc := w.sample(Vec2{}, 0); acc != (Vec2{}) {
		t.Errorf("sample = %v, want zero", acc)
	}
}

func TestWindTurbulenceBounded(t *testing.T) {
	var w windField
	w.set(0, 0, 10)
	for i := range 100 {
		w.advance(NominalFrame)
		acc := w.sample(Vec2{X: float64(i * 7), Y: float64(i * 3)}, float64(i))
		if math.Abs(acc.X) > 10 || math.Abs(acc.Y) > 5 {
			t.Fatalf("step %d: turbulence %v exceeds its amplitude", i, acc)
		}
	}
}

func TestWindMouseRepulsion(t *testing.T) {
	w := windField{mouseStrength: 400}
	w.setMouse(100, 100, 50)

	acc := w.sample(Vec2{X: 120, Y: 100}, 0)
	// falloff = 1 - 20/50
	assertNear(t, "x", acc.X, 400*0.6, 1e-9)
	assertNear(t, "y", acc.Y, 0, 1e-9)

	near := w.sample(Vec2{X: 100, Y: 90}, 0)
	far := w.sample(Vec2{X: 100, Y: 60}, 0)
	if !(near.Y < far.Y && far.Y < 0) {
		t.Errorf("repulsion should push up and fade with distance: near=%v far=%v", near, far)
	}

	if acc := w.sample(Vec2{X: 150, Y: 100}, 0); acc != (Vec2{}) {
		t.Errorf("at the radius: %v, want zero", acc)
	}
	if acc := w.sample(Vec2{X: 100, Y: 100}, 0); acc != (Vec2{}) {
		t.Errorf("at the mouse: %v, want zero", acc)
	}
}

func TestWindMouseDisabled(t *testing.T) {
	w := windField{mouseStrength: 400}
	w.setMouse(100, 100, 50)
	w.setMouse(math.NaN(), 100, 50)
	if w.mouseActive {
		t.Error("NaN mouse position left the mouse active")
	}
	w.setMouse(100, 100, -1)
	if w.mouseActive {
		t.Error("negative radius left the mouse active")
	}
}

func TestWindGustEasesAndDecays(t *testing.T) {
	w := windField{maxGust: 400}
	w.addGust(200)
	w.addGust(300)
	if w.gustTarget != 400 {
		t.Fatalf("gust target = %v, want clamped to 400", w.gustTarget)
	}
	w.addGust(-1000)
	if w.gustTarget != -400 {
		t.Fatalf("gust target = %v, want clamped to -400", w.gustTarget)
	}

	w = windField{maxGust: 400}
	w.addGust(100)
	w.advance(NominalFrame)
	first := w.gust
	if !(first > 0 && first < 100) {
		t.Errorf("first gust step = %v, want eased in", first)
	}
	if acc := w.sample(Vec2{}, 0); acc.X != first {
		t.Errorf("sampled gust = %v, want %v", acc.X, first)
	}
	for range 300 {
		w.advance(NominalFrame)
	}
	if math.Abs(w.gust) > 1 {
		t.Errorf("gust after 5s = %v, want decayed", w.gust)
	}
}
