package petalfx

import (
	"math"
	"testing"
)

func TestLightBurstConfigDefaults(t *testing.T) {
	c := LightBurstConfig{Ease: "bogus"}.normalized()
	if c.MaxBursts != 16 || c.StartRadius != 8 || c.EndRadius != 120 || c.Duration != 0.8 {
		t.Errorf("config = %+v", c)
	}
	if c.Ease != "outCubic" {
		t.Errorf("Ease = %q, want outCubic", c.Ease)
	}
	if c.Blend != BlendAdd {
		t.Errorf("Blend = %v, want add", c.Blend)
	}

	c = LightBurstConfig{StartRadius: 50, EndRadius: 10, Blend: BlendScreen, Intensity: 4}.normalized()
	if c.EndRadius != 50 {
		t.Errorf("EndRadius = %v, want raised to StartRadius", c.EndRadius)
	}
	if c.Blend != BlendScreen || c.Intensity != 1 {
		t.Errorf("blend=%v intensity=%v", c.Blend, c.Intensity)
	}
}

func TestLightBurstRadiusCapped(t *testing.T) {
	c := LightBurstConfig{EndRadius: 1e6}.normalized()
	if c.EndRadius != maxBurstRadius {
		t.Errorf("EndRadius = %v, want %v", c.EndRadius, maxBurstRadius)
	}
	c = LightBurstConfig{StartRadius: math.Inf(1), EndRadius: math.NaN()}.normalized()
	if c.StartRadius != maxBurstRadius || c.EndRadius != maxBurstRadius {
		t.Errorf("radii = %v..%v", c.StartRadius, c.EndRadius)
	}
}

func TestLightBurstFades(t *testing.T) {
	e := NewLightBurstEffect(LightBurstConfig{Duration: 1, Ease: "linear"}, NewAssets())
	e.Burst(100, 100)
	if e.Active() != 1 {
		t.Fatalf("active = %d, want 1", e.Active())
	}
	r, i, _ := e.burstState(0)
	if r != 8 || i != 1 {
		t.Errorf("start state r=%v i=%v", r, i)
	}

	e.Update(0.5)
	r, i, active := e.burstState(0)
	if !active {
		t.Fatal("burst finished early")
	}
	assertNear(t, "radius", r, 64, 1e-4)
	assertNear(t, "intensity", i, 0.5, 1e-4)

	e.Update(0.25)
	_, i2, _ := e.burstState(0)
	if !(i2 < i) {
		t.Errorf("intensity rose from %v to %v", i, i2)
	}

	e.Update(0.3)
	if e.Active() != 0 {
		t.Errorf("active = %d after the duration", e.Active())
	}
	r, i, _ = e.burstState(0)
	if r != 120 || i != 0 {
		t.Errorf("final state r=%v i=%v", r, i)
	}
}

func TestLightBurstFrozenWithoutUpdate(t *testing.T) {
	e := NewLightBurstEffect(LightBurstConfig{}, NewAssets())
	e.Burst(10, 10)
	e.Update(0.1)
	_, before, _ := e.burstState(0)
	e.Update(0)
	_, after, _ := e.burstState(0)
	if before != after {
		t.Errorf("intensity changed from %v to %v on a zero step", before, after)
	}
}

func TestLightBurstPoolReuse(t *testing.T) {
	e := NewLightBurstEffect(LightBurstConfig{MaxBursts: 2, Duration: 1}, NewAssets())
	e.Burst(1, 1)
	e.Update(0.4)
	e.Burst(2, 2)
	e.Update(0.1)

	// Both slots busy: the older, dimmer burst is restarted.
	e.Burst(3, 3)
	if e.Active() != 2 {
		t.Fatalf("active = %d", e.Active())
	}
	if e.bursts[0].x != 3 || e.bursts[1].x != 2 {
		t.Errorf("slots at x=%v,%v, want 3,2", e.bursts[0].x, e.bursts[1].x)
	}
	_, i, _ := e.burstState(0)
	if i != 1 {
		t.Errorf("restarted intensity = %v, want 1", i)
	}
}

func TestLightBurstIgnoresNonFinite(t *testing.T) {
	e := NewLightBurstEffect(LightBurstConfig{}, NewAssets())
	e.Burst(math.NaN(), 10)
	e.Burst(10, math.Inf(-1))
	if e.Active() != 0 {
		t.Errorf("active = %d", e.Active())
	}
}

func TestLightBurstAutoInterval(t *testing.T) {
	e := NewLightBurstEffect(LightBurstConfig{AutoInterval: 0.5, Seed: 2}, NewAssets())
	e.Update(0.5)
	if e.Active() != 0 {
		t.Error("auto burst before the first Resize")
	}

	e.Resize(800, 600)
	e.Update(0.25)
	e.Update(0.25)
	if e.Active() != 1 {
		t.Fatalf("active = %d, want 1", e.Active())
	}
	b := e.bursts[0]
	if b.x < 0 || b.x > 800 || b.y < 0 || b.y > 600 {
		t.Errorf("auto burst at (%v,%v) outside the surface", b.x, b.y)
	}
}

func TestLightBurstDrawNil(t *testing.T) {
	e := NewLightBurstEffect(LightBurstConfig{}, NewAssets())
	e.Burst(1, 1)
	e.Draw(nil)
}
