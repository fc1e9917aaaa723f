package petalfx

import (
	"math"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// fakeEffect records every call a Driver makes on it.
type fakeEffect struct {
	name     string
	log      *[]string
	dts      []float64
	width    float64
	height   float64
	resizes  int
	draws    int
	pointer  Vec2
	inside   bool
	scrolls  []float64
	bursts   []Vec2
	count    int
	max      int
	disposed bool
}

func (f *fakeEffect) Update(dt float64) {
	f.dts = append(f.dts, dt)
	if f.log != nil {
		*f.log = append(*f.log, "update "+f.name)
	}
}

func (f *fakeEffect) Draw(dst *ebiten.Image) {
	f.draws++
	if f.log != nil {
		*f.log = append(*f.log, "draw "+f.name)
	}
}

func (f *fakeEffect) Resize(w, h float64) {
	f.width, f.height = w, h
	f.resizes++
}

func (f *fakeEffect) SetPointer(x, y float64, inside bool) {
	f.pointer = Vec2{X: x, Y: y}
	f.inside = inside
}

func (f *fakeEffect) Scroll(delta float64) { f.scrolls = append(f.scrolls, delta) }
func (f *fakeEffect) Burst(x, y float64)   { f.bursts = append(f.bursts, Vec2{X: x, Y: y}) }
func (f *fakeEffect) Count() int           { return f.count }
func (f *fakeEffect) MaxPetals() int       { return f.max }
func (f *fakeEffect) Dispose()             { f.disposed = true }

// updateOnly implements nothing beyond Effect.
type updateOnly struct{ updates int }

func (u *updateOnly) Update(float64)          { u.updates++ }
func (u *updateOnly) Draw(*ebiten.Image)      {}
func (u *updateOnly) Resize(float64, float64) {}

var epoch = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

func newTestDriver(cfg DriverConfig) (*Driver, *ManualClock, *fakeEffect) {
	clock := NewManualClock(epoch)
	d := NewDriver(cfg, clock)
	f := &fakeEffect{}
	d.Add(f)
	return d, clock, f
}

func TestDriverConfigDefaults(t *testing.T) {
	c := DriverConfig{Width: -1, FrameRate: math.NaN()}.normalized()
	if c.Width != 800 || c.Height != 600 || c.FrameRate != 60 {
		t.Errorf("config = %+v", c)
	}
	if got := (DriverConfig{FrameRate: 50}).FrameInterval(); got != 20*time.Millisecond {
		t.Errorf("FrameInterval = %v, want 20ms", got)
	}
}

func TestDriverFirstTickRecordsTime(t *testing.T) {
	d, clock, f := newTestDriver(DriverConfig{})
	if dt := d.Tick(); dt != 0 {
		t.Errorf("first tick dt = %v, want 0", dt)
	}
	if len(f.dts) != 0 {
		t.Error("effects updated on the first tick")
	}
	clock.Advance(16 * time.Millisecond)
	if dt := d.Tick(); !approxEqual(dt, 0.016, 1e-12) {
		t.Errorf("dt = %v, want 0.016", dt)
	}
	if len(f.dts) != 1 || f.dts[0] != d.Stats().LastDelta {
		t.Errorf("effect dts = %v", f.dts)
	}
}

func TestDriverClampsDelta(t *testing.T) {
	d, clock, f := newTestDriver(DriverConfig{})
	d.Tick()
	clock.Advance(3 * time.Second)
	dt := d.Tick()
	assertNear(t, "dt", dt, 2.0/60, 1e-12)
	if f.dts[0] != dt {
		t.Errorf("effect got %v, want %v", f.dts[0], dt)
	}

	d30, clock30, _ := newTestDriver(DriverConfig{FrameRate: 30})
	d30.Tick()
	clock30.Advance(time.Second)
	assertNear(t, "dt at 30fps", d30.Tick(), 2.0/30, 1e-12)
}

func TestDriverIgnoresBackwardsClock(t *testing.T) {
	d, clock, f := newTestDriver(DriverConfig{})
	d.Tick()
	clock.Advance(-time.Second)
	if dt := d.Tick(); dt != 0 {
		t.Errorf("dt = %v, want 0", dt)
	}
	if d.Tick() != 0 {
		t.Error("a frozen clock produced a step")
	}
	if len(f.dts) != 0 {
		t.Errorf("effects updated %d times", len(f.dts))
	}
}

func TestDriverPausesWhileHidden(t *testing.T) {
	d, clock, f := newTestDriver(DriverConfig{})
	d.Tick()
	clock.Advance(16 * time.Millisecond)
	d.Tick()

	d.SetVisible(false)
	if !d.Paused() {
		t.Fatal("not paused while hidden")
	}
	for range 5 {
		clock.Advance(16 * time.Millisecond)
		if dt := d.Tick(); dt != 0 {
			t.Errorf("hidden tick dt = %v", dt)
		}
	}
	if len(f.dts) != 1 {
		t.Errorf("effects updated while hidden: %v", f.dts)
	}

	// A long absence is not replayed.
	clock.Advance(time.Minute)
	d.SetVisible(true)
	if dt := d.Tick(); dt != 0 {
		t.Errorf("resume tick dt = %v, want 0", dt)
	}
	clock.Advance(10 * time.Millisecond)
	if dt := d.Tick(); !approxEqual(dt, 0.01, 1e-12) {
		t.Errorf("dt after resume = %v, want 0.01", dt)
	}

	s := d.Stats()
	if s.Frames != 2 || s.PausedFrames != 5 {
		t.Errorf("frames=%d paused=%d", s.Frames, s.PausedFrames)
	}
}

func TestDriverReducedMotion(t *testing.T) {
	d, clock, f := newTestDriver(DriverConfig{ReducedMotion: true})
	if !d.Paused() || !d.ReducedMotion() {
		t.Fatal("ReducedMotion config should start paused")
	}
	for range 3 {
		clock.Advance(16 * time.Millisecond)
		d.Tick()
	}
	if len(f.dts) != 0 {
		t.Error("effects updated in reduced motion")
	}

	d.SetReducedMotion(false)
	d.Tick()
	clock.Advance(16 * time.Millisecond)
	d.Tick()
	if len(f.dts) != 1 {
		t.Errorf("updates = %d after leaving reduced motion", len(f.dts))
	}

	// Reduced motion still draws the last frame.
	d.SetReducedMotion(true)
	d.Draw(ebiten.NewImage(4, 4))
	if f.draws != 1 {
		t.Errorf("draws = %d, want 1", f.draws)
	}
}

func TestDriverEffectOrder(t *testing.T) {
	var log []string
	d := NewDriver(DriverConfig{}, NewManualClock(epoch))
	d.Add(&fakeEffect{name: "a", log: &log})
	d.Add(&fakeEffect{name: "b", log: &log})
	d.Add(nil)
	if len(d.Effects()) != 2 {
		t.Fatalf("effects = %d", len(d.Effects()))
	}

	d.Tick()
	d.clock.(*ManualClock).Advance(time.Millisecond)
	d.Tick()
	d.Draw(ebiten.NewImage(4, 4))

	want := []string{"update a", "update b", "draw a", "draw b"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestDriverDrawNil(t *testing.T) {
	d, _, f := newTestDriver(DriverConfig{Clear: true})
	d.Draw(nil)
	if f.draws != 0 {
		t.Error("effects drawn without a surface")
	}
}

func TestDriverResize(t *testing.T) {
	d, _, f := newTestDriver(DriverConfig{Width: 640, Height: 480})
	if f.width != 640 || f.height != 480 || f.resizes != 1 {
		t.Fatalf("Add bound %vx%v after %d resizes", f.width, f.height, f.resizes)
	}

	d.Resize(1024, 768)
	if f.width != 1024 || f.height != 768 {
		t.Errorf("effect size = %vx%v", f.width, f.height)
	}
	d.Resize(1024, 768)
	if f.resizes != 2 {
		t.Errorf("resizes = %d, unchanged size should be skipped", f.resizes)
	}

	d.Resize(0, math.NaN())
	if w, h := d.Size(); w != 1 || h != 1 {
		t.Errorf("size = %vx%v, want clamped to 1x1", w, h)
	}
	if f.width != 1 || f.height != 1 {
		t.Errorf("effect size = %vx%v", f.width, f.height)
	}
}

func TestDriverForwardsEnvironment(t *testing.T) {
	d, _, f := newTestDriver(DriverConfig{})
	plain := &updateOnly{}
	d.Add(plain)

	d.SetPointer(10, 20, true)
	if f.pointer != (Vec2{X: 10, Y: 20}) || !f.inside {
		t.Errorf("pointer = %v inside=%v", f.pointer, f.inside)
	}
	d.SetPointer(10, 20, false)
	if f.inside {
		t.Error("pointer still inside")
	}

	d.SetPointer(math.NaN(), 5, true)
	if f.pointer != (Vec2{X: 10, Y: 20}) {
		t.Errorf("non-finite pointer forwarded: %v", f.pointer)
	}

	d.Scroll(12)
	d.Scroll(0)
	d.Scroll(math.NaN())
	if len(f.scrolls) != 1 || f.scrolls[0] != 12 {
		t.Errorf("scrolls = %v", f.scrolls)
	}

	d.Burst(5, 6)
	if len(f.bursts) != 1 || f.bursts[0] != (Vec2{X: 5, Y: 6}) {
		t.Errorf("bursts = %v", f.bursts)
	}
}

func TestDriverStats(t *testing.T) {
	d, _, f := newTestDriver(DriverConfig{})
	f.count, f.max = 7, 25
	d.Add(&fakeEffect{count: 3, max: 10})
	d.Add(&updateOnly{})

	s := d.Stats()
	if s.Petals != 10 || s.MaxPetals != 35 || s.Effects != 3 || s.Paused {
		t.Errorf("stats = %+v", s)
	}
	d.SetVisible(false)
	if !d.Stats().Paused {
		t.Error("stats not paused while hidden")
	}
}

func TestDriverDispose(t *testing.T) {
	d, clock, f := newTestDriver(DriverConfig{})
	d.Tick()
	d.Dispose()
	d.Dispose()

	if !f.disposed || !d.Disposed() {
		t.Fatal("effect not disposed")
	}
	if len(d.Effects()) != 0 {
		t.Errorf("effects = %d after Dispose", len(d.Effects()))
	}

	clock.Advance(16 * time.Millisecond)
	if d.Tick() != 0 || len(f.dts) != 0 {
		t.Error("Tick advanced after Dispose")
	}
	d.Resize(10, 10)
	if f.width == 10 {
		t.Error("Resize reached a disposed effect")
	}
	late := &fakeEffect{}
	d.Add(late)
	if late.resizes != 0 || len(d.Effects()) != 0 {
		t.Error("Add accepted an effect after Dispose")
	}
	d.Draw(nil)
}

func TestDriverSakuraScenario(t *testing.T) {
	clock := NewManualClock(epoch)
	d := NewDriver(DriverConfig{}, clock)
	eff, err := NewEffect(PetalEffectConfig{Petals: PetalConfig{Seed: 11}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	d.Add(eff)
	petals := eff.(*PetalEffect)

	for f := range 7 * 60 {
		clock.Advance(16667 * time.Microsecond)
		if f == 200 {
			d.SetPointer(400, 300, true)
			d.Scroll(30)
		}
		d.Tick()
		s := d.Stats()
		if s.Petals > s.MaxPetals {
			t.Fatalf("frame %d: %d petals exceed %d", f, s.Petals, s.MaxPetals)
		}
		for _, p := range petals.Engine().Petals() {
			if p.Position.Y > 650 || p.Position.Y < -50 || p.Position.X < -50 || p.Position.X > 850 {
				t.Fatalf("frame %d: petal at %v outside the cull area", f, p.Position)
			}
		}
	}
	if petals.Count() == 0 {
		t.Error("no petals after seven seconds")
	}
	if s := d.Stats(); s.Frames != 7*60-1 {
		t.Errorf("frames = %d, want %d", s.Frames, 7*60-1)
	}
}
