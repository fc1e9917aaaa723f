package petalfx

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// DriverConfig configures a Driver.
type DriverConfig struct {
	// Width and Height are the initial surface size. Default 800x600.
	Width, Height float64
	// FrameRate is the nominal update rate. Deltas are capped at two frame
	// intervals. Default 60.
	FrameRate float64
	// Clear fills the surface with ClearColor before drawing. When false the
	// effects draw over whatever the host left on the surface.
	Clear      bool
	ClearColor Color
	// ReducedMotion starts the driver paused, as if the user asked the OS to
	// reduce motion.
	ReducedMotion bool
	// Debug logs per-frame timings and populations to stderr.
	Debug bool
}

func (c DriverConfig) normalized() DriverConfig {
	if !(c.Width >= 1) {
		c.Width = 800
	}
	if !(c.Height >= 1) {
		c.Height = 600
	}
	if !(c.FrameRate > 0) {
		c.FrameRate = 60
	}
	return c
}

// FrameInterval returns the nominal time between frames.
func (c DriverConfig) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.normalized().FrameRate)
}

// FrameStats are the counters a diagnostics overlay shows.
type FrameStats struct {
	// Frames counts ticks that advanced the simulation.
	Frames uint64
	// PausedFrames counts ticks skipped while hidden or in reduced motion.
	PausedFrames uint64
	// LastDelta is the clamped dt of the most recent advancing tick, in
	// seconds.
	LastDelta float64
	// Petals and MaxPetals sum every effect that reports a population.
	Petals    int
	MaxPetals int
	Effects   int
	Paused    bool
}

// Driver owns a set of effects and runs the per-frame cycle: measure the
// delta against its clock, cap it, advance every effect in insertion order,
// and draw them onto the host's surface. Environment setters (pointer, scroll,
// resize, visibility, reduced motion) are the only external mutation path.
//
// A Driver is not safe for concurrent use; all calls come from the loop that
// owns it.
type Driver struct {
	config   DriverConfig
	clock    Clock
	effects  []Effect
	maxDelta float64

	last    time.Time
	started bool

	visible  bool
	reduced  bool
	disposed bool

	width, height float64
	stats         FrameStats
	debug         debugStats
}

// NewDriver creates a visible driver. A nil clock uses the system clock.
func NewDriver(cfg DriverConfig, clock Clock) *Driver {
	cfg = cfg.normalized()
	if clock == nil {
		clock = NewSystemClock()
	}
	return &Driver{
		config:   cfg,
		clock:    clock,
		maxDelta: 2 / cfg.FrameRate,
		visible:  true,
		reduced:  cfg.ReducedMotion,
		width:    cfg.Width,
		height:   cfg.Height,
	}
}

// Add appends an effect and binds it to the current surface size. Effects
// update and draw in the order they were added. No-op after Dispose.
func (d *Driver) Add(e Effect) {
	if d.disposed || e == nil {
		return
	}
	e.Resize(d.width, d.height)
	d.effects = append(d.effects, e)
}

// Effects returns the driver's effects. The returned slice MUST NOT be
// mutated.
func (d *Driver) Effects() []Effect {
	return d.effects
}

// Paused reports whether ticks are currently skipped.
func (d *Driver) Paused() bool {
	return !d.visible || d.reduced
}

// Tick runs one frame of simulation and returns the dt applied, in seconds.
// The first tick after construction or a resume only records the time, so a
// pause never turns into a catch-up jump. While paused nothing advances and
// the last drawn frame stays valid.
func (d *Driver) Tick() float64 {
	if d.disposed {
		return 0
	}
	if d.Paused() {
		d.stats.PausedFrames++
		d.started = false
		return 0
	}
	now := d.clock.Now()
	if !d.started {
		d.last = now
		d.started = true
		return 0
	}
	dt := now.Sub(d.last).Seconds()
	d.last = now
	if !(dt > 0) {
		return 0
	}
	dt = min(dt, d.maxDelta)

	var t0 time.Time
	if d.config.Debug {
		t0 = time.Now()
	}
	for _, e := range d.effects {
		e.Update(dt)
	}
	if d.config.Debug {
		d.debug.updateTime = time.Since(t0)
	}

	d.stats.Frames++
	d.stats.LastDelta = dt
	return dt
}

// Draw clears the surface when configured and draws every effect. A nil dst
// (the host could not provide a surface) is a no-op.
func (d *Driver) Draw(dst *ebiten.Image) {
	if d.disposed || dst == nil {
		return
	}
	var t0 time.Time
	if d.config.Debug {
		t0 = time.Now()
	}
	if d.config.Clear {
		c := d.config.ClearColor
		dst.Fill(color.NRGBA{
			R: uint8(clamp01(c.R) * 255),
			G: uint8(clamp01(c.G) * 255),
			B: uint8(clamp01(c.B) * 255),
			A: uint8(clamp01(c.A) * 255),
		})
	}
	for _, e := range d.effects {
		e.Draw(dst)
	}
	if d.config.Debug {
		d.debug.drawTime = time.Since(t0)
		d.debugLog()
	}
}

// SetVisible pauses the driver while the surface is hidden. Becoming visible
// again restarts delta measurement from the next tick.
func (d *Driver) SetVisible(visible bool) {
	if visible && !d.visible {
		d.started = false
	}
	d.visible = visible
}

// Visible reports the visibility flag.
func (d *Driver) Visible() bool {
	return d.visible
}

// SetReducedMotion pauses the driver while the reduced-motion preference is
// on. The last frame keeps being drawn.
func (d *Driver) SetReducedMotion(reduced bool) {
	if !reduced && d.reduced {
		d.started = false
	}
	d.reduced = reduced
}

// ReducedMotion reports the reduced-motion flag.
func (d *Driver) ReducedMotion() bool {
	return d.reduced
}

// Resize rebinds every effect to a new surface size. Sizes below one pixel
// are clamped.
func (d *Driver) Resize(width, height float64) {
	if d.disposed {
		return
	}
	if !(width >= 1) {
		width = 1
	}
	if !(height >= 1) {
		height = 1
	}
	if width == d.width && height == d.height {
		return
	}
	d.width, d.height = width, height
	for _, e := range d.effects {
		e.Resize(width, height)
	}
}

// Size returns the current surface size.
func (d *Driver) Size() (width, height float64) {
	return d.width, d.height
}

// SetPointer forwards the pointer to every effect that reacts to it.
// Non-finite coordinates are dropped.
func (d *Driver) SetPointer(x, y float64, inside bool) {
	if !finite(x) || !finite(y) {
		return
	}
	for _, e := range d.effects {
		if r, ok := e.(PointerReceiver); ok {
			r.SetPointer(x, y, inside)
		}
	}
}

// Scroll forwards a scroll delta to every effect that reacts to it.
func (d *Driver) Scroll(delta float64) {
	if delta == 0 || !finite(delta) {
		return
	}
	for _, e := range d.effects {
		if r, ok := e.(ScrollReceiver); ok {
			r.Scroll(delta)
		}
	}
}

// Burst forwards a click to every effect that spawns bursts.
func (d *Driver) Burst(x, y float64) {
	for _, e := range d.effects {
		if r, ok := e.(BurstReceiver); ok {
			r.Burst(x, y)
		}
	}
}

// Dispose stops the driver and drops its effects. Every later call on the
// driver is a no-op.
func (d *Driver) Dispose() {
	if d.disposed {
		return
	}
	for _, e := range d.effects {
		if r, ok := e.(Disposer); ok {
			r.Dispose()
		}
	}
	d.effects = nil
	d.disposed = true
}

// Disposed reports whether Dispose has been called.
func (d *Driver) Disposed() bool {
	return d.disposed
}

// Stats returns the frame counters and the summed petal population.
func (d *Driver) Stats() FrameStats {
	s := d.stats
	s.Petals, s.MaxPetals = 0, 0
	for _, e := range d.effects {
		if r, ok := e.(Stats); ok {
			s.Petals += r.Count()
			s.MaxPetals += r.MaxPetals()
		}
	}
	s.Effects = len(d.effects)
	s.Paused = d.Paused()
	return s
}
