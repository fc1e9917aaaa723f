package petalfx

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// easings maps the names accepted by LightBurstConfig.Ease to gween functions.
var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"outQuad":    ease.OutQuad,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"outSine":    ease.OutSine,
	"outExpo":    ease.OutExpo,
	"outBack":    ease.OutBack,
}

// LightBurstConfig configures glowing bursts spawned on clicks (and,
// optionally, on a timer). Each burst grows from StartRadius to EndRadius
// while its intensity fades to zero over Duration.
type LightBurstConfig struct {
	// MaxBursts is the number of bursts that can be alive at once. Default 16.
	MaxBursts int
	// StartRadius and EndRadius in pixels. Defaults 8 and 120.
	StartRadius float64
	EndRadius   float64
	// Duration of a burst in seconds. Default 0.8.
	Duration float64
	// Intensity at the start of a burst, in (0, 1]. Default 1.
	Intensity float64
	// Color tints the glow. Default warm pink.
	Color Color
	// Ease names the easing curve: linear, outQuad, outCubic, inOutCubic,
	// outSine, outExpo or outBack. Default outCubic.
	Ease string
	// Blend is the compositing mode. BlendNormal is replaced by BlendAdd.
	Blend BlendMode
	// AutoInterval spawns a burst at a random position every AutoInterval
	// seconds. Zero disables it.
	AutoInterval float64
	// Seed fixes the random sequence used by AutoInterval. Zero is random.
	Seed uint64
}

// maxBurstRadius caps burst radii so the glow texture stays small.
const maxBurstRadius = 1024

func (c LightBurstConfig) normalized() LightBurstConfig {
	if c.MaxBursts <= 0 {
		c.MaxBursts = 16
	}
	if !(c.StartRadius >= 0) {
		c.StartRadius = 0
	}
	if !finite(c.EndRadius) {
		c.EndRadius = 0
	}
	c.StartRadius = min(c.StartRadius, maxBurstRadius)
	if c.StartRadius == 0 && c.EndRadius == 0 {
		c.StartRadius, c.EndRadius = 8, 120
	}
	c.EndRadius = clamp(max(c.EndRadius, c.StartRadius, 1), 1, maxBurstRadius)
	if !(c.Duration > 0) {
		c.Duration = 0.8
	}
	if !(c.Intensity > 0) {
		c.Intensity = 1
	}
	c.Intensity = clamp01(c.Intensity)
	if c.Color == (Color{}) {
		c.Color = Color{R: 1, G: 0.78, B: 0.86, A: 1}
	}
	if _, ok := easings[c.Ease]; !ok {
		c.Ease = "outCubic"
	}
	if c.Blend == BlendNormal {
		c.Blend = BlendAdd
	}
	c.AutoInterval = max(c.AutoInterval, 0)
	return c
}

// lightBurst is one pooled burst. Its tweens are built once and reset on
// reuse.
type lightBurst struct {
	x, y      float64
	radius    float64
	intensity float64
	active    bool
	grow      *gween.Tween
	fade      *gween.Tween
}

// LightBurstEffect draws additive glows that expand and fade. Fades advance
// with the simulation dt, so a paused driver freezes them.
type LightBurstEffect struct {
	config    LightBurstConfig
	bursts    []lightBurst
	assets    *Assets
	width     float64
	height    float64
	sinceAuto float64
	rng       *rand.Rand
	op        ebiten.DrawImageOptions
}

// NewLightBurstEffect creates a burst layer with a fixed pool of MaxBursts.
func NewLightBurstEffect(cfg LightBurstConfig, assets *Assets) *LightBurstEffect {
	cfg = cfg.normalized()
	fn := easings[cfg.Ease]
	e := &LightBurstEffect{
		config: cfg,
		bursts: make([]lightBurst, cfg.MaxBursts),
		assets: assets,
		rng:    newRand(cfg.Seed),
	}
	for i := range e.bursts {
		b := &e.bursts[i]
		b.grow = gween.New(float32(cfg.StartRadius), float32(cfg.EndRadius), float32(cfg.Duration), fn)
		b.fade = gween.New(float32(cfg.Intensity), 0, float32(cfg.Duration), fn)
	}
	return e
}

// Burst starts a burst at (x, y). When every slot is busy the burst closest
// to finishing is restarted.
func (e *LightBurstEffect) Burst(x, y float64) {
	if !finite(x) || !finite(y) {
		return
	}
	slot := -1
	for i := range e.bursts {
		if !e.bursts[i].active {
			slot = i
			break
		}
		if slot < 0 || e.bursts[i].intensity < e.bursts[slot].intensity {
			slot = i
		}
	}
	b := &e.bursts[slot]
	b.x, b.y = x, y
	b.grow.Reset()
	b.fade.Reset()
	b.radius = e.config.StartRadius
	b.intensity = e.config.Intensity
	b.active = true
}

// Active returns the number of bursts currently animating.
func (e *LightBurstEffect) Active() int {
	n := 0
	for i := range e.bursts {
		if e.bursts[i].active {
			n++
		}
	}
	return n
}

// Update advances every burst's tweens by dt and retires finished ones.
func (e *LightBurstEffect) Update(dt float64) {
	if e.config.AutoInterval > 0 && e.width > 0 {
		e.sinceAuto += dt
		if e.sinceAuto >= e.config.AutoInterval {
			e.sinceAuto = 0
			e.Burst(e.rng.Float64()*e.width, e.rng.Float64()*e.height)
		}
	}
	step := float32(dt)
	for i := range e.bursts {
		b := &e.bursts[i]
		if !b.active {
			continue
		}
		r, _ := b.grow.Update(step)
		v, done := b.fade.Update(step)
		b.radius = float64(r)
		b.intensity = float64(v)
		if done {
			b.active = false
		}
	}
}

// Resize records the surface size used for automatic bursts.
func (e *LightBurstEffect) Resize(width, height float64) {
	e.width, e.height = width, height
}

// Draw blends a tinted glow circle for every active burst.
func (e *LightBurstEffect) Draw(dst *ebiten.Image) {
	if dst == nil {
		return
	}
	var circle *ebiten.Image
	c := e.config.Color
	op := &e.op
	for i := range e.bursts {
		b := &e.bursts[i]
		if !b.active || b.radius <= 0 || b.intensity <= 0 {
			continue
		}
		if circle == nil {
			circle = e.assets.Circle(e.config.EndRadius)
		}
		size := float64(circle.Bounds().Dx())
		d := b.radius * 2
		op.GeoM.Reset()
		op.GeoM.Scale(d/size, d/size)
		op.GeoM.Translate(b.x-b.radius, b.y-b.radius)
		a := float32(clamp01(b.intensity) * c.A)
		op.ColorScale.Reset()
		op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
		op.Blend = e.config.Blend.EbitenBlend()
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(circle, op)
	}
}

// burstState returns the current radius and intensity of slot i.
func (e *LightBurstEffect) burstState(i int) (radius, intensity float64, active bool) {
	b := &e.bursts[i]
	return b.radius, b.intensity, b.active
}
