package petalfx

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PetalEffectConfig configures the falling sakura layer: the engine itself
// plus the spawn gate and the environment it starts with. When the petal
// forces (Gravity, Drag, Flutter, MouseStrength) are all zero, the tuned
// values of DefaultPetalConfig are used.
type PetalEffectConfig struct {
	Petals PetalConfig
	// SpawnInterval is the minimum time between spawns in seconds.
	// Default 0.25.
	SpawnInterval float64
	// Target is the population the spawn gate refills toward. Default (and
	// cap) is Petals.MaxPetals.
	Target int
	// SpawnY is the spawn line, usually just above the top edge. Default -20.
	SpawnY *float64
	// SpawnInset keeps spawns this many pixels away from the side edges.
	SpawnInset float64

	WindStrength  float64
	WindDirection float64
	Turbulence    float64
	// MouseRadius is the pointer influence radius. Default 120.
	MouseRadius float64

	Boxes []CollisionBox

	// Opacity multiplies every petal's alpha. Default 0.9.
	Opacity float64
	// TrailWidth is the width of the trail ribbon at its head. Default 3.
	TrailWidth float64
	// TrailOpacity multiplies the trail alpha relative to the petal. Default 0.35.
	TrailOpacity float64
	Blend        BlendMode
}

func (c PetalEffectConfig) normalized() PetalEffectConfig {
	if c.Petals.Gravity == 0 && c.Petals.Drag == 0 && c.Petals.Flutter == 0 && c.Petals.MouseStrength == 0 {
		def := DefaultPetalConfig()
		c.Petals.Gravity = def.Gravity
		c.Petals.Drag = def.Drag
		c.Petals.Flutter = def.Flutter
		c.Petals.MouseStrength = def.MouseStrength
	}
	c.Petals = c.Petals.normalized()
	if !(c.SpawnInterval > 0) {
		c.SpawnInterval = 0.25
	}
	if c.Target <= 0 || c.Target > c.Petals.MaxPetals {
		c.Target = c.Petals.MaxPetals
	}
	if c.SpawnY == nil {
		y := -20.0
		c.SpawnY = &y
	}
	c.SpawnInset = max(c.SpawnInset, 0)
	if !(c.MouseRadius > 0) {
		c.MouseRadius = 120
	}
	if !(c.Opacity > 0) {
		c.Opacity = 0.9
	}
	c.Opacity = clamp01(c.Opacity)
	if !(c.TrailWidth > 0) {
		c.TrailWidth = 3
	}
	if !(c.TrailOpacity > 0) {
		c.TrailOpacity = 0.35
	}
	c.TrailOpacity = clamp01(c.TrailOpacity)
	return c
}

// PetalEffect drives a PetalEngine: it refills the population through a
// time-since-last-spawn gate and draws trails under rotated petal shapes.
type PetalEffect struct {
	config     PetalEffectConfig
	engine     *PetalEngine
	assets     *Assets
	sinceSpawn float64
	mesh       meshBuffer
	trail      []Vec2
}

// NewPetalEffect creates a petal layer. The first spawn happens on the first
// Update.
func NewPetalEffect(cfg PetalEffectConfig, assets *Assets) *PetalEffect {
	cfg = cfg.normalized()
	e := &PetalEffect{
		config:     cfg,
		engine:     NewPetalEngine(cfg.Petals),
		assets:     assets,
		sinceSpawn: cfg.SpawnInterval,
	}
	e.engine.SetWind(cfg.WindStrength, cfg.WindDirection, cfg.Turbulence)
	for _, b := range cfg.Boxes {
		e.engine.AddCollisionBox(b)
	}
	return e
}

// Engine returns the underlying simulation.
func (e *PetalEffect) Engine() *PetalEngine {
	return e.engine
}

// Update spawns at most one petal when the population is below target and
// the spawn interval has elapsed, then advances the engine.
func (e *PetalEffect) Update(dt float64) {
	e.sinceSpawn += dt
	if e.engine.Count() < e.config.Target && e.sinceSpawn >= e.config.SpawnInterval {
		w, _ := e.engine.Bounds()
		lo := min(e.config.SpawnInset, w/2)
		x := lo + e.engine.rng.Float64()*(w-2*lo)
		if e.engine.SpawnPetal(x, *e.config.SpawnY) {
			e.sinceSpawn = 0
		}
	}
	e.engine.Update(dt)
}

// Resize rebinds the simulation bounds. Live petals keep their positions and
// are culled if they end up outside.
func (e *PetalEffect) Resize(width, height float64) {
	e.engine.SetBounds(width, height)
}

// SetPointer moves the repulsion bubble, or removes it when the pointer has
// left the surface.
func (e *PetalEffect) SetPointer(x, y float64, inside bool) {
	if !inside {
		e.engine.ClearMouse()
		return
	}
	e.engine.SetMousePosition(x, y, e.config.MouseRadius)
}

// Scroll turns a scroll delta into a wind gust.
func (e *PetalEffect) Scroll(delta float64) {
	e.engine.AddScrollImpulse(delta)
}

// Count returns the live petal count.
func (e *PetalEffect) Count() int { return e.engine.Count() }

// MaxPetals returns the engine's pool size.
func (e *PetalEffect) MaxPetals() int { return e.engine.MaxPetals() }

// buildMesh fills the mesh with every trail, then every petal, so petals
// cover the trails.
func (e *PetalEffect) buildMesh() {
	e.mesh.reset()
	en := e.engine
	for i := range en.alive {
		p := &en.petals[i]
		if p.trailLen < 2 {
			continue
		}
		c := p.color
		c.A *= e.config.Opacity * e.config.TrailOpacity * p.energy
		e.trail = p.appendTrail(e.trail[:0])
		e.mesh.addRibbon(e.trail, e.config.TrailWidth*p.scale, c, true)
	}
	for i := range en.alive {
		p := &en.petals[i]
		c := p.color
		c.A *= e.config.Opacity * p.energy
		e.mesh.addPetalShape(p.pos.X, p.pos.Y, en.config.Size*p.scale, p.rot, c)
	}
}

// Draw renders trails and petals in one triangle batch.
func (e *PetalEffect) Draw(dst *ebiten.Image) {
	if dst == nil {
		return
	}
	e.buildMesh()
	e.mesh.draw(dst, e.assets.WhitePixel(), e.config.Blend)
}
