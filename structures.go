package petalfx

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"gonum.org/v1/gonum/spatial/r2"
)

// sway is a slowly oscillating horizontal wind shared by the hair and cloth
// layers: a base sine with a weaker, faster harmonic on top.
type sway struct {
	strength  float64
	frequency float64
	time      float64
}

func (s *sway) advance(dt float64) Vec2 {
	s.time += dt
	w := 2 * math.Pi * s.frequency * s.time
	return Vec2{X: s.strength * (math.Sin(w) + 0.3*math.Sin(2.7*w+1))}
}

// HairEffectConfig configures a hair layer anchored at a fraction of the
// surface size.
type HairEffectConfig struct {
	Hair HairConfig
	// Strands, Segments and SegmentLength shape the hair. Defaults 12, 10, 12.
	Strands       int
	Segments      int
	SegmentLength float64
	// Spread is the scalp width in pixels. Default 120.
	Spread float64
	// AnchorX and AnchorY place the scalp center as a fraction of the surface.
	// Defaults 0.5 and 0.2.
	AnchorX, AnchorY float64
	// Gravity in pixels per second squared. Default (0, 600).
	Gravity Vec2
	// WindStrength and WindFrequency control the ambient sway. Defaults 120
	// and 0.4 Hz.
	WindStrength  float64
	WindFrequency float64
	// FollowPointer moves the scalp to the pointer while it is inside.
	FollowPointer bool
}

func (c HairEffectConfig) normalized() HairEffectConfig {
	if c.Strands <= 0 {
		c.Strands = 12
	}
	if c.Segments <= 0 {
		c.Segments = 10
	}
	if !(c.SegmentLength > 0) {
		c.SegmentLength = 12
	}
	if !(c.Spread > 0) {
		c.Spread = 120
	}
	if c.AnchorX == 0 && c.AnchorY == 0 {
		c.AnchorX, c.AnchorY = 0.5, 0.2
	}
	c.AnchorX = clamp01(c.AnchorX)
	c.AnchorY = clamp01(c.AnchorY)
	if c.Gravity == (Vec2{}) {
		c.Gravity = Vec2{Y: 600}
	}
	if c.WindStrength == 0 {
		c.WindStrength = 120
	}
	if !(c.WindFrequency > 0) {
		c.WindFrequency = 0.4
	}
	return c
}

// HairEffect sways a set of hair strands in an ambient breeze.
type HairEffect struct {
	config HairEffectConfig
	hair   *Hair
	assets *Assets
	wind   sway
	width  float64
	height float64
}

// NewHairEffect creates a hair layer. Strands are placed on the first Resize.
func NewHairEffect(cfg HairEffectConfig, assets *Assets) *HairEffect {
	cfg = cfg.normalized()
	return &HairEffect{
		config: cfg,
		hair:   NewHair(Vec2{}, cfg.Strands, cfg.Segments, cfg.SegmentLength, cfg.Spread, cfg.Hair),
		assets: assets,
		wind:   sway{strength: cfg.WindStrength, frequency: cfg.WindFrequency},
	}
}

// Hair returns the simulated strands.
func (e *HairEffect) Hair() *Hair {
	return e.hair
}

// Update advances the sway and the strands.
func (e *HairEffect) Update(dt float64) {
	e.hair.Update(dt, e.config.Gravity, e.wind.advance(dt))
}

// Resize re-anchors the scalp and hangs every strand from it again.
func (e *HairEffect) Resize(width, height float64) {
	e.width, e.height = width, height
	e.hair.SetOrigin(e.config.AnchorX*width, e.config.AnchorY*height)
	e.hair.Relayout()
}

// SetPointer moves the scalp to the pointer when FollowPointer is set. When
// the pointer leaves, the scalp returns to its anchor.
func (e *HairEffect) SetPointer(x, y float64, inside bool) {
	if !e.config.FollowPointer || !finite(x) || !finite(y) {
		return
	}
	if !inside {
		x, y = e.config.AnchorX*e.width, e.config.AnchorY*e.height
	}
	e.hair.SetOrigin(x, y)
}

// Draw strokes every strand.
func (e *HairEffect) Draw(dst *ebiten.Image) {
	if dst == nil {
		return
	}
	e.hair.Draw(dst, e.assets.WhitePixel())
}

// ClothEffectConfig configures a hanging cloth layer.
type ClothEffectConfig struct {
	Cloth ClothConfig
	// Cols, Rows and Spacing shape the grid. Defaults 16, 12, 14.
	Cols, Rows int
	Spacing    float64
	// AnchorX and AnchorY place the top-center of the cloth as a fraction of
	// the surface. Defaults 0.5 and 0.1.
	AnchorX, AnchorY float64
	// Gravity in pixels per second squared. Default (0, 600).
	Gravity Vec2
	// WindStrength and WindFrequency control the ambient sway. Defaults 80
	// and 0.25 Hz.
	WindStrength  float64
	WindFrequency float64
	// Colliders are static circles in surface coordinates.
	Colliders []CircularCollider
	// PointerRadius makes the pointer a circular collider while it is inside.
	// Zero disables it.
	PointerRadius float64
}

func (c ClothEffectConfig) normalized() ClothEffectConfig {
	if c.Cols <= 0 {
		c.Cols = 16
	}
	if c.Rows <= 0 {
		c.Rows = 12
	}
	if !(c.Spacing > 0) {
		c.Spacing = 14
	}
	if c.AnchorX == 0 && c.AnchorY == 0 {
		c.AnchorX, c.AnchorY = 0.5, 0.1
	}
	c.AnchorX = clamp01(c.AnchorX)
	c.AnchorY = clamp01(c.AnchorY)
	if c.Gravity == (Vec2{}) {
		c.Gravity = Vec2{Y: 600}
	}
	if c.WindStrength == 0 {
		c.WindStrength = 80
	}
	if !(c.WindFrequency > 0) {
		c.WindFrequency = 0.25
	}
	c.PointerRadius = max(c.PointerRadius, 0)
	return c
}

// ClothEffect hangs a ClothMesh in an ambient breeze, optionally pushed
// around by the pointer.
type ClothEffect struct {
	config        ClothEffectConfig
	cloth         *ClothMesh
	assets        *Assets
	wind          sway
	pointer       Vec2
	pointerInside bool
}

// NewClothEffect creates a cloth layer. The grid is placed on the first
// Resize.
func NewClothEffect(cfg ClothEffectConfig, assets *Assets) *ClothEffect {
	cfg = cfg.normalized()
	cloth := NewClothMesh(Vec2{}, cfg.Cols, cfg.Rows, cfg.Spacing, cfg.Cloth)
	for _, c := range cfg.Colliders {
		cloth.AddCollider(c)
	}
	return &ClothEffect{
		config: cfg,
		cloth:  cloth,
		assets: assets,
		wind:   sway{strength: cfg.WindStrength, frequency: cfg.WindFrequency},
	}
}

// Cloth returns the simulated mesh.
func (e *ClothEffect) Cloth() *ClothMesh {
	return e.cloth
}

// Update advances the cloth, then resolves the pointer collider so it runs
// after the constraint passes like the static colliders.
func (e *ClothEffect) Update(dt float64) {
	e.cloth.Update(dt, e.config.Gravity, e.wind.advance(dt))
	if e.pointerInside && e.config.PointerRadius > 0 {
		e.cloth.SolveCollision(e.pointer.X, e.pointer.Y, e.config.PointerRadius)
	}
}

// Resize centers the cloth on its anchor and lays the grid out again.
func (e *ClothEffect) Resize(width, height float64) {
	halfW := float64(e.cloth.Cols()-1) * e.config.Spacing / 2
	origin := r2.Sub(Vec2{X: e.config.AnchorX * width, Y: e.config.AnchorY * height}, Vec2{X: halfW})
	e.cloth.SetOrigin(origin.X, origin.Y)
	e.cloth.Relayout()
}

// SetPointer records the pointer collider position. Non-finite coordinates
// are ignored.
func (e *ClothEffect) SetPointer(x, y float64, inside bool) {
	if !finite(x) || !finite(y) {
		return
	}
	e.pointer = Vec2{X: x, Y: y}
	e.pointerInside = inside
}

// Draw fills the cloth.
func (e *ClothEffect) Draw(dst *ebiten.Image) {
	if dst == nil {
		return
	}
	e.cloth.Draw(dst, e.assets.WhitePixel())
}
