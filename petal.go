package petalfx

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"
)

// NominalFrame is the frame interval the simulation is tuned for, in seconds.
const NominalFrame = 1.0 / 60.0

// CollisionType selects how a petal responds to a CollisionBox.
type CollisionType uint8

const (
	CollisionBouncy CollisionType = iota // reflect the normal velocity, scaled by Restitution
	CollisionSolid                       // stop the normal velocity, slide along the face
	CollisionSticky                      // stop dead and stay until the petal expires
)

// CollisionBox is a static, externally registered obstacle. The simulation
// only reads it.
type CollisionBox struct {
	X, Y, Width, Height float64
	Type                CollisionType
	// Restitution is the fraction of the normal speed kept by a bouncy box.
	Restitution float64
}

// PetalEventType identifies a petal lifecycle event.
type PetalEventType uint8

const (
	PetalSpawned     PetalEventType = iota // a petal entered the simulation
	PetalCollided                          // a petal hit a bouncy or solid box
	PetalStuck                             // a petal stuck to a sticky box
	PetalExpired                           // a petal's energy reached zero
	PetalOutOfBounds                       // a petal left the simulation bounds
)

// PetalEvent describes one lifecycle event. Box is the index of the collision
// box involved, or -1.
type PetalEvent struct {
	Type    PetalEventType
	PetalID uint64
	X, Y    float64
	Box     int
}

// EventSink receives petal events. When set on a PetalEngine, events are
// forwarded synchronously from Update and SpawnPetal.
type EventSink interface {
	EmitPetalEvent(event PetalEvent)
}

// PetalConfig controls how petals are spawned and simulated.
//
// Zero values of the count, range and bound fields are replaced by defaults.
// Gravity, Drag, Flutter and MouseStrength are used as given so a zero-force
// simulation stays possible; DefaultPetalConfig returns tuned values for them.
type PetalConfig struct {
	// MaxPetals is the pool size. Spawns beyond it are rejected. Default 25.
	MaxPetals int
	// Lifetime is the range of petal lifetimes in seconds. Default 4-8.
	Lifetime Range
	// SpawnVelocityX and SpawnVelocityY are the initial velocity ranges in
	// pixels per second. Defaults -20..20 and 20..60.
	SpawnVelocityX Range
	SpawnVelocityY Range
	// RotationSpeed is the range of spin rates in radians per second.
	RotationSpeed Range
	// Scale is the range of size multipliers applied to Size. Default 0.6-1.2.
	Scale Range
	// Size is the base petal size in pixels. Default 12.
	Size float64
	// Gravity is the downward acceleration in pixels per second squared.
	Gravity float64
	// Drag is the per-second exponential velocity decay rate.
	Drag float64
	// Flutter is the amplitude of the lateral sway acceleration.
	Flutter float64
	// MouseStrength is the peak repulsion acceleration at the mouse position.
	MouseStrength float64
	// MaxSpeed caps petal speed in pixels per second. Default 300.
	MaxSpeed float64
	// MaxGust caps the scroll-driven gust acceleration. Default 400.
	MaxGust float64
	// ScrollGain converts a scroll delta into gust acceleration. Default 4.
	ScrollGain float64
	// SolidFriction is the tangential speed kept when sliding on a solid box.
	// Default 0.8.
	SolidFriction float64
	// TrailLength is the number of past positions kept per petal. Zero selects
	// the default of 6; a negative value disables trails.
	TrailLength int
	// Width and Height are the simulation bounds. Default 800x600.
	Width, Height float64
	// CullMargin is how far outside the bounds a petal may drift before it is
	// removed. Default 50.
	CullMargin float64
	// MaxDelta caps the step passed to Update, in seconds. Default 2/60.
	MaxDelta float64
	// Palette lists the colors petals are tinted with. Default SakuraPalette.
	Palette []Color
	// Seed fixes the random sequence. Zero picks a random seed.
	Seed uint64
}

// DefaultPetalConfig returns the tuned configuration used by the sakura effect.
func DefaultPetalConfig() PetalConfig {
	return PetalConfig{
		Gravity:       30,
		Drag:          0.6,
		Flutter:       25,
		MouseStrength: 400,
	}.normalized()
}

func (c PetalConfig) normalized() PetalConfig {
	if c.MaxPetals <= 0 {
		c.MaxPetals = 25
	}
	c.Lifetime = c.Lifetime.normalized()
	if !(c.Lifetime.Max > 0) {
		c.Lifetime = Range{Min: 4, Max: 8}
	}
	c.Lifetime.Min = max(c.Lifetime.Min, 0.05)
	if c.SpawnVelocityX == (Range{}) {
		c.SpawnVelocityX = Range{Min: -20, Max: 20}
	}
	if c.SpawnVelocityY == (Range{}) {
		c.SpawnVelocityY = Range{Min: 20, Max: 60}
	}
	c.SpawnVelocityX = c.SpawnVelocityX.normalized()
	c.SpawnVelocityY = c.SpawnVelocityY.normalized()
	if c.RotationSpeed == (Range{}) {
		c.RotationSpeed = Range{Min: -2, Max: 2}
	}
	c.RotationSpeed = c.RotationSpeed.normalized()
	if !(c.Scale.Max > 0) {
		c.Scale = Range{Min: 0.6, Max: 1.2}
	}
	c.Scale = c.Scale.normalized()
	if !(c.Size > 0) {
		c.Size = 12
	}
	c.Drag = max(c.Drag, 0)
	c.MouseStrength = max(c.MouseStrength, 0)
	if !(c.MaxSpeed > 0) {
		c.MaxSpeed = 300
	}
	if !(c.MaxGust > 0) {
		c.MaxGust = 400
	}
	if !(c.ScrollGain > 0) {
		c.ScrollGain = 4
	}
	if !(c.SolidFriction > 0) {
		c.SolidFriction = 0.8
	}
	c.SolidFriction = clamp01(c.SolidFriction)
	switch {
	case c.TrailLength == 0:
		c.TrailLength = 6
	case c.TrailLength < 0:
		c.TrailLength = 0
	}
	if !(c.Width > 0) {
		c.Width = 800
	}
	if !(c.Height > 0) {
		c.Height = 600
	}
	if !(c.CullMargin > 0) {
		c.CullMargin = 50
	}
	if !(c.MaxDelta > 0) {
		c.MaxDelta = 2 * NominalFrame
	}
	if len(c.Palette) == 0 {
		c.Palette = mustSakura()
	}
	return c
}

// Petal is a read-only snapshot of one live petal.
type Petal struct {
	ID            uint64
	Position      Vec2
	Velocity      Vec2
	Rotation      float64
	RotationSpeed float64
	Scale         float64
	// Energy fades from 1 at spawn to 0 at the end of the lifetime.
	Energy float64
	// Age and Lifetime are in seconds.
	Age, Lifetime float64
	// Trail holds recent positions, oldest first.
	Trail       []Vec2
	IsColliding bool
	Stuck       bool
	Color       Color
}

// petal holds per-petal simulation state. Unexported; managed by PetalEngine.
type petal struct {
	id        uint64
	pos, vel  Vec2
	rot, spin float64
	scale     float64
	energy    float64
	age, life float64
	phase     float64
	colliding bool
	stuck     bool
	color     Color

	// trail is a ring buffer of capacity TrailLength.
	trail     []Vec2
	trailHead int
	trailLen  int
}

func (p *petal) pushTrail(pos Vec2) {
	if len(p.trail) == 0 {
		return
	}
	p.trail[p.trailHead] = pos
	p.trailHead = (p.trailHead + 1) % len(p.trail)
	if p.trailLen < len(p.trail) {
		p.trailLen++
	}
}

// appendTrail appends the trail to buf, oldest first.
func (p *petal) appendTrail(buf []Vec2) []Vec2 {
	n := len(p.trail)
	start := (p.trailHead - p.trailLen + n) % max(n, 1)
	for i := range p.trailLen {
		buf = append(buf, p.trail[(start+i)%n])
	}
	return buf
}

// PetalEngine simulates free-falling petals: spawned on request, pushed by
// wind, gravity, the mouse and scroll gusts, bounced or stuck by collision
// boxes, and culled when their energy runs out or they leave the bounds.
//
// PetalEngine is not safe for concurrent use. It is owned by the loop that
// drives it; setters are the only external mutation path.
type PetalEngine struct {
	config PetalConfig
	petals []petal
	alive  int
	boxes  []CollisionBox
	wind   windField
	rng    *rand.Rand
	nextID uint64
	sink   EventSink
}

// NewPetalEngine creates an engine with a preallocated pool of MaxPetals.
func NewPetalEngine(cfg PetalConfig) *PetalEngine {
	cfg = cfg.normalized()
	e := &PetalEngine{
		config: cfg,
		petals: make([]petal, cfg.MaxPetals),
		rng:    newRand(cfg.Seed),
	}
	for i := range e.petals {
		e.petals[i].trail = make([]Vec2, cfg.TrailLength)
	}
	e.wind.mouseStrength = cfg.MouseStrength
	e.wind.maxGust = cfg.MaxGust
	return e
}

// Config returns a copy of the normalized configuration.
func (e *PetalEngine) Config() PetalConfig {
	return e.config
}

// SetEventSink sets the optional receiver of petal events. Nil disables events.
func (e *PetalEngine) SetEventSink(sink EventSink) {
	e.sink = sink
}

func (e *PetalEngine) emit(t PetalEventType, p *petal, box int) {
	if e.sink == nil {
		return
	}
	e.sink.EmitPetalEvent(PetalEvent{Type: t, PetalID: p.id, X: p.pos.X, Y: p.pos.Y, Box: box})
}

// SpawnPetal adds a petal at (x, y) with randomized velocity, spin, scale,
// lifetime and color. It reports false, without side effects, when the pool
// is full or the position is not finite. Callers rate-limit spawning.
func (e *PetalEngine) SpawnPetal(x, y float64) bool {
	if e.alive >= len(e.petals) || !finite(x) || !finite(y) {
		return false
	}
	cfg := &e.config
	p := &e.petals[e.alive]
	e.nextID++

	p.id = e.nextID
	p.pos = Vec2{X: x, Y: y}
	p.vel = Vec2{X: cfg.SpawnVelocityX.Random(e.rng), Y: cfg.SpawnVelocityY.Random(e.rng)}
	p.rot = e.rng.Float64() * 2 * math.Pi
	p.spin = cfg.RotationSpeed.Random(e.rng)
	p.scale = cfg.Scale.Random(e.rng)
	p.life = cfg.Lifetime.Random(e.rng)
	p.age = 0
	p.energy = 1
	p.phase = e.rng.Float64() * 2 * math.Pi
	p.colliding = false
	p.stuck = false
	p.color = pickColor(cfg.Palette, e.rng)
	p.trailHead = 0
	p.trailLen = 0
	p.pushTrail(p.pos)

	e.alive++
	e.emit(PetalSpawned, p, -1)
	return true
}

// Update advances the simulation by dt seconds. dt is capped at MaxDelta so a
// long stall (a backgrounded tab, a debugger pause) cannot fling petals
// across the screen. Non-positive or non-finite dt is ignored.
//
// Per petal, in order: wind sampling, integration, energy decay, trail,
// collision boxes, culling.
func (e *PetalEngine) Update(dt float64) {
	if !(dt > 0) || !finite(dt) {
		return
	}
	dt = min(dt, e.config.MaxDelta)
	e.wind.advance(dt)

	cfg := &e.config
	drag := math.Exp(-cfg.Drag * dt)

	i := 0
	for i < e.alive {
		p := &e.petals[i]
		if !p.stuck {
			p.colliding = false
			acc := e.wind.sample(p.pos, p.phase)
			acc.Y += cfg.Gravity
			acc.X += cfg.Flutter * math.Sin(p.age*2.5+p.phase)

			p.vel = r2.Scale(drag, r2.Add(p.vel, r2.Scale(dt, acc)))
			if speed := r2.Norm(p.vel); speed > cfg.MaxSpeed {
				p.vel = r2.Scale(cfg.MaxSpeed/speed, p.vel)
			}
			p.pos = r2.Add(p.pos, r2.Scale(dt, p.vel))
			p.rot = math.Mod(p.rot+p.spin*dt, 2*math.Pi)
		}

		p.age += dt
		p.energy = clamp01(1 - p.age/p.life)
		p.pushTrail(p.pos)

		if !p.stuck {
			e.collide(p)
		}

		if p.energy <= 0 {
			e.emit(PetalExpired, p, -1)
			e.remove(i)
			continue
		}
		if e.outOfBounds(p.pos) {
			e.emit(PetalOutOfBounds, p, -1)
			e.remove(i)
			continue
		}
		i++
	}
}

// remove swap-removes the petal at i. Slots are swapped rather than copied so
// each slot keeps its own trail buffer.
func (e *PetalEngine) remove(i int) {
	e.alive--
	e.petals[i], e.petals[e.alive] = e.petals[e.alive], e.petals[i]
}

// outOfBounds also reports a non-finite position, so a corrupted petal is
// culled instead of lingering.
func (e *PetalEngine) outOfBounds(pos Vec2) bool {
	if !finite(pos.X) || !finite(pos.Y) {
		return true
	}
	m := e.config.CullMargin
	return pos.X < -m || pos.X > e.config.Width+m ||
		pos.Y < -m || pos.Y > e.config.Height+m
}

// collide resolves p against every box it is inside of.
func (e *PetalEngine) collide(p *petal) {
	for bi := range e.boxes {
		b := &e.boxes[bi]
		if p.pos.X < b.X || p.pos.X > b.X+b.Width || p.pos.Y < b.Y || p.pos.Y > b.Y+b.Height {
			continue
		}
		p.colliding = true

		if b.Type == CollisionSticky {
			p.vel = Vec2{}
			p.spin = 0
			p.stuck = true
			e.emit(PetalStuck, p, bi)
			return
		}

		// Leave through the nearest face.
		normal, depth := Vec2{X: -1}, p.pos.X-b.X
		if d := b.X + b.Width - p.pos.X; d < depth {
			normal, depth = Vec2{X: 1}, d
		}
		if d := p.pos.Y - b.Y; d < depth {
			normal, depth = Vec2{Y: -1}, d
		}
		if d := b.Y + b.Height - p.pos.Y; d < depth {
			normal, depth = Vec2{Y: 1}, d
		}
		p.pos = r2.Add(p.pos, r2.Scale(depth+1e-6, normal))

		vn := r2.Dot(p.vel, normal)
		if vn < 0 {
			tangent := r2.Sub(p.vel, r2.Scale(vn, normal))
			switch b.Type {
			case CollisionBouncy:
				p.vel = r2.Add(tangent, r2.Scale(-vn*b.Restitution, normal))
			case CollisionSolid:
				p.vel = r2.Scale(e.config.SolidFriction, tangent)
			}
		}
		e.emit(PetalCollided, p, bi)
	}
}

// SetWind sets the steady wind: strength in pixels per second squared,
// direction in radians (0 blows toward +X) and turbulence amplitude.
func (e *PetalEngine) SetWind(strength, direction, turbulence float64) {
	e.wind.set(strength, direction, turbulence)
}

// SetMousePosition places the mouse repulsion bubble at (x, y). A
// non-positive influenceRadius disables it.
func (e *PetalEngine) SetMousePosition(x, y, influenceRadius float64) {
	e.wind.setMouse(x, y, influenceRadius)
}

// ClearMouse disables mouse influence.
func (e *PetalEngine) ClearMouse() {
	e.wind.mouseActive = false
}

// AddScrollImpulse converts a scroll delta into a horizontal gust that eases in
// and decays over the following frames.
func (e *PetalEngine) AddScrollImpulse(delta float64) {
	e.wind.addGust(delta * e.config.ScrollGain)
}

// Gust returns the current scroll gust acceleration.
func (e *PetalEngine) Gust() float64 {
	return e.wind.gust
}

// AddCollisionBox registers a static box and returns its index. Negative
// sizes are clamped to zero and restitution to [0, 1]. A box with a
// non-finite position or size is rejected and -1 is returned.
func (e *PetalEngine) AddCollisionBox(box CollisionBox) int {
	if !finite(box.X) || !finite(box.Y) || !finite(box.Width) || !finite(box.Height) {
		return -1
	}
	box.Width = max(box.Width, 0)
	box.Height = max(box.Height, 0)
	if !finite(box.Restitution) {
		box.Restitution = 0
	}
	box.Restitution = clamp01(box.Restitution)
	e.boxes = append(e.boxes, box)
	return len(e.boxes) - 1
}

// ClearCollisionBoxes removes every collision box. Stuck petals stay stuck.
func (e *PetalEngine) ClearCollisionBoxes() {
	e.boxes = e.boxes[:0]
}

// CollisionBoxes returns the registered boxes. The returned slice MUST NOT be
// mutated.
func (e *PetalEngine) CollisionBoxes() []CollisionBox {
	return e.boxes
}

// SetBounds sets the simulation area. Non-positive sizes are clamped to 1.
func (e *PetalEngine) SetBounds(width, height float64) {
	if !(width >= 1) {
		width = 1
	}
	if !(height >= 1) {
		height = 1
	}
	e.config.Width = width
	e.config.Height = height
}

// Bounds returns the simulation area.
func (e *PetalEngine) Bounds() (width, height float64) {
	return e.config.Width, e.config.Height
}

// Petals returns a snapshot of every live petal.
func (e *PetalEngine) Petals() []Petal {
	out := make([]Petal, e.alive)
	for i := range e.alive {
		p := &e.petals[i]
		out[i] = Petal{
			ID:            p.id,
			Position:      p.pos,
			Velocity:      p.vel,
			Rotation:      p.rot,
			RotationSpeed: p.spin,
			Scale:         p.scale,
			Energy:        p.energy,
			Age:           p.age,
			Lifetime:      p.life,
			Trail:         p.appendTrail(nil),
			IsColliding:   p.colliding,
			Stuck:         p.stuck,
			Color:         p.color,
		}
	}
	return out
}

// Count returns the number of live petals.
func (e *PetalEngine) Count() int {
	return e.alive
}

// MaxPetals returns the pool size.
func (e *PetalEngine) MaxPetals() int {
	return len(e.petals)
}

// Reset removes every petal and calms the wind gust. Wind settings, mouse
// state and collision boxes are kept.
func (e *PetalEngine) Reset() {
	e.alive = 0
	e.wind.gust = 0
	e.wind.gustVel = 0
	e.wind.gustTarget = 0
}
