package petalfx

import "gonum.org/v1/gonum/spatial/r2"

// DefaultDamping is the fraction of implicit velocity kept per Verlet step.
const DefaultDamping = 0.99

// Point is a Verlet particle. Its velocity is implicit: Position minus
// PrevPosition. Acceleration accumulates forces for the current step only.
type Point struct {
	Position     Vec2
	PrevPosition Vec2
	Acceleration Vec2
	// Pinned points are moved only through MoveTo. Forces, integration and
	// constraints never displace them.
	Pinned bool
}

// NewPoint creates a point at rest at (x, y).
func NewPoint(x, y float64, pinned bool) *Point {
	pos := Vec2{X: x, Y: y}
	return &Point{Position: pos, PrevPosition: pos, Pinned: pinned}
}

// ApplyForce accumulates f into the point's acceleration. No-op when pinned.
func (p *Point) ApplyForce(f Vec2) {
	if p.Pinned {
		return
	}
	p.Acceleration = r2.Add(p.Acceleration, f)
}

// Update advances the point by dt seconds using DefaultDamping.
func (p *Point) Update(dt float64) {
	p.UpdateDamped(dt, DefaultDamping)
}

// UpdateDamped advances the point by dt seconds:
//
//	next = pos + (pos - prev)*damping + acc*dt*dt
//
// The accumulated acceleration is cleared afterwards, pinned or not.
func (p *Point) UpdateDamped(dt, damping float64) {
	if p.Pinned {
		p.Acceleration = Vec2{}
		return
	}
	vel := r2.Scale(damping, r2.Sub(p.Position, p.PrevPosition))
	next := r2.Add(r2.Add(p.Position, vel), r2.Scale(dt*dt, p.Acceleration))
	p.PrevPosition = p.Position
	p.Position = next
	p.Acceleration = Vec2{}
}

// Velocity returns the implicit per-step displacement.
func (p *Point) Velocity() Vec2 {
	return r2.Sub(p.Position, p.PrevPosition)
}

// MoveTo places the point at (x, y) with zero implicit velocity. This is the
// external repositioning path for anchors.
func (p *Point) MoveTo(x, y float64) {
	p.Position = Vec2{X: x, Y: y}
	p.PrevPosition = p.Position
}

// translate shifts both the current and previous position, keeping the
// implicit velocity intact.
func (p *Point) translate(d Vec2) {
	p.Position = r2.Add(p.Position, d)
	p.PrevPosition = r2.Add(p.PrevPosition, d)
}
