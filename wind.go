package petalfx

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	gustFrequency = 4.0 // spring angular frequency for scroll gusts
	gustDamping   = 1.0 // critically damped: no overshoot
	gustDecay     = 2.5 // per-second decay of the gust target
)

// windField samples the acceleration felt by a petal at a position: a steady
// directional wind, a turbulence term, a repulsion bubble around the mouse and
// a scroll-driven gust.
type windField struct {
	strength   float64
	direction  float64 // radians, 0 = blowing toward +X
	turbulence float64
	time       float64

	mouse         Vec2
	mouseRadius   float64
	mouseStrength float64
	mouseActive   bool

	gust       float64
	gustVel    float64
	gustTarget float64
	maxGust    float64
	spring     harmonica.Spring
	springDt   float64
}

// set replaces the steady wind parameters. Non-finite values are treated as 0.
func (w *windField) set(strength, direction, turbulence float64) {
	if !finite(strength) {
		strength = 0
	}
	if !finite(direction) {
		direction = 0
	}
	if !finite(turbulence) || turbulence < 0 {
		turbulence = 0
	}
	w.strength = strength
	w.direction = direction
	w.turbulence = turbulence
}

// setMouse places the repulsion bubble. A non-positive radius disables it.
func (w *windField) setMouse(x, y, radius float64) {
	if !finite(x) || !finite(y) || !(radius > 0) {
		w.mouseActive = false
		return
	}
	w.mouse = Vec2{X: x, Y: y}
	w.mouseRadius = radius
	w.mouseActive = true
}

// addGust pushes the gust target by delta, clamped to +/- maxGust.
func (w *windField) addGust(delta float64) {
	if !finite(delta) {
		return
	}
	w.gustTarget = clamp(w.gustTarget+delta, -w.maxGust, w.maxGust)
}

// advance moves the field clock and eases the gust toward its decaying target.
func (w *windField) advance(dt float64) {
	w.time += dt
	if dt != w.springDt {
		w.spring = harmonica.NewSpring(dt, gustFrequency, gustDamping)
		w.springDt = dt
	}
	w.gustTarget *= math.Exp(-gustDecay * dt)
	w.gust, w.gustVel = w.spring.Update(w.gust, w.gustVel, w.gustTarget)
}

// sample returns the wind acceleration at pos. phase decorrelates petals that
// happen to share a position.
func (w *windField) sample(pos Vec2, phase float64) Vec2 {
	sin, cos := math.Sincos(w.direction)
	acc := Vec2{X: cos * w.strength, Y: sin * w.strength}

	if w.turbulence > 0 {
		acc.X += w.turbulence * math.Sin(pos.Y*0.011+w.time*1.3+phase)
		acc.Y += w.turbulence * 0.5 * math.Cos(pos.X*0.013+w.time*0.9+phase)
	}

	acc.X += w.gust

	if w.mouseActive {
		d := r2.Sub(pos, w.mouse)
		dist := r2.Norm(d)
		if dist > 0 && dist < w.mouseRadius {
			falloff := 1 - dist/w.mouseRadius
			acc = r2.Add(acc, r2.Scale(w.mouseStrength*falloff/dist, d))
		}
	}
	return acc
}
