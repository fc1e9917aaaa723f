package petalfx

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultStiffness is the correction fraction used when a config leaves
// stiffness unset.
const DefaultStiffness = 0.97

// DistanceConstraint keeps two points near a rest length. The points are
// shared with the owning structure, not owned by the constraint.
type DistanceConstraint struct {
	A, B       *Point
	RestLength float64
	// Stiffness is the fraction of the correction applied per Solve, in (0, 1].
	Stiffness float64
}

// NewDistanceConstraint links a and b, capturing their current separation as
// the rest length. Stiffness outside (0, 1] is clamped.
func NewDistanceConstraint(a, b *Point, stiffness float64) *DistanceConstraint {
	return &DistanceConstraint{
		A:          a,
		B:          b,
		RestLength: r2.Norm(r2.Sub(b.Position, a.Position)),
		Stiffness:  clampStiffness(stiffness),
	}
}

func clampStiffness(s float64) float64 {
	if !(s > 0) {
		return DefaultStiffness
	}
	if s > 1 {
		return 1
	}
	return s
}

// Solve moves both endpoints half the stiffness-scaled correction toward the
// rest length. Pinned endpoints stay put. Coincident points are left alone.
func (c *DistanceConstraint) Solve() {
	delta := r2.Sub(c.B.Position, c.A.Position)
	dist := r2.Norm(delta)
	if dist == 0 || !finite(dist) {
		return
	}
	diff := (c.RestLength - dist) / dist
	offset := r2.Scale(diff*0.5*c.Stiffness, delta)
	if !c.A.Pinned {
		c.A.Position = r2.Sub(c.A.Position, offset)
	}
	if !c.B.Pinned {
		c.B.Position = r2.Add(c.B.Position, offset)
	}
}

// Error returns how far the current separation is from the rest length.
func (c *DistanceConstraint) Error() float64 {
	return math.Abs(r2.Norm(r2.Sub(c.B.Position, c.A.Position)) - c.RestLength)
}

// solveAll relaxes every constraint iterations times, in order.
func solveAll(constraints []*DistanceConstraint, iterations int) {
	for range iterations {
		for _, c := range constraints {
			c.Solve()
		}
	}
}
