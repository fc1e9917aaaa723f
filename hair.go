package petalfx

import (
	"github.com/hajimehoshi/ebiten/v2"
	"gonum.org/v1/gonum/spatial/r2"
)

// HairConfig controls how a strand is built and relaxed.
type HairConfig struct {
	// Stiffness of each segment constraint, in (0, 1]. Default 0.97.
	Stiffness float64
	// Iterations is the number of relaxation passes per Update (default 4).
	// A single pass under-corrects chains longer than about three segments.
	Iterations int
	// Damping is the Verlet velocity retention per step (default 0.99).
	Damping float64
	// Width of the drawn ribbon in pixels (default 2).
	Width float64
	// Color of the strand.
	Color Color
}

func (c HairConfig) normalized() HairConfig {
	c.Stiffness = clampStiffness(c.Stiffness)
	if c.Iterations <= 0 {
		c.Iterations = 4
	}
	c.Iterations = clampInt(c.Iterations, 1, 16)
	if !(c.Damping > 0) || c.Damping > 1 {
		c.Damping = DefaultDamping
	}
	if !(c.Width > 0) {
		c.Width = 2
	}
	if c.Color == (Color{}) {
		c.Color = Color{R: 0.12, G: 0.08, B: 0.1, A: 1}
	}
	return c
}

// HairStrand is a chain of Verlet points from a pinned root to a free tip,
// linked by distance constraints between neighbours.
type HairStrand struct {
	points      []*Point
	constraints []*DistanceConstraint
	config      HairConfig
	polyline    []Vec2
}

// NewHairStrand builds a strand of segments links hanging straight down from
// anchor. The rest lengths are captured from this layout, which is the shape
// the strand settles into under gravity.
func NewHairStrand(anchor Vec2, segments int, segmentLength float64, cfg HairConfig) *HairStrand {
	segments = max(segments, 1)
	if !(segmentLength > 0) {
		segmentLength = 1
	}
	cfg = cfg.normalized()

	h := &HairStrand{
		points:      make([]*Point, segments+1),
		constraints: make([]*DistanceConstraint, segments),
		config:      cfg,
	}
	for i := range h.points {
		h.points[i] = NewPoint(anchor.X, anchor.Y+float64(i)*segmentLength, i == 0)
	}
	for i := range h.constraints {
		h.constraints[i] = NewDistanceConstraint(h.points[i], h.points[i+1], cfg.Stiffness)
	}
	return h
}

// Update applies gravity and wind to every free point, integrates, then relaxes
// the constraints. Forces are in pixels per second squared.
func (h *HairStrand) Update(dt float64, gravity, wind Vec2) {
	force := r2.Add(gravity, wind)
	for _, p := range h.points {
		p.ApplyForce(force)
	}
	for _, p := range h.points {
		p.UpdateDamped(dt, h.config.Damping)
	}
	solveAll(h.constraints, h.config.Iterations)
}

// SetAnchor moves the pinned root. The rest of the strand follows through the
// constraints on subsequent updates.
func (h *HairStrand) SetAnchor(x, y float64) {
	h.points[0].MoveTo(x, y)
}

// Relayout hangs the strand straight down from its root at rest lengths,
// discarding any motion.
func (h *HairStrand) Relayout() {
	root := h.points[0].Position
	y := root.Y
	for i := 1; i < len(h.points); i++ {
		y += h.constraints[i-1].RestLength
		h.points[i].MoveTo(root.X, y)
	}
}

// Anchor returns the root position.
func (h *HairStrand) Anchor() Vec2 {
	return h.points[0].Position
}

// Tip returns the position of the last point.
func (h *HairStrand) Tip() Vec2 {
	return h.points[len(h.points)-1].Position
}

// Points returns the strand's points, root first. The returned slice MUST NOT
// be mutated.
func (h *HairStrand) Points() []*Point {
	return h.points
}

// Length returns the current polyline length of the strand.
func (h *HairStrand) Length() float64 {
	var total float64
	for i := 1; i < len(h.points); i++ {
		total += r2.Norm(r2.Sub(h.points[i].Position, h.points[i-1].Position))
	}
	return total
}

// RestLength returns the sum of the segment rest lengths.
func (h *HairStrand) RestLength() float64 {
	var total float64
	for _, c := range h.constraints {
		total += c.RestLength
	}
	return total
}

// appendMesh strokes the strand as a ribbon into m.
func (h *HairStrand) appendMesh(m *meshBuffer) {
	h.polyline = h.polyline[:0]
	for _, p := range h.points {
		h.polyline = append(h.polyline, p.Position)
	}
	m.addRibbon(h.polyline, h.config.Width, h.config.Color, false)
}

// Hair is a set of strands rooted along a horizontal scalp line. Roots keep
// their offset from the origin when the origin moves.
type Hair struct {
	strands []*HairStrand
	offsets []Vec2
	origin  Vec2
	mesh    meshBuffer
}

// NewHair creates count strands spread evenly over spread pixels, centered on
// origin.
func NewHair(origin Vec2, count, segments int, segmentLength, spread float64, cfg HairConfig) *Hair {
	count = max(count, 1)
	h := &Hair{origin: origin}
	for i := range count {
		var off float64
		if count > 1 {
			off = -spread/2 + spread*float64(i)/float64(count-1)
		}
		offset := Vec2{X: off}
		h.offsets = append(h.offsets, offset)
		h.strands = append(h.strands, NewHairStrand(r2.Add(origin, offset), segments, segmentLength, cfg))
	}
	return h
}

// Strands returns the strands. The returned slice MUST NOT be mutated.
func (h *Hair) Strands() []*HairStrand {
	return h.strands
}

// Origin returns the current scalp origin.
func (h *Hair) Origin() Vec2 {
	return h.origin
}

// SetOrigin moves every root to origin plus its offset.
func (h *Hair) SetOrigin(x, y float64) {
	h.origin = Vec2{X: x, Y: y}
	for i, s := range h.strands {
		root := r2.Add(h.origin, h.offsets[i])
		s.SetAnchor(root.X, root.Y)
	}
}

// Relayout hangs every strand straight down from its root.
func (h *Hair) Relayout() {
	for _, s := range h.strands {
		s.Relayout()
	}
}

// Update advances every strand.
func (h *Hair) Update(dt float64, gravity, wind Vec2) {
	for _, s := range h.strands {
		s.Update(dt, gravity, wind)
	}
}

// Draw strokes every strand onto dst.
func (h *Hair) Draw(dst, white *ebiten.Image) {
	h.mesh.reset()
	for _, s := range h.strands {
		s.appendMesh(&h.mesh)
	}
	h.mesh.draw(dst, white, BlendNormal)
}
