package petalfx

import (
	"github.com/hajimehoshi/ebiten/v2"
	"gonum.org/v1/gonum/spatial/r2"
)

// CircularCollider is a static circle that cloth points are pushed out of.
type CircularCollider struct {
	X, Y, Radius float64
}

// ClothConfig controls how a mesh is built and relaxed.
type ClothConfig struct {
	// Stiffness of every constraint, in (0, 1]. Default 0.97.
	Stiffness float64
	// Iterations is the number of relaxation passes per Update (default 4).
	Iterations int
	// Damping is the Verlet velocity retention per step (default 0.99).
	Damping float64
	// PinStride pins every Nth point of the top row (default 1, the whole row).
	// The last top-row point is always pinned.
	PinStride int
	// Color is the single fill color of the mesh.
	Color Color
	// Opacity multiplies Color.A (default 1).
	Opacity float64
}

func (c ClothConfig) normalized() ClothConfig {
	c.Stiffness = clampStiffness(c.Stiffness)
	if c.Iterations <= 0 {
		c.Iterations = 4
	}
	c.Iterations = clampInt(c.Iterations, 1, 16)
	if !(c.Damping > 0) || c.Damping > 1 {
		c.Damping = DefaultDamping
	}
	c.PinStride = max(c.PinStride, 1)
	if c.Color == (Color{}) {
		c.Color = Color{R: 0.93, G: 0.55, B: 0.66, A: 1}
	}
	if !(c.Opacity > 0) {
		c.Opacity = 1
	}
	c.Opacity = clamp01(c.Opacity)
	return c
}

// ClothMesh is a grid of Verlet points held together by structural
// (horizontal and vertical) and shear (diagonal) constraints, hanging from its
// top row. Nothing prevents self-intersection; constraints only approximate
// cloth.
type ClothMesh struct {
	cols, rows  int
	spacing     float64
	points      []*Point // row-major, rows*cols
	constraints []*DistanceConstraint
	colliders   []CircularCollider
	config      ClothConfig
	origin      Vec2
	mesh        meshBuffer
}

// NewClothMesh lays out cols x rows points spaced spacing pixels apart with the
// top-left point at origin.
func NewClothMesh(origin Vec2, cols, rows int, spacing float64, cfg ClothConfig) *ClothMesh {
	// 255x255 keeps every vertex addressable by a uint16 index.
	cols = clampInt(cols, 2, 255)
	rows = clampInt(rows, 2, 255)
	if !(spacing > 0) {
		spacing = 1
	}
	cfg = cfg.normalized()

	m := &ClothMesh{
		cols:    cols,
		rows:    rows,
		spacing: spacing,
		points:  make([]*Point, cols*rows),
		config:  cfg,
		origin:  origin,
	}
	for r := range rows {
		for c := range cols {
			pinned := r == 0 && (c%cfg.PinStride == 0 || c == cols-1)
			m.points[r*cols+c] = NewPoint(
				origin.X+float64(c)*spacing,
				origin.Y+float64(r)*spacing,
				pinned,
			)
		}
	}

	link := func(a, b *Point) {
		m.constraints = append(m.constraints, NewDistanceConstraint(a, b, cfg.Stiffness))
	}
	for r := range rows {
		for c := range cols {
			p := m.At(c, r)
			if c+1 < cols {
				link(p, m.At(c+1, r))
			}
			if r+1 < rows {
				link(p, m.At(c, r+1))
			}
			if c+1 < cols && r+1 < rows {
				link(p, m.At(c+1, r+1))
				link(m.At(c+1, r), m.At(c, r+1))
			}
		}
	}
	return m
}

// At returns the point at column c, row r.
func (m *ClothMesh) At(c, r int) *Point {
	return m.points[r*m.cols+c]
}

// Cols returns the number of grid columns.
func (m *ClothMesh) Cols() int { return m.cols }

// Rows returns the number of grid rows.
func (m *ClothMesh) Rows() int { return m.rows }

// Points returns every point, row-major. The returned slice MUST NOT be mutated.
func (m *ClothMesh) Points() []*Point {
	return m.points
}

// Constraints returns the structural and shear constraints.
func (m *ClothMesh) Constraints() []*DistanceConstraint {
	return m.constraints
}

// AddCollider registers a static circle resolved after every constraint pass.
// Colliders with a non-finite center or radius are ignored.
func (m *ClothMesh) AddCollider(c CircularCollider) {
	if !finite(c.X) || !finite(c.Y) || !finite(c.Radius) {
		return
	}
	c.Radius = max(c.Radius, 0)
	m.colliders = append(m.colliders, c)
}

// ClearColliders removes every registered collider.
func (m *ClothMesh) ClearColliders() {
	m.colliders = m.colliders[:0]
}

// Update applies forces, integrates, relaxes constraints and then resolves
// collisions, in that order.
func (m *ClothMesh) Update(dt float64, gravity, wind Vec2) {
	force := r2.Add(gravity, wind)
	for _, p := range m.points {
		p.ApplyForce(force)
	}
	for _, p := range m.points {
		p.UpdateDamped(dt, m.config.Damping)
	}
	solveAll(m.constraints, m.config.Iterations)
	for _, c := range m.colliders {
		m.SolveCollision(c.X, c.Y, c.Radius)
	}
}

// SolveCollision projects every free point inside the circle onto its
// boundary along the direction from the center to the point. This is a
// positional correction only: velocities are not reflected, so momentum is
// not conserved. A point sitting exactly on the center has no direction and
// is skipped, as is a circle with a non-finite center or radius.
func (m *ClothMesh) SolveCollision(cx, cy, radius float64) {
	if !(radius > 0) || !finite(radius) || !finite(cx) || !finite(cy) {
		return
	}
	center := Vec2{X: cx, Y: cy}
	for _, p := range m.points {
		if p.Pinned {
			continue
		}
		d := r2.Sub(p.Position, center)
		dist := r2.Norm(d)
		if dist >= radius || dist == 0 || !finite(dist) {
			continue
		}
		p.Position = r2.Add(center, r2.Scale(radius/dist, d))
	}
}

// Origin returns the position of the top-left anchor.
func (m *ClothMesh) Origin() Vec2 {
	return m.origin
}

// SetOrigin moves the pinned points so the top-left anchor sits at (x, y).
// Free points keep their positions and are pulled along by the constraints.
func (m *ClothMesh) SetOrigin(x, y float64) {
	m.origin = Vec2{X: x, Y: y}
	for c := range m.cols {
		p := m.At(c, 0)
		if p.Pinned {
			p.MoveTo(x+float64(c)*m.spacing, y)
		}
	}
}

// Relayout places every point back on its rest grid at the current origin.
// Used after a resize when the old shape no longer makes sense.
func (m *ClothMesh) Relayout() {
	for r := range m.rows {
		for c := range m.cols {
			m.At(c, r).MoveTo(m.origin.X+float64(c)*m.spacing, m.origin.Y+float64(r)*m.spacing)
		}
	}
}

// buildMesh fills m.mesh with two triangles per grid cell.
func (m *ClothMesh) buildMesh() {
	m.mesh.reset()
	col := m.config.Color
	col.A *= m.config.Opacity
	for _, p := range m.points {
		m.mesh.addVertex(p.Position.X, p.Position.Y, col)
	}
	for r := 0; r < m.rows-1; r++ {
		for c := 0; c < m.cols-1; c++ {
			tl := uint16(r*m.cols + c)
			tr := tl + 1
			bl := uint16((r+1)*m.cols + c)
			br := bl + 1
			m.mesh.addTriangle(tl, bl, tr)
			m.mesh.addTriangle(tr, bl, br)
		}
	}
}

// Draw fills the mesh onto dst.
func (m *ClothMesh) Draw(dst, white *ebiten.Image) {
	m.buildMesh()
	m.mesh.draw(dst, white, BlendNormal)
}
