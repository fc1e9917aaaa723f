package petalfx

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// meshBuffer holds a vertex and index list that is rebuilt every frame and
// drawn with a single DrawTriangles call. Slices grow to a high-water mark
// and are never shrunk.
type meshBuffer struct {
	Vertices []ebiten.Vertex
	Indices  []uint16
	op       ebiten.DrawTrianglesOptions
}

// reset empties the buffer, keeping capacity.
func (m *meshBuffer) reset() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
}

// addVertex appends an untextured vertex (sampling the center of a white
// pixel) with a premultiplied color.
func (m *meshBuffer) addVertex(x, y float64, c Color) uint16 {
	idx := uint16(len(m.Vertices))
	a := float32(clamp01(c.A))
	m.Vertices = append(m.Vertices, ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(c.R) * a,
		ColorG: float32(c.G) * a,
		ColorB: float32(c.B) * a,
		ColorA: a,
	})
	return idx
}

// addTriangle appends one triangle by vertex index.
func (m *meshBuffer) addTriangle(a, b, c uint16) {
	m.Indices = append(m.Indices, a, b, c)
}

// full reports whether adding n more vertices would overflow uint16 indices.
func (m *meshBuffer) full(n int) bool {
	return len(m.Vertices)+n > math.MaxUint16
}

// draw submits the buffer to dst using img as the source texture.
func (m *meshBuffer) draw(dst, img *ebiten.Image, blend BlendMode) {
	if dst == nil || img == nil || len(m.Indices) == 0 {
		return
	}
	m.op.Blend = blend.EbitenBlend()
	m.op.AntiAlias = true
	dst.DrawTriangles(m.Vertices, m.Indices, img, &m.op)
}

// addRibbon appends a ribbon of the given width following points. For N
// points it adds 2N vertices and 6(N-1) indices. Interior joins use the
// averaged segment normal scaled to keep the width, clamped at 2x to avoid
// spikes on sharp corners. Alpha fades linearly from head to tail when
// taper is true (used by petal trails).
func (m *meshBuffer) addRibbon(points []Vec2, width float64, c Color, taper bool) {
	n := len(points)
	if n < 2 || m.full(n*2) {
		return
	}
	halfW := width / 2
	base := uint16(len(m.Vertices))

	for i := 0; i < n; i++ {
		var nx, ny float64
		switch {
		case i == 0:
			nx, ny = perpendicular(points[0], points[1])
		case i == n-1:
			nx, ny = perpendicular(points[n-2], points[n-1])
		default:
			nx0, ny0 := perpendicular(points[i-1], points[i])
			nx1, ny1 := perpendicular(points[i], points[i+1])
			nx, ny = nx0+nx1, ny0+ny1
			ln := math.Sqrt(nx*nx + ny*ny)
			if ln > 1e-10 {
				nx /= ln
				ny /= ln
			}
			dot := nx0*nx + ny0*ny
			if dot > 0.1 {
				scale := math.Min(1.0/dot, 2.0)
				nx *= scale
				ny *= scale
			}
		}

		vc := c
		w := halfW
		if taper {
			t := float64(i+1) / float64(n)
			vc.A *= t
			w *= t
		}
		m.addVertex(points[i].X+nx*w, points[i].Y+ny*w, vc)
		m.addVertex(points[i].X-nx*w, points[i].Y-ny*w, vc)
	}

	for i := 0; i < n-1; i++ {
		v := base + uint16(i*2)
		m.addTriangle(v, v+1, v+2)
		m.addTriangle(v+1, v+3, v+2)
	}
}

// addQuad appends a rectangle of size (w, h) centered on (cx, cy) and rotated
// by rot radians.
func (m *meshBuffer) addQuad(cx, cy, w, h, rot float64, c Color) {
	if m.full(4) {
		return
	}
	sin, cos := math.Sincos(rot)
	hw, hh := w/2, h/2
	corners := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	base := uint16(len(m.Vertices))
	for _, k := range corners {
		x := cx + k[0]*cos - k[1]*sin
		y := cy + k[0]*sin + k[1]*cos
		m.addVertex(x, y, c)
	}
	m.addTriangle(base, base+1, base+2)
	m.addTriangle(base, base+2, base+3)
}

// addPetalShape appends a five-point petal silhouette (pointed base, notched
// tip) centered on (cx, cy), scaled by size and rotated by rot.
func (m *meshBuffer) addPetalShape(cx, cy, size, rot float64, c Color) {
	if m.full(7) {
		return
	}
	// Outline in unit space, tip pointing up; hub at the center.
	outline := [5][2]float64{
		{0, 0.5},      // base
		{-0.35, 0},    // left belly
		{-0.15, -0.5}, // left lobe
		{0, -0.38},    // notch
		{0.15, -0.5},  // right lobe
	}
	right := [2]float64{0.35, 0}
	sin, cos := math.Sincos(rot)
	place := func(px, py float64) (float64, float64) {
		px *= size
		py *= size
		return cx + px*cos - py*sin, cy + px*sin + py*cos
	}
	hub := m.addVertex(cx, cy, c)
	var ids [6]uint16
	for i, k := range outline {
		x, y := place(k[0], k[1])
		ids[i] = m.addVertex(x, y, c)
	}
	x, y := place(right[0], right[1])
	ids[5] = m.addVertex(x, y, c)
	// Fan around the hub in outline order, closing back on the base.
	order := [7]int{0, 1, 2, 3, 4, 5, 0}
	for i := 0; i < len(order)-1; i++ {
		m.addTriangle(hub, ids[order[i]], ids[order[i+1]])
	}
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}
