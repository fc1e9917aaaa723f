package petalfx

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Assets owns the generated images effects draw with: a white pixel for
// untextured triangle meshes and feathered circles for glows. Images are
// created on first use so an Assets can be constructed before the game loop
// starts. Create one per host with NewAssets and pass it to NewEffect.
type Assets struct {
	white   *ebiten.Image
	circles map[int]*ebiten.Image // keyed by radius rounded up
}

// NewAssets creates an empty asset cache.
func NewAssets() *Assets {
	return &Assets{}
}

// WhitePixel returns a small opaque white image. Meshes sample its center so
// vertex colors pass through unchanged.
func (a *Assets) WhitePixel() *ebiten.Image {
	if a.white == nil {
		a.white = ebiten.NewImage(1, 1)
		a.white.Fill(color.White)
	}
	return a.white
}

// Circle returns a cached feathered white circle of at least the given radius.
// Radius is quantized to the next integer so small differences share a
// texture.
func (a *Assets) Circle(radius float64) *ebiten.Image {
	key := int(math.Ceil(radius))
	if key < 1 {
		key = 1
	}
	if a.circles == nil {
		a.circles = make(map[int]*ebiten.Image)
	}
	if img, ok := a.circles[key]; ok {
		return img
	}
	size, pix := circlePixels(float64(key))
	img := ebiten.NewImage(size, size)
	img.WritePixels(pix)
	a.circles[key] = img
	return img
}

// CachedCircles reports how many circle textures are cached.
func (a *Assets) CachedCircles() int {
	return len(a.circles)
}

// Dispose releases every generated image. The cache stays usable and will
// regenerate images on demand.
func (a *Assets) Dispose() {
	if a.white != nil {
		a.white.Deallocate()
		a.white = nil
	}
	for _, img := range a.circles {
		img.Deallocate()
	}
	a.circles = nil
}

// circlePixels renders a premultiplied white circle with smoothstep falloff
// from 1 at the center to 0 at the rim.
func circlePixels(radius float64) (int, []byte) {
	size := int(math.Ceil(radius * 2))
	if size < 1 {
		size = 1
	}
	pix := make([]byte, size*size*4)
	cx, cy := radius, radius
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			dist := math.Sqrt(dx*dx+dy*dy) / radius

			var alpha float64
			if dist < 1 {
				t := 1 - dist
				alpha = t * t * (3 - 2*t)
			}
			a := uint8(alpha * 255)
			off := (y*size + x) * 4
			pix[off+0] = a
			pix[off+1] = a
			pix[off+2] = a
			pix[off+3] = a
		}
	}
	return size, pix
}
