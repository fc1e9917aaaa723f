package petalfx

import (
	"fmt"
	"math/rand/v2"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// SakuraPalette is the default petal palette, from deep blossom to near white.
var SakuraPalette = []string{"#f48fb1", "#f8bbd0", "#ffb7c5", "#ffc0cb", "#fce4ec"}

// ParsePalette parses hex color strings ("#rrggbb" or "#rgb") into opaque
// colors.
func ParsePalette(hex ...string) ([]Color, error) {
	out := make([]Color, 0, len(hex))
	for _, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("parse palette color %q: %w", h, err)
		}
		out = append(out, fromColorful(c, 1))
	}
	return out, nil
}

// mustSakura returns the parsed default palette.
func mustSakura() []Color {
	p, err := ParsePalette(SakuraPalette...)
	if err != nil {
		panic(err)
	}
	return p
}

// pickColor returns a random color between two neighbouring palette entries,
// blended in Lab space so intermediate shades stay perceptually even.
func pickColor(palette []Color, rng *rand.Rand) Color {
	switch len(palette) {
	case 0:
		return ColorWhite
	case 1:
		return palette[0]
	}
	i := rng.IntN(len(palette) - 1)
	a := palette[i].toColorful()
	b := palette[i+1].toColorful()
	return fromColorful(a.BlendLab(b, rng.Float64()).Clamped(), palette[i].A)
}

func (c Color) toColorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func fromColorful(c colorful.Color, alpha float64) Color {
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}
}

// Hex returns the color as "#rrggbb", ignoring alpha.
func (c Color) Hex() string {
	return c.toColorful().Clamped().Hex()
}
