package petalfx

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// StatsOverlay prints FPS, TPS and the driver's counters in the top-left
// corner. The text is refreshed every ~0.5 seconds.
type StatsOverlay struct {
	driver *Driver
	since  float64
	text   string
	bg     *ebiten.Image
}

// NewStatsOverlay creates an overlay reading from d.
func NewStatsOverlay(d *Driver) *StatsOverlay {
	o := &StatsOverlay{driver: d, since: 0.5}
	return o
}

// Update refreshes the text when half a second has passed.
func (o *StatsOverlay) Update(dt float64) {
	o.since += dt
	if o.since < 0.5 {
		return
	}
	o.since = 0
	o.text = formatStats(ebiten.ActualFPS(), ebiten.ActualTPS(), o.driver.Stats())
}

// Text returns the most recent overlay text.
func (o *StatsOverlay) Text() string {
	return o.text
}

// Draw prints the text over a translucent backing.
func (o *StatsOverlay) Draw(dst *ebiten.Image) {
	if dst == nil || o.text == "" {
		return
	}
	if o.bg == nil {
		// 140x64 fits four lines of debug font.
		o.bg = ebiten.NewImage(140, 64)
		o.bg.Fill(color.RGBA{0, 0, 0, 128})
	}
	dst.DrawImage(o.bg, nil)
	ebitenutil.DebugPrintAt(dst, o.text, 4, 2)
}

func formatStats(fps, tps float64, s FrameStats) string {
	text := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nPetals: %d/%d", fps, tps, s.Petals, s.MaxPetals)
	if s.Paused {
		text += "\nPaused"
	}
	return text
}
