package petalfx

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timings. Only populated when
// DriverConfig.Debug is true.
type debugStats struct {
	updateTime time.Duration
	drawTime   time.Duration
}

// debugLog prints timing and population stats to stderr.
func (d *Driver) debugLog() {
	s := d.Stats()
	_, _ = fmt.Fprintf(os.Stderr,
		"[petalfx] update: %v | draw: %v | dt: %.4f | frames: %d | paused: %d\n",
		d.debug.updateTime, d.debug.drawTime, s.LastDelta, s.Frames, s.PausedFrames)
	if s.MaxPetals > 0 {
		_, _ = fmt.Fprintf(os.Stderr, "[petalfx] petals: %d/%d | effects: %d\n",
			s.Petals, s.MaxPetals, s.Effects)
	}
	if s.Petals > s.MaxPetals {
		_, _ = fmt.Fprintf(os.Stderr, "[petalfx] warning: population %d exceeds pool %d\n",
			s.Petals, s.MaxPetals)
	}
}
