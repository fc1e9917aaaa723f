// Terminal renders the sakura petal layer with tcell instead of Ebitengine.
// Each terminal cell stands for an 8x16 pixel block of the simulation; the
// mouse pushes petals away, the wheel adds a gust, 'm' toggles reduced
// motion and 'q' or Esc quits.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/petalfx"
)

const (
	cellW = 8
	cellH = 16
	// wheelStep is the scroll delta of one wheel notch, in pixels.
	wheelStep = 40.0
)

var glyphs = []rune{'·', '*', '✿', '❀'}

type demo struct {
	screen tcell.Screen
	driver *petalfx.Driver
	petals *petalfx.PetalEffect
	cols   int
	rows   int
}

func newDemo() (*demo, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	driver := petalfx.NewDriver(petalfx.DriverConfig{}, petalfx.NewSystemClock())
	petals := petalfx.NewPetalEffect(petalfx.PetalEffectConfig{
		Petals:        petalfx.PetalConfig{MaxPetals: 60, TrailLength: 4},
		SpawnInterval: 0.1,
		WindStrength:  20,
	}, petalfx.NewAssets())
	driver.Add(petals)

	d := &demo{screen: screen, driver: driver, petals: petals}
	d.resize()
	return d, nil
}

func (d *demo) resize() {
	d.cols, d.rows = d.screen.Size()
	w, h := float64(d.cols*cellW), float64(d.rows*cellH)
	d.driver.Resize(w, h)

	// The bottom row is a ledge the petals settle on.
	e := d.petals.Engine()
	e.ClearCollisionBoxes()
	e.AddCollisionBox(petalfx.CollisionBox{
		Y: h - cellH, Width: w, Height: cellH, Type: petalfx.CollisionSolid,
	})
	d.screen.Sync()
}

// handle reports false when the demo should quit.
func (d *demo) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
			return false
		case ev.Rune() == 'm':
			d.driver.SetReducedMotion(!d.driver.ReducedMotion())
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		d.driver.SetPointer(float64(x*cellW+cellW/2), float64(y*cellH+cellH/2), true)
		switch {
		case ev.Buttons()&tcell.WheelUp != 0:
			d.driver.Scroll(-wheelStep)
		case ev.Buttons()&tcell.WheelDown != 0:
			d.driver.Scroll(wheelStep)
		case ev.Buttons()&tcell.Button1 != 0:
			d.driver.Burst(float64(x*cellW), float64(y*cellH))
		}
	case *tcell.EventFocus:
		d.driver.SetVisible(ev.Focused)
	case *tcell.EventResize:
		d.resize()
	}
	return true
}

func (d *demo) draw() {
	d.screen.Clear()
	trail := tcell.StyleDefault.Foreground(tcell.NewRGBColor(120, 70, 90))
	for _, p := range d.petals.Engine().Petals() {
		for _, t := range p.Trail {
			d.screen.SetContent(int(t.X)/cellW, int(t.Y)/cellH, '.', nil, trail)
		}
		c := p.Color
		fade := 0.4 + 0.6*p.Energy
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(
			int32(c.R*fade*255), int32(c.G*fade*255), int32(c.B*fade*255)))
		g := glyphs[min(int(p.Energy*float64(len(glyphs))), len(glyphs)-1)]
		d.screen.SetContent(int(p.Position.X)/cellW, int(p.Position.Y)/cellH, g, nil, style)
	}

	s := d.driver.Stats()
	status := fmt.Sprintf(" petals %d/%d  gust %+.0f ", s.Petals, s.MaxPetals, d.petals.Engine().Gust())
	if s.Paused {
		status += " paused "
	}
	for i, r := range status {
		d.screen.SetContent(i, 0, r, nil, tcell.StyleDefault.Reverse(true))
	}
	d.screen.Show()
}

func (d *demo) run() {
	ticker := time.NewTicker(petalfx.DriverConfig{}.FrameInterval())
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			events <- d.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-events:
			if ev == nil || !d.handle(ev) {
				return
			}
		case <-ticker.C:
			d.driver.Tick()
			d.draw()
		}
	}
}

func (d *demo) cleanup() {
	d.driver.Dispose()
	d.screen.Fini()
}

func main() {
	d, err := newDemo()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer d.cleanup()

	d.run()
}
