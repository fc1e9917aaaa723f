package petalfx

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title string
	// Width and Height are the initial window size. Default: the driver's
	// surface size.
	Width, Height int
	// ShowStats draws a StatsOverlay on top of the effects.
	ShowStats bool
	// Script, when set, is stepped once per frame before the input is
	// applied.
	Script *Script
	// KeepRunningUnfocused keeps ticking while the window is in the
	// background. By default the driver pauses, matching a hidden page.
	KeepRunningUnfocused bool
}

// Game adapts a Driver to ebiten.Game. Each Update polls the input, applies
// it, steps the optional script and ticks the driver. Layout changes become
// Driver.Resize calls. Once the driver is disposed, Update returns
// ebiten.Termination.
type Game struct {
	driver  *Driver
	input   *Input
	overlay *StatsOverlay
	script  *Script
	width   int
	height  int
	// PollInput can be cleared to drive the game purely from a script.
	PollInput bool
}

// NewGame wraps d. A nil input creates a default one.
func NewGame(d *Driver, input *Input) *Game {
	if input == nil {
		input = NewInput()
	}
	w, h := d.Size()
	return &Game{
		driver:    d,
		input:     input,
		width:     int(w),
		height:    int(h),
		PollInput: true,
	}
}

// Driver returns the wrapped driver.
func (g *Game) Driver() *Driver {
	return g.driver
}

// SetOverlay sets the optional stats overlay.
func (g *Game) SetOverlay(o *StatsOverlay) {
	g.overlay = o
}

// SetScript sets the optional event script.
func (g *Game) SetScript(s *Script) {
	g.script = s
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.driver.Disposed() {
		return ebiten.Termination
	}
	if g.PollInput {
		g.input.Poll(g.width, g.height)
		g.input.Apply(g.driver)
	}
	if g.script != nil {
		g.script.Step(g.driver)
	}
	dt := g.driver.Tick()
	if g.overlay != nil {
		if dt == 0 {
			dt = 1 / float64(ebiten.TPS())
		}
		g.overlay.Update(dt)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.driver.Draw(screen)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

// Layout implements ebiten.Game. The surface always matches the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.driver.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Run opens a resizable window and runs d until the window is closed or d
// is disposed. The driver is disposed when Run returns.
func Run(d *Driver, cfg RunConfig) error {
	g := NewGame(d, nil)
	if cfg.ShowStats {
		g.SetOverlay(NewStatsOverlay(d))
	}
	if cfg.Script != nil {
		g.SetScript(cfg.Script)
	}
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = g.width, g.height
	}
	if cfg.Title == "" {
		cfg.Title = "petalfx"
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(cfg.KeepRunningUnfocused)
	g.input.IgnoreFocus = cfg.KeepRunningUnfocused

	defer d.Dispose()
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run %s: %w", cfg.Title, err)
	}
	return nil
}
