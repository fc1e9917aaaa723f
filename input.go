package petalfx

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// defaultScrollScale converts wheel notches into scroll pixels.
const defaultScrollScale = 40.0

// Input is the environment state a host feeds into a Driver each frame:
// pointer, wheel, focus and the reduced-motion toggle. Poll fills it from
// Ebitengine; hosts that embed the driver elsewhere can set the fields
// directly. Apply forwards the state to a driver.
type Input struct {
	// X and Y are the pointer position in surface coordinates.
	X, Y float64
	// Inside reports whether the pointer is over the surface.
	Inside bool
	// Pressed is true while the primary button (or a touch) is held.
	Pressed bool
	// JustPressed is true on the frame the primary button went down.
	JustPressed bool
	// WheelY is the vertical wheel movement since the last poll, in notches.
	WheelY float64
	// Focused mirrors window focus and drives the driver's visibility.
	Focused bool
	// ToggleReducedMotion is true on the frame the reduced-motion key was
	// pressed.
	ToggleReducedMotion bool

	// ScrollScale converts WheelY into the scroll delta passed to effects.
	ScrollScale float64
	// ReducedMotionKey toggles reduced motion. Default KeyM.
	ReducedMotionKey ebiten.Key
	// IgnoreFocus keeps Focused true when the window is in the background.
	IgnoreFocus bool

	touches []ebiten.TouchID
}

// NewInput creates an input state with default scaling and key bindings.
func NewInput() *Input {
	return &Input{
		Focused:          true,
		ScrollScale:      defaultScrollScale,
		ReducedMotionKey: ebiten.KeyM,
	}
}

// Poll reads the current Ebitengine input for a surface of the given size.
// The first active touch stands in for the mouse.
func (in *Input) Poll(width, height int) {
	mx, my := ebiten.CursorPosition()
	in.X, in.Y = float64(mx), float64(my)
	in.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	in.touches = ebiten.AppendTouchIDs(in.touches[:0])
	if len(in.touches) > 0 {
		tid := in.touches[0]
		tx, ty := ebiten.TouchPosition(tid)
		in.X, in.Y = float64(tx), float64(ty)
		in.Pressed = true
		in.JustPressed = inpututil.TouchPressDuration(tid) == 1
	}

	in.Inside = in.X >= 0 && in.Y >= 0 && in.X < float64(width) && in.Y < float64(height)
	_, in.WheelY = ebiten.Wheel()
	in.Focused = in.IgnoreFocus || ebiten.IsFocused()
	in.ToggleReducedMotion = inpututil.IsKeyJustPressed(in.ReducedMotionKey)
}

// Apply forwards the input state to d. A click becomes a burst; wheel
// movement becomes a scroll delta.
func (in *Input) Apply(d *Driver) {
	d.SetVisible(in.Focused)
	if in.ToggleReducedMotion {
		d.SetReducedMotion(!d.ReducedMotion())
	}
	d.SetPointer(in.X, in.Y, in.Inside)
	if in.WheelY != 0 {
		d.Scroll(in.WheelY * in.ScrollScale)
	}
	if in.JustPressed && in.Inside {
		d.Burst(in.X, in.Y)
	}
}
