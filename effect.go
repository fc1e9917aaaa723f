package petalfx

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrUnknownEffect is returned by NewEffect for a nil or unrecognized config.
var ErrUnknownEffect = errors.New("petalfx: unknown effect")

// Effect is one simulated, drawable layer owned by a Driver. All methods are
// called from the driving loop only.
type Effect interface {
	// Update advances the simulation by dt seconds. dt is already clamped.
	Update(dt float64)
	// Draw renders the current state onto dst.
	Draw(dst *ebiten.Image)
	// Resize rebinds the effect to a new surface size and recomputes anchors.
	Resize(width, height float64)
}

// PointerReceiver is implemented by effects that react to the pointer. inside
// is false once the pointer has left the surface.
type PointerReceiver interface {
	SetPointer(x, y float64, inside bool)
}

// ScrollReceiver is implemented by effects that react to scroll deltas.
type ScrollReceiver interface {
	Scroll(delta float64)
}

// BurstReceiver is implemented by effects that spawn something on a click.
type BurstReceiver interface {
	Burst(x, y float64)
}

// Stats is implemented by effects that report a particle population for
// diagnostics overlays.
type Stats interface {
	Count() int
	MaxPetals() int
}

// Disposer is implemented by effects that hold resources beyond the Assets
// they were given.
type Disposer interface {
	Dispose()
}

// EffectConfig is the closed set of effect configurations: PetalEffectConfig,
// HairEffectConfig, ClothEffectConfig and LightBurstConfig.
type EffectConfig interface {
	// Kind returns the config's discriminator, as used in JSON documents.
	Kind() string
	sealed()
}

// Effect kinds.
const (
	KindPetals     = "petals"
	KindHair       = "hair"
	KindCloth      = "cloth"
	KindLightBurst = "lightburst"
)

func (PetalEffectConfig) Kind() string { return KindPetals }
func (HairEffectConfig) Kind() string  { return KindHair }
func (ClothEffectConfig) Kind() string { return KindCloth }
func (LightBurstConfig) Kind() string  { return KindLightBurst }

func (PetalEffectConfig) sealed() {}
func (HairEffectConfig) sealed()  {}
func (ClothEffectConfig) sealed() {}
func (LightBurstConfig) sealed()  {}

// NewEffect builds the effect described by cfg. Configs are normalized, so
// out-of-range values are clamped rather than rejected. A nil assets creates a
// private cache.
func NewEffect(cfg EffectConfig, assets *Assets) (Effect, error) {
	if assets == nil {
		assets = NewAssets()
	}
	switch c := cfg.(type) {
	case PetalEffectConfig:
		return NewPetalEffect(c, assets), nil
	case *PetalEffectConfig:
		if c != nil {
			return NewPetalEffect(*c, assets), nil
		}
	case HairEffectConfig:
		return NewHairEffect(c, assets), nil
	case *HairEffectConfig:
		if c != nil {
			return NewHairEffect(*c, assets), nil
		}
	case ClothEffectConfig:
		return NewClothEffect(c, assets), nil
	case *ClothEffectConfig:
		if c != nil {
			return NewClothEffect(*c, assets), nil
		}
	case LightBurstConfig:
		return NewLightBurstEffect(c, assets), nil
	case *LightBurstConfig:
		if c != nil {
			return NewLightBurstEffect(*c, assets), nil
		}
	}
	return nil, fmt.Errorf("new effect %T: %w", cfg, ErrUnknownEffect)
}
