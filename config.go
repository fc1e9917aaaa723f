package petalfx

import (
	"encoding/json"
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Config is a complete scene description: the driver settings and the
// effects to add, in drawing order.
type Config struct {
	Driver  DriverConfig
	Effects []EffectConfig
}

// configDoc is the top-level JSON structure for a config document.
type configDoc struct {
	Driver  DriverConfig      `json:"driver"`
	Effects []json.RawMessage `json:"effects"`
}

// LoadConfig parses a JSON document of the form
//
//	{"driver": {...}, "effects": [{"kind": "petals", ...}, ...]}
//
// Each effect's "kind" selects its config type (petals, hair, cloth,
// lightburst); the remaining keys fill that type's fields. Colors may be
// written as "#rrggbb" strings or {"r", "g", "b", "a"} objects.
func LoadConfig(jsonData []byte) (Config, error) {
	var doc configDoc
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg := Config{Driver: doc.Driver}
	for i, raw := range doc.Effects {
		ec, err := decodeEffect(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: effect %d: %w", i, err)
		}
		cfg.Effects = append(cfg.Effects, ec)
	}
	return cfg, nil
}

func decodeEffect(raw json.RawMessage) (EffectConfig, error) {
	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	var target EffectConfig
	var err error
	switch head.Kind {
	case KindPetals:
		var c PetalEffectConfig
		err = json.Unmarshal(raw, &c)
		target = c
	case KindHair:
		var c HairEffectConfig
		err = json.Unmarshal(raw, &c)
		target = c
	case KindCloth:
		var c ClothEffectConfig
		err = json.Unmarshal(raw, &c)
		target = c
	case KindLightBurst:
		var c LightBurstConfig
		err = json.Unmarshal(raw, &c)
		target = c
	default:
		return nil, fmt.Errorf("kind %q: %w", head.Kind, ErrUnknownEffect)
	}
	if err != nil {
		return nil, fmt.Errorf("kind %q: %w", head.Kind, err)
	}
	return target, nil
}

// Build creates a driver from the config and adds every effect. Effects
// share assets; a nil assets creates one cache for all of them.
func (c Config) Build(clock Clock, assets *Assets) (*Driver, error) {
	if assets == nil {
		assets = NewAssets()
	}
	d := NewDriver(c.Driver, clock)
	for i, ec := range c.Effects {
		e, err := NewEffect(ec, assets)
		if err != nil {
			return nil, fmt.Errorf("build effect %d: %w", i, err)
		}
		d.Add(e)
	}
	return d, nil
}

// UnmarshalJSON accepts a hex string ("#ffb7c5") or an object with r, g, b
// and optional a components in [0, 1]. Alpha defaults to 1.
func (c *Color) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		cc, err := colorful.Hex(s)
		if err != nil {
			return fmt.Errorf("color %q: %w", s, err)
		}
		*c = fromColorful(cc, 1)
		return nil
	}
	var obj struct {
		R, G, B float64
		A       *float64
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	*c = Color{R: obj.R, G: obj.G, B: obj.B, A: 1}
	if obj.A != nil {
		c.A = *obj.A
	}
	return nil
}

// String returns the collision type's config name.
func (t CollisionType) String() string {
	switch t {
	case CollisionBouncy:
		return "bouncy"
	case CollisionSolid:
		return "solid"
	case CollisionSticky:
		return "sticky"
	}
	return fmt.Sprintf("CollisionType(%d)", uint8(t))
}

// UnmarshalText parses "bouncy", "solid" or "sticky".
func (t *CollisionType) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "bouncy":
		*t = CollisionBouncy
	case "solid":
		*t = CollisionSolid
	case "sticky":
		*t = CollisionSticky
	default:
		return fmt.Errorf("unknown collision type %q", text)
	}
	return nil
}

// String returns the blend mode's config name.
func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "normal"
	case BlendAdd:
		return "add"
	case BlendScreen:
		return "screen"
	}
	return fmt.Sprintf("BlendMode(%d)", uint8(b))
}

// UnmarshalText parses "normal", "add" or "screen".
func (b *BlendMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "normal", "":
		*b = BlendNormal
	case "add":
		*b = BlendAdd
	case "screen":
		*b = BlendScreen
	default:
		return fmt.Errorf("unknown blend mode %q", text)
	}
	return nil
}
