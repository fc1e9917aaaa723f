// Package petalfx is a decorative 2D physics layer for [Ebitengine]: falling
// sakura petals, swaying hair strands, hanging cloth and light bursts, driven
// by a per-frame clock and the environment (pointer, scroll, resize,
// visibility and reduced-motion preference).
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and runs a
// [Driver] for you:
//
//	d := petalfx.NewDriver(petalfx.DriverConfig{Width: 800, Height: 600}, nil)
//	fx, _ := petalfx.NewEffect(petalfx.PetalEffectConfig{}, nil)
//	d.Add(fx)
//	petalfx.Run(d, petalfx.RunConfig{Title: "Sakura"})
//
// For full control, own the loop yourself and call [Driver.Tick] and
// [Driver.Draw] from your [ebiten.Game], or wrap the driver with [NewGame].
//
// # Simulation
//
// Hair and cloth are Verlet point systems: every [Point] keeps its previous
// position, so velocity is implicit and damping is a multiply. Structure
// comes from [DistanceConstraint] relaxation, run several passes per frame.
// [HairStrand] is a pinned chain; [ClothMesh] is a grid with structural and
// shear links and circular colliders.
//
// Petals are free particles in a [PetalEngine]: a fixed pool, explicit
// integration under gravity, drag, flutter, wind, turbulence, a mouse
// repulsion bubble and scroll gusts (eased with [harmonica] springs), with
// bouncy, solid or sticky [CollisionBox] responses and a short trail.
//
// Within a frame, forces always precede integration, which precedes
// constraint and collision resolution, which precedes culling and drawing.
//
// # Driver
//
// A [Driver] caps every delta at two nominal frame intervals, pauses while
// hidden or in reduced motion, and restarts delta measurement on resume so
// a long pause never becomes a jump. Effects are built from a closed set of
// configs ([PetalEffectConfig], [HairEffectConfig], [ClothEffectConfig],
// [LightBurstConfig]) directly or from JSON with [LoadConfig]. Light burst
// fades are [gween] tweens advanced by the same delta.
//
// Petal lifecycle events can be bridged into a [Donburi] world with the
// petalfx/ecs package.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [harmonica]: https://github.com/charmbracelet/harmonica
// [Donburi]: https://github.com/yohamta/donburi
package petalfx
