// Package ecs provides ECS adapters for petalfx.
package ecs

import (
	"github.com/phanxgames/petalfx"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PetalEventType is the Donburi event type for petal lifecycle events.
// Subscribe to this in your ECS systems to react to spawns, collisions,
// sticks and culls.
var PetalEventType = events.NewEventType[petalfx.PetalEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Petal
// events are published to PetalEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) petalfx.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitPetalEvent(event petalfx.PetalEvent) {
	PetalEventType.Publish(s.world, event)
}
