// Package ecs provides ECS adapters for petalfx's petal lifecycle events.
//
// The primary adapter is [NewDonburiSink], which bridges petal events
// (spawned, collided, stuck, expired, out of bounds) into a [Donburi] world
// as typed events. Subscribe to [PetalEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	effect.Engine().SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
