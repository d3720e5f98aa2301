// Package ecs provides ECS adapters for garland's focus event system.
//
// The primary adapter is [NewDonburiSink], which bridges garland focus
// changes (card focused / focus cleared) into a [Donburi] world as typed
// events. Subscribe to [FocusEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
