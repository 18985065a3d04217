// Package ecs provides ECS adapters for nestbox's editor events.
//
// The primary adapter is [NewDonburiSink], which publishes every editor
// [nestbox.BoxEvent] into a [Donburi] world as a typed event and mirrors
// each box as an entity carrying a [BoxData] component. Subscribe to
// [BoxEventType] in your ECS systems to receive the events.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	sink.Sync(editor.Store())
//	editor.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
