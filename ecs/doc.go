// Package ecs bridges nexovera trigger transitions into ECS worlds.
//
// The [Donburi] sink publishes every [nexovera.TransitionEvent] produced by
// a Registry poll as a Donburi event, so ECS systems can react to sections
// revealing or hiding without holding a reference to the view:
//
//	world := donburi.NewWorld()
//	view.Registry().SetEventSink(ecs.NewDonburiSink(world))
//	ecs.TransitionEventType.Subscribe(world, onTransition)
//	// each frame, after view.Update:
//	ecs.TransitionEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
