// Package nexovera is the motion core of the Nexovera landing page: entrance
// timelines, scroll-triggered section reveals and ambient decorative loops,
// driven by a host that owns the element tree and the frame loop.
//
// The core is single-threaded. The host calls [View.Update] once per frame
// and reports scroll and resize events through [View.Scroll] and
// [View.Resize]; every transition is dispatched synchronously from those
// calls. Tweens are interpolated with [gween].
//
// # Quick start
//
//	root := nexovera.NewElement("page", "")
//	// ... build sections, headlines, bodies and decorations ...
//	vp := nexovera.NewViewport(1280, 800)
//	view := nexovera.NewView(root, vp, nexovera.DefaultConfig())
//	if err := view.Mount(); err != nil {
//		return err
//	}
//
//	// every frame
//	view.Update(1.0 / 60)
//
// See examples/landing for a complete [Ebitengine] host.
//
// # Building blocks
//
// An [Animator] owns the active set of tweens and timelines. A [Timeline]
// composes [Entry] values, each offset from the end of the previous one, and
// can be played, reversed mid-flight, repeated and killed. [Stagger]
// expands a group of targets into evenly spaced entries.
//
// [Scope.Attach] seeds endless randomized yoyo loops on decorative
// elements, and [Scope.Sequence] runs a group of them as one repeating
// sequence of fades.
//
// A [Registry] turns scroll positions into [TransitionEvent] values for the
// elements registered with it, and an [Orchestrator] plays or reverses the
// timelines bound to each trigger.
//
// Every tween, timeline and binding a mount creates is recorded in a
// [Scope]. Releasing the scope tears all of it down in reverse order, so a
// re-mount never stacks a second set of triggers on top of the first.
//
// # Configuration
//
// Durations, offsets, easing curves, trigger lines and ambient ranges come
// from YAML. [DefaultConfig] returns the built-in page configuration and
// [LoadConfig] reads an override file.
//
// # ECS integration
//
// The nexovera/ecs module publishes transitions as [Donburi] events through
// a [Registry] event sink, for hosts that run their page as an ECS world.
//
// # Logging
//
// The package logs through [log/slog] and is silent by default. Call
// [SetLogger] to route its messages to a handler.
//
// [gween]: https://github.com/tanema/gween
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package nexovera
