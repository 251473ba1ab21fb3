package ecs

import (
	nexovera "github.com/krishnanjalivu/Nexovera"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TransitionEventType is the Donburi event type for trigger transitions.
// Subscribe to it in ECS systems and drain it with ProcessEvents.
var TransitionEventType = events.NewEventType[nexovera.TransitionEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
func NewDonburiSink(world donburi.World) nexovera.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitTransition(event nexovera.TransitionEvent) {
	TransitionEventType.Publish(s.world, event)
}
