package ecs

import (
	"testing"

	nexovera "github.com/krishnanjalivu/Nexovera"

	"github.com/yohamta/donburi"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiSink(world) == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitTransition(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []nexovera.TransitionEvent
	TransitionEventType.Subscribe(world, func(w donburi.World, e nexovera.TransitionEvent) {
		received = append(received, e)
	})

	sink.EmitTransition(nexovera.TransitionEvent{SectionID: "about", Kind: nexovera.EnterForward, ScrollY: 300})
	sink.EmitTransition(nexovera.TransitionEvent{SectionID: "about", Kind: nexovera.LeaveBackward, ScrollY: 10})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("expected no events before ProcessEvents, got %d", len(received))
	}
	TransitionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Kind != nexovera.EnterForward || received[0].SectionID != "about" {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Kind != nexovera.LeaveBackward || received[1].ScrollY != 10 {
		t.Errorf("event 1: %+v", received[1])
	}
}

// scrollPage is a minimal Geometry: one section whose top sits at a fixed
// document offset inside a 1000px viewport.
type scrollPage struct{}

func (scrollPage) ViewportHeight() float64 { return 1000 }
func (scrollPage) OffsetTop(t nexovera.Target, scrollY float64) (float64, bool) {
	return 1500 - scrollY, true
}

func TestRegistryPublishesToWorld(t *testing.T) {
	world := donburi.NewWorld()
	reg := nexovera.NewRegistry(scrollPage{})
	reg.SetEventSink(NewDonburiSink(world))
	if err := reg.Register("product", nexovera.NewElement("product", nexovera.RoleSection), nexovera.TriggerLines{Enter: 0.8}); err != nil {
		t.Fatal(err)
	}

	var kinds []nexovera.TransitionKind
	TransitionEventType.Subscribe(world, func(w donburi.World, e nexovera.TransitionEvent) {
		kinds = append(kinds, e.Kind)
	})

	reg.Poll(0)   // top at 1500: below the line
	reg.Poll(800) // top at 700: armed
	reg.Poll(0)   // back below the line
	TransitionEventType.ProcessEvents(world)

	if len(kinds) != 2 || kinds[0] != nexovera.EnterForward || kinds[1] != nexovera.LeaveBackward {
		t.Errorf("kinds = %v, want [EnterForward LeaveBackward]", kinds)
	}
}
