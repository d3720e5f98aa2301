package ecs

import (
	"github.com/lodengames/garland"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// FocusEventType is the Donburi event type for garland focus events.
// Subscribe to this in your ECS systems to react to a card gaining or
// losing focus.
var FocusEventType = events.NewEventType[garland.FocusEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Focus
// events are published to FocusEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) garland.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitFocus(event garland.FocusEvent) {
	FocusEventType.Publish(s.world, event)
}
