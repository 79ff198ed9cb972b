// Package ecs provides ECS adapters for reel.
package ecs

import (
	"github.com/phanxgames/reel"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PlaybackEventType is the Donburi event type for reel playback events.
// Subscribe to this in your ECS systems to react to segment changes and cues.
var PlaybackEventType = events.NewEventType[reel.PlaybackEvent]()

type donburiSink struct {
	world donburi.World
}

var _ reel.EventSink = (*donburiSink)(nil)

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Playback events are published to PlaybackEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) reel.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event reel.PlaybackEvent) {
	PlaybackEventType.Publish(s.world, event)
}
