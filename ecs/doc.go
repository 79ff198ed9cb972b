// Package ecs bridges reel playback events into a [Donburi] world.
//
// The adapter is [NewDonburiSink]. Pass it as the Sink of a reel.PlayerConfig
// and subscribe to [PlaybackEventType] in your systems to receive segment
// changes, audio cues and loop/end notifications.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	player := reel.NewPlayer(editor, reel.PlayerConfig{Sink: sink})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
