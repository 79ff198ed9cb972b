// Package reel is the timeline engine behind a shader animation editor.
//
// A [Project] is an ordered list of [Segment] values laid end to end on a
// timeline. Each segment owns a [ShapeInstances] collection (circles, waves,
// epicycloids and expanding circles) and a handful of visual uniforms. reel
// keeps the timeline consistent, resolves the effective parameters for any
// playback time, blends shape parameters across segment boundaries and
// upgrades old project documents to the current schema.
//
// # Loading and saving
//
// [Load] runs a raw JSON document through [Migrate], [Validate] and
// [RecalculateTimes]:
//
//	proj, err := reel.Load(data)
//	if err != nil {
//		var verr *reel.ValidationError
//		if errors.As(err, &verr) {
//			for _, f := range verr.Fields {
//				fmt.Println(f.Path, f.Msg)
//			}
//		}
//		return err
//	}
//
// [Save] stamps [CurrentVersion] and drops runtime-only fields.
//
// # Editing
//
// An [Editor] wraps the current project. Every mutation clones the segment
// list, applies one change, re-clamps to the audio length when locked,
// recalculates start and end times, and publishes the new project in a
// single atomic store:
//
//	ed := reel.NewEditor(proj)
//	ed.AddSegment()
//	if err := ed.UpdateShapeInstances(1, shapes); err != nil {
//		// *reel.LimitExceededError, the previous project is untouched
//	}
//
// # Resolving
//
// [Resolve] returns a [Snapshot] for a time value. During the first
// TransitionDuration seconds of a segment the snapshot's shapes are blended
// from the previous segment by [BlendInstances]. A [Player] drives Resolve
// from a frame clock and reports segment changes and audio cues to an
// [EventSink].
//
// There is no global state besides the logger, which is silent until
// [SetLogger] is called.
package reel
