package reel

// Snapshot is the effective parameter set at one instant. Renderers consume
// it and nothing else.
type Snapshot struct {
	Time         float64
	SegmentIndex int
	SegmentID    string
	// Shapes are the active segment's instances, blended from the previous
	// segment while a transition is in progress.
	Shapes ShapeInstances
	// TransitionProgress is linear progress through the segment's
	// transition, 1 when no blend applies.
	TransitionProgress      float64
	BackgroundColor         Color
	EpicycloidsSampleFactor float64
	// Tint is the segment tint, nil when the segment has none.
	Tint *Color
}

// Renderer draws snapshots. The engine makes no assumption about how.
type Renderer interface {
	Render(s Snapshot) error
}

// Resolve computes the snapshot for time t. The active segment is found with
// LocateSegment. Its own shapes are used as is when it is the first segment,
// has no transition, or t is past the transition; otherwise they are blended
// from the previous segment's shapes with the segment's transition profile.
//
// Background color and sample factor are taken from the segment when it sets
// them and from the project otherwise.
//
// Resolve is O(segments) and allocates only the returned shape lists. It
// panics if p has no segments.
func Resolve(p *Project, t float64) Snapshot {
	i := LocateSegment(p.Segments, t)
	seg := &p.Segments[i]

	snap := Snapshot{
		Time:                    t,
		SegmentIndex:            i,
		SegmentID:               seg.ID,
		TransitionProgress:      1,
		BackgroundColor:         p.Uniforms.BackgroundColor,
		EpicycloidsSampleFactor: p.Uniforms.EpicycloidsSampleFactor,
	}
	if seg.BackgroundColor != nil {
		snap.BackgroundColor = *seg.BackgroundColor
	}
	if seg.EpicycloidsSampleFactor != nil {
		snap.EpicycloidsSampleFactor = *seg.EpicycloidsSampleFactor
	}
	if seg.Tint != nil {
		snap.Tint = seg.Tint.ptr()
	}

	elapsed := t - seg.StartSec
	if i == 0 || seg.TransitionDuration == 0 || elapsed >= seg.TransitionDuration {
		snap.Shapes = seg.ShapeInstances.Clone()
		return snap
	}
	progress := clamp01(elapsed / seg.TransitionDuration)
	snap.TransitionProgress = progress
	snap.Shapes = BlendInstances(p.Segments[i-1].ShapeInstances, seg.ShapeInstances, progress, seg.Profile())
	return snap
}
