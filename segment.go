package reel

import "fmt"

// Transition defaults applied to segments that do not set their own.
const (
	DefaultTransitionDuration = 1.0
	DefaultParamClamp         = 0.35
	DefaultSegmentDuration    = 5.0
)

// TransitionProfile shapes how a segment blends in from its predecessor.
type TransitionProfile struct {
	Easing Easing `json:"easing"`
	// ParamClamp in (0, 1] is the relative parameter change above which the
	// blend is slowed down. Smaller values slow large jumps more.
	ParamClamp float64 `json:"paramClamp"`
	// EnforceOrder is stored and round-tripped but has no effect yet.
	EnforceOrder bool `json:"enforceOrder"`
}

// DefaultTransitionProfile returns easeInOut with a 0.35 clamp.
func DefaultTransitionProfile() TransitionProfile {
	return TransitionProfile{Easing: EasingEaseInOut, ParamClamp: DefaultParamClamp}
}

func (p TransitionProfile) validate(path string) []FieldError {
	var errs []FieldError
	if !p.Easing.Valid() {
		errs = append(errs, FieldError{path + ".easing", fmt.Sprintf("unknown easing %q", p.Easing)})
	}
	if !(p.ParamClamp > 0 && p.ParamClamp <= 1) {
		errs = append(errs, FieldError{path + ".paramClamp", "must be in (0, 1]"})
	}
	return errs
}

// Segment is one contiguous interval of the timeline.
type Segment struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	// DurationSec is the only time field callers set. StartSec and EndSec
	// are derived by RecalculateTimes.
	DurationSec float64 `json:"durationSec"`
	StartSec    float64 `json:"startSec"`
	EndSec      float64 `json:"endSec"`

	TransitionDuration float64            `json:"transitionDuration"`
	TransitionProfile  *TransitionProfile `json:"transitionProfile,omitempty"`

	// Optional per-segment uniforms. When nil the project value applies.
	BackgroundColor         *Color   `json:"backgroundColor,omitempty"`
	EpicycloidsSampleFactor *float64 `json:"epicycloidsSampleFactor,omitempty"`
	Tint                    *Color   `json:"tint,omitempty"`

	ShapeInstances ShapeInstances `json:"shapeInstances"`
}

// Profile returns the segment's transition profile or the default.
func (s *Segment) Profile() TransitionProfile {
	if s.TransitionProfile == nil {
		return DefaultTransitionProfile()
	}
	return *s.TransitionProfile
}

// Clone returns a deep copy that keeps every identity.
func (s Segment) Clone() Segment {
	out := s
	if s.TransitionProfile != nil {
		p := *s.TransitionProfile
		out.TransitionProfile = &p
	}
	if s.BackgroundColor != nil {
		out.BackgroundColor = s.BackgroundColor.ptr()
	}
	if s.Tint != nil {
		out.Tint = s.Tint.ptr()
	}
	if s.EpicycloidsSampleFactor != nil {
		f := *s.EpicycloidsSampleFactor
		out.EpicycloidsSampleFactor = &f
	}
	out.ShapeInstances = s.ShapeInstances.Clone()
	return out
}

// newSegment creates the segment appended at position index.
func newSegment(index int, limits ShapeLimits, duration float64) Segment {
	p := DefaultTransitionProfile()
	return Segment{
		ID:                 NewID(),
		Label:              segmentLabel(index),
		DurationSec:        duration,
		TransitionDuration: DefaultTransitionDuration,
		TransitionProfile:  &p,
		ShapeInstances:     SeedShapeInstances(limits),
	}
}

func segmentLabel(index int) string {
	return fmt.Sprintf("Segment %d", index+1)
}

func cloneSegments(segs []Segment) []Segment {
	out := make([]Segment, len(segs))
	for i := range segs {
		out[i] = segs[i].Clone()
	}
	return out
}
