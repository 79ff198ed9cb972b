package reel

// TransitionWeight returns the interpolation weight for linear progress in
// [0, 1] under profile, given the largest relative parameter change between
// the two instances being blended.
//
// The profile's easing is applied first. When maxRelativeChange exceeds
// ParamClamp, the eased value is pulled toward progress² in proportion to how
// far the change overshoots the clamp, which slows the start of the blend for
// large jumps (R going from 2 to 20, say) and leaves small changes at full
// easing speed.
func TransitionWeight(progress float64, profile TransitionProfile, maxRelativeChange float64) float64 {
	eased := profile.Easing.Apply(progress)
	if profile.ParamClamp > 0 && maxRelativeChange > profile.ParamClamp {
		slowdown := profile.ParamClamp / maxRelativeChange
		eased = eased*slowdown + (1-slowdown)*progress*progress
	}
	return eased
}

// Blend interpolates from prev toward next at linear progress in [0, 1].
// At progress 1 the result is next itself.
func Blend[T Interpolator[T]](prev, next T, progress float64, profile TransitionProfile) T {
	if progress >= 1 {
		return next
	}
	progress = clamp01(progress)
	w := TransitionWeight(progress, profile, prev.MaxRelativeChange(next))
	return prev.Lerp(next, w)
}

// BlendEpicycloid is Blend for epicycloids: R, r and scale drive the clamp;
// R, r, scale, speed, thickness, glow, rotation speed, intensity and color are
// interpolated and the sample count is rounded to the nearest integer.
func BlendEpicycloid(prev, next Epicycloid, progress float64, profile TransitionProfile) Epicycloid {
	return Blend(prev, next, progress, profile)
}

// BlendInstances blends every list of next against prev slot by slot. An
// instance in next without a counterpart at the same position in prev is
// returned unchanged, as are lists when progress has reached 1. The result
// always has next's lengths and identities.
func BlendInstances(prev, next ShapeInstances, progress float64, profile TransitionProfile) ShapeInstances {
	if progress >= 1 {
		return next.Clone()
	}
	return ShapeInstances{
		Circles:          blendList(prev.Circles, next.Circles, progress, profile),
		Waves:            blendList(prev.Waves, next.Waves, progress, profile),
		Epicycloids:      blendList(prev.Epicycloids, next.Epicycloids, progress, profile),
		ExpandingCircles: blendList(prev.ExpandingCircles, next.ExpandingCircles, progress, profile),
	}
}

func blendList[T Interpolator[T]](prev, next []T, progress float64, profile TransitionProfile) []T {
	out := make([]T, len(next))
	for i := range next {
		if i < len(prev) {
			out[i] = Blend(prev[i], next[i], progress, profile)
		} else {
			out[i] = next[i]
		}
	}
	return out
}
