package reel

// RecalculateTimes returns a copy of segs with StartSec and EndSec derived
// from the durations in a single left to right pass. The first segment
// starts at 0 and every other segment starts where its predecessor ends.
func RecalculateTimes(segs []Segment) []Segment {
	out := make([]Segment, len(segs))
	copy(out, segs)
	cursor := 0.0
	for i := range out {
		out[i].StartSec = cursor
		out[i].EndSec = cursor + out[i].DurationSec
		cursor = out[i].EndSec
	}
	return out
}

// ClampToAudioLimit shortens segments so their total does not exceed
// audioDuration. It walks forward with a remaining budget: each segment keeps
// as much of its duration as the budget allows and segments after the budget
// runs out collapse to zero. Earlier segments are never shortened to make room
// for later ones. segs is returned unchanged when lock is off or the duration
// is unknown.
func ClampToAudioLimit(segs []Segment, lock bool, audioDuration float64) []Segment {
	if !lock || audioDuration <= 0 {
		return segs
	}
	out := make([]Segment, len(segs))
	copy(out, segs)
	remaining := audioDuration
	for i := range out {
		d := min(out[i].DurationSec, max(0, remaining))
		out[i].DurationSec = d
		remaining -= d
	}
	return out
}

// LocateSegment returns the index of the first segment whose half-open
// interval [StartSec, EndSec) contains t. A time equal to a segment's EndSec
// belongs to the next segment. When no segment contains t the last index is
// returned, and -1 for an empty list.
func LocateSegment(segs []Segment, t float64) int {
	for i := range segs {
		if t >= segs[i].StartSec && t < segs[i].EndSec {
			return i
		}
	}
	return len(segs) - 1
}

// TotalDuration returns the sum of segment durations.
func TotalDuration(segs []Segment) float64 {
	total := 0.0
	for i := range segs {
		total += segs[i].DurationSec
	}
	return total
}

// reflow applies the audio clamp and then recalculates times. Every
// structural change ends with it.
func reflow(segs []Segment, p *Project) []Segment {
	return RecalculateTimes(ClampToAudioLimit(segs, p.LockToAudioDuration, p.audioDuration()))
}
