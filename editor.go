package reel

import (
	"fmt"
	"math"
	"slices"
	"sync/atomic"
)

// ProjectSource supplies the current project. Editor implements it; hosts
// that manage their own copy-on-write can implement it directly.
type ProjectSource interface {
	Project() *Project
}

// Editor holds the current project and applies mutations copy-on-write.
// Each method clones the project, applies one change, re-clamps durations to
// the audio length when locked, recalculates start and end times and then
// publishes the new project with a single atomic store. A reader holding the
// previous *Project keeps a consistent value; a rejected mutation publishes
// nothing.
//
// Editor is meant for a single writer. Concurrent readers are safe.
type Editor struct {
	cur atomic.Pointer[Project]
}

// NewEditor takes ownership of a copy of p and reflows it.
func NewEditor(p *Project) *Editor {
	e := &Editor{}
	e.Replace(p)
	return e
}

// Project returns the current project. Callers must treat it as read-only.
func (e *Editor) Project() *Project {
	return e.cur.Load()
}

// Replace swaps in a copy of p wholesale, for example after loading a
// document.
func (e *Editor) Replace(p *Project) {
	next := p.Clone()
	next.Segments = reflow(next.Segments, next)
	e.cur.Store(next)
}

func (e *Editor) edit(op string, fn func(p *Project) error) error {
	next := e.Project().Clone()
	if err := fn(next); err != nil {
		Logger().Debug("reel: edit rejected", "op", op, "err", err)
		return err
	}
	next.Segments = reflow(next.Segments, next)
	e.cur.Store(next)
	return nil
}

func segmentAt(p *Project, index int) (*Segment, error) {
	if index < 0 || index >= len(p.Segments) {
		return nil, fmt.Errorf("%w: %d of %d", ErrSegmentIndex, index, len(p.Segments))
	}
	return &p.Segments[index], nil
}

// AddSegment appends a seeded segment and returns its id.
func (e *Editor) AddSegment() string {
	var id string
	_ = e.edit("addSegment", func(p *Project) error {
		seg := newSegment(len(p.Segments), p.Limits, DefaultSegmentDuration)
		id = seg.ID
		p.Segments = append(p.Segments, seg)
		return nil
	})
	return id
}

// InsertSegment inserts a seeded segment immediately after index and returns
// its id.
func (e *Editor) InsertSegment(after int) (string, error) {
	var id string
	err := e.edit("insertSegment", func(p *Project) error {
		if _, err := segmentAt(p, after); err != nil {
			return err
		}
		seg := newSegment(after+1, p.Limits, DefaultSegmentDuration)
		id = seg.ID
		p.Segments = slices.Insert(p.Segments, after+1, seg)
		return nil
	})
	return id, err
}

// DuplicateSegment inserts a deep copy of the segment at index right after
// it. The copy and every one of its shape instances get fresh ids.
func (e *Editor) DuplicateSegment(index int) (string, error) {
	var id string
	err := e.edit("duplicateSegment", func(p *Project) error {
		src, err := segmentAt(p, index)
		if err != nil {
			return err
		}
		dup := src.Clone()
		dup.ID = NewID()
		dup.Label = src.Label + " (copy)"
		dup.ShapeInstances = src.ShapeInstances.CloneWithNewIDs()
		id = dup.ID
		p.Segments = slices.Insert(p.Segments, index+1, dup)
		return nil
	})
	return id, err
}

// RemoveSegment deletes the segment at index. Removing the only segment is a
// no-op: a project always has at least one.
func (e *Editor) RemoveSegment(index int) error {
	return e.edit("removeSegment", func(p *Project) error {
		if _, err := segmentAt(p, index); err != nil {
			return err
		}
		if len(p.Segments) == 1 {
			return nil
		}
		p.Segments = slices.Delete(p.Segments, index, index+1)
		return nil
	})
}

// UpdateDuration sets a segment's duration. Negative values become 0.
func (e *Editor) UpdateDuration(index int, sec float64) error {
	return e.edit("updateDuration", func(p *Project) error {
		seg, err := segmentAt(p, index)
		if err != nil {
			return err
		}
		if math.IsNaN(sec) || math.IsInf(sec, 0) {
			return &ValidationError{Fields: []FieldError{{segmentPath(index) + ".durationSec", "must be a finite number"}}}
		}
		seg.DurationSec = max(0, sec)
		return nil
	})
}

// UpdateLabel renames a segment.
func (e *Editor) UpdateLabel(index int, label string) error {
	return e.edit("updateLabel", func(p *Project) error {
		seg, err := segmentAt(p, index)
		if err != nil {
			return err
		}
		seg.Label = label
		return nil
	})
}

// UpdateBackground sets the segment's background color. nil falls back to the
// project background.
func (e *Editor) UpdateBackground(index int, c *Color) error {
	return e.edit("updateBackground", func(p *Project) error {
		seg, err := segmentAt(p, index)
		if err != nil {
			return err
		}
		if c != nil {
			if errs := validateColor(segmentPath(index)+".backgroundColor", *c); errs != nil {
				return &ValidationError{Fields: errs}
			}
			c = c.ptr()
		}
		seg.BackgroundColor = c
		return nil
	})
}

// UpdateTint sets the segment tint. nil removes it.
func (e *Editor) UpdateTint(index int, c *Color) error {
	return e.edit("updateTint", func(p *Project) error {
		seg, err := segmentAt(p, index)
		if err != nil {
			return err
		}
		if c != nil {
			if errs := validateColor(segmentPath(index)+".tint", *c); errs != nil {
				return &ValidationError{Fields: errs}
			}
			c = c.ptr()
		}
		seg.Tint = c
		return nil
	})
}

// UpdateTransition sets how long a segment blends in from its predecessor and
// with which profile. A nil profile selects the default.
func (e *Editor) UpdateTransition(index int, duration float64, profile *TransitionProfile) error {
	return e.edit("updateTransition", func(p *Project) error {
		seg, err := segmentAt(p, index)
		if err != nil {
			return err
		}
		if profile != nil {
			if errs := profile.validate(segmentPath(index) + ".transitionProfile"); errs != nil {
				return &ValidationError{Fields: errs}
			}
			cp := *profile
			profile = &cp
		}
		if math.IsNaN(duration) || math.IsInf(duration, 0) {
			return &ValidationError{Fields: []FieldError{{segmentPath(index) + ".transitionDuration", "must be a finite number"}}}
		}
		seg.TransitionDuration = max(0, duration)
		seg.TransitionProfile = profile
		return nil
	})
}

// UpdateShapeInstances replaces a segment's whole collection. A collection
// with more instances of a type than the project limits allow is rejected
// with a *LimitExceededError. Out-of-range values and ids that collide with
// another instance in the project are rejected with one *ValidationError
// listing every bad field. Empty ids are filled in.
func (e *Editor) UpdateShapeInstances(index int, shapes ShapeInstances) error {
	return e.edit("updateShapeInstances", func(p *Project) error {
		return setShapes(p, index, shapes)
	})
}

// AddShapeInstance appends inst to the list of its type in a segment.
func (e *Editor) AddShapeInstance(index int, inst ShapeInstance) error {
	return e.edit("addShapeInstance", func(p *Project) error {
		seg, err := segmentAt(p, index)
		if err != nil {
			return err
		}
		shapes, err := seg.ShapeInstances.Add(inst, p.Limits)
		if err != nil {
			return err
		}
		return setShapes(p, index, shapes)
	})
}

// ReplaceShapeInstance swaps the instance with inst's id for inst.
func (e *Editor) ReplaceShapeInstance(index int, inst ShapeInstance) error {
	return e.edit("replaceShapeInstance", func(p *Project) error {
		seg, err := segmentAt(p, index)
		if err != nil {
			return err
		}
		shapes, ok := seg.ShapeInstances.Replace(inst)
		if !ok {
			return fmt.Errorf("reel: %s %q not found in segment %d", inst.Type(), inst.InstanceID(), index)
		}
		return setShapes(p, index, shapes)
	})
}

// RemoveShapeInstance deletes the instance with the given id from a segment.
func (e *Editor) RemoveShapeInstance(index int, id string) error {
	return e.edit("removeShapeInstance", func(p *Project) error {
		seg, err := segmentAt(p, index)
		if err != nil {
			return err
		}
		shapes, ok := seg.ShapeInstances.Remove(id)
		if !ok {
			return fmt.Errorf("reel: shape instance %q not found in segment %d", id, index)
		}
		seg.ShapeInstances = shapes
		return nil
	})
}

func setShapes(p *Project, index int, shapes ShapeInstances) error {
	seg, err := segmentAt(p, index)
	if err != nil {
		return err
	}
	if err := shapes.CheckLimits(p.Limits); err != nil {
		return err
	}
	shapes = fillMissingIDs(shapes)
	errs := validateShapes(segmentPath(index)+".shapeInstances", shapes)

	taken := make(map[string]struct{})
	for i := range p.Segments {
		taken[p.Segments[i].ID] = struct{}{}
		if i == index {
			continue
		}
		for _, id := range p.Segments[i].ShapeInstances.IDs() {
			taken[id] = struct{}{}
		}
	}
	for _, id := range shapes.IDs() {
		if _, dup := taken[id]; dup {
			errs = append(errs, FieldError{segmentPath(index) + ".shapeInstances", fmt.Sprintf("duplicate id %q", id)})
		}
		taken[id] = struct{}{}
	}
	if errs != nil {
		return &ValidationError{Fields: errs}
	}
	seg.ShapeInstances = shapes
	return nil
}

func fillMissingIDs(s ShapeInstances) ShapeInstances {
	out := s.Clone()
	for i := range out.Circles {
		if out.Circles[i].ID == "" {
			out.Circles[i].ID = NewID()
		}
	}
	for i := range out.Waves {
		if out.Waves[i].ID == "" {
			out.Waves[i].ID = NewID()
		}
	}
	for i := range out.Epicycloids {
		if out.Epicycloids[i].ID == "" {
			out.Epicycloids[i].ID = NewID()
		}
	}
	for i := range out.ExpandingCircles {
		if out.ExpandingCircles[i].ID == "" {
			out.ExpandingCircles[i].ID = NewID()
		}
	}
	return out
}

// SetLimits changes the project's shape limits. Limits below the number of
// instances a segment already holds are rejected.
func (e *Editor) SetLimits(l ShapeLimits) error {
	return e.edit("setLimits", func(p *Project) error {
		if errs := validateLimits("maxShapeLimits", l); errs != nil {
			return &ValidationError{Fields: errs}
		}
		for i := range p.Segments {
			if err := p.Segments[i].ShapeInstances.CheckLimits(l); err != nil {
				return err
			}
		}
		p.Limits = l
		return nil
	})
}

// ExtendSegmentToAudioEnd stretches the segment at index so the timeline ends
// with the audio. No-op without a known audio duration.
func (e *Editor) ExtendSegmentToAudioEnd(index int) error {
	return e.edit("extendSegmentToAudioEnd", func(p *Project) error {
		seg, err := segmentAt(p, index)
		if err != nil {
			return err
		}
		audio := p.audioDuration()
		if audio <= 0 {
			return nil
		}
		others := p.TotalDuration() - seg.DurationSec
		seg.DurationSec = max(0, audio-others)
		return nil
	})
}

// DistributeRemainingDuration spreads the gap between the timeline and the
// audio length evenly over every segment. No-op when the timeline is already
// as long as the audio.
func (e *Editor) DistributeRemainingDuration() {
	_ = e.edit("distributeRemainingDuration", func(p *Project) error {
		remaining := p.audioDuration() - p.TotalDuration()
		if remaining <= 0 || len(p.Segments) == 0 {
			return nil
		}
		share := remaining / float64(len(p.Segments))
		for i := range p.Segments {
			p.Segments[i].DurationSec += share
		}
		return nil
	})
}

// SetAudioTrack attaches audio metadata from the host's decoder. With the
// lock enabled the timeline is clamped to the new duration.
func (e *Editor) SetAudioTrack(a AudioTrack) error {
	return e.edit("setAudioTrack", func(p *Project) error {
		if errs := validateAudio("audioTrack", a); errs != nil {
			return &ValidationError{Fields: errs}
		}
		p.Audio = &a
		return nil
	})
}

// ClearAudioTrack detaches the audio. Cues are kept.
func (e *Editor) ClearAudioTrack() {
	_ = e.edit("clearAudioTrack", func(p *Project) error {
		p.Audio = nil
		return nil
	})
}

// SetLockToAudioDuration toggles the audio lock. Enabling it clamps the
// timeline immediately.
func (e *Editor) SetLockToAudioDuration(lock bool) {
	_ = e.edit("setLockToAudioDuration", func(p *Project) error {
		p.LockToAudioDuration = lock
		return nil
	})
}

// AddAudioCue inserts a cue keeping the list ordered by time.
func (e *Editor) AddAudioCue(c AudioCue) error {
	return e.edit("addAudioCue", func(p *Project) error {
		if !(c.Time >= 0) || math.IsInf(c.Time, 0) {
			return &ValidationError{Fields: []FieldError{{"audioCues.time", "must be a finite number >= 0"}}}
		}
		i, _ := slices.BinarySearchFunc(p.AudioCues, c.Time, func(a AudioCue, t float64) int {
			switch {
			case a.Time < t:
				return -1
			case a.Time > t:
				return 1
			}
			return 0
		})
		for i < len(p.AudioCues) && p.AudioCues[i].Time == c.Time {
			i++
		}
		p.AudioCues = slices.Insert(p.AudioCues, i, c)
		return nil
	})
}

// RemoveAudioCue deletes the cue at index.
func (e *Editor) RemoveAudioCue(index int) error {
	return e.edit("removeAudioCue", func(p *Project) error {
		if index < 0 || index >= len(p.AudioCues) {
			return fmt.Errorf("reel: audio cue index %d out of range", index)
		}
		p.AudioCues = slices.Delete(p.AudioCues, index, index+1)
		return nil
	})
}

func segmentPath(index int) string {
	return fmt.Sprintf("segments[%d]", index)
}
