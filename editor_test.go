package reel

import (
	"errors"
	"math"
	"testing"
)

func newTestEditor(durations ...float64) *Editor {
	p := NewProject(ProjectConfig{Name: "test", SegmentDuration: durations[0]})
	ed := NewEditor(p)
	for i, d := range durations[1:] {
		ed.AddSegment()
		if err := ed.UpdateDuration(i+1, d); err != nil {
			panic(err)
		}
	}
	return ed
}

func assertContiguous(t *testing.T, p *Project) {
	t.Helper()
	cursor := 0.0
	for i, s := range p.Segments {
		if s.StartSec != cursor || s.EndSec != cursor+s.DurationSec {
			t.Fatalf("seg %d = [%v, %v) dur %v, want start %v", i, s.StartSec, s.EndSec, s.DurationSec, cursor)
		}
		cursor = s.EndSec
	}
}

func TestNewProjectDefaults(t *testing.T) {
	p := NewProject(ProjectConfig{})
	if p.Name != "Untitled" || p.FPS != 30 {
		t.Errorf("name %q fps %v", p.Name, p.FPS)
	}
	if p.Limits != DefaultShapeLimits() {
		t.Errorf("limits = %+v", p.Limits)
	}
	if len(p.Segments) != 1 || p.Segments[0].DurationSec != DefaultSegmentDuration {
		t.Fatalf("segments = %+v", p.Segments)
	}
	if p.Segments[0].Label != "Segment 1" {
		t.Errorf("label = %q", p.Segments[0].Label)
	}
	if p.AudioCues == nil {
		t.Error("AudioCues should be empty, not nil")
	}
}

func TestEditorAddSegment(t *testing.T) {
	ed := newTestEditor(2)
	id := ed.AddSegment()
	p := ed.Project()
	if len(p.Segments) != 2 {
		t.Fatalf("len = %d, want 2", len(p.Segments))
	}
	s := p.Segments[1]
	if s.ID != id || s.Label != "Segment 2" {
		t.Errorf("segment = %q %q", s.ID, s.Label)
	}
	if s.StartSec != 2 || s.DurationSec != DefaultSegmentDuration {
		t.Errorf("start %v duration %v", s.StartSec, s.DurationSec)
	}
	if s.TransitionDuration != DefaultTransitionDuration || s.Profile() != DefaultTransitionProfile() {
		t.Errorf("transition %v %+v", s.TransitionDuration, s.Profile())
	}
	assertContiguous(t, p)
}

func TestEditorCopyOnWrite(t *testing.T) {
	ed := newTestEditor(1, 1)
	before := ed.Project()
	if err := ed.UpdateDuration(0, 4); err != nil {
		t.Fatal(err)
	}
	if before.Segments[0].DurationSec != 1 || before.Segments[1].StartSec != 1 {
		t.Error("previous project was modified")
	}
	if ed.Project() == before {
		t.Error("edit did not publish a new project")
	}
	if ed.Project().Segments[1].StartSec != 4 {
		t.Errorf("start = %v, want 4", ed.Project().Segments[1].StartSec)
	}
}

func TestEditorInsertSegment(t *testing.T) {
	ed := newTestEditor(1, 2, 3)
	id, err := ed.InsertSegment(0)
	if err != nil {
		t.Fatal(err)
	}
	p := ed.Project()
	if len(p.Segments) != 4 || p.Segments[1].ID != id {
		t.Fatalf("inserted at wrong position")
	}
	assertContiguous(t, p)

	if _, err := ed.InsertSegment(9); !errors.Is(err, ErrSegmentIndex) {
		t.Errorf("err = %v, want ErrSegmentIndex", err)
	}
}

func TestEditorDuplicateSegment(t *testing.T) {
	ed := newTestEditor(3, 4)
	src := ed.Project().Segments[0]
	id, err := ed.DuplicateSegment(0)
	if err != nil {
		t.Fatal(err)
	}
	p := ed.Project()
	if len(p.Segments) != 3 {
		t.Fatalf("len = %d, want 3", len(p.Segments))
	}
	dup := p.Segments[1]
	if dup.ID != id || dup.ID == src.ID {
		t.Errorf("dup id = %q", dup.ID)
	}
	if dup.Label != src.Label+" (copy)" {
		t.Errorf("label = %q", dup.Label)
	}
	if dup.DurationSec != 3 || dup.StartSec != 3 {
		t.Errorf("dup = [%v +%v]", dup.StartSec, dup.DurationSec)
	}

	srcIDs := make(map[string]bool)
	for _, id := range src.ShapeInstances.IDs() {
		srcIDs[id] = true
	}
	dupIDs := dup.ShapeInstances.IDs()
	if len(dupIDs) != len(srcIDs) {
		t.Fatalf("dup has %d instances, want %d", len(dupIDs), len(srcIDs))
	}
	for _, id := range dupIDs {
		if srcIDs[id] {
			t.Errorf("instance id %s shared with source", id)
		}
	}
	if dup.ShapeInstances.Epicycloids[0].MajorRadius != src.ShapeInstances.Epicycloids[0].MajorRadius {
		t.Error("parameters not copied")
	}
	assertContiguous(t, p)
}

func TestEditorRemoveSegment(t *testing.T) {
	ed := newTestEditor(1, 2, 3)
	keep := ed.Project().Segments[2].ID
	if err := ed.RemoveSegment(1); err != nil {
		t.Fatal(err)
	}
	p := ed.Project()
	if len(p.Segments) != 2 || p.Segments[1].ID != keep || p.Segments[1].StartSec != 1 {
		t.Errorf("segments after remove = %+v", p.Segments)
	}
	if err := ed.RemoveSegment(5); !errors.Is(err, ErrSegmentIndex) {
		t.Errorf("err = %v, want ErrSegmentIndex", err)
	}
}

func TestEditorRemoveLastSegmentIsNoOp(t *testing.T) {
	ed := newTestEditor(2)
	if err := ed.RemoveSegment(0); err != nil {
		t.Fatal(err)
	}
	if n := len(ed.Project().Segments); n != 1 {
		t.Errorf("len = %d, want 1", n)
	}
}

func TestEditorUpdateDuration(t *testing.T) {
	ed := newTestEditor(1, 1)
	if err := ed.UpdateDuration(0, -3); err != nil {
		t.Fatal(err)
	}
	if d := ed.Project().Segments[0].DurationSec; d != 0 {
		t.Errorf("negative duration stored as %v, want 0", d)
	}
	err := ed.UpdateDuration(1, math.NaN())
	var verr *ValidationError
	if !errors.As(err, &verr) || !verr.Has("segments[1].durationSec") {
		t.Errorf("err = %v, want ValidationError on segments[1].durationSec", err)
	}
}

func TestEditorUpdateShapeInstancesLimit(t *testing.T) {
	ed := newTestEditor(1)
	if err := ed.SetLimits(ShapeLimits{Circles: 3, Waves: 3, Epicycloids: 2, ExpandingCircles: 2}); err != nil {
		t.Fatal(err)
	}
	before := ed.Project()

	shapes := before.Segments[0].ShapeInstances.Clone()
	shapes.Epicycloids = append(shapes.Epicycloids, DefaultEpicycloid(2))
	err := ed.UpdateShapeInstances(0, shapes)
	var lerr *LimitExceededError
	if !errors.As(err, &lerr) || lerr.Type != ShapeEpicycloid || lerr.Limit != 2 {
		t.Fatalf("err = %v, want epicycloid limit error", err)
	}
	if ed.Project() != before {
		t.Error("rejected edit published a project")
	}

	if err := ed.AddShapeInstance(0, DefaultWave(3)); err == nil {
		t.Error("AddShapeInstance beyond limit succeeded")
	}
}

func TestEditorUpdateShapeInstancesDuplicateID(t *testing.T) {
	ed := newTestEditor(1, 1)
	p := ed.Project()
	shapes := p.Segments[1].ShapeInstances.Clone()
	shapes.Circles[0].ID = p.Segments[0].ShapeInstances.Circles[0].ID

	err := ed.UpdateShapeInstances(1, shapes)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
}

func TestEditorShapeInstanceOps(t *testing.T) {
	ed := newTestEditor(1)
	c := DefaultCircle(4)
	c.ID = ""
	if err := ed.AddShapeInstance(0, c); err != nil {
		t.Fatal(err)
	}
	circles := ed.Project().Segments[0].ShapeInstances.Circles
	added := circles[len(circles)-1]
	if added.ID == "" {
		t.Fatal("id not assigned")
	}

	added.ShapeKind = CircleHexagon
	if err := ed.ReplaceShapeInstance(0, added); err != nil {
		t.Fatal(err)
	}
	if got, _ := ed.Project().Segments[0].ShapeInstances.Find(added.ID); got.(Circle).ShapeKind != CircleHexagon {
		t.Error("replace not applied")
	}

	if err := ed.RemoveShapeInstance(0, added.ID); err != nil {
		t.Fatal(err)
	}
	if _, ok := ed.Project().Segments[0].ShapeInstances.Find(added.ID); ok {
		t.Error("instance still present")
	}
	if err := ed.RemoveShapeInstance(0, added.ID); err == nil {
		t.Error("removing a missing instance succeeded")
	}
}

func TestEditorSetLimitsBelowCount(t *testing.T) {
	ed := newTestEditor(1)
	err := ed.SetLimits(ShapeLimits{Circles: 1, Waves: 8, Epicycloids: 8, ExpandingCircles: 8})
	var lerr *LimitExceededError
	if !errors.As(err, &lerr) {
		t.Errorf("err = %v, want *LimitExceededError", err)
	}
	err = ed.SetLimits(ShapeLimits{Circles: -1})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("err = %v, want *ValidationError", err)
	}
}

func TestEditorUpdateVisuals(t *testing.T) {
	ed := newTestEditor(1)
	bg := Color{0.2, 0.1, 0}
	if err := ed.UpdateBackground(0, &bg); err != nil {
		t.Fatal(err)
	}
	bg[0] = 1
	if got := *ed.Project().Segments[0].BackgroundColor; got != (Color{0.2, 0.1, 0}) {
		t.Errorf("background aliased caller value: %v", got)
	}

	bad := Color{1.5, 0, 0}
	var verr *ValidationError
	if err := ed.UpdateTint(0, &bad); !errors.As(err, &verr) || !verr.Has("segments[0].tint[0]") {
		t.Errorf("err = %v", err)
	}
	if err := ed.UpdateTint(0, nil); err != nil || ed.Project().Segments[0].Tint != nil {
		t.Errorf("clearing tint: %v", err)
	}
	if err := ed.UpdateLabel(0, "Intro"); err != nil || ed.Project().Segments[0].Label != "Intro" {
		t.Errorf("label: %v", err)
	}
}

func TestEditorUpdateTransition(t *testing.T) {
	ed := newTestEditor(1, 1)
	prof := TransitionProfile{Easing: EasingSlowEase, ParamClamp: 0.5, EnforceOrder: true}
	if err := ed.UpdateTransition(1, 0.5, &prof); err != nil {
		t.Fatal(err)
	}
	s := ed.Project().Segments[1]
	if s.TransitionDuration != 0.5 || s.Profile() != prof {
		t.Errorf("transition = %v %+v", s.TransitionDuration, s.Profile())
	}

	bad := TransitionProfile{Easing: "wobble", ParamClamp: 0}
	err := ed.UpdateTransition(1, 1, &bad)
	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) != 2 {
		t.Errorf("err = %v, want two field errors", err)
	}
}

func TestEditorUpdateTransitionRejectsNonFinite(t *testing.T) {
	ed := newTestEditor(1, 1)
	before := ed.Project()
	for _, d := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := ed.UpdateTransition(1, d, nil)
		var verr *ValidationError
		if !errors.As(err, &verr) || !verr.Has("segments[1].transitionDuration") {
			t.Errorf("UpdateTransition(%v): err = %v", d, err)
		}
	}
	if ed.Project() != before {
		t.Fatal("rejected edit published a project")
	}
	if _, err := Save(ed.Project()); err != nil {
		t.Errorf("save after rejected edits: %v", err)
	}

	if err := ed.UpdateTransition(1, -3, nil); err != nil {
		t.Fatal(err)
	}
	if d := ed.Project().Segments[1].TransitionDuration; d != 0 {
		t.Errorf("negative transition stored as %v, want 0", d)
	}
}

func TestEditorShapeValuesSurviveReload(t *testing.T) {
	ed := newTestEditor(1, 1)
	before := ed.Project()

	shapes := before.Segments[0].ShapeInstances.Clone()
	shapes.Epicycloids[0].Samples = 0
	shapes.Epicycloids[0].MinorRadius = -1
	shapes.Epicycloids[0].Intensity = 7
	err := ed.UpdateShapeInstances(0, shapes)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	for _, f := range []string{"samples", "r", "intensity"} {
		if !verr.Has("segments[0].shapeInstances.epicycloids[0]." + f) {
			t.Errorf("missing error for %s in %v", f, verr)
		}
	}
	if len(verr.Fields) != 3 {
		t.Errorf("got %d errors, want 3: %v", len(verr.Fields), verr)
	}
	if ed.Project() != before {
		t.Fatal("rejected edit published a project")
	}

	c := before.Segments[1].ShapeInstances.Circles[0]
	c.Color = Color{2, 0, 0}
	if err := ed.ReplaceShapeInstance(1, c); !errors.As(err, &verr) || !verr.Has("segments[1].shapeInstances.circles[0].color[0]") {
		t.Errorf("ReplaceShapeInstance: err = %v", err)
	}
	ring := DefaultExpandingCircle(3)
	ring.Period = math.Inf(1)
	ring.PulseMode = "bounce"
	if err := ed.AddShapeInstance(1, ring); !errors.As(err, &verr) || len(verr.Fields) != 2 {
		t.Errorf("AddShapeInstance: err = %v", err)
	}

	shapes = before.Segments[0].ShapeInstances.Clone()
	shapes.Epicycloids[0].Samples = 12
	shapes.Epicycloids[0].MinorRadius = 0.4
	if err := ed.UpdateShapeInstances(0, shapes); err != nil {
		t.Fatal(err)
	}
	data, err := Save(ed.Project())
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(data)
	if err != nil {
		t.Fatalf("reload of an edited project: %v", err)
	}
	if got := loaded.Segments[0].ShapeInstances.Epicycloids[0]; got.Samples != 12 || got.MinorRadius != 0.4 {
		t.Errorf("reloaded epicycloid = %+v", got)
	}
}

func TestEditorAudioLock(t *testing.T) {
	ed := newTestEditor(5, 5, 5)
	if err := ed.SetAudioTrack(AudioTrack{Name: "song.mp3", Duration: 7, Status: AudioReady}); err != nil {
		t.Fatal(err)
	}
	if d := ed.Project().TotalDuration(); d != 15 {
		t.Errorf("unlocked total = %v, want 15", d)
	}

	ed.SetLockToAudioDuration(true)
	p := ed.Project()
	want := []float64{5, 2, 0}
	for i, d := range durationsOf(p.Segments) {
		if d != want[i] {
			t.Errorf("seg %d = %v, want %v", i, d, want[i])
		}
	}
	assertContiguous(t, p)

	// Growing a segment while locked is clamped again.
	if err := ed.UpdateDuration(0, 10); err != nil {
		t.Fatal(err)
	}
	if d := ed.Project().TotalDuration(); d != 7 {
		t.Errorf("locked total = %v, want 7", d)
	}

	if err := ed.SetAudioTrack(AudioTrack{Duration: -1, Status: AudioReady}); err == nil {
		t.Error("negative audio duration accepted")
	}
	ed.ClearAudioTrack()
	if ed.Project().Audio != nil {
		t.Error("audio not cleared")
	}
}

func TestEditorExtendSegmentToAudioEnd(t *testing.T) {
	ed := newTestEditor(2, 3)
	if err := ed.ExtendSegmentToAudioEnd(1); err != nil {
		t.Fatal(err)
	}
	if d := ed.Project().Segments[1].DurationSec; d != 3 {
		t.Errorf("without audio duration = %v, want 3", d)
	}
	if err := ed.SetAudioTrack(AudioTrack{Duration: 12, Status: AudioReady}); err != nil {
		t.Fatal(err)
	}
	if err := ed.ExtendSegmentToAudioEnd(1); err != nil {
		t.Fatal(err)
	}
	p := ed.Project()
	if p.Segments[1].DurationSec != 10 || p.TotalDuration() != 12 {
		t.Errorf("durations = %v", durationsOf(p.Segments))
	}
}

func TestEditorDistributeRemainingDuration(t *testing.T) {
	ed := newTestEditor(2, 4)
	if err := ed.SetAudioTrack(AudioTrack{Duration: 10, Status: AudioReady}); err != nil {
		t.Fatal(err)
	}
	ed.DistributeRemainingDuration()
	got := durationsOf(ed.Project().Segments)
	if got[0] != 4 || got[1] != 6 {
		t.Errorf("durations = %v, want [4 6]", got)
	}
}

func TestEditorAudioCues(t *testing.T) {
	ed := newTestEditor(10)
	for _, c := range []AudioCue{{3, "c"}, {1, "a"}, {2, "b"}, {2, "b2"}} {
		if err := ed.AddAudioCue(c); err != nil {
			t.Fatal(err)
		}
	}
	cues := ed.Project().AudioCues
	want := []string{"a", "b", "b2", "c"}
	for i, c := range cues {
		if c.Label != want[i] {
			t.Errorf("cue %d = %q, want %q", i, c.Label, want[i])
		}
	}
	if err := ed.AddAudioCue(AudioCue{Time: -1}); err == nil {
		t.Error("negative cue accepted")
	}
	for _, bad := range []float64{math.NaN(), math.Inf(1)} {
		var verr *ValidationError
		if err := ed.AddAudioCue(AudioCue{Time: bad}); !errors.As(err, &verr) || !verr.Has("audioCues.time") {
			t.Errorf("AddAudioCue(%v): err = %v", bad, err)
		}
	}
	if _, err := Save(ed.Project()); err != nil {
		t.Errorf("save after rejected cues: %v", err)
	}
	if err := ed.RemoveAudioCue(0); err != nil {
		t.Fatal(err)
	}
	if ed.Project().AudioCues[0].Label != "b" {
		t.Error("wrong cue removed")
	}
	if err := ed.RemoveAudioCue(10); err == nil {
		t.Error("out of range cue removal succeeded")
	}
}
