package reel

import (
	"math"

	"github.com/tanema/gween"
)

// PlaybackEventType identifies a kind of playback event.
type PlaybackEventType uint8

const (
	EventSegmentEntered PlaybackEventType = iota // the active segment changed
	EventCueReached                              // the playhead passed an audio cue
	EventLooped                                  // playback wrapped to the start
	EventEnded                                   // playback stopped at the end
)

// PlaybackEvent carries playback data to an EventSink.
type PlaybackEvent struct {
	Type         PlaybackEventType
	Time         float64
	SegmentIndex int
	SegmentID    string
	Cue          AudioCue // valid for EventCueReached
}

// EventSink receives playback events. See the ecs package for a Donburi
// adapter.
type EventSink interface {
	EmitEvent(event PlaybackEvent)
}

// PlayerConfig configures a Player.
type PlayerConfig struct {
	// Loop wraps to the start instead of stopping at the end.
	Loop bool
	// Rate scales dt. Defaults to 1.
	Rate float64
	// Sink receives playback events. May be nil.
	Sink EventSink
}

// Player advances a playback clock and resolves a snapshot every frame.
// Call Update(dt) from the host's frame callback. The project is read from
// the source on every Update so edits show up on the next frame.
//
// There is no global clock; hosts own and update their players.
type Player struct {
	source  ProjectSource
	cfg     PlayerConfig
	time    float64
	playing bool
	last    int // segment index of the previous Update, -1 before the first
	seek    *gween.Tween

	// memo of the last resolution
	snap        Snapshot
	snapProject *Project
	snapTime    float64
}

// NewPlayer creates a paused player at time 0.
func NewPlayer(src ProjectSource, cfg PlayerConfig) *Player {
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	return &Player{source: src, cfg: cfg, last: -1, snapTime: math.NaN()}
}

// Play starts or resumes playback.
func (p *Player) Play() { p.playing = true }

// Pause stops advancing the clock. Update keeps resolving the current time.
func (p *Player) Pause() { p.playing = false }

// Playing reports whether the clock advances on Update.
func (p *Player) Playing() bool { return p.playing }

// Time returns the playhead position in seconds.
func (p *Player) Time() float64 { return p.time }

// Seek jumps to t immediately, cancelling any animated seek. Cues between
// the old and new position are not reported.
func (p *Player) Seek(t float64) {
	p.seek = nil
	p.time = p.clampTime(t)
}

// SeekTo glides the playhead to t over duration seconds using the easing
// curve. Cues are not reported while gliding.
func (p *Player) SeekTo(t float64, duration float32, e Easing) {
	target := p.clampTime(t)
	if duration <= 0 {
		p.Seek(target)
		return
	}
	p.seek = gween.New(float32(p.time), float32(target), duration, e.TweenFunc())
}

// Seeking reports whether an animated seek is in progress.
func (p *Player) Seeking() bool { return p.seek != nil }

func (p *Player) clampTime(t float64) float64 {
	return math.Max(0, math.Min(t, p.source.Project().TotalDuration()))
}

// Update advances the clock by dt seconds when playing (or gliding toward a
// seek target), emits events and returns the snapshot for the new time.
func (p *Player) Update(dt float32) Snapshot {
	proj := p.source.Project()
	total := proj.TotalDuration()

	switch {
	case p.seek != nil:
		v, done := p.seek.Update(dt)
		p.time = float64(v)
		if done {
			p.seek = nil
		}
	case p.playing:
		p.advance(proj, float64(dt)*p.cfg.Rate, total)
	}

	idx := LocateSegment(proj.Segments, p.time)
	if idx != p.last {
		p.last = idx
		Logger().Debug("reel: segment entered", "index", idx, "time", p.time)
		p.emit(PlaybackEvent{Type: EventSegmentEntered, Time: p.time, SegmentIndex: idx, SegmentID: proj.Segments[idx].ID})
	}

	if proj != p.snapProject || p.time != p.snapTime {
		p.snap = Resolve(proj, p.time)
		p.snapProject, p.snapTime = proj, p.time
	}
	return p.snap
}

// Snapshot returns the snapshot computed by the last Update.
func (p *Player) Snapshot() Snapshot { return p.snap }

func (p *Player) advance(proj *Project, step, total float64) {
	from := p.time
	to := from + step
	if to < total {
		p.emitCues(proj, from, to)
		p.time = to
		return
	}
	p.emitCues(proj, from, total)
	if !p.cfg.Loop || total <= 0 {
		p.time = total
		p.playing = false
		p.emit(PlaybackEvent{Type: EventEnded, Time: total, SegmentIndex: len(proj.Segments) - 1})
		return
	}
	p.time = math.Mod(to, total)
	p.emit(PlaybackEvent{Type: EventLooped, Time: p.time})
	p.emitCues(proj, 0, p.time)
}

// emitCues reports cues in [from, to).
func (p *Player) emitCues(proj *Project, from, to float64) {
	if p.cfg.Sink == nil {
		return
	}
	for _, c := range proj.AudioCues {
		if c.Time >= from && c.Time < to {
			p.emit(PlaybackEvent{Type: EventCueReached, Time: c.Time, SegmentIndex: LocateSegment(proj.Segments, c.Time), Cue: c})
		}
	}
}

func (p *Player) emit(e PlaybackEvent) {
	if p.cfg.Sink != nil {
		p.cfg.Sink.EmitEvent(e)
	}
}
