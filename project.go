package reel

// AudioStatus reports whether a project's audio file is attached.
type AudioStatus string

const (
	AudioReady   AudioStatus = "ready"
	AudioMissing AudioStatus = "missing" // metadata known, file not loaded
)

// AudioTrack is metadata about the soundtrack. Duration comes from the host's
// audio decoder and feeds the timeline's audio lock.
type AudioTrack struct {
	Name     string      `json:"name"`
	Duration float64     `json:"duration"`
	Size     int64       `json:"size"`
	MimeType string      `json:"mimeType"`
	Status   AudioStatus `json:"status"`
	// Handle is the host's playback object. It is never persisted.
	Handle any `json:"-"`
}

// AudioCue is a labeled marker on the audio timeline.
type AudioCue struct {
	Time  float64 `json:"time"`
	Label string  `json:"label"`
}

// Uniforms are the project level shader parameters that are not per shape.
type Uniforms struct {
	BackgroundColor         Color   `json:"backgroundColor"`
	EpicycloidsSampleFactor float64 `json:"epicycloidsSampleFactor"`
}

// Project is the aggregate root: everything a document persists.
type Project struct {
	Name                string      `json:"projectName"`
	FPS                 float64     `json:"fps"`
	Limits              ShapeLimits `json:"maxShapeLimits"`
	Uniforms            Uniforms    `json:"uniforms"`
	Segments            []Segment   `json:"segments"`
	Audio               *AudioTrack `json:"audioTrack,omitempty"`
	LockToAudioDuration bool        `json:"lockToAudioDuration"`
	AudioCues           []AudioCue  `json:"audioCues"`
}

// ProjectConfig configures NewProject. Zero fields take defaults.
type ProjectConfig struct {
	// Name defaults to "Untitled".
	Name string
	// FPS is display-only. Defaults to 30.
	FPS float64
	// Limits defaults to 8 of each shape type.
	Limits ShapeLimits
	// SegmentDuration is the length of the first segment. Defaults to 5s.
	SegmentDuration float64
}

const (
	defaultProjectName  = "Untitled"
	defaultFPS          = 30.0
	defaultSampleFactor = 1.0
)

// NewProject creates a project with a single seeded segment.
func NewProject(cfg ProjectConfig) *Project {
	if cfg.Name == "" {
		cfg.Name = defaultProjectName
	}
	if cfg.FPS <= 0 {
		cfg.FPS = defaultFPS
	}
	if cfg.Limits == (ShapeLimits{}) {
		cfg.Limits = DefaultShapeLimits()
	}
	if cfg.SegmentDuration <= 0 {
		cfg.SegmentDuration = DefaultSegmentDuration
	}
	p := &Project{
		Name:   cfg.Name,
		FPS:    cfg.FPS,
		Limits: cfg.Limits,
		Uniforms: Uniforms{
			BackgroundColor:         ColorBlack,
			EpicycloidsSampleFactor: defaultSampleFactor,
		},
		Segments:  []Segment{newSegment(0, cfg.Limits, cfg.SegmentDuration)},
		AudioCues: []AudioCue{},
	}
	p.Segments = RecalculateTimes(p.Segments)
	return p
}

// Clone returns a deep copy. The audio handle is shared, not copied.
func (p *Project) Clone() *Project {
	out := *p
	out.Segments = cloneSegments(p.Segments)
	if p.Audio != nil {
		a := *p.Audio
		out.Audio = &a
	}
	out.AudioCues = append(make([]AudioCue, 0, len(p.AudioCues)), p.AudioCues...)
	return &out
}

// TotalDuration returns the sum of all segment durations.
func (p *Project) TotalDuration() float64 {
	return TotalDuration(p.Segments)
}

// audioDuration returns the known audio length, or 0.
func (p *Project) audioDuration() float64 {
	if p.Audio == nil || p.Audio.Duration <= 0 {
		return 0
	}
	return p.Audio.Duration
}

// ids returns every segment and instance id in the project.
func (p *Project) ids() map[string]struct{} {
	seen := make(map[string]struct{})
	for i := range p.Segments {
		seen[p.Segments[i].ID] = struct{}{}
		for _, id := range p.Segments[i].ShapeInstances.IDs() {
			seen[id] = struct{}{}
		}
	}
	return seen
}
