package reel

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// CurrentVersion is the schema version Validate accepts and Save writes.
const CurrentVersion = versionAudioLock

// maxInteger bounds integer fields (limits, sample counts, sizes).
const maxInteger = math.MaxInt32

// Validate checks a decoded current-version document (as produced by
// encoding/json into map[string]any, or by Migrate) and converts it into a
// Project. Every violated field is reported in one *ValidationError; nothing
// is coerced. Documents of older versions must be migrated first.
//
// Start and end times in the document are ignored and must be recomputed by
// RecalculateTimes.
func Validate(raw any) (*Project, error) {
	var c checker
	c.document(raw)
	if len(c.errs) > 0 {
		return nil, &ValidationError{Fields: c.errs}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("reel: encode validated document: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("reel: decode validated document: %w", err)
	}
	p := doc.Project
	if p.AudioCues == nil {
		p.AudioCues = []AudioCue{}
	}
	return &p, nil
}

// document is the persisted form of a Project.
type document struct {
	Version int `json:"version"`
	Project
}

// checker accumulates field errors while walking an untyped document.
type checker struct {
	errs []FieldError
	ids  map[string]string // id -> first path it appeared at
}

func (c *checker) fail(path, format string, args ...any) {
	c.errs = append(c.errs, FieldError{Path: path, Msg: fmt.Sprintf(format, args...)})
}

func (c *checker) object(path string, v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		c.fail(path, "must be an object")
	}
	return m, ok
}

// field returns obj[key], recording an error when it is absent.
func (c *checker) field(obj map[string]any, path, key string) (any, bool) {
	v, ok := obj[key]
	if !ok || v == nil {
		c.fail(join(path, key), "is required")
		return nil, false
	}
	return v, true
}

func (c *checker) number(path string, v any) (float64, bool) {
	f, ok := toFloat(v)
	if !ok {
		c.fail(path, "must be a number")
	}
	return f, ok
}

func (c *checker) nonNegative(path string, v any) (float64, bool) {
	f, ok := c.number(path, v)
	if ok && f < 0 {
		c.fail(path, "must be >= 0")
		return f, false
	}
	return f, ok
}

func (c *checker) positive(path string, v any) {
	if f, ok := c.number(path, v); ok && f <= 0 {
		c.fail(path, "must be > 0")
	}
}

func (c *checker) unit(path string, v any) {
	if f, ok := c.number(path, v); ok && (f < 0 || f > 1) {
		c.fail(path, "must be in [0, 1]")
	}
}

func (c *checker) integer(path string, v any, minValue int) (int, bool) {
	f, ok := c.number(path, v)
	if !ok {
		return 0, false
	}
	if f != math.Trunc(f) || f < float64(minValue) {
		c.fail(path, "must be an integer >= %d", minValue)
		return 0, false
	}
	if f > maxInteger {
		c.fail(path, "must be at most %d", maxInteger)
		return 0, false
	}
	return int(f), true
}

func (c *checker) str(path string, v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		c.fail(path, "must be a string")
	}
	return s, ok
}

func (c *checker) boolean(path string, v any) {
	if _, ok := v.(bool); !ok {
		c.fail(path, "must be a boolean")
	}
}

func (c *checker) color(path string, v any) {
	arr, ok := v.([]any)
	if !ok || len(arr) != 3 {
		c.fail(path, "must be an [r, g, b] array")
		return
	}
	for i, ch := range arr {
		c.unit(indexPath(path, i), ch)
	}
}

func (c *checker) id(path string, v any) {
	s, ok := c.str(path, v)
	if !ok {
		return
	}
	if s == "" {
		c.fail(path, "must not be empty")
		return
	}
	if c.ids == nil {
		c.ids = make(map[string]string)
	}
	if first, dup := c.ids[s]; dup {
		c.fail(path, "duplicate id %q (first used at %s)", s, first)
		return
	}
	c.ids[s] = path
}

func (c *checker) document(raw any) {
	doc, ok := c.object("", raw)
	if !ok {
		return
	}
	if v, ok := c.field(doc, "", "version"); ok {
		if n, ok := c.integer("version", v, 0); ok && n != CurrentVersion {
			c.fail("version", "is %d, want %d (migrate first)", n, CurrentVersion)
		}
	}
	if v, ok := c.field(doc, "", "projectName"); ok {
		c.str("projectName", v)
	}
	if v, ok := c.field(doc, "", "fps"); ok {
		c.positive("fps", v)
	}

	var limits *ShapeLimits
	if v, ok := c.field(doc, "", "maxShapeLimits"); ok {
		limits = c.limits("maxShapeLimits", v)
	}
	if v, ok := c.field(doc, "", "uniforms"); ok {
		if u, ok := c.object("uniforms", v); ok {
			if v, ok := c.field(u, "uniforms", "backgroundColor"); ok {
				c.color("uniforms.backgroundColor", v)
			}
			if v, ok := c.field(u, "uniforms", "epicycloidsSampleFactor"); ok {
				c.positive("uniforms.epicycloidsSampleFactor", v)
			}
		}
	}
	if v, ok := c.field(doc, "", "segments"); ok {
		arr, isArr := v.([]any)
		switch {
		case !isArr:
			c.fail("segments", "must be an array")
		case len(arr) == 0:
			c.fail("segments", "must contain at least one segment")
		}
		for i, s := range arr {
			c.segment(indexPath("segments", i), s, limits)
		}
	}
	if v, ok := doc["audioTrack"]; ok && v != nil {
		c.audio("audioTrack", v)
	}
	if v, ok := c.field(doc, "", "lockToAudioDuration"); ok {
		c.boolean("lockToAudioDuration", v)
	}
	if v, ok := c.field(doc, "", "audioCues"); ok {
		arr, isArr := v.([]any)
		if !isArr {
			c.fail("audioCues", "must be an array")
		}
		for i, cue := range arr {
			path := indexPath("audioCues", i)
			m, ok := c.object(path, cue)
			if !ok {
				continue
			}
			if v, ok := c.field(m, path, "time"); ok {
				c.nonNegative(join(path, "time"), v)
			}
			if v, ok := c.field(m, path, "label"); ok {
				c.str(join(path, "label"), v)
			}
		}
	}
}

func (c *checker) limits(path string, v any) *ShapeLimits {
	m, ok := c.object(path, v)
	if !ok {
		return nil
	}
	var l ShapeLimits
	valid := true
	for _, t := range shapeTypes {
		fv, ok := c.field(m, path, t.Plural())
		if !ok {
			valid = false
			continue
		}
		n, ok := c.integer(join(path, t.Plural()), fv, 0)
		if !ok {
			valid = false
			continue
		}
		switch t {
		case ShapeCircle:
			l.Circles = n
		case ShapeWave:
			l.Waves = n
		case ShapeEpicycloid:
			l.Epicycloids = n
		case ShapeExpandingCircle:
			l.ExpandingCircles = n
		}
	}
	if !valid {
		return nil
	}
	return &l
}

func (c *checker) segment(path string, v any, limits *ShapeLimits) {
	seg, ok := c.object(path, v)
	if !ok {
		return
	}
	if v, ok := c.field(seg, path, "id"); ok {
		c.id(join(path, "id"), v)
	}
	if v, ok := c.field(seg, path, "label"); ok {
		c.str(join(path, "label"), v)
	}
	if v, ok := c.field(seg, path, "durationSec"); ok {
		c.nonNegative(join(path, "durationSec"), v)
	}
	for _, k := range [...]string{"startSec", "endSec"} {
		if v, ok := seg[k]; ok && v != nil {
			c.number(join(path, k), v)
		}
	}
	if v, ok := c.field(seg, path, "transitionDuration"); ok {
		c.nonNegative(join(path, "transitionDuration"), v)
	}
	if v, ok := seg["transitionProfile"]; ok && v != nil {
		c.profile(join(path, "transitionProfile"), v)
	}
	for _, k := range [...]string{"backgroundColor", "tint"} {
		if v, ok := seg[k]; ok && v != nil {
			c.color(join(path, k), v)
		}
	}
	if v, ok := seg["epicycloidsSampleFactor"]; ok && v != nil {
		c.positive(join(path, "epicycloidsSampleFactor"), v)
	}
	if v, ok := c.field(seg, path, "shapeInstances"); ok {
		c.shapes(join(path, "shapeInstances"), v, limits)
	}
}

func (c *checker) profile(path string, v any) {
	m, ok := c.object(path, v)
	if !ok {
		return
	}
	if v, ok := c.field(m, path, "easing"); ok {
		if s, ok := c.str(join(path, "easing"), v); ok && !Easing(s).Valid() {
			c.fail(join(path, "easing"), "unknown easing %q", s)
		}
	}
	if v, ok := c.field(m, path, "paramClamp"); ok {
		if f, ok := c.number(join(path, "paramClamp"), v); ok && !(f > 0 && f <= 1) {
			c.fail(join(path, "paramClamp"), "must be in (0, 1]")
		}
	}
	if v, ok := m["enforceOrder"]; ok && v != nil {
		c.boolean(join(path, "enforceOrder"), v)
	}
}

func (c *checker) shapes(path string, v any, limits *ShapeLimits) {
	m, ok := c.object(path, v)
	if !ok {
		return
	}
	for _, t := range shapeTypes {
		lv, ok := c.field(m, path, t.Plural())
		if !ok {
			continue
		}
		listPath := join(path, t.Plural())
		arr, isArr := lv.([]any)
		if !isArr {
			c.fail(listPath, "must be an array")
			continue
		}
		if limits != nil && len(arr) > limits.Of(t) {
			c.fail(listPath, "has %d instances, limit is %d", len(arr), limits.Of(t))
		}
		for i, inst := range arr {
			c.instance(indexPath(listPath, i), t, inst)
		}
	}
}

// shapeRule checks one type-specific instance field.
type shapeRule struct {
	key   string
	check func(c *checker, path string, v any)
}

func anyNumber(c *checker, path string, v any)  { c.number(path, v) }
func nonNegative(c *checker, path string, v any) { c.nonNegative(path, v) }
func positive(c *checker, path string, v any)    { c.positive(path, v) }
func sampleCount(c *checker, path string, v any) { c.integer(path, v, 1) }

func enum(valid func(string) bool) func(c *checker, path string, v any) {
	return func(c *checker, path string, v any) {
		if s, ok := c.str(path, v); ok && !valid(s) {
			c.fail(path, "unknown value %q", s)
		}
	}
}

var shapeRules = [...][]shapeRule{
	ShapeCircle: {
		{"radius", nonNegative},
		{"thickness", nonNegative},
		{"glow", nonNegative},
		{"speed", anyNumber},
		{"rotationSpeed", anyNumber},
		{"shapeKind", enum(func(s string) bool { return CircleKind(s).valid() })},
	},
	ShapeWave: {
		{"amplitude", nonNegative},
		{"frequency", nonNegative},
		{"speed", anyNumber},
		{"thickness", nonNegative},
		{"glow", nonNegative},
		{"yOffset", anyNumber},
	},
	ShapeEpicycloid: {
		{"R", positive},
		{"r", positive},
		{"scale", nonNegative},
		{"thickness", nonNegative},
		{"speed", anyNumber},
		{"glow", nonNegative},
		{"rotationSpeed", anyNumber},
		{"samples", sampleCount},
	},
	ShapeExpandingCircle: {
		{"startRadius", nonNegative},
		{"expansionSpeed", nonNegative},
		{"period", positive},
		{"thickness", nonNegative},
		{"glow", nonNegative},
		{"pulseMode", enum(func(s string) bool { return PulseMode(s).valid() })},
		{"attack", nonNegative},
		{"decay", nonNegative},
	},
}

func (c *checker) instance(path string, t ShapeType, v any) {
	m, ok := c.object(path, v)
	if !ok {
		return
	}
	if v, ok := c.field(m, path, "id"); ok {
		c.id(join(path, "id"), v)
	}
	if v, ok := c.field(m, path, "enabled"); ok {
		c.boolean(join(path, "enabled"), v)
	}
	if v, ok := c.field(m, path, "intensity"); ok {
		c.unit(join(path, "intensity"), v)
	}
	if v, ok := c.field(m, path, "color"); ok {
		c.color(join(path, "color"), v)
	}
	for _, r := range shapeRules[t] {
		if v, ok := c.field(m, path, r.key); ok {
			r.check(c, join(path, r.key), v)
		}
	}
}

func (c *checker) audio(path string, v any) {
	m, ok := c.object(path, v)
	if !ok {
		return
	}
	for _, k := range [...]string{"name", "mimeType"} {
		if v, ok := c.field(m, path, k); ok {
			c.str(join(path, k), v)
		}
	}
	if v, ok := c.field(m, path, "duration"); ok {
		c.nonNegative(join(path, "duration"), v)
	}
	if v, ok := c.field(m, path, "size"); ok {
		c.integer(join(path, "size"), v, 0)
	}
	if v, ok := c.field(m, path, "status"); ok {
		if s, ok := c.str(join(path, "status"), v); ok && s != string(AudioReady) && s != string(AudioMissing) {
			c.fail(join(path, "status"), "must be %q or %q", AudioReady, AudioMissing)
		}
	}
}

// Typed checks used by Editor mutations.

func validateColor(path string, col Color) []FieldError {
	var errs []FieldError
	for i, ch := range col {
		if !(ch >= 0 && ch <= 1) {
			errs = append(errs, FieldError{indexPath(path, i), "must be in [0, 1]"})
		}
	}
	return errs
}

// valueCheck applies the document rules to typed values, so an edit that
// passes it produces a project Validate accepts.
type valueCheck struct {
	errs []FieldError
}

func (v *valueCheck) fail(path, msg string) {
	v.errs = append(v.errs, FieldError{path, msg})
}

func (v *valueCheck) finite(path string, f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		v.fail(path, "must be a number")
		return false
	}
	return true
}

func (v *valueCheck) nonNegative(path string, f float64) {
	if v.finite(path, f) && f < 0 {
		v.fail(path, "must be >= 0")
	}
}

func (v *valueCheck) positive(path string, f float64) {
	if v.finite(path, f) && f <= 0 {
		v.fail(path, "must be > 0")
	}
}

func (v *valueCheck) unit(path string, f float64) {
	if !(f >= 0 && f <= 1) {
		v.fail(path, "must be in [0, 1]")
	}
}

func (v *valueCheck) common(path string, intensity float64, col Color) {
	v.unit(join(path, "intensity"), intensity)
	for i, ch := range col {
		v.unit(indexPath(join(path, "color"), i), ch)
	}
}

// validateShapes checks every instance value in s, reporting paths below
// path the way Validate reports them for a loaded document.
func validateShapes(path string, s ShapeInstances) []FieldError {
	var v valueCheck
	for i, c := range s.Circles {
		p := indexPath(join(path, ShapeCircle.Plural()), i)
		v.common(p, c.Intensity, c.Color)
		v.nonNegative(join(p, "radius"), c.Radius)
		v.nonNegative(join(p, "thickness"), c.Thickness)
		v.nonNegative(join(p, "glow"), c.Glow)
		v.finite(join(p, "speed"), c.Speed)
		v.finite(join(p, "rotationSpeed"), c.RotationSpeed)
		if !c.ShapeKind.valid() {
			v.fail(join(p, "shapeKind"), fmt.Sprintf("unknown value %q", c.ShapeKind))
		}
	}
	for i, w := range s.Waves {
		p := indexPath(join(path, ShapeWave.Plural()), i)
		v.common(p, w.Intensity, w.Color)
		v.nonNegative(join(p, "amplitude"), w.Amplitude)
		v.nonNegative(join(p, "frequency"), w.Frequency)
		v.finite(join(p, "speed"), w.Speed)
		v.nonNegative(join(p, "thickness"), w.Thickness)
		v.nonNegative(join(p, "glow"), w.Glow)
		v.finite(join(p, "yOffset"), w.YOffset)
	}
	for i, e := range s.Epicycloids {
		p := indexPath(join(path, ShapeEpicycloid.Plural()), i)
		v.common(p, e.Intensity, e.Color)
		v.positive(join(p, "R"), e.MajorRadius)
		v.positive(join(p, "r"), e.MinorRadius)
		v.nonNegative(join(p, "scale"), e.Scale)
		v.nonNegative(join(p, "thickness"), e.Thickness)
		v.finite(join(p, "speed"), e.Speed)
		v.nonNegative(join(p, "glow"), e.Glow)
		v.finite(join(p, "rotationSpeed"), e.RotationSpeed)
		if e.Samples < 1 || e.Samples > maxInteger {
			v.fail(join(p, "samples"), fmt.Sprintf("must be an integer in [1, %d]", maxInteger))
		}
	}
	for i, c := range s.ExpandingCircles {
		p := indexPath(join(path, ShapeExpandingCircle.Plural()), i)
		v.common(p, c.Intensity, c.Color)
		v.nonNegative(join(p, "startRadius"), c.StartRadius)
		v.nonNegative(join(p, "expansionSpeed"), c.ExpansionSpeed)
		v.positive(join(p, "period"), c.Period)
		v.nonNegative(join(p, "thickness"), c.Thickness)
		v.nonNegative(join(p, "glow"), c.Glow)
		if !c.PulseMode.valid() {
			v.fail(join(p, "pulseMode"), fmt.Sprintf("unknown value %q", c.PulseMode))
		}
		v.nonNegative(join(p, "attack"), c.Attack)
		v.nonNegative(join(p, "decay"), c.Decay)
	}
	return v.errs
}

func validateLimits(path string, l ShapeLimits) []FieldError {
	var errs []FieldError
	for _, t := range shapeTypes {
		if n := l.Of(t); n < 0 || n > maxInteger {
			errs = append(errs, FieldError{join(path, t.Plural()), fmt.Sprintf("must be in [0, %d]", maxInteger)})
		}
	}
	return errs
}

func validateAudio(path string, a AudioTrack) []FieldError {
	var errs []FieldError
	if !(a.Duration >= 0) || math.IsInf(a.Duration, 0) {
		errs = append(errs, FieldError{join(path, "duration"), "must be a finite number >= 0"})
	}
	if a.Size < 0 || a.Size > maxInteger {
		errs = append(errs, FieldError{join(path, "size"), fmt.Sprintf("must be in [0, %d]", maxInteger)})
	}
	if a.Status != AudioReady && a.Status != AudioMissing {
		errs = append(errs, FieldError{join(path, "status"), fmt.Sprintf("must be %q or %q", AudioReady, AudioMissing)})
	}
	return errs
}

// toFloat accepts the numeric types that appear in decoded or migrated
// documents.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
