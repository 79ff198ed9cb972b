package reel

import (
	"encoding/json"
	"fmt"
	"math"
)

// Schema versions. Every structural change to the document gets its own
// version so a transform can never run twice on the same document.
const (
	versionLegacy         = 1 // global uniforms with per-segment overrides
	versionShapeLimits    = 2 // maxShapeLimits
	versionShapeInstances = 3 // per-segment shape instances replace counts
	versionExpansionSpeed = 4 // expanding circles use expansionSpeed, not maxRadius
	versionTransitions    = 5 // transitionDuration and transitionProfile
	versionAudioLock      = 6 // lockToAudioDuration and audioCues
)

// keptUniforms are the only project uniforms that survive shape instances.
var keptUniforms = [...]string{"backgroundColor", "epicycloidsSampleFactor"}

type migrationStep struct {
	version int
	name    string
	apply   func(doc map[string]any) error
}

var migrationSteps = []migrationStep{
	{versionShapeLimits, "shape limits", migrateShapeLimits},
	{versionShapeInstances, "shape instances", migrateShapeInstances},
	{versionExpansionSpeed, "expansion speed", migrateInstanceFields},
	{versionTransitions, "transitions", migrateTransitions},
	{versionAudioLock, "audio lock", migrateAudioLock},
}

// Migrate upgrades a decoded document of any earlier schema version to
// CurrentVersion. A document already at CurrentVersion is returned as is.
// Otherwise raw is deep-copied and every step newer than the document's
// version is applied in order; raw itself is never modified.
//
// A document without a version is treated as version 1. Input that cannot be
// interpreted (segments that are not an array of objects, a version newer
// than this package understands, ...) fails with a *MigrationError.
func Migrate(raw map[string]any) (map[string]any, error) {
	if raw == nil {
		return nil, &MigrationError{Msg: "document is empty"}
	}
	from, err := documentVersion(raw)
	if err != nil {
		return nil, err
	}
	if from == CurrentVersion {
		return raw, nil
	}
	doc := deepCopy(raw).(map[string]any)
	if _, err := segmentObjects(doc); err != nil {
		return nil, err
	}
	for _, step := range migrationSteps {
		if step.version <= from {
			continue
		}
		if err := step.apply(doc); err != nil {
			return nil, err
		}
		Logger().Debug("reel: migration step applied", "step", step.name, "version", step.version)
	}
	doc["version"] = CurrentVersion
	return doc, nil
}

func documentVersion(raw map[string]any) (int, error) {
	v, ok := raw["version"]
	if !ok || v == nil {
		return versionLegacy, nil
	}
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || f < 0 {
		return 0, &MigrationError{Path: "version", Msg: fmt.Sprintf("not an integer: %v", v)}
	}
	n := int(f)
	if n > CurrentVersion {
		return 0, &MigrationError{Path: "version", Msg: fmt.Sprintf("version %d is newer than supported version %d", n, CurrentVersion)}
	}
	return n, nil
}

func segmentObjects(doc map[string]any) ([]map[string]any, error) {
	v, ok := doc["segments"]
	if !ok || v == nil {
		return nil, &MigrationError{Path: "segments", Msg: "missing"}
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, &MigrationError{Path: "segments", Msg: "not an array"}
	}
	segs := make([]map[string]any, len(arr))
	for i, s := range arr {
		m, ok := s.(map[string]any)
		if !ok {
			return nil, &MigrationError{Path: indexPath("segments", i), Msg: "not an object"}
		}
		segs[i] = m
	}
	return segs, nil
}

// optionalObject returns m[key] as an object, or nil when absent.
func optionalObject(m map[string]any, path, key string) (map[string]any, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &MigrationError{Path: join(path, key), Msg: "not an object"}
	}
	return obj, nil
}

func setDefault(m map[string]any, key string, v any) {
	if cur, ok := m[key]; !ok || cur == nil {
		m[key] = v
	}
}

func migrateShapeLimits(doc map[string]any) error {
	limits, err := optionalObject(doc, "", "maxShapeLimits")
	if err != nil {
		return err
	}
	if limits == nil {
		limits = make(map[string]any)
		doc["maxShapeLimits"] = limits
	}
	for _, t := range shapeTypes {
		setDefault(limits, t.Plural(), DefaultShapeLimit)
	}
	return nil
}

// migrateShapeInstances replaces count-based segments with explicit
// instances and drops every deprecated uniform and override.
func migrateShapeInstances(doc map[string]any) error {
	uniforms, err := optionalObject(doc, "", "uniforms")
	if err != nil {
		return err
	}
	if uniforms == nil {
		uniforms = make(map[string]any)
	}
	limits := documentLimits(doc)

	segs, err := segmentObjects(doc)
	if err != nil {
		return err
	}
	for i, seg := range segs {
		path := indexPath("segments", i)
		overrides, err := optionalObject(seg, path, "overrides")
		if err != nil {
			return err
		}
		if _, err := optionalObject(seg, path, "shapeInstances"); err != nil {
			return err
		}
		if v, ok := seg["shapeInstances"]; !ok || v == nil {
			seg["shapeInstances"] = toMap(legacyShapes(overrides, uniforms, limits))
		}
		delete(seg, "overrides")
		if id, _ := seg["id"].(string); id == "" {
			seg["id"] = NewID()
		}
		setDefault(seg, "label", segmentLabel(i))
	}

	kept := make(map[string]any, len(keptUniforms))
	for _, k := range keptUniforms {
		if v, ok := uniforms[k]; ok && v != nil {
			kept[k] = v
		}
	}
	setDefault(kept, "backgroundColor", []any{0.0, 0.0, 0.0})
	setDefault(kept, "epicycloidsSampleFactor", defaultSampleFactor)
	doc["uniforms"] = kept

	setDefault(doc, "projectName", defaultProjectName)
	setDefault(doc, "fps", defaultFPS)
	return nil
}

// legacyShapes synthesizes the instances a count-based segment displayed.
// Each per-type value is looked up in the segment's overrides, then the
// global uniforms, then the built-in defaults.
func legacyShapes(overrides, uniforms map[string]any, limits ShapeLimits) ShapeInstances {
	var s ShapeInstances
	for _, t := range shapeTypes {
		n := defaultShapeCounts[t]
		if f, ok := legacyNumber(overrides, uniforms, t.String()+"Count"); ok {
			n = int(math.Max(0, math.Round(f)))
		}
		n = min(n, limits.Of(t))

		intensity := 1.0
		if f, ok := legacyNumber(overrides, uniforms, t.String()+"Intensity"); ok {
			intensity = clamp01(f)
		}
		col := ColorWhite
		if c, ok := legacyColor(overrides, uniforms, t.String()+"Tint"); ok {
			col = c
		}

		s = appendDefaults(s, t, n)
		switch t {
		case ShapeCircle:
			for i := range s.Circles {
				s.Circles[i].Intensity, s.Circles[i].Color = intensity, col
			}
		case ShapeWave:
			for i := range s.Waves {
				s.Waves[i].Intensity, s.Waves[i].Color = intensity, col
			}
		case ShapeEpicycloid:
			for i := range s.Epicycloids {
				s.Epicycloids[i].Intensity, s.Epicycloids[i].Color = intensity, col
			}
		case ShapeExpandingCircle:
			for i := range s.ExpandingCircles {
				s.ExpandingCircles[i].Intensity, s.ExpandingCircles[i].Color = intensity, col
			}
		}
	}
	return s.Clone()
}

func legacyNumber(overrides, uniforms map[string]any, key string) (float64, bool) {
	for _, m := range [...]map[string]any{overrides, uniforms} {
		if f, ok := toFloat(m[key]); ok {
			return f, true
		}
	}
	return 0, false
}

func legacyColor(overrides, uniforms map[string]any, key string) (Color, bool) {
	for _, m := range [...]map[string]any{overrides, uniforms} {
		arr, ok := m[key].([]any)
		if !ok || len(arr) != 3 {
			continue
		}
		var c Color
		valid := true
		for i := range arr {
			f, ok := toFloat(arr[i])
			valid = valid && ok
			c[i] = clamp01(f)
		}
		if valid {
			return c, true
		}
	}
	return Color{}, false
}

func documentLimits(doc map[string]any) ShapeLimits {
	l := DefaultShapeLimits()
	m, _ := doc["maxShapeLimits"].(map[string]any)
	read := func(t ShapeType, dst *int) {
		if f, ok := toFloat(m[t.Plural()]); ok && f >= 0 {
			*dst = int(f)
		}
	}
	read(ShapeCircle, &l.Circles)
	read(ShapeWave, &l.Waves)
	read(ShapeEpicycloid, &l.Epicycloids)
	read(ShapeExpandingCircle, &l.ExpandingCircles)
	return l
}

// migrateInstanceFields fills fields introduced after shape instances and
// converts the maxRadius expansion model to expansionSpeed.
func migrateInstanceFields(doc map[string]any) error {
	segs, err := segmentObjects(doc)
	if err != nil {
		return err
	}
	for i, seg := range segs {
		path := join(indexPath("segments", i), "shapeInstances")
		shapes, err := optionalObject(seg, indexPath("segments", i), "shapeInstances")
		if err != nil {
			return err
		}
		if shapes == nil {
			return &MigrationError{Path: path, Msg: "missing"}
		}
		for _, t := range shapeTypes {
			list, err := instanceObjects(shapes, path, t)
			if err != nil {
				return err
			}
			for _, inst := range list {
				normalizeInstance(t, inst)
			}
		}
	}
	return nil
}

func instanceObjects(shapes map[string]any, path string, t ShapeType) ([]map[string]any, error) {
	key := t.Plural()
	v, ok := shapes[key]
	if !ok || v == nil {
		shapes[key] = []any{}
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, &MigrationError{Path: join(path, key), Msg: "not an array"}
	}
	out := make([]map[string]any, len(arr))
	for i, e := range arr {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, &MigrationError{Path: indexPath(join(path, key), i), Msg: "not an object"}
		}
		out[i] = m
	}
	return out, nil
}

func normalizeInstance(t ShapeType, m map[string]any) {
	if id, _ := m["id"].(string); id == "" {
		m["id"] = NewID()
	}
	setDefault(m, "enabled", true)
	setDefault(m, "intensity", 1.0)
	setDefault(m, "color", []any{1.0, 1.0, 1.0})

	switch t {
	case ShapeCircle:
		setDefault(m, "shapeKind", string(defaultCircleKind))
		setDefault(m, "rotationSpeed", defaultRotationSpeed)
	case ShapeEpicycloid:
		setDefault(m, "rotationSpeed", defaultRotationSpeed)
	case ShapeExpandingCircle:
		convertMaxRadius(m)
		setDefault(m, "startRadius", defaultStartRadius)
		setDefault(m, "expansionSpeed", defaultExpansionSpeed)
		setDefault(m, "period", defaultPeriod)
		setDefault(m, "pulseMode", string(defaultPulseMode))
		setDefault(m, "attack", defaultAttack)
		setDefault(m, "decay", defaultDecay)
	}
}

// convertMaxRadius derives expansionSpeed = maxRadius / period and resets
// period to the new baseline. An instance that already has an expansion
// speed keeps it and its period; the stale maxRadius is dropped either way.
func convertMaxRadius(m map[string]any) {
	maxRadius, hasMax := toFloat(m["maxRadius"])
	delete(m, "maxRadius")
	if !hasMax {
		return
	}
	if _, ok := toFloat(m["expansionSpeed"]); ok {
		return
	}
	period, ok := toFloat(m["period"])
	if !ok || period <= 0 {
		period = legacyPeriod
	}
	m["expansionSpeed"] = math.Max(0, maxRadius) / period
	m["period"] = defaultPeriod
}

func migrateTransitions(doc map[string]any) error {
	segs, err := segmentObjects(doc)
	if err != nil {
		return err
	}
	for _, seg := range segs {
		setDefault(seg, "transitionDuration", DefaultTransitionDuration)
		setDefault(seg, "transitionProfile", toMap(DefaultTransitionProfile()))
	}
	return nil
}

func migrateAudioLock(doc map[string]any) error {
	setDefault(doc, "lockToAudioDuration", false)
	setDefault(doc, "audioCues", []any{})
	audio, err := optionalObject(doc, "", "audioTrack")
	if err != nil {
		return err
	}
	if audio != nil {
		setDefault(audio, "status", string(AudioMissing))
	}
	return nil
}

// toMap converts a typed value to the untyped form encoding/json produces.
func toMap(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("reel: marshal %T: %v", v, err))
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		panic(fmt.Sprintf("reel: unmarshal %T: %v", v, err))
	}
	return m
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	default:
		return v
	}
}
