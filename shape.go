package reel

import (
	"encoding/json"
	"math"
)

// ShapeType identifies one of the four shape instance variants.
type ShapeType uint8

const (
	ShapeCircle          ShapeType = iota // filled or outlined regular shape
	ShapeWave                             // horizontal sine band
	ShapeEpicycloid                       // rolling-circle curve
	ShapeExpandingCircle                  // ring that grows and fades
)

// shapeTypes lists every variant in collection order.
var shapeTypes = [...]ShapeType{ShapeCircle, ShapeWave, ShapeEpicycloid, ShapeExpandingCircle}

func (t ShapeType) String() string {
	switch t {
	case ShapeCircle:
		return "circle"
	case ShapeWave:
		return "wave"
	case ShapeEpicycloid:
		return "epicycloid"
	case ShapeExpandingCircle:
		return "expandingCircle"
	default:
		return "unknown"
	}
}

// Plural returns the JSON key of the collection list for t.
func (t ShapeType) Plural() string {
	return t.String() + "s"
}

// ShapeInstance is implemented by [Circle], [Wave], [Epicycloid] and
// [ExpandingCircle].
type ShapeInstance interface {
	InstanceID() string
	Type() ShapeType
}

// Interpolator is implemented by every shape variant so the transition engine
// can blend any of them.
type Interpolator[T any] interface {
	// Lerp moves every numeric parameter toward to by t. Identity, the
	// enabled flag and enumerated fields come from to.
	Lerp(to T, t float64) T
	// MaxRelativeChange is the largest |to-from|/max(from, 0.01) over the
	// parameters that change the size of the shape on screen.
	MaxRelativeChange(to T) float64
}

// CircleKind selects the outline drawn for a Circle instance.
type CircleKind string

const (
	CircleRound    CircleKind = "circle"
	CircleTriangle CircleKind = "triangle"
	CircleSquare   CircleKind = "square"
	CircleHexagon  CircleKind = "hexagon"
)

func (k CircleKind) valid() bool {
	switch k {
	case CircleRound, CircleTriangle, CircleSquare, CircleHexagon:
		return true
	}
	return false
}

// PulseMode controls how an ExpandingCircle repeats.
type PulseMode string

const (
	PulseLoop     PulseMode = "loop"     // restart from StartRadius every period
	PulsePingPong PulseMode = "pingPong" // grow then shrink
	PulseOnce     PulseMode = "once"     // grow once and stay faded out
)

func (m PulseMode) valid() bool {
	switch m {
	case PulseLoop, PulsePingPong, PulseOnce:
		return true
	}
	return false
}

// Circle is a pulsing regular shape centered on screen.
type Circle struct {
	ID            string     `json:"id"`
	Enabled       bool       `json:"enabled"`
	Intensity     float64    `json:"intensity"`
	Color         Color      `json:"color"`
	Radius        float64    `json:"radius"`
	Thickness     float64    `json:"thickness"`
	Glow          float64    `json:"glow"`
	Speed         float64    `json:"speed"`
	RotationSpeed float64    `json:"rotationSpeed"`
	ShapeKind     CircleKind `json:"shapeKind"`
}

func (c Circle) InstanceID() string { return c.ID }
func (Circle) Type() ShapeType      { return ShapeCircle }

func (c Circle) Lerp(to Circle, t float64) Circle {
	out := to
	out.Intensity = lerp(c.Intensity, to.Intensity, t)
	out.Color = c.Color.Lerp(to.Color, t)
	out.Radius = lerp(c.Radius, to.Radius, t)
	out.Thickness = lerp(c.Thickness, to.Thickness, t)
	out.Glow = lerp(c.Glow, to.Glow, t)
	out.Speed = lerp(c.Speed, to.Speed, t)
	out.RotationSpeed = lerp(c.RotationSpeed, to.RotationSpeed, t)
	return out
}

func (c Circle) MaxRelativeChange(to Circle) float64 {
	return relativeChange(c.Radius, to.Radius)
}

// Wave is a horizontal sine band.
type Wave struct {
	ID        string  `json:"id"`
	Enabled   bool    `json:"enabled"`
	Intensity float64 `json:"intensity"`
	Color     Color   `json:"color"`
	Amplitude float64 `json:"amplitude"`
	Frequency float64 `json:"frequency"`
	Speed     float64 `json:"speed"`
	Thickness float64 `json:"thickness"`
	Glow      float64 `json:"glow"`
	YOffset   float64 `json:"yOffset"`
}

func (w Wave) InstanceID() string { return w.ID }
func (Wave) Type() ShapeType      { return ShapeWave }

func (w Wave) Lerp(to Wave, t float64) Wave {
	out := to
	out.Intensity = lerp(w.Intensity, to.Intensity, t)
	out.Color = w.Color.Lerp(to.Color, t)
	out.Amplitude = lerp(w.Amplitude, to.Amplitude, t)
	out.Frequency = lerp(w.Frequency, to.Frequency, t)
	out.Speed = lerp(w.Speed, to.Speed, t)
	out.Thickness = lerp(w.Thickness, to.Thickness, t)
	out.Glow = lerp(w.Glow, to.Glow, t)
	out.YOffset = lerp(w.YOffset, to.YOffset, t)
	return out
}

func (w Wave) MaxRelativeChange(to Wave) float64 {
	return math.Max(relativeChange(w.Amplitude, to.Amplitude), relativeChange(w.Frequency, to.Frequency))
}

// Epicycloid is the curve traced by a point on a circle of radius r rolling
// around a fixed circle of radius R.
type Epicycloid struct {
	ID            string  `json:"id"`
	Enabled       bool    `json:"enabled"`
	Intensity     float64 `json:"intensity"`
	Color         Color   `json:"color"`
	MajorRadius   float64 `json:"R"`
	MinorRadius   float64 `json:"r"`
	Scale         float64 `json:"scale"`
	Thickness     float64 `json:"thickness"`
	Speed         float64 `json:"speed"`
	Glow          float64 `json:"glow"`
	RotationSpeed float64 `json:"rotationSpeed"`
	Samples       int     `json:"samples"`
}

func (e Epicycloid) InstanceID() string { return e.ID }
func (Epicycloid) Type() ShapeType      { return ShapeEpicycloid }

func (e Epicycloid) Lerp(to Epicycloid, t float64) Epicycloid {
	out := to
	out.Intensity = lerp(e.Intensity, to.Intensity, t)
	out.Color = e.Color.Lerp(to.Color, t)
	out.MajorRadius = lerp(e.MajorRadius, to.MajorRadius, t)
	out.MinorRadius = lerp(e.MinorRadius, to.MinorRadius, t)
	out.Scale = lerp(e.Scale, to.Scale, t)
	out.Thickness = lerp(e.Thickness, to.Thickness, t)
	out.Speed = lerp(e.Speed, to.Speed, t)
	out.Glow = lerp(e.Glow, to.Glow, t)
	out.RotationSpeed = lerp(e.RotationSpeed, to.RotationSpeed, t)
	out.Samples = int(math.Round(lerp(float64(e.Samples), float64(to.Samples), t)))
	return out
}

func (e Epicycloid) MaxRelativeChange(to Epicycloid) float64 {
	m := relativeChange(e.MajorRadius, to.MajorRadius)
	m = math.Max(m, relativeChange(e.MinorRadius, to.MinorRadius))
	return math.Max(m, relativeChange(e.Scale, to.Scale))
}

// ExpandingCircle is a ring that grows from StartRadius at ExpansionSpeed
// units per second, shaped by an attack/decay envelope over each period.
type ExpandingCircle struct {
	ID             string    `json:"id"`
	Enabled        bool      `json:"enabled"`
	Intensity      float64   `json:"intensity"`
	Color          Color     `json:"color"`
	StartRadius    float64   `json:"startRadius"`
	ExpansionSpeed float64   `json:"expansionSpeed"`
	Period         float64   `json:"period"`
	Thickness      float64   `json:"thickness"`
	Glow           float64   `json:"glow"`
	PulseMode      PulseMode `json:"pulseMode"`
	Attack         float64   `json:"attack"`
	Decay          float64   `json:"decay"`
}

func (c ExpandingCircle) InstanceID() string { return c.ID }
func (ExpandingCircle) Type() ShapeType      { return ShapeExpandingCircle }

func (c ExpandingCircle) Lerp(to ExpandingCircle, t float64) ExpandingCircle {
	out := to
	out.Intensity = lerp(c.Intensity, to.Intensity, t)
	out.Color = c.Color.Lerp(to.Color, t)
	out.StartRadius = lerp(c.StartRadius, to.StartRadius, t)
	out.ExpansionSpeed = lerp(c.ExpansionSpeed, to.ExpansionSpeed, t)
	out.Period = lerp(c.Period, to.Period, t)
	out.Thickness = lerp(c.Thickness, to.Thickness, t)
	out.Glow = lerp(c.Glow, to.Glow, t)
	out.Attack = lerp(c.Attack, to.Attack, t)
	out.Decay = lerp(c.Decay, to.Decay, t)
	return out
}

func (c ExpandingCircle) MaxRelativeChange(to ExpandingCircle) float64 {
	return math.Max(relativeChange(c.StartRadius, to.StartRadius), relativeChange(c.ExpansionSpeed, to.ExpansionSpeed))
}

// relativeChange floors the denominator at 0.01 so parameters near zero do
// not blow up the ratio.
func relativeChange(from, to float64) float64 {
	return math.Abs(to-from) / math.Max(from, 0.01)
}

// ShapeLimits caps the number of instances of each type a segment may hold.
type ShapeLimits struct {
	Circles          int `json:"circles"`
	Waves            int `json:"waves"`
	Epicycloids      int `json:"epicycloids"`
	ExpandingCircles int `json:"expandingCircles"`
}

// DefaultShapeLimit is the per-type limit used when a project does not set one.
const DefaultShapeLimit = 8

// DefaultShapeLimits returns 8 of each type.
func DefaultShapeLimits() ShapeLimits {
	return ShapeLimits{DefaultShapeLimit, DefaultShapeLimit, DefaultShapeLimit, DefaultShapeLimit}
}

// Of returns the limit for t.
func (l ShapeLimits) Of(t ShapeType) int {
	switch t {
	case ShapeCircle:
		return l.Circles
	case ShapeWave:
		return l.Waves
	case ShapeEpicycloid:
		return l.Epicycloids
	case ShapeExpandingCircle:
		return l.ExpandingCircles
	}
	return 0
}

// ShapeInstances is the collection a segment owns: one ordered list per
// shape type.
type ShapeInstances struct {
	Circles          []Circle          `json:"circles"`
	Waves            []Wave            `json:"waves"`
	Epicycloids      []Epicycloid      `json:"epicycloids"`
	ExpandingCircles []ExpandingCircle `json:"expandingCircles"`
}

// MarshalJSON writes empty lists as [] rather than null.
func (s ShapeInstances) MarshalJSON() ([]byte, error) {
	type plain ShapeInstances
	out := plain(s.Clone())
	return json.Marshal(out)
}

// Len returns the number of instances of type t.
func (s ShapeInstances) Len(t ShapeType) int {
	switch t {
	case ShapeCircle:
		return len(s.Circles)
	case ShapeWave:
		return len(s.Waves)
	case ShapeEpicycloid:
		return len(s.Epicycloids)
	case ShapeExpandingCircle:
		return len(s.ExpandingCircles)
	}
	return 0
}

// Total returns the number of instances across all types.
func (s ShapeInstances) Total() int {
	return len(s.Circles) + len(s.Waves) + len(s.Epicycloids) + len(s.ExpandingCircles)
}

// CheckLimits returns a *LimitExceededError for the first type, in
// collection order, whose list is longer than its limit.
func (s ShapeInstances) CheckLimits(l ShapeLimits) error {
	for _, t := range shapeTypes {
		if n, max := s.Len(t), l.Of(t); n > max {
			return &LimitExceededError{Type: t, Count: n, Limit: max}
		}
	}
	return nil
}

// Clone returns a deep copy. Lists are never nil in the copy.
func (s ShapeInstances) Clone() ShapeInstances {
	return ShapeInstances{
		Circles:          append(make([]Circle, 0, len(s.Circles)), s.Circles...),
		Waves:            append(make([]Wave, 0, len(s.Waves)), s.Waves...),
		Epicycloids:      append(make([]Epicycloid, 0, len(s.Epicycloids)), s.Epicycloids...),
		ExpandingCircles: append(make([]ExpandingCircle, 0, len(s.ExpandingCircles)), s.ExpandingCircles...),
	}
}

// CloneWithNewIDs returns a deep copy in which every instance has a fresh id.
func (s ShapeInstances) CloneWithNewIDs() ShapeInstances {
	out := s.Clone()
	for i := range out.Circles {
		out.Circles[i].ID = NewID()
	}
	for i := range out.Waves {
		out.Waves[i].ID = NewID()
	}
	for i := range out.Epicycloids {
		out.Epicycloids[i].ID = NewID()
	}
	for i := range out.ExpandingCircles {
		out.ExpandingCircles[i].ID = NewID()
	}
	return out
}

// IDs returns every instance id in collection order.
func (s ShapeInstances) IDs() []string {
	ids := make([]string, 0, s.Total())
	for _, c := range s.Circles {
		ids = append(ids, c.ID)
	}
	for _, w := range s.Waves {
		ids = append(ids, w.ID)
	}
	for _, e := range s.Epicycloids {
		ids = append(ids, e.ID)
	}
	for _, c := range s.ExpandingCircles {
		ids = append(ids, c.ID)
	}
	return ids
}

// Find returns the instance with the given id.
func (s ShapeInstances) Find(id string) (ShapeInstance, bool) {
	if i := indexByID(s.Circles, id); i >= 0 {
		return s.Circles[i], true
	}
	if i := indexByID(s.Waves, id); i >= 0 {
		return s.Waves[i], true
	}
	if i := indexByID(s.Epicycloids, id); i >= 0 {
		return s.Epicycloids[i], true
	}
	if i := indexByID(s.ExpandingCircles, id); i >= 0 {
		return s.ExpandingCircles[i], true
	}
	return nil, false
}

// Add returns a copy of s with inst appended to its list. An empty id is
// replaced with a fresh one. s is not modified when the limit would be
// exceeded.
func (s ShapeInstances) Add(inst ShapeInstance, limits ShapeLimits) (ShapeInstances, error) {
	t := inst.Type()
	if n, max := s.Len(t)+1, limits.Of(t); n > max {
		return s, &LimitExceededError{Type: t, Count: n, Limit: max}
	}
	out := s.Clone()
	switch v := inst.(type) {
	case Circle:
		if v.ID == "" {
			v.ID = NewID()
		}
		out.Circles = append(out.Circles, v)
	case Wave:
		if v.ID == "" {
			v.ID = NewID()
		}
		out.Waves = append(out.Waves, v)
	case Epicycloid:
		if v.ID == "" {
			v.ID = NewID()
		}
		out.Epicycloids = append(out.Epicycloids, v)
	case ExpandingCircle:
		if v.ID == "" {
			v.ID = NewID()
		}
		out.ExpandingCircles = append(out.ExpandingCircles, v)
	}
	return out, nil
}

// Replace returns a copy of s in which the instance sharing inst's id and
// type is replaced by inst. ok is false when no such instance exists.
func (s ShapeInstances) Replace(inst ShapeInstance) (out ShapeInstances, ok bool) {
	out = s.Clone()
	switch v := inst.(type) {
	case Circle:
		ok = replaceByID(out.Circles, v)
	case Wave:
		ok = replaceByID(out.Waves, v)
	case Epicycloid:
		ok = replaceByID(out.Epicycloids, v)
	case ExpandingCircle:
		ok = replaceByID(out.ExpandingCircles, v)
	}
	if !ok {
		return s, false
	}
	return out, true
}

// Remove returns a copy of s without the instance with the given id.
func (s ShapeInstances) Remove(id string) (ShapeInstances, bool) {
	out := s.Clone()
	var ok bool
	if out.Circles, ok = removeByID(out.Circles, id); ok {
		return out, true
	}
	if out.Waves, ok = removeByID(out.Waves, id); ok {
		return out, true
	}
	if out.Epicycloids, ok = removeByID(out.Epicycloids, id); ok {
		return out, true
	}
	if out.ExpandingCircles, ok = removeByID(out.ExpandingCircles, id); ok {
		return out, true
	}
	return s, false
}

func indexByID[T ShapeInstance](list []T, id string) int {
	for i, v := range list {
		if v.InstanceID() == id {
			return i
		}
	}
	return -1
}

func replaceByID[T ShapeInstance](list []T, inst T) bool {
	i := indexByID(list, inst.InstanceID())
	if i < 0 {
		return false
	}
	list[i] = inst
	return true
}

func removeByID[T ShapeInstance](list []T, id string) ([]T, bool) {
	i := indexByID(list, id)
	if i < 0 {
		return list, false
	}
	return append(list[:i], list[i+1:]...), true
}
