package reel

// Per-slot defaults. A new instance in slot i of its list starts from entry i
// so that freshly seeded segments do not stack identical shapes on top of
// each other. Slots past the end of a table reuse the last entry.

var circleDefaults = [DefaultShapeLimit]Circle{
	{Radius: 0.30, Thickness: 0.010, Glow: 0.6, Speed: 1.0},
	{Radius: 0.45, Thickness: 0.008, Glow: 0.5, Speed: 0.8},
	{Radius: 0.60, Thickness: 0.006, Glow: 0.4, Speed: 0.6},
	{Radius: 0.20, Thickness: 0.012, Glow: 0.7, Speed: 1.2},
	{Radius: 0.75, Thickness: 0.005, Glow: 0.3, Speed: 0.5},
	{Radius: 0.15, Thickness: 0.014, Glow: 0.8, Speed: 1.4},
	{Radius: 0.90, Thickness: 0.004, Glow: 0.3, Speed: 0.4},
	{Radius: 0.10, Thickness: 0.016, Glow: 0.9, Speed: 1.6},
}

var waveDefaults = [DefaultShapeLimit]Wave{
	{Amplitude: 0.20, Frequency: 3.0, Speed: 1.0, Thickness: 0.010, Glow: 0.5, YOffset: 0.0},
	{Amplitude: 0.15, Frequency: 5.0, Speed: 1.5, Thickness: 0.008, Glow: 0.4, YOffset: 0.2},
	{Amplitude: 0.10, Frequency: 7.0, Speed: 2.0, Thickness: 0.006, Glow: 0.4, YOffset: -0.2},
	{Amplitude: 0.25, Frequency: 2.0, Speed: 0.7, Thickness: 0.012, Glow: 0.6, YOffset: 0.4},
	{Amplitude: 0.08, Frequency: 9.0, Speed: 2.5, Thickness: 0.005, Glow: 0.3, YOffset: -0.4},
	{Amplitude: 0.30, Frequency: 1.5, Speed: 0.5, Thickness: 0.014, Glow: 0.7, YOffset: 0.6},
	{Amplitude: 0.05, Frequency: 11.0, Speed: 3.0, Thickness: 0.004, Glow: 0.3, YOffset: -0.6},
	{Amplitude: 0.35, Frequency: 1.0, Speed: 0.3, Thickness: 0.016, Glow: 0.8, YOffset: 0.8},
}

var epicycloidDefaults = [DefaultShapeLimit]Epicycloid{
	{MajorRadius: 5, MinorRadius: 1, Scale: 0.08, Thickness: 0.006, Speed: 0.5, Glow: 0.6, Samples: 256},
	{MajorRadius: 3, MinorRadius: 1, Scale: 0.12, Thickness: 0.005, Speed: -0.4, Glow: 0.5, Samples: 256},
	{MajorRadius: 7, MinorRadius: 2, Scale: 0.05, Thickness: 0.004, Speed: 0.3, Glow: 0.5, Samples: 384},
	{MajorRadius: 4, MinorRadius: 1.5, Scale: 0.09, Thickness: 0.006, Speed: -0.6, Glow: 0.7, Samples: 256},
	{MajorRadius: 8, MinorRadius: 3, Scale: 0.04, Thickness: 0.004, Speed: 0.2, Glow: 0.4, Samples: 512},
	{MajorRadius: 6, MinorRadius: 1, Scale: 0.07, Thickness: 0.005, Speed: -0.3, Glow: 0.6, Samples: 320},
	{MajorRadius: 2, MinorRadius: 1, Scale: 0.18, Thickness: 0.008, Speed: 0.8, Glow: 0.8, Samples: 192},
	{MajorRadius: 9, MinorRadius: 2.5, Scale: 0.04, Thickness: 0.003, Speed: -0.2, Glow: 0.4, Samples: 512},
}

var expandingCircleDefaults = [DefaultShapeLimit]ExpandingCircle{
	{StartRadius: 0, ExpansionSpeed: 0.40, Period: 2.0, Thickness: 0.010, Glow: 0.6, Attack: 0.1, Decay: 0.5},
	{StartRadius: 0, ExpansionSpeed: 0.30, Period: 3.0, Thickness: 0.008, Glow: 0.5, Attack: 0.1, Decay: 0.6},
	{StartRadius: 0.1, ExpansionSpeed: 0.50, Period: 1.5, Thickness: 0.012, Glow: 0.7, Attack: 0.05, Decay: 0.4},
	{StartRadius: 0, ExpansionSpeed: 0.25, Period: 4.0, Thickness: 0.006, Glow: 0.4, Attack: 0.2, Decay: 0.7},
	{StartRadius: 0.2, ExpansionSpeed: 0.60, Period: 1.0, Thickness: 0.014, Glow: 0.8, Attack: 0.05, Decay: 0.3},
	{StartRadius: 0, ExpansionSpeed: 0.20, Period: 5.0, Thickness: 0.005, Glow: 0.3, Attack: 0.3, Decay: 0.8},
	{StartRadius: 0.05, ExpansionSpeed: 0.45, Period: 2.5, Thickness: 0.009, Glow: 0.6, Attack: 0.1, Decay: 0.5},
	{StartRadius: 0, ExpansionSpeed: 0.35, Period: 3.5, Thickness: 0.007, Glow: 0.5, Attack: 0.15, Decay: 0.6},
}

// Values for fields added after the first schema version. Migration fills
// them in when a document predates them.
const (
	defaultCircleKind     = CircleRound
	defaultRotationSpeed  = 0.0
	defaultStartRadius    = 0.0
	defaultPulseMode      = PulseLoop
	defaultAttack         = 0.1
	defaultDecay          = 0.5
	defaultExpansionSpeed = 0.4
	// defaultPeriod is the period every instance gets after its maxRadius
	// has been converted to an expansion speed.
	defaultPeriod = 2.0
	// legacyPeriod is assumed when an old instance has no usable period.
	legacyPeriod = 4.0
)

// defaultShapeCounts seeds new segments and migrated documents that have no
// counts of their own.
var defaultShapeCounts = [...]int{
	ShapeCircle:          3,
	ShapeWave:            3,
	ShapeEpicycloid:      2,
	ShapeExpandingCircle: 2,
}

func slotIndex(slot int) int {
	if slot < 0 {
		return 0
	}
	if slot >= DefaultShapeLimit {
		return DefaultShapeLimit - 1
	}
	return slot
}

// DefaultCircle returns a new enabled circle with the defaults of slot.
func DefaultCircle(slot int) Circle {
	c := circleDefaults[slotIndex(slot)]
	c.ID, c.Enabled, c.Intensity, c.Color = NewID(), true, 1, ColorWhite
	c.ShapeKind = defaultCircleKind
	return c
}

// DefaultWave returns a new enabled wave with the defaults of slot.
func DefaultWave(slot int) Wave {
	w := waveDefaults[slotIndex(slot)]
	w.ID, w.Enabled, w.Intensity, w.Color = NewID(), true, 1, ColorWhite
	return w
}

// DefaultEpicycloid returns a new enabled epicycloid with the defaults of slot.
func DefaultEpicycloid(slot int) Epicycloid {
	e := epicycloidDefaults[slotIndex(slot)]
	e.ID, e.Enabled, e.Intensity, e.Color = NewID(), true, 1, ColorWhite
	return e
}

// DefaultExpandingCircle returns a new enabled expanding circle with the
// defaults of slot.
func DefaultExpandingCircle(slot int) ExpandingCircle {
	c := expandingCircleDefaults[slotIndex(slot)]
	c.ID, c.Enabled, c.Intensity, c.Color = NewID(), true, 1, ColorWhite
	c.PulseMode = defaultPulseMode
	return c
}

// DefaultShape returns a new instance of type t for slot.
func DefaultShape(t ShapeType, slot int) ShapeInstance {
	switch t {
	case ShapeWave:
		return DefaultWave(slot)
	case ShapeEpicycloid:
		return DefaultEpicycloid(slot)
	case ShapeExpandingCircle:
		return DefaultExpandingCircle(slot)
	default:
		return DefaultCircle(slot)
	}
}

// SeedShapeInstances builds a collection holding the default number of each
// type, capped by limits.
func SeedShapeInstances(limits ShapeLimits) ShapeInstances {
	var s ShapeInstances
	for _, t := range shapeTypes {
		n := min(defaultShapeCounts[t], limits.Of(t))
		s = appendDefaults(s, t, n)
	}
	return s.Clone()
}

func appendDefaults(s ShapeInstances, t ShapeType, n int) ShapeInstances {
	for slot := 0; slot < n; slot++ {
		switch t {
		case ShapeCircle:
			s.Circles = append(s.Circles, DefaultCircle(slot))
		case ShapeWave:
			s.Waves = append(s.Waves, DefaultWave(slot))
		case ShapeEpicycloid:
			s.Epicycloids = append(s.Epicycloids, DefaultEpicycloid(slot))
		case ShapeExpandingCircle:
			s.ExpandingCircles = append(s.ExpandingCircles, DefaultExpandingCircle(slot))
		}
	}
	return s
}
