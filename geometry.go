package reel

import "math"

// Vec2 is a point in normalized view space: the origin is the center of the
// frame and the shorter frame edge spans [-1, 1].
type Vec2 struct {
	X, Y float64
}

// minOutlinePoints keeps degenerate sample counts drawable.
const minOutlinePoints = 8

// Outline returns the closed outline of the circle at time t. Round circles
// are sampled with n points; the polygon kinds return their vertices.
func (c Circle) Outline(t float64, n int) []Vec2 {
	sides := n
	switch c.ShapeKind {
	case CircleTriangle:
		sides = 3
	case CircleSquare:
		sides = 4
	case CircleHexagon:
		sides = 6
	default:
		sides = max(sides, minOutlinePoints)
	}
	r := c.Radius * (1 + 0.05*math.Sin(c.Speed*t*2*math.Pi))
	rot := c.RotationSpeed * t
	pts := make([]Vec2, sides)
	for i := range pts {
		a := rot + 2*math.Pi*float64(i)/float64(sides)
		pts[i] = Vec2{r * math.Cos(a), r * math.Sin(a)}
	}
	return pts
}

// Points samples the wave across x in [-aspect, aspect] at time t.
func (w Wave) Points(t, aspect float64, n int) []Vec2 {
	n = max(n, 2)
	pts := make([]Vec2, n)
	for i := range pts {
		x := -aspect + 2*aspect*float64(i)/float64(n-1)
		pts[i] = Vec2{x, w.YOffset + w.Amplitude*math.Sin(w.Frequency*math.Pi*x+w.Speed*t)}
	}
	return pts
}

// Points samples one full closed trace of the epicycloid at time t. The
// sample count is Samples scaled by sampleFactor. Speed advances the rolling
// circle; RotationSpeed turns the whole figure.
func (e Epicycloid) Points(t, sampleFactor float64) []Vec2 {
	n := max(int(math.Round(float64(e.Samples)*sampleFactor)), minOutlinePoints)
	R, r := e.MajorRadius, e.MinorRadius
	if r <= 0 {
		return nil
	}
	span := 2 * math.Pi * float64(closingTurns(R/r))
	phase := e.Speed * t
	rot := e.RotationSpeed * t
	sin, cos := math.Sincos(rot)

	pts := make([]Vec2, n)
	for i := range pts {
		th := span*float64(i)/float64(n) + phase
		k := (R + r) / r * th
		x := (R+r)*math.Cos(th) - r*math.Cos(k)
		y := (R+r)*math.Sin(th) - r*math.Sin(k)
		x, y = x*e.Scale, y*e.Scale
		pts[i] = Vec2{x*cos - y*sin, x*sin + y*cos}
	}
	return pts
}

// closingTurns is the number of turns around the fixed circle after which
// the curve closes: the denominator of ratio, searched up to 16 and 1 when
// ratio is not a small fraction.
func closingTurns(ratio float64) int {
	for q := 1; q <= 16; q++ {
		v := ratio * float64(q)
		if math.Abs(v-math.Round(v)) < 1e-6 {
			return q
		}
	}
	return 1
}

// Ring returns the expanding circle's radius and envelope in [0, 1] at time
// t. The envelope rises over Attack seconds and fades over the last Decay
// seconds of each period.
func (c ExpandingCircle) Ring(t float64) (radius, envelope float64) {
	if c.Period <= 0 {
		return c.StartRadius, 0
	}
	t = math.Max(0, t)
	var local float64
	switch c.PulseMode {
	case PulseOnce:
		if t >= c.Period {
			return c.StartRadius + c.ExpansionSpeed*c.Period, 0
		}
		local = t
	case PulsePingPong:
		local = math.Mod(t, 2*c.Period)
		if local > c.Period {
			local = 2*c.Period - local
		}
	default:
		local = math.Mod(t, c.Period)
	}
	radius = c.StartRadius + c.ExpansionSpeed*local

	envelope = 1
	if c.Attack > 0 && local < c.Attack {
		envelope = local / c.Attack
	}
	if rest := c.Period - local; c.Decay > 0 && rest < c.Decay {
		envelope = math.Min(envelope, rest/c.Decay)
	}
	return radius, clamp01(envelope)
}
