package reel

import (
	"testing"
)

func epi(R, r, scale float64, samples int) Epicycloid {
	return Epicycloid{
		ID: NewID(), Enabled: true, Intensity: 1, Color: ColorWhite,
		MajorRadius: R, MinorRadius: r, Scale: scale,
		Thickness: 0.01, Speed: 0.5, Glow: 0.5, Samples: samples,
	}
}

func TestTransitionWeightBoundaries(t *testing.T) {
	for _, e := range []Easing{EasingLinear, EasingEaseInOut, EasingSlowEase, EasingInOutSine, EasingInOutCirc} {
		for _, change := range []float64{0, 0.1, 9} {
			prof := TransitionProfile{Easing: e, ParamClamp: DefaultParamClamp}
			if w := TransitionWeight(0, prof, change); w != 0 {
				t.Errorf("%s change %v: weight(0) = %v, want 0", e, change, w)
			}
			if w := TransitionWeight(1, prof, change); !approxEqual(w, 1, 1e-12) {
				t.Errorf("%s change %v: weight(1) = %v, want 1", e, change, w)
			}
		}
	}
}

func TestTransitionWeightBelowClampIsEased(t *testing.T) {
	prof := DefaultTransitionProfile()
	for _, p := range []float64{0.1, 0.3, 0.5, 0.9} {
		want := EasingEaseInOut.Apply(p)
		if got := TransitionWeight(p, prof, 0.2); got != want {
			t.Errorf("weight(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestTransitionWeightClampFormula(t *testing.T) {
	prof := DefaultTransitionProfile()
	change := 9.0 // R from 2 to 20
	slowdown := 0.35 / change
	eased := EasingEaseInOut.Apply(0.5)
	want := eased*slowdown + (1-slowdown)*0.25
	if got := TransitionWeight(0.5, prof, change); !approxEqual(got, want, 1e-12) {
		t.Errorf("weight = %v, want %v", got, want)
	}
}

func TestBlendEpicycloidClampSuppression(t *testing.T) {
	prev, next := epi(2, 1, 0.1, 256), epi(20, 1, 0.1, 256)
	out := BlendEpicycloid(prev, next, 0.5, DefaultTransitionProfile())

	eased := (out.MajorRadius - prev.MajorRadius) / (next.MajorRadius - prev.MajorRadius)
	if eased >= 0.5 {
		t.Errorf("eased = %v, want < 0.5", eased)
	}
	if out.MajorRadius <= prev.MajorRadius || out.MajorRadius >= next.MajorRadius {
		t.Errorf("R = %v, want between %v and %v", out.MajorRadius, prev.MajorRadius, next.MajorRadius)
	}
}

func TestBlendEpicycloidEndpoints(t *testing.T) {
	prev := epi(2, 1, 0.1, 100)
	next := epi(7.3, 1.7, 0.0812345, 333)
	next.Color = Color{0.1, 0.2, 0.3}
	next.RotationSpeed = -0.77
	prof := TransitionProfile{Easing: EasingSlowEase, ParamClamp: 0.2}

	if got := BlendEpicycloid(prev, next, 1, prof); got != next {
		t.Errorf("progress 1 = %+v, want next %+v", got, next)
	}
	if got := BlendEpicycloid(prev, next, 1.5, prof); got != next {
		t.Errorf("progress 1.5 = %+v, want next", got)
	}

	start := BlendEpicycloid(prev, next, 0, prof)
	if start.MajorRadius != prev.MajorRadius || start.MinorRadius != prev.MinorRadius ||
		start.Scale != prev.Scale || start.Samples != prev.Samples || start.Color != prev.Color {
		t.Errorf("progress 0 = %+v, want numerics of prev %+v", start, prev)
	}
	if start.ID != next.ID {
		t.Error("blend should carry next's identity")
	}
}

func TestBlendEpicycloidRoundsSamples(t *testing.T) {
	prev, next := epi(3, 1, 0.1, 100), epi(3, 1, 0.1, 201)
	prof := TransitionProfile{Easing: EasingLinear, ParamClamp: 1}
	out := BlendEpicycloid(prev, next, 0.5, prof)
	if out.Samples != 151 {
		t.Errorf("Samples = %d, want 151", out.Samples)
	}
}

func TestBlendGenericShapes(t *testing.T) {
	prof := TransitionProfile{Easing: EasingLinear, ParamClamp: 1}

	c := Blend(Circle{Radius: 0.2, Glow: 0}, Circle{Radius: 0.3, Glow: 1}, 0.5, prof)
	if !approxEqual(c.Radius, 0.25, 1e-12) || !approxEqual(c.Glow, 0.5, 1e-12) {
		t.Errorf("circle = %+v", c)
	}

	w := Blend(Wave{Amplitude: 0.1, YOffset: -1}, Wave{Amplitude: 0.12, YOffset: 1}, 0.25, prof)
	if !approxEqual(w.YOffset, -0.5, 1e-12) {
		t.Errorf("wave YOffset = %v, want -0.5", w.YOffset)
	}

	ec := Blend(
		ExpandingCircle{ExpansionSpeed: 0.4, Period: 2, PulseMode: PulseLoop},
		ExpandingCircle{ExpansionSpeed: 0.42, Period: 4, PulseMode: PulseOnce},
		0.5, prof)
	if !approxEqual(ec.Period, 3, 1e-12) || ec.PulseMode != PulseOnce {
		t.Errorf("expanding circle = %+v", ec)
	}
}

func TestMaxRelativeChangeFloor(t *testing.T) {
	if got := (Circle{Radius: 0}).MaxRelativeChange(Circle{Radius: 0.01}); !approxEqual(got, 1, 1e-12) {
		t.Errorf("change from 0 = %v, want 1", got)
	}
	e := epi(2, 1, 0.1, 10).MaxRelativeChange(epi(2, 3, 0.1, 10))
	if !approxEqual(e, 2, 1e-12) {
		t.Errorf("epicycloid change = %v, want 2 (from r)", e)
	}
}

func TestBlendInstancesPairsBySlot(t *testing.T) {
	prev := ShapeInstances{Circles: []Circle{{ID: "a", Radius: 0.2}}}
	next := ShapeInstances{
		Circles: []Circle{{ID: "b", Radius: 0.22}, {ID: "c", Radius: 0.9}},
		Waves:   []Wave{{ID: "w", Amplitude: 0.3}},
	}
	prof := TransitionProfile{Easing: EasingLinear, ParamClamp: 1}
	out := BlendInstances(prev, next, 0.5, prof)

	if len(out.Circles) != 2 || len(out.Waves) != 1 {
		t.Fatalf("lengths = %d circles, %d waves; want 2, 1", len(out.Circles), len(out.Waves))
	}
	if out.Circles[0].ID != "b" || !approxEqual(out.Circles[0].Radius, 0.21, 1e-12) {
		t.Errorf("circle 0 = %+v", out.Circles[0])
	}
	if out.Circles[1] != next.Circles[1] {
		t.Errorf("unmatched circle = %+v, want %+v", out.Circles[1], next.Circles[1])
	}
	if out.Waves[0] != next.Waves[0] {
		t.Errorf("unmatched wave = %+v", out.Waves[0])
	}
}

func TestBlendInstancesCompleteIsCopy(t *testing.T) {
	next := ShapeInstances{Epicycloids: []Epicycloid{epi(3, 1, 0.1, 64)}}
	out := BlendInstances(ShapeInstances{}, next, 1, DefaultTransitionProfile())
	out.Epicycloids[0].MajorRadius = 99
	if next.Epicycloids[0].MajorRadius != 3 {
		t.Error("result aliases next")
	}
}
