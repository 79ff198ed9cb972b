package reel

import "github.com/tanema/gween/ease"

// Easing names a reparameterization of linear transition progress.
type Easing string

const (
	EasingLinear    Easing = "linear"
	EasingEaseInOut Easing = "easeInOut" // smoothstep
	EasingSlowEase  Easing = "slowEase"  // smootherstep

	// Curves borrowed from gween. They are evaluated in float32.
	EasingInOutSine  Easing = "inOutSine"
	EasingInOutQuad  Easing = "inOutQuad"
	EasingInOutCubic Easing = "inOutCubic"
	EasingInOutQuart Easing = "inOutQuart"
	EasingInOutQuint Easing = "inOutQuint"
	EasingInOutCirc  Easing = "inOutCirc"
)

var gweenEasings = map[Easing]ease.TweenFunc{
	EasingInOutSine:  ease.InOutSine,
	EasingInOutQuad:  ease.InOutQuad,
	EasingInOutCubic: ease.InOutCubic,
	EasingInOutQuart: ease.InOutQuart,
	EasingInOutQuint: ease.InOutQuint,
	EasingInOutCirc:  ease.InOutCirc,
}

// Valid reports whether e names a known curve.
func (e Easing) Valid() bool {
	switch e {
	case EasingLinear, EasingEaseInOut, EasingSlowEase:
		return true
	}
	_, ok := gweenEasings[e]
	return ok
}

// Apply maps t in [0, 1] to eased progress. Values outside the range are
// clamped first. Unknown names fall back to easeInOut.
func (e Easing) Apply(t float64) float64 {
	t = clamp01(t)
	switch e {
	case EasingLinear:
		return t
	case EasingSlowEase:
		return t * t * t * (t*(t*6-15) + 10)
	case EasingEaseInOut, "":
		return t * t * (3 - 2*t)
	}
	if fn, ok := gweenEasings[e]; ok {
		if t == 1 {
			return 1
		}
		return float64(fn(float32(t), 0, 1, 1))
	}
	return t * t * (3 - 2*t)
}

// TweenFunc adapts e to gween's easing signature so it can drive a
// gween.Tween.
func (e Easing) TweenFunc() ease.TweenFunc {
	if fn, ok := gweenEasings[e]; ok {
		return fn
	}
	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		return b + c*float32(e.Apply(float64(t/d)))
	}
}
