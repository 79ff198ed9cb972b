package reel

// Color is a normalized RGB color with components in [0, 1]. It encodes as a
// three element JSON array.
type Color [3]float64

// ColorWhite is the identity tint.
var ColorWhite = Color{1, 1, 1}

// ColorBlack is the default background.
var ColorBlack = Color{0, 0, 0}

// Lerp interpolates each channel toward to by t.
func (c Color) Lerp(to Color, t float64) Color {
	return Color{
		lerp(c[0], to[0], t),
		lerp(c[1], to[1], t),
		lerp(c[2], to[2], t),
	}
}

// Mul multiplies channel-wise. Used to apply a segment tint.
func (c Color) Mul(o Color) Color {
	return Color{c[0] * o[0], c[1] * o[1], c[2] * o[2]}
}

// ptr returns a pointer to a copy of c.
func (c Color) ptr() *Color { return &c }

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
