package core

// RGBA is a color with four channels in [0, 1].
// The zero value is fully transparent and means "terminal default".
type RGBA struct {
	R, G, B, A float32
}

// Transparent reports whether the color carries no visible information.
func (c RGBA) Transparent() bool {
	return c.A <= 0
}

// Scale multiplies the color channels by f, leaving alpha untouched.
// Used for depth shading; results are clamped to [0, 1].
func (c RGBA) Scale(f float32) RGBA {
	return RGBA{
		R: clamp01(c.R * f),
		G: clamp01(c.G * f),
		B: clamp01(c.B * f),
		A: c.A,
	}
}

// Flatten pre-multiplies alpha against a black background and returns an
// opaque color. Terminals cannot blend, so translucent draws (the landing
// shadow) become darker opaque ones.
func (c RGBA) Flatten() RGBA {
	if c.A >= 1 {
		return c
	}
	return RGBA{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: 1}
}

// Common UI colors.
var (
	ColorDefault = RGBA{}
	ColorGray    = RGBA{R: 0.45, G: 0.45, B: 0.5, A: 1}
	ColorDim     = RGBA{R: 0.25, G: 0.25, B: 0.3, A: 1}
	ColorAccent  = RGBA{R: 0.53, G: 0.81, B: 0.92, A: 1} // sky blue
	ColorWarning = RGBA{R: 1, G: 0.65, B: 0, A: 1}
)

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
