package engine

import (
	"math/rand/v2"

	"github.com/kamstrup/intmap"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/cylitris/internal/core"
)

// colorBias is mixed 50/50 into every generated color, pulling the
// palette toward violet while keeping neighbours distinguishable.
var colorBias = colorful.Color{R: 0.4, G: 0.2, B: 0.8}

// colorStream selects the PCG stream used for color generation so it
// never shares a sequence with piece selection.
const colorStream = 0x9e3779b97f4a7c15

// SeedColor derives the display color of the piece placed with seed.
// The same seed always yields the same color.
func SeedColor(seed uint64, alpha float32) core.RGBA {
	rng := rand.New(rand.NewPCG(seed, colorStream))
	c := colorful.Color{R: rng.Float64(), G: rng.Float64(), B: rng.Float64()}
	c = c.BlendRgb(colorBias, 0.5)
	return core.RGBA{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: alpha}
}

// Palette caches SeedColor results. Drawing the grid every frame would
// otherwise reseed a generator for every occupied cell.
type Palette struct {
	colors *intmap.Map[uint64, core.RGBA]
	limit  int
}

// NewPalette creates a cache that is flushed once it holds more than
// limit entries.
func NewPalette(limit int) *Palette {
	return &Palette{
		colors: intmap.New[uint64, core.RGBA](limit),
		limit:  limit,
	}
}

// Color returns the color for seed at the given alpha.
func (p *Palette) Color(seed uint64, alpha float32) core.RGBA {
	c, ok := p.colors.Get(seed)
	if !ok {
		if p.colors.Len() >= p.limit {
			p.colors.Clear()
		}
		c = SeedColor(seed, 1)
		p.colors.Put(seed, c)
	}
	c.A = alpha
	return c
}

// Len returns the number of cached colors.
func (p *Palette) Len() int {
	return p.colors.Len()
}

// Reset drops every cached color.
func (p *Palette) Reset() {
	p.colors.Clear()
}
