package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedColorDeterministic(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		a := SeedColor(seed, 1)
		b := SeedColor(seed, 1)
		assert.Equal(t, a, b, "seed %d", seed)
	}
	assert.NotEqual(t, SeedColor(1, 1), SeedColor(2, 1))
}

func TestSeedColorRange(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		c := SeedColor(seed, 0.5)
		// half of a [0,1) draw plus half the bias
		assert.GreaterOrEqual(t, c.R, float32(0.2))
		assert.Less(t, c.R, float32(0.7))
		assert.GreaterOrEqual(t, c.G, float32(0.1))
		assert.Less(t, c.G, float32(0.6))
		assert.GreaterOrEqual(t, c.B, float32(0.4))
		assert.Less(t, c.B, float32(0.9))
		assert.Equal(t, float32(0.5), c.A)
	}
}

func TestPaletteMatchesSeedColor(t *testing.T) {
	p := NewPalette(8)

	for seed := uint64(0); seed < 5; seed++ {
		assert.Equal(t, SeedColor(seed, 1), p.Color(seed, 1))
	}
	assert.Equal(t, 5, p.Len())

	half := p.Color(3, 0.5)
	want := SeedColor(3, 0.5)
	assert.Equal(t, want, half, "alpha is applied to the cached color")
	assert.Equal(t, 5, p.Len())
}

func TestPaletteFlushesAtLimit(t *testing.T) {
	p := NewPalette(4)
	for seed := uint64(0); seed < 4; seed++ {
		p.Color(seed, 1)
	}
	assert.Equal(t, 4, p.Len())

	assert.Equal(t, SeedColor(10, 1), p.Color(10, 1))
	assert.Equal(t, 1, p.Len())

	p.Reset()
	assert.Equal(t, 0, p.Len())
}
