package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotationCycle(t *testing.T) {
	m := Identity()
	seen := map[Mat2]bool{}
	for i := 0; i < 4; i++ {
		assert.Equal(t, i, m.Quarter())
		seen[m] = true
		m = m.Rotated()
	}
	assert.True(t, m.IsIdentity(), "four quarter turns return to identity")
	assert.Len(t, seen, 4, "each quarter turn is distinct")
}

func TestRotationIsQuarterTurn(t *testing.T) {
	r := Identity().Rotated()

	// a horizontal bar becomes vertical and back
	assert.Equal(t, Vec{X: 0, Y: -1}, r.Apply(Vec{X: 1, Y: 0}))
	assert.Equal(t, Vec{X: 1, Y: 0}, r.Apply(Vec{X: 0, Y: 1}))

	h := r.Rotated()
	assert.Equal(t, Vec{X: -1, Y: 0}, h.Apply(Vec{X: 1, Y: 0}))
}

func TestQuarterPanicsOnInvalidMatrix(t *testing.T) {
	assert.Panics(t, func() { Mat2{m00: 2}.Quarter() })
}

func TestShapesHaveFourDistinctCells(t *testing.T) {
	for k := Kind(0); k < KindCount; k++ {
		rot := Identity()
		for q := 0; q < 4; q++ {
			p := Piece{Kind: k, Rot: rot}
			cells := map[Vec]bool{}
			for _, c := range p.Cells() {
				cells[c] = true
			}
			assert.Len(t, cells, 4, "kind %s quarter %d", k, q)
			rot = rot.Rotated()
		}
	}
}

func TestKind(t *testing.T) {
	assert.Equal(t, "I", KindI.String())
	assert.Equal(t, "O", KindO.String())
	assert.Equal(t, "Z", KindZ.String())
	assert.Equal(t, "?", Kind(7).String())
	assert.False(t, Kind(-1).Valid())

	assert.Panics(t, func() { Kind(KindCount).Shape() })
	assert.Panics(t, func() { Spawn(Kind(9), Vec{}) })
}

func TestSpawn(t *testing.T) {
	p := Spawn(KindT, Vec{X: 5, Y: -2})

	assert.True(t, p.Rot.IsIdentity())
	assert.Equal(t, float32(5), p.DrawX)
	assert.Equal(t, float32(-2), p.DrawY)

	cells := p.Cells()
	assert.Equal(t, Vec{X: 5, Y: -2}, cells[0], "pivot comes first")
	assert.Equal(t, Vec{X: 4, Y: -2}, cells[1])
	assert.Equal(t, Vec{X: 5, Y: -1}, cells[2])
	assert.Equal(t, Vec{X: 6, Y: -2}, cells[3])
}

func TestRotateLeavesOAlone(t *testing.T) {
	p := Spawn(KindO, Vec{})
	for i := 0; i < 5; i++ {
		p.Rotate()
		require.True(t, p.Rot.IsIdentity())
	}

	p = Spawn(KindL, Vec{})
	p.Rotate()
	assert.Equal(t, 1, p.Rot.Quarter())
}

func TestAdvanceDraw(t *testing.T) {
	p := Spawn(KindI, Vec{X: 0, Y: 3})
	p.Pivot.X = 10

	p.AdvanceDraw(0, time.Second, 0.05)
	assert.InDelta(t, 0.5, p.DrawX, 1e-6)
	assert.Equal(t, float32(3), p.DrawY)

	p.AdvanceDraw(250*time.Millisecond, time.Second, 0.05)
	assert.InDelta(t, 0.5+9.5*0.05, p.DrawX, 1e-5)
	assert.InDelta(t, 3.25, p.DrawY, 1e-6)

	for i := 0; i < 500; i++ {
		p.AdvanceDraw(0, time.Second, 0.05)
	}
	assert.InDelta(t, 10, p.DrawX, 1e-3, "draw position converges on the pivot")
}
