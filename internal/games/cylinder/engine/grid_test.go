package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	for _, w := range []int{1, 4, 10, 15} {
		for x := -3 * w; x <= 3*w; x++ {
			got := Wrap(x, w)
			require.GreaterOrEqual(t, got, 0, "Wrap(%d, %d)", x, w)
			require.Less(t, got, w, "Wrap(%d, %d)", x, w)
			require.Equal(t, ((x%w)+w)%w, got)
		}
	}

	assert.Equal(t, 14, Wrap(-1, 15))
	assert.Equal(t, 0, Wrap(15, 15))
	assert.Equal(t, 1, Wrap(-29, 15))
}

func TestNewGridEmpty(t *testing.T) {
	g := NewGrid(10, 20)

	assert.Equal(t, 10, g.Width())
	assert.Equal(t, 20, g.Height())
	assert.Equal(t, 0, g.Filled())
	assert.Len(t, g.cells, 200)

	g.Each(func(x, y int, seed uint64) {
		assert.Equal(t, Empty, seed, "cell (%d,%d)", x, y)
	})
}

func TestNewGridRejectsBadSize(t *testing.T) {
	assert.Panics(t, func() { NewGrid(0, 20) })
	assert.Panics(t, func() { NewGrid(10, -1) })
}

func TestGridReadWrapsColumns(t *testing.T) {
	g := NewGrid(10, 20)
	g.Write(-1, 5, 42)

	seed, state := g.Read(9, 5)
	assert.Equal(t, CellFilled, state)
	assert.Equal(t, uint64(42), seed)

	seed, state = g.Read(19, 5)
	assert.Equal(t, CellFilled, state)
	assert.Equal(t, uint64(42), seed)

	_, state = g.Read(8, 5)
	assert.Equal(t, CellEmpty, state)
}

func TestGridOutOfBoundsRows(t *testing.T) {
	g := NewGrid(10, 20)

	for _, y := range []int{-5, -1, 20, 21} {
		seed, state := g.Read(3, y)
		assert.Equal(t, CellOutOfBounds, state, "row %d", y)
		assert.Equal(t, Empty, seed)

		g.Write(3, y, 7)
	}
	assert.Equal(t, 0, g.Filled(), "writes outside the grid must be discarded")
}

func TestRowFull(t *testing.T) {
	g := NewGrid(4, 3)
	for x := 0; x < 3; x++ {
		g.Write(x, 2, uint64(x))
	}
	assert.False(t, g.RowFull(2))

	g.Write(3, 2, 99)
	assert.True(t, g.RowFull(2))
	assert.False(t, g.RowFull(1))
	assert.False(t, g.RowFull(-1))
	assert.False(t, g.RowFull(3))
}

func TestClearFullRowsUntouchedWhenNoneFull(t *testing.T) {
	g := NewGrid(5, 6)
	for y := 0; y < 6; y++ {
		for x := 0; x < 4; x++ {
			g.Write(x+y, y, uint64(y*10+x))
		}
	}
	before := g.Clone()

	assert.Equal(t, 0, g.ClearFullRows())
	assert.True(t, before.Equal(g))
}

func TestClearFullRowsShiftsAndEmptiesTop(t *testing.T) {
	g := NewGrid(4, 5)
	for x := 0; x < 4; x++ {
		g.Write(x, 4, 9)
	}
	for x := 0; x < 3; x++ {
		g.Write(x, 0, 1)
	}
	g.Write(1, 3, 5)

	require.Equal(t, 1, g.ClearFullRows())

	seed, state := g.Read(1, 4)
	assert.Equal(t, CellFilled, state)
	assert.Equal(t, uint64(5), seed, "row 3 moved into row 4")

	seed, _ = g.Read(0, 1)
	assert.Equal(t, uint64(1), seed, "row 0 moved into row 1")

	for x := 0; x < 4; x++ {
		_, state := g.Read(x, 0)
		assert.Equal(t, CellEmpty, state, "row 0 col %d", x)
	}
}

func TestClearFullRowsMultiple(t *testing.T) {
	g := NewGrid(3, 6)
	for x := 0; x < 3; x++ {
		g.Write(x, 5, 1)
		g.Write(x, 4, 2)
		g.Write(x, 2, 3)
	}
	g.Write(0, 3, 4)
	g.Write(2, 1, 5)

	require.Equal(t, 3, g.ClearFullRows())
	assert.Equal(t, 2, g.Filled())

	seed, _ := g.Read(0, 5)
	assert.Equal(t, uint64(4), seed)
	seed, _ = g.Read(2, 4)
	assert.Equal(t, uint64(5), seed)
}

func TestGridCloneIndependent(t *testing.T) {
	g := NewGrid(3, 3)
	c := g.Clone()
	c.Write(1, 1, 3)

	assert.False(t, g.Equal(c))
	assert.Equal(t, 0, g.Filled())
	assert.False(t, g.Equal(NewGrid(3, 4)))
}
