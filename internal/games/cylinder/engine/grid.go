// Package engine implements the cylindrical falling-block simulation:
// a wrap-around grid, tetromino pieces rotated by 2x2 matrices, timed
// gravity, line clearing and seed-derived piece colors.
//
// The engine is single-threaded and frame-driven. It owns no clock and no
// global random source; both are supplied by the caller.
package engine

import "math"

// Empty marks a grid cell that holds no placed piece.
// It is never produced by the seed counter.
const Empty uint64 = math.MaxUint64

// CellState describes what Grid.Read found at a position.
type CellState int

const (
	CellEmpty CellState = iota
	CellFilled
	CellOutOfBounds // row outside [0, height)
)

// Wrap maps any column onto [0, width) using floored modulo.
func Wrap(x, width int) int {
	return ((x % width) + width) % width
}

// Grid is a fixed-size cylinder of cells. Columns wrap around, rows do not.
// Each cell holds the placement seed of the piece that filled it, or Empty.
type Grid struct {
	width  int
	height int
	cells  []uint64
}

// NewGrid allocates a width×height grid with every cell empty.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic("engine: grid dimensions must be positive")
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]uint64, width*height),
	}
	g.Reset()
	return g
}

// Width returns the number of columns around the cylinder.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Reset empties every cell.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = Empty
	}
}

func (g *Grid) index(x, y int) int {
	return y*g.width + Wrap(x, g.width)
}

func (g *Grid) rowInBounds(y int) bool {
	return y >= 0 && y < g.height
}

// Read returns the seed stored at (x, y). Rows outside the grid report
// CellOutOfBounds; the column is always wrapped.
func (g *Grid) Read(x, y int) (uint64, CellState) {
	if !g.rowInBounds(y) {
		return Empty, CellOutOfBounds
	}
	seed := g.cells[g.index(x, y)]
	if seed == Empty {
		return Empty, CellEmpty
	}
	return seed, CellFilled
}

// Write stores seed at (x, y). Writes to rows outside the grid are
// discarded, which is how cells of a piece still above row 0 vanish.
func (g *Grid) Write(x, y int, seed uint64) {
	if !g.rowInBounds(y) {
		return
	}
	g.cells[g.index(x, y)] = seed
}

// RowFull reports whether every cell in row y is occupied.
func (g *Grid) RowFull(y int) bool {
	if !g.rowInBounds(y) {
		return false
	}
	row := g.cells[y*g.width : (y+1)*g.width]
	for _, seed := range row {
		if seed == Empty {
			return false
		}
	}
	return true
}

// CollapseRow removes row y: rows 0..y-1 each move down by one and row 0
// is left empty.
func (g *Grid) CollapseRow(y int) {
	if !g.rowInBounds(y) {
		return
	}
	for r := y; r > 0; r-- {
		copy(g.cells[r*g.width:(r+1)*g.width], g.cells[(r-1)*g.width:r*g.width])
	}
	for x := 0; x < g.width; x++ {
		g.cells[x] = Empty
	}
}

// ClearFullRows collapses every full row, scanning from the bottom, and
// returns how many were removed. A grid with no full rows is left untouched.
func (g *Grid) ClearFullRows() int {
	cleared := 0
	for y := g.height - 1; y >= 0; {
		if g.RowFull(y) {
			g.CollapseRow(y)
			cleared++
			continue // the row shifted into y may be full too
		}
		y--
	}
	return cleared
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(x, y int, seed uint64)) {
	for i, seed := range g.cells {
		fn(i%g.width, i/g.width, seed)
	}
}

// Filled returns the number of occupied cells.
func (g *Grid) Filled() int {
	n := 0
	for _, seed := range g.cells {
		if seed != Empty {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([]uint64, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether two grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
