package cylinder

import "math"

// cylinderProjection maps grid columns onto the front half of a cylinder
// seen from the side. Column 0 of the drawing frame (the falling piece)
// faces the viewer.
type cylinderProjection struct {
	width  int     // columns around the circumference
	radius float64 // in screen characters
	center float64 // screen x of the axis
}

func newCylinderProjection(width, cellWidth int, center float64) cylinderProjection {
	return cylinderProjection{
		width:  width,
		radius: float64(cellWidth*width) / (2 * math.Pi),
		center: center,
	}
}

// span returns the screen columns [x0, x1) covered by a cell and its
// depth cos θ. visible is false for cells on the back half.
func (p cylinderProjection) span(column float32) (x0, x1 int, depth float64, visible bool) {
	theta := 2 * math.Pi * float64(column) / float64(p.width)
	depth = math.Cos(theta)
	if depth <= 0 {
		return 0, 0, depth, false
	}

	half := math.Pi / float64(p.width)
	left := p.center + p.radius*math.Sin(theta-half)
	right := p.center + p.radius*math.Sin(theta+half)

	x0 = int(math.Round(left))
	x1 = int(math.Round(right))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	return x0, x1, depth, true
}

// brightness shades a cell by how directly it faces the viewer.
func brightness(depth float64) float32 {
	return float32(0.35 + 0.65*depth)
}

// outerWidth is the number of screen columns the silhouette needs,
// including the edge lines.
func (p cylinderProjection) outerWidth() int {
	return 2*int(math.Ceil(p.radius)) + 3
}

// unrolledColumn wraps a drawing-frame column into [-width/2, width/2)
// so the falling piece stays centered and the seam sits opposite it.
func unrolledColumn(column float32, width int) float32 {
	w := float32(width)
	half := float32(width / 2)
	u := column + half
	u -= w * float32(math.Floor(float64(u/w)))
	return u - half
}

// screenRow rounds a fractional grid row to a screen line offset.
func screenRow(row float32) int {
	return int(math.Floor(float64(row) + 0.5))
}
