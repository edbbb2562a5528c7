package engine

import "fmt"

// Vec is an integer grid coordinate. Y grows downward.
type Vec struct {
	X, Y int
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Mat2 is a 2x2 integer rotation matrix, stored row-major.
// The only values it can hold are identity and its three quarter turns:
// outside this package a Mat2 comes from Identity() and Rotated().
type Mat2 struct {
	m00, m01 int
	m10, m11 int
}

// Identity returns the unrotated matrix.
func Identity() Mat2 {
	return Mat2{m00: 1, m11: 1}
}

// Rotated returns the matrix turned a further 90 degrees.
// Four successive calls return to the starting matrix.
func (m Mat2) Rotated() Mat2 {
	return Mat2{
		m00: m.m10, m01: m.m11,
		m10: -m.m00, m11: -m.m01,
	}
}

// Apply multiplies the matrix by v.
func (m Mat2) Apply(v Vec) Vec {
	return Vec{
		X: m.m00*v.X + m.m01*v.Y,
		Y: m.m10*v.X + m.m11*v.Y,
	}
}

// IsIdentity reports whether m is the unrotated matrix.
func (m Mat2) IsIdentity() bool {
	return m == Identity()
}

// Quarter returns how many quarter turns m is away from identity (0-3).
func (m Mat2) Quarter() int {
	r := Identity()
	for q := 0; q < 4; q++ {
		if r == m {
			return q
		}
		r = r.Rotated()
	}
	panic(fmt.Sprintf("engine: invalid rotation matrix %v", m))
}

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	KindI Kind = iota
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ

	KindCount = 7
)

// String returns the conventional letter for the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return "?"
	}
	return string("IJLOSTZ"[k])
}

// Valid reports whether k is one of the seven kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < KindCount
}

// shapes lists, per kind, the three cells that surround the pivot.
// The pivot (0,0) is always part of the piece.
var shapes = [KindCount][3]Vec{
	KindI: {{-1, 0}, {1, 0}, {2, 0}},
	KindJ: {{-1, -1}, {-1, 0}, {1, 0}},
	KindL: {{-1, 0}, {1, 0}, {1, -1}},
	KindO: {{1, 0}, {0, 1}, {1, 1}},
	KindS: {{-1, 1}, {0, 1}, {1, 0}},
	KindT: {{-1, 0}, {0, 1}, {1, 0}},
	KindZ: {{-1, 0}, {0, 1}, {1, 1}},
}

// Shape returns the pivot-relative offsets of an unrotated piece.
func (k Kind) Shape() [3]Vec {
	if !k.Valid() {
		panic(fmt.Sprintf("engine: invalid piece kind %d", int(k)))
	}
	return shapes[k]
}
