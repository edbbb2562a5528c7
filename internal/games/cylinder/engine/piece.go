package engine

import "time"

// Piece is the falling tetromino.
//
// Pivot is its logical grid position. DrawX and DrawY are where it is
// shown: DrawX eases toward Pivot.X and DrawY interpolates between
// gravity steps, so the visual position lags the logical one.
type Piece struct {
	Pivot   Vec
	Rot     Mat2
	Kind    Kind
	Landing int // pivot row the piece would rest on if hard-dropped

	DrawX float32
	DrawY float32
}

// Spawn creates an unrotated piece of the given kind at pivot.
func Spawn(kind Kind, pivot Vec) Piece {
	kind.Shape() // panics on an invalid kind
	return Piece{
		Pivot: pivot,
		Rot:   Identity(),
		Kind:  kind,
		DrawX: float32(pivot.X),
		DrawY: float32(pivot.Y),
	}
}

// Offsets returns the four pivot-relative cells, rotated. The pivot
// itself comes first.
func (p Piece) Offsets() [4]Vec {
	shape := p.Kind.Shape()
	return [4]Vec{
		{},
		p.Rot.Apply(shape[0]),
		p.Rot.Apply(shape[1]),
		p.Rot.Apply(shape[2]),
	}
}

// Cells returns the four grid positions the piece occupies.
func (p Piece) Cells() [4]Vec {
	offsets := p.Offsets()
	var cells [4]Vec
	for i, off := range offsets {
		cells[i] = p.Pivot.Add(off)
	}
	return cells
}

// Rotate turns the piece a quarter. The O piece looks the same in every
// orientation and is left alone.
func (p *Piece) Rotate() {
	if p.Kind == KindO {
		return
	}
	p.Rot = p.Rot.Rotated()
}

// AdvanceDraw updates the visual position for one frame. Horizontally it
// is a first-order low-pass filter applied once per call; vertically it
// is the fraction of the current gravity interval already elapsed.
func (p *Piece) AdvanceDraw(elapsed, fall time.Duration, smoothing float32) {
	p.DrawX += (float32(p.Pivot.X) - p.DrawX) * smoothing
	p.DrawY = float32(p.Pivot.Y)
	if fall > 0 {
		p.DrawY += float32(elapsed) / float32(fall)
	}
}
