package engine

import (
	"time"

	"github.com/vovakirdan/cylitris/internal/core"
)

// Source picks piece kinds. *rand.Rand from math/rand/v2 satisfies it;
// tests substitute a fixed sequence.
type Source interface {
	IntN(n int) int
}

// Settings are fixed for the lifetime of an Engine.
type Settings struct {
	Width          int           // columns around the cylinder
	Height         int           // rows
	FallInterval   time.Duration // time per gravity step at normal speed
	SoftDropFactor int           // gravity speed-up while soft drop is held
	Smoothing      float32       // per-frame horizontal easing factor
	SpawnRow       int           // pivot row of new pieces, above the grid
	TopOut         bool          // end the run when a piece locks above row 0
}

// DefaultSettings returns the classic 15×20 cylinder.
func DefaultSettings() Settings {
	return Settings{
		Width:          15,
		Height:         20,
		FallInterval:   500 * time.Millisecond,
		SoftDropFactor: 4,
		Smoothing:      0.05,
		SpawnRow:       -2,
		TopOut:         true,
	}
}

// normalized replaces unusable values with defaults.
func (s Settings) normalized() Settings {
	d := DefaultSettings()
	if s.Width <= 0 {
		s.Width = d.Width
	}
	if s.Height <= 0 {
		s.Height = d.Height
	}
	if s.FallInterval <= 0 {
		s.FallInterval = d.FallInterval
	}
	if s.SoftDropFactor <= 0 {
		s.SoftDropFactor = d.SoftDropFactor
	}
	if s.Smoothing <= 0 || s.Smoothing > 1 {
		s.Smoothing = d.Smoothing
	}
	if s.SpawnRow >= 0 {
		s.SpawnRow = d.SpawnRow
	}
	return s
}

// SpawnColumn is the pivot column of every new piece.
func (s Settings) SpawnColumn() int {
	return s.Width / 2
}

// Stats counts what happened during a run.
type Stats struct {
	Pieces int // pieces committed to the grid
	Rows   int // rows cleared
}

// DrawFunc receives one drawable cell. column is relative to the falling
// piece's smoothed horizontal position and may be fractional or lie
// outside [0, width); the renderer wraps it. filled is false for empty
// grid cells, in which case color is the zero value.
type DrawFunc func(column, row float32, color core.RGBA, filled bool)

// Engine is the game state machine. It owns the grid, the falling piece
// and the gravity timer.
type Engine struct {
	settings Settings
	rng      Source
	grid     *Grid
	palette  *Palette
	piece    Piece

	seed      uint64 // seed of the falling piece, committed with it
	lastStep  time.Time
	interval  time.Duration
	softDrop  bool
	toppedOut bool

	stats  Stats
	events []core.Event
}

// New creates an engine with an empty grid and a first piece at the
// spawn position. now starts the gravity timer.
func New(settings Settings, rng Source, now time.Time) *Engine {
	settings = settings.normalized()
	e := &Engine{
		settings: settings,
		rng:      rng,
		grid:     NewGrid(settings.Width, settings.Height),
		palette:  NewPalette(4 * settings.Width * settings.Height),
	}
	e.Reset(now)
	return e
}

// Reset starts a new run on the same engine.
func (e *Engine) Reset(now time.Time) {
	e.grid.Reset()
	e.palette.Reset()
	e.seed = 0
	e.lastStep = now
	e.interval = e.settings.FallInterval
	e.softDrop = false
	e.toppedOut = false
	e.stats = Stats{}
	e.events = nil
	e.spawn()
}

// Restart starts a new run drawing piece kinds from rng.
func (e *Engine) Restart(rng Source, now time.Time) {
	e.rng = rng
	e.Reset(now)
}

// Tick advances the simulation to now. It is called once per frame.
func (e *Engine) Tick(now time.Time) {
	if e.toppedOut {
		return
	}

	elapsed := now.Sub(e.lastStep)
	e.piece.AdvanceDraw(elapsed, e.interval, e.settings.Smoothing)

	if elapsed < e.interval {
		return
	}

	// A slide or rotation can leave the piece already resting on the
	// stack, so the step may pass the landing row. It locks there.
	e.piece.Pivot.Y++
	if e.piece.Pivot.Y >= e.piece.Landing {
		e.piece.Pivot.Y = e.piece.Landing
		e.commit()
	}
	e.lastStep = now
}

// MoveHorizontal shifts the piece delta columns around the cylinder.
// The move is undone if it would collide; the result reports whether
// the piece moved.
func (e *Engine) MoveHorizontal(delta int) bool {
	if e.toppedOut || delta == 0 {
		return false
	}

	e.piece.Pivot.X += delta
	if e.Collides(e.piece) {
		e.piece.Pivot.X -= delta
		return false
	}
	e.recomputeLanding()
	return true
}

// Rotate turns the piece a quarter, undoing it on collision.
// The result reports whether the orientation changed.
func (e *Engine) Rotate() bool {
	if e.toppedOut || e.piece.Kind == KindO {
		return false
	}

	saved := e.piece.Rot
	e.piece.Rotate()
	if e.Collides(e.piece) {
		e.piece.Rot = saved
		return false
	}
	e.recomputeLanding()
	return true
}

// HardDrop moves the piece straight to its landing row and commits it.
func (e *Engine) HardDrop() {
	if e.toppedOut {
		return
	}
	e.piece.Pivot.Y = e.piece.Landing
	e.commit()
}

// SetSoftDrop switches between normal and accelerated gravity. Repeating
// the current state is a no-op, so key auto-repeat cannot compound it.
func (e *Engine) SetSoftDrop(active bool) {
	if active == e.softDrop {
		return
	}
	e.softDrop = active
	if active {
		e.interval = e.settings.FallInterval / time.Duration(e.settings.SoftDropFactor)
	} else {
		e.interval = e.settings.FallInterval
	}
}

// Shift moves the gravity timer forward by d. Time spent paused is given
// back this way so it does not count toward the next step.
func (e *Engine) Shift(d time.Duration) {
	e.lastStep = e.lastStep.Add(d)
}

// Collides reports whether p overlaps the grid. A piece whose pivot is
// above row 1 never collides, letting new pieces enter from above.
// Otherwise every cell must be an empty in-bounds cell; row 0 is checked.
func (e *Engine) Collides(p Piece) bool {
	if p.Pivot.Y < 1 {
		return false
	}
	for _, c := range p.Cells() {
		if _, state := e.grid.Read(c.X, c.Y); state != CellEmpty {
			return true
		}
	}
	return false
}

// recomputeLanding scans down from the pivot until the piece would
// collide; the row above that is where a hard drop lands.
func (e *Engine) recomputeLanding() {
	probe := e.piece
	for y := e.piece.Pivot.Y + 1; y <= e.settings.Height; y++ {
		probe.Pivot.Y = y
		if e.Collides(probe) {
			e.piece.Landing = y - 1
			return
		}
	}
}

// commit writes the piece into the grid, clears rows and spawns the next
// piece, or ends the run if the piece locked above the grid.
func (e *Engine) commit() {
	lockedAbove := false
	for _, c := range e.piece.Cells() {
		e.grid.Write(c.X, c.Y, e.seed)
		if c.Y < 0 {
			lockedAbove = true
		}
	}

	placed := e.seed
	e.seed++
	e.stats.Pieces++
	e.emit(core.Event{Type: core.EventPiecePlaced, Seed: placed})

	if n := e.grid.ClearFullRows(); n > 0 {
		e.stats.Rows += n
		e.emit(core.Event{Type: core.EventRowsCleared, Seed: placed, Rows: n})
	}

	if lockedAbove && e.settings.TopOut {
		e.toppedOut = true
		e.emit(core.Event{Type: core.EventToppedOut, Seed: placed})
		return
	}

	e.spawn()
}

func (e *Engine) spawn() {
	kind := Kind(e.rng.IntN(KindCount))
	e.piece = Spawn(kind, Vec{X: e.settings.SpawnColumn(), Y: e.settings.SpawnRow})
	e.recomputeLanding()
}

func (e *Engine) emit(ev core.Event) {
	e.events = append(e.events, ev)
}

// DrainEvents returns the events recorded since the last call.
func (e *Engine) DrainEvents() []core.Event {
	events := e.events
	e.events = nil
	return events
}

// ForEachDrawable enumerates everything to draw this frame: every grid
// cell, then the falling piece at full opacity, then its landing shadow
// at half opacity. The piece and shadow use the color of the seed they
// will be committed with.
func (e *Engine) ForEachDrawable(fn DrawFunc) {
	drawX := e.piece.DrawX

	e.grid.Each(func(x, y int, seed uint64) {
		if seed == Empty {
			fn(float32(x)-drawX, float32(y), core.RGBA{}, false)
			return
		}
		fn(float32(x)-drawX, float32(y), e.palette.Color(seed, 1), true)
	})

	if e.toppedOut {
		return
	}

	base := float32(e.piece.Pivot.X) - drawX
	offsets := e.piece.Offsets()

	solid := e.palette.Color(e.seed, 1)
	for _, off := range offsets {
		fn(base+float32(off.X), e.piece.DrawY+float32(off.Y), solid, true)
	}

	shadow := e.palette.Color(e.seed, 0.5)
	for _, off := range offsets {
		fn(base+float32(off.X), float32(e.piece.Landing+off.Y), shadow, true)
	}
}

// Piece returns a copy of the falling piece.
func (e *Engine) Piece() Piece { return e.piece }

// Grid returns the playfield. Callers must not modify it.
func (e *Engine) Grid() *Grid { return e.grid }

// Settings returns the engine configuration.
func (e *Engine) Settings() Settings { return e.settings }

// Seed returns the seed the falling piece will be committed with.
func (e *Engine) Seed() uint64 { return e.seed }

// Interval returns the current gravity interval.
func (e *Engine) Interval() time.Duration { return e.interval }

// SoftDrop reports whether accelerated gravity is active.
func (e *Engine) SoftDrop() bool { return e.softDrop }

// ToppedOut reports whether the run has ended.
func (e *Engine) ToppedOut() bool { return e.toppedOut }

// Stats returns counters for the current run.
func (e *Engine) Stats() Stats { return e.stats }
