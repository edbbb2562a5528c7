package cylinder

import "time"

// StateType represents the current game state.
type StateType string

const (
	StatePlaying   StateType = "playing"
	StatePaused    StateType = "paused"
	StateToppedOut StateType = "topped_out"
	StateTooSmall  StateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Frame    uint64
	View     string
	Pieces   int
	Rows     int
	Filled   int // occupied grid cells
	Kind     string
	PivotX   int
	PivotY   int
	Quarter  int // rotation in quarter turns
	Landing  int
	Seed     uint64
	SoftDrop bool
	Interval time.Duration
	State    StateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.engine.ToppedOut():
		state = StateToppedOut
	case g.tooSmall:
		state = StateTooSmall
	case g.paused:
		state = StatePaused
	}

	p := g.engine.Piece()
	stats := g.engine.Stats()
	return Snapshot{
		Frame:    g.frame,
		View:     g.view,
		Pieces:   stats.Pieces,
		Rows:     stats.Rows,
		Filled:   g.engine.Grid().Filled(),
		Kind:     p.Kind.String(),
		PivotX:   p.Pivot.X,
		PivotY:   p.Pivot.Y,
		Quarter:  p.Rot.Quarter(),
		Landing:  p.Landing,
		Seed:     g.engine.Seed(),
		SoftDrop: g.engine.SoftDrop(),
		Interval: g.engine.Interval(),
		State:    state,
	}
}
