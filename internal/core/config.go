package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second driven by the platform (default 60)
	Seed     int64 // RNG seed for piece selection
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Pieces   int  // Pieces committed to the grid this run
	Rows     int  // Rows cleared this run
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the game is paused
}

// EventType identifies something notable that happened during a tick.
type EventType int

const (
	EventPiecePlaced EventType = iota + 1
	EventRowsCleared
	EventToppedOut
)

// String returns a human-readable name for the event type.
func (t EventType) String() string {
	switch t {
	case EventPiecePlaced:
		return "piece_placed"
	case EventRowsCleared:
		return "rows_cleared"
	case EventToppedOut:
		return "topped_out"
	default:
		return "unknown"
	}
}

// Event is emitted by a game and surfaced to the platform for logging.
type Event struct {
	Type EventType
	Seed uint64 // Placement seed of the piece involved
	Rows int    // Number of rows cleared (EventRowsCleared only)
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
