package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone          Action = iota
	ActionLeft                 // Left arrow, A, H - shift piece one column left
	ActionRight                // Right arrow, D, L - shift piece one column right
	ActionRotate               // Up arrow, W, Z, X - rotate piece 90 degrees
	ActionSoftDropStart        // Down arrow pressed - gravity speeds up
	ActionSoftDropEnd          // Down arrow released - gravity back to normal
	ActionHardDrop             // Space - drop piece to its landing row
	ActionToggleView           // Tab, V - switch cylinder/unrolled projection
	ActionRestart              // R - start a fresh run
	ActionPause                // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRotate:
		return "Rotate"
	case ActionSoftDropStart:
		return "SoftDropStart"
	case ActionSoftDropEnd:
		return "SoftDropEnd"
	case ActionHardDrop:
		return "HardDrop"
	case ActionToggleView:
		return "ToggleView"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one simulation tick, in the
// order they arrived. Two left presses between ticks move the piece twice,
// and a soft-drop press followed by its release in the same frame is applied
// in that order.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records an action for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}
