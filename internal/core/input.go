package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionTurnLeft         // Left arrow, A - rotate counter-clockwise
	ActionTurnRight        // Right arrow, D - rotate clockwise
	ActionThrust           // Up arrow, W, Space - accelerate along heading
	ActionQuit             // Escape - end the session
	ActionPause            // P - pause/unpause game
	ActionRestart          // R - restart game after game over
	ActionBack             // B - back to menu
	ActionConfirm          // Enter - confirm selection in menu
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTurnLeft:
		return "TurnLeft"
	case ActionTurnRight:
		return "TurnRight"
	case ActionThrust:
		return "Thrust"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionConfirm:
		return "Confirm"
	default:
		return "Unknown"
	}
}

// InputFrame represents which actions are held during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they are active this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
