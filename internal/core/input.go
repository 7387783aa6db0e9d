package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - walk left (held)
	ActionRight          // D, Right arrow - walk right (held)
	ActionJump           // Space, W, Up - jump
	ActionHelp           // H - toggle help overlay
	ActionAnswer1        // 1 - first answer option
	ActionAnswer2        // 2 - second answer option
	ActionAnswer3        // 3 - third answer option
	ActionConfirm        // Enter - confirm / dismiss overlay
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart after the run ends
	ActionQuit           // Q, Ctrl+C - exit game/session
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
	case ActionJump:
		return "Jump"
	case ActionHelp:
		return "Help"
	case ActionAnswer1:
		return "Answer1"
	case ActionAnswer2:
		return "Answer2"
	case ActionAnswer3:
		return "Answer3"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// AnswerIndex returns the zero-based option index for an answer action.
// The second result is false for any other action.
func (a Action) AnswerIndex() (int, bool) {
	switch a {
	case ActionAnswer1:
		return 0, true
	case ActionAnswer2:
		return 1, true
	case ActionAnswer3:
		return 2, true
	}
	return 0, false
}

// Intent is the directional and jump state sampled once per tick.
// Left and Right are level-triggered (held); Jump reports whether the jump
// control is currently down. Edge detection for jumping happens in the game.
type Intent struct {
	Left  bool
	Right bool
	Jump  bool
}

// InputFrame represents the input for a single simulation tick: the held
// movement intent plus the discrete actions triggered during the frame.
type InputFrame struct {
	Intent Intent

	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all discrete actions for the next frame.
// The held intent is left untouched; the input source owns it.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	clone.Intent = f.Intent
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
