package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Q, A, Left arrow - move left (held)
	ActionRight          // D, Right arrow - move right (held)
	ActionJump           // Space, W, Up - jump / double jump (held, edge-triggered by the game)
	ActionDash           // Shift, X - dash (held, edge-triggered by the game)
	ActionShoot          // Mouse click, F - fire towards the aim point
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // M, B - go back to menu from pause
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Ctrl+C - exit game/session
	ActionPause          // P, Escape - pause/unpause game
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
	case ActionDash:
		return "Dash"
	case ActionShoot:
		return "Shoot"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the input snapshot for one simulation tick.
//
// Movement actions (Left, Right, Jump, Dash) describe keys that are held
// during the frame; the game derives press edges itself. Every other action
// is a one-shot trigger for this frame.
type InputFrame struct {
	// Actions maps action types to whether they are active this frame.
	Actions map[Action]bool

	// Aim is the aim point in viewport coordinates (world units relative
	// to the camera's top-left corner). Only meaningful when HasAim is set.
	Aim    Vec2
	HasAim bool
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

// SetAim records an aim point in viewport coordinates.
func (f *InputFrame) SetAim(p Vec2) {
	f.Aim = p
	f.HasAim = true
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
	f.Aim = Vec2{}
	f.HasAim = false
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Aim = f.Aim
	clone.HasAim = f.HasAim
	return clone
}
