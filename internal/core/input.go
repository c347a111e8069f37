package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, W, Up - the single "tap" input (start, flap)
	ActionRestart        // Enter, R - start/restart control
	ActionPause          // P - pause/unpause game
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ParseAction is the inverse of Action.String.
// Unknown names map to ActionNone.
func ParseAction(name string) Action {
	switch name {
	case "Jump":
		return ActionJump
	case "Restart":
		return ActionRestart
	case "Pause":
		return ActionPause
	case "Quit":
		return ActionQuit
	default:
		return ActionNone
	}
}

// InputFrame is the set of actions triggered during one simulation tick.
// The zero value is an empty frame; frames are plain values and safe to keep.
type InputFrame struct {
	bits uint8
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered for this frame. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone || a > ActionQuit {
		return
	}
	f.bits |= 1 << a
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if a <= ActionNone || a > ActionQuit {
		return false
	}
	return f.bits&(1<<a) != 0
}

// Empty reports whether no action was triggered this frame.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}
