package core

// Action represents a semantic puzzle action, abstracted from physical key presses.
// This allows the board logic to work with intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Up arrow - slide the tile below the empty slot up
	ActionDown           // Down arrow - slide the tile above the empty slot down
	ActionLeft           // Left arrow
	ActionRight          // Right arrow
	ActionSolve          // F12, S - find a solution and autoplay it
	ActionShuffle        // N - scramble the board
	ActionReset          // R - restore solved order
	ActionQuit           // Q, Ctrl+C - exit
	ActionOther          // any other key; only cancels autoplay
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSolve:
		return "Solve"
	case ActionShuffle:
		return "Shuffle"
	case ActionReset:
		return "Reset"
	case ActionQuit:
		return "Quit"
	case ActionOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// IsArrow reports whether the action requests a tile shift.
func (a Action) IsArrow() bool {
	return a >= ActionUp && a <= ActionRight
}

// PointerKind distinguishes pointer events.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

// PointerEvent is a mouse event in screen cells, already translated into
// the board container's coordinate space.
type PointerEvent struct {
	Kind PointerKind
	X, Y int
}
