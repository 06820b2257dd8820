package core

import "time"

// Action represents a discrete player intent, abstracted from physical keys or
// gestures. Input adapters produce actions; the simulation consumes them once
// per tick.
type Action int

const (
	ActionNone      Action = iota
	ActionLaneLeft         // A, Left arrow, swipe left
	ActionLaneRight        // D, Right arrow, swipe right
	ActionJump             // W, Up arrow, Space, swipe up
	ActionSlide            // S, Down arrow, swipe down
	ActionPause            // Esc, P
	ActionRestart          // R after game over
	ActionQuit             // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLaneLeft:
		return "LaneLeft"
	case ActionLaneRight:
		return "LaneRight"
	case ActionJump:
		return "Jump"
	case ActionSlide:
		return "Slide"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame carries everything the simulation receives for one tick: the
// actions triggered since the previous tick and the wall time that elapsed.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Delta is the time since the previous tick. Zero means one nominal tick.
	Delta time.Duration
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

// Clear resets all actions and the delta for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Delta = 0
}
