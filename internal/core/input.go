package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // A, Left arrow
	ActionRight            // D, Right arrow
	ActionJump             // Space, W, Up arrow
	ActionPrimary          // X, Z - punch (jumpkick in the air)
	ActionSecondary        // C - kick (jumpkick in the air)
	ActionPause            // P
	ActionConfirm          // Enter, Space on menus and overlays
	ActionBack             // B, Escape - back to menu
	ActionQuit             // Q, Ctrl+C
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
	case ActionPrimary:
		return "Primary"
	case ActionSecondary:
		return "Secondary"
	case ActionPause:
		return "Pause"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the input snapshot consumed by one simulation step.
// Held reports level-triggered state, Pressed and Released are edges that
// happened since the previous step.
type InputFrame struct {
	Held     map[Action]bool
	Pressed  map[Action]bool
	Released map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Held:     make(map[Action]bool),
		Pressed:  make(map[Action]bool),
		Released: make(map[Action]bool),
	}
}

// Down returns true while the action is held.
func (f InputFrame) Down(a Action) bool {
	return f.Held[a]
}

// WasPressed returns true if the action went down since the previous step.
func (f InputFrame) WasPressed(a Action) bool {
	return f.Pressed[a]
}

// WasReleased returns true if the action went up since the previous step.
func (f InputFrame) WasReleased(a Action) bool {
	return f.Released[a]
}

// Tap marks an action as pressed and held for this frame only.
// Handy for scripted input and tests.
func (f *InputFrame) Tap(a Action) {
	if f.Held == nil || f.Pressed == nil {
		*f = NewInputFrame()
	}
	f.Held[a] = true
	f.Pressed[a] = true
}

// Hold marks an action as held without a press edge.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		*f = NewInputFrame()
	}
	f.Held[a] = true
}

// Empty returns true if no action is held and no edge occurred.
func (f InputFrame) Empty() bool {
	for _, v := range f.Held {
		if v {
			return false
		}
	}
	return len(f.Pressed) == 0 && len(f.Released) == 0
}

// InputState accumulates raw press/release events between simulation steps.
// It is polled, not pushed: front ends call Press/Release as events arrive,
// take a Frame() for each step, and call EndStep() after the step ran so edge
// flags are consumed exactly once.
type InputState struct {
	held     map[Action]bool
	pressed  map[Action]bool
	released map[Action]bool
}

// NewInputState creates an empty input state.
func NewInputState() *InputState {
	return &InputState{
		held:     make(map[Action]bool),
		pressed:  make(map[Action]bool),
		released: make(map[Action]bool),
	}
}

// Press records that an action went down. Repeated presses while held do not
// produce new edges.
func (s *InputState) Press(a Action) {
	if !s.held[a] {
		s.pressed[a] = true
	}
	s.held[a] = true
}

// Retrigger records a fresh press of an action that may already be held.
// Unlike Press it always produces a pressed edge.
func (s *InputState) Retrigger(a Action) {
	s.pressed[a] = true
	s.held[a] = true
}

// Release records that an action went up.
func (s *InputState) Release(a Action) {
	if s.held[a] {
		s.released[a] = true
	}
	s.held[a] = false
}

// IsDown reports whether the action is currently held.
func (s *InputState) IsDown(a Action) bool {
	return s.held[a]
}

// Frame returns a snapshot for the next simulation step.
func (s *InputState) Frame() InputFrame {
	f := NewInputFrame()
	for k, v := range s.held {
		if v {
			f.Held[k] = true
		}
	}
	for k := range s.pressed {
		f.Pressed[k] = true
	}
	for k := range s.released {
		f.Released[k] = true
	}
	return f
}

// EndStep clears the edge-triggered flags.
func (s *InputState) EndStep() {
	clear(s.pressed)
	clear(s.released)
}

// Reset releases everything without producing edges.
func (s *InputState) Reset() {
	clear(s.held)
	clear(s.pressed)
	clear(s.released)
}
