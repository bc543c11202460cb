package core

// Action represents a semantic puzzle action, abstracted from physical key presses.
// This allows the game loop to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionCursorUp           // Up arrow
	ActionCursorDown         // Down arrow
	ActionCursorLeft         // Left arrow
	ActionCursorRight        // Right arrow
	ActionSlideUp            // Shift+Up
	ActionSlideDown          // Shift+Down
	ActionSlideLeft          // Shift+Left
	ActionSlideRight         // Shift+Right
	ActionSlideAny           // Space - first direction that succeeds
	ActionPreview            // P - toggle preview of the full picture
	ActionClosePreview       // Esc - leave preview
	ActionQuit               // Q, Ctrl+C - exit session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionCursorUp:
		return "CursorUp"
	case ActionCursorDown:
		return "CursorDown"
	case ActionCursorLeft:
		return "CursorLeft"
	case ActionCursorRight:
		return "CursorRight"
	case ActionSlideUp:
		return "SlideUp"
	case ActionSlideDown:
		return "SlideDown"
	case ActionSlideLeft:
		return "SlideLeft"
	case ActionSlideRight:
		return "SlideRight"
	case ActionSlideAny:
		return "SlideAny"
	case ActionPreview:
		return "Preview"
	case ActionClosePreview:
		return "ClosePreview"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction returns the direction carried by a cursor or slide action.
func (a Action) Direction() (Direction, bool) {
	switch a {
	case ActionCursorUp, ActionSlideUp:
		return DirUp, true
	case ActionCursorDown, ActionSlideDown:
		return DirDown, true
	case ActionCursorLeft, ActionSlideLeft:
		return DirLeft, true
	case ActionCursorRight, ActionSlideRight:
		return DirRight, true
	default:
		return 0, false
	}
}

// IsCursor reports whether the action moves the cursor.
func (a Action) IsCursor() bool {
	return a >= ActionCursorUp && a <= ActionCursorRight
}

// IsSlide reports whether the action slides tiles.
func (a Action) IsSlide() bool {
	return a >= ActionSlideUp && a <= ActionSlideAny
}
