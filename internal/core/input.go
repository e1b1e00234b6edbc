package core

// Action represents a semantic player action, abstracted from physical key presses
// and mouse gestures. Shells translate input into actions and actions into game
// commands.
type Action int

const (
	ActionNone       Action = iota
	ActionLeft              // h, Left arrow - move hover to the previous bucket
	ActionRight             // l, Right arrow - move hover to the next bucket
	ActionUp                // k, Up arrow - select previous word
	ActionDown              // j, Down arrow - select next word
	ActionPick              // Space - pick up the selected word
	ActionDrop              // Enter - drop onto the hovered bucket
	ActionCancel            // Backspace - release without dropping
	ActionStart             // s - start from the waiting screen
	ActionRestart           // r - play again
	ActionFullscreen        // f - toggle fullscreen
	ActionBack              // b, Escape - leave the game
	ActionQuit              // q, Ctrl+C - exit program
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
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionPick:
		return "Pick"
	case ActionDrop:
		return "Drop"
	case ActionCancel:
		return "Cancel"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionFullscreen:
		return "Fullscreen"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
