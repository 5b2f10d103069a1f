// Package engine implements the typing session: lifecycle, diff tracking,
// the backspace policy and the statistics derived from them.
package engine

// State is a session lifecycle state.
type State int

const (
	// StateMainMenu is the category selection screen.
	StateMainMenu State = iota
	// StateTyping is an active passage.
	StateTyping
	// StateEndScreen shows the results of a completed passage.
	StateEndScreen
)

func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "main-menu"
	case StateTyping:
		return "typing"
	case StateEndScreen:
		return "end-screen"
	default:
		return "unknown"
	}
}
