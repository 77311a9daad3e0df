package game

// State is a session loop state.
type State int

const (
	StateAwaitingStart State = iota
	StatePlaying
	StateWon
	StateQuit
	StateStartFailed
)

var stateNames = map[State]string{
	StateAwaitingStart: "awaiting_start",
	StatePlaying:       "playing",
	StateWon:           "won",
	StateQuit:          "quit",
	StateStartFailed:   "start_failed",
}

func (that State) String() string {
	if name, ok := stateNames[that]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether the loop stops in this state.
func (that State) IsTerminal() bool {
	switch that {
	case StateWon, StateQuit, StateStartFailed:
		return true
	default:
		return false
	}
}
