package client

// State is a step of the submit flow.
//
//	Idle → Validating → Blocked
//	                  → AwaitingServer → ErrorsShown
//	                                   → Redirected
//	                                   → Failed
type State int

const (
	StateIdle State = iota
	StateValidating
	StateBlocked
	StateAwaitingServer
	StateErrorsShown
	StateRedirected
	StateFailed
)

var stateNames = [...]string{
	StateIdle:           "idle",
	StateValidating:     "validating",
	StateBlocked:        "blocked",
	StateAwaitingServer: "awaiting_server",
	StateErrorsShown:    "errors_shown",
	StateRedirected:     "redirected",
	StateFailed:         "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether the flow stops in s.
func (s State) Terminal() bool {
	switch s {
	case StateBlocked, StateErrorsShown, StateRedirected, StateFailed:
		return true
	}
	return false
}
