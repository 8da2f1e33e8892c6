package player

// State is a playback state owned and transitioned by the native player.
type State int

const (
	StateNone State = iota
	StateReady
	StatePlaying
	StatePaused
	StateStopped
	StateBuffering
	StateConnecting
)

var stateTable = []entry{
	{"none", "STATE_NONE"},
	{"ready", "STATE_READY"},
	{"playing", "STATE_PLAYING"},
	{"paused", "STATE_PAUSED"},
	{"stopped", "STATE_STOPPED"},
	{"buffering", "STATE_BUFFERING"},
	{"connecting", "STATE_CONNECTING"},
}

// AllStates returns every state in declaration order.
func AllStates() []State { return members[State](stateTable) }

// ParseState parses a state wire name.
func ParseState(name string) (State, error) { return parse[State]("state", stateTable, name) }

// String returns the string representation of the state.
func (s State) String() string { return nameOf(stateTable, int(s)) }

// ConstantName returns the native constant name.
func (s State) ConstantName() string { return constantOf(stateTable, int(s)) }

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(b []byte) error {
	v, err := ParseState(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
