package player

// Capability is a control action the native module may expose in its
// transport controls.
type Capability int

const (
	CapabilityPlay Capability = iota
	CapabilityPlayFromID
	CapabilityPlayFromSearch
	CapabilityPause
	CapabilityStop
	CapabilitySeekTo
	CapabilitySkip
	CapabilitySkipToNext
	CapabilitySkipToPrevious
	CapabilityJumpForward
	CapabilityJumpBackward
	CapabilitySetRating
	CapabilityLike
	CapabilityDislike
	CapabilityBookmark
)

var capabilityTable = []entry{
	{"play", "CAPABILITY_PLAY"},
	{"play-from-id", "CAPABILITY_PLAY_FROM_ID"},
	{"play-from-search", "CAPABILITY_PLAY_FROM_SEARCH"},
	{"pause", "CAPABILITY_PAUSE"},
	{"stop", "CAPABILITY_STOP"},
	{"seek-to", "CAPABILITY_SEEK_TO"},
	{"skip", "CAPABILITY_SKIP"},
	{"skip-to-next", "CAPABILITY_SKIP_TO_NEXT"},
	{"skip-to-previous", "CAPABILITY_SKIP_TO_PREVIOUS"},
	{"jump-forward", "CAPABILITY_JUMP_FORWARD"},
	{"jump-backward", "CAPABILITY_JUMP_BACKWARD"},
	{"set-rating", "CAPABILITY_SET_RATING"},
	{"like", "CAPABILITY_LIKE"},
	{"dislike", "CAPABILITY_DISLIKE"},
	{"bookmark", "CAPABILITY_BOOKMARK"},
}

// AllCapabilities returns every capability in declaration order.
func AllCapabilities() []Capability { return members[Capability](capabilityTable) }

// ParseCapability parses a capability wire name.
func ParseCapability(name string) (Capability, error) {
	return parse[Capability]("capability", capabilityTable, name)
}

// String returns the string representation of the capability.
func (c Capability) String() string { return nameOf(capabilityTable, int(c)) }

// ConstantName returns the native constant name.
func (c Capability) ConstantName() string { return constantOf(capabilityTable, int(c)) }

// MarshalText implements encoding.TextMarshaler.
func (c Capability) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Capability) UnmarshalText(b []byte) error {
	v, err := ParseCapability(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
