package player

// PitchAlgorithm selects the pitch correction applied when the playback rate changes.
type PitchAlgorithm int

const (
	PitchAlgorithmLinear PitchAlgorithm = iota
	PitchAlgorithmMusic
	PitchAlgorithmVoice
)

var pitchTable = []entry{
	{"linear", "PITCH_ALGORITHM_LINEAR"},
	{"music", "PITCH_ALGORITHM_MUSIC"},
	{"voice", "PITCH_ALGORITHM_VOICE"},
}

// AllPitchAlgorithms returns every pitch algorithm in declaration order.
func AllPitchAlgorithms() []PitchAlgorithm { return members[PitchAlgorithm](pitchTable) }

// ParsePitchAlgorithm parses a pitch algorithm wire name.
func ParsePitchAlgorithm(name string) (PitchAlgorithm, error) {
	return parse[PitchAlgorithm]("pitch algorithm", pitchTable, name)
}

// String returns the string representation of the pitch algorithm.
func (p PitchAlgorithm) String() string { return nameOf(pitchTable, int(p)) }

// ConstantName returns the native constant name.
func (p PitchAlgorithm) ConstantName() string { return constantOf(pitchTable, int(p)) }

// MarshalText implements encoding.TextMarshaler.
func (p PitchAlgorithm) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PitchAlgorithm) UnmarshalText(b []byte) error {
	v, err := ParsePitchAlgorithm(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
