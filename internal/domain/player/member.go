// Package player provides the enumerations shared with the native playback module.
//
// State, Capability, RatingType and PitchAlgorithm carry identity only. Their
// integer encoding belongs to the native module and is resolved at runtime by
// the native package; never persist or compare the raw integers.
package player

import (
	"github.com/cockroachdb/errors"
)

// Member is a native-backed enumeration member.
type Member interface {
	comparable
	// String returns the stable wire name used in serialized configuration.
	String() string
	// ConstantName returns the native constant this member is bound to.
	ConstantName() string
}

// ErrUnknownMember is returned when parsing a name that is not a member.
var ErrUnknownMember = errors.New("unknown enum member")

type entry struct {
	name     string
	constant string
}

func nameOf(table []entry, i int) string {
	if i < 0 || i >= len(table) {
		return "unknown"
	}
	return table[i].name
}

func constantOf(table []entry, i int) string {
	if i < 0 || i >= len(table) {
		return ""
	}
	return table[i].constant
}

func parse[T ~int](kind string, table []entry, name string) (T, error) {
	for i, e := range table {
		if e.name == name {
			return T(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownMember, "%s %q", kind, name)
}

func members[T ~int](table []entry) []T {
	out := make([]T, len(table))
	for i := range table {
		out[i] = T(i)
	}
	return out
}
