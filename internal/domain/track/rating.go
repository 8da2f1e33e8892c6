package track

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// RatingKind identifies which variant a Rating holds.
type RatingKind int

const (
	RatingNone    RatingKind = iota // Unset
	RatingNumeric                   // Star count or percentage
	RatingBoolean                   // Heart or thumbs
)

// ErrInvalidRating is returned when a value is neither a number nor a boolean.
var ErrInvalidRating = errors.New("rating must be a number or a boolean")

// Rating is either a numeric score or a boolean flag.
type Rating struct {
	kind    RatingKind
	numeric float64
	boolean bool
}

// NewNumericRating returns a numeric rating.
func NewNumericRating(v float64) Rating {
	return Rating{kind: RatingNumeric, numeric: v}
}

// NewBooleanRating returns a boolean rating.
func NewBooleanRating(v bool) Rating {
	return Rating{kind: RatingBoolean, boolean: v}
}

// Kind returns the held variant.
func (r Rating) Kind() RatingKind { return r.kind }

// IsZero reports whether the rating is unset.
func (r Rating) IsZero() bool { return r.kind == RatingNone }

// Numeric returns the score and true if the rating is numeric.
func (r Rating) Numeric() (float64, bool) { return r.numeric, r.kind == RatingNumeric }

// Boolean returns the flag and true if the rating is boolean.
func (r Rating) Boolean() (bool, bool) { return r.boolean, r.kind == RatingBoolean }

// Native returns a float64, a bool or nil.
func (r Rating) Native() any {
	switch r.kind {
	case RatingNumeric:
		return r.numeric
	case RatingBoolean:
		return r.boolean
	default:
		return nil
	}
}

// ParseRating builds a Rating from a decoded value.
func ParseRating(v any) (Rating, error) {
	switch x := v.(type) {
	case nil:
		return Rating{}, nil
	case Rating:
		return x, nil
	case bool:
		return NewBooleanRating(x), nil
	case float64:
		return NewNumericRating(x), nil
	case float32:
		return NewNumericRating(float64(x)), nil
	case int:
		return NewNumericRating(float64(x)), nil
	case int64:
		return NewNumericRating(float64(x)), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Rating{}, errors.Wrapf(ErrInvalidRating, "%q", x.String())
		}
		return NewNumericRating(f), nil
	default:
		return Rating{}, errors.Wrapf(ErrInvalidRating, "got %T", v)
	}
}

// MarshalJSON encodes the rating as a JSON number or boolean.
func (r Rating) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Native())
}

// UnmarshalJSON decodes a JSON number or boolean.
func (r *Rating) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := ParseRating(v)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalYAML encodes the rating as a YAML scalar.
func (r Rating) MarshalYAML() (any, error) {
	return r.Native(), nil
}

// UnmarshalYAML decodes a YAML number or boolean.
func (r *Rating) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	parsed, err := ParseRating(v)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// UnmarshalTOML decodes a TOML number or boolean.
func (r *Rating) UnmarshalTOML(v any) error {
	parsed, err := ParseRating(v)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
