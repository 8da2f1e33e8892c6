// Package resource provides opaque platform resource handles and the
// URI-or-handle variant used for playable URLs and artwork.
package resource

import (
	"encoding/json"
	"math"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Object is an opaque handle to a resource bundled with the host app.
// It has no meaning outside the native module.
type Object int

// Kind identifies which variant a Source holds.
type Kind int

const (
	KindNone   Kind = iota // Unset
	KindURI                // URI string
	KindHandle             // Bundled resource handle
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindURI:
		return "uri"
	case KindHandle:
		return "handle"
	default:
		return "unknown"
	}
}

// ErrInvalidSource is returned when a value is neither a string nor an integer.
var ErrInvalidSource = errors.New("resource source must be a string or an integer handle")

// Source is either a URI or a resource handle.
type Source struct {
	kind   Kind
	uri    string
	handle Object
}

// NewURI returns a Source holding a URI.
func NewURI(uri string) Source {
	return Source{kind: KindURI, uri: uri}
}

// NewHandle returns a Source holding a resource handle.
func NewHandle(h Object) Source {
	return Source{kind: KindHandle, handle: h}
}

// Kind returns the held variant.
func (s Source) Kind() Kind { return s.kind }

// IsZero reports whether the source is unset.
func (s Source) IsZero() bool { return s.kind == KindNone }

// URI returns the URI and true if the source holds one.
func (s Source) URI() (string, bool) {
	return s.uri, s.kind == KindURI
}

// Handle returns the handle and true if the source holds one.
func (s Source) Handle() (Object, bool) {
	return s.handle, s.kind == KindHandle
}

// Native returns the value as handed to the native module: a string, an int or nil.
func (s Source) Native() any {
	switch s.kind {
	case KindURI:
		return s.uri
	case KindHandle:
		return int(s.handle)
	default:
		return nil
	}
}

// Parse builds a Source from a decoded value.
// Strings become URIs; integral numbers become handles; nil yields the zero Source.
func Parse(v any) (Source, error) {
	switch x := v.(type) {
	case nil:
		return Source{}, nil
	case Source:
		return x, nil
	case string:
		return NewURI(x), nil
	case Object:
		return NewHandle(x), nil
	case int:
		return NewHandle(Object(x)), nil
	case int32:
		return NewHandle(Object(x)), nil
	case int64:
		return NewHandle(Object(x)), nil
	case uint64:
		return NewHandle(Object(x)), nil
	case float64:
		if x != math.Trunc(x) {
			return Source{}, errors.Wrapf(ErrInvalidSource, "non-integral handle %v", x)
		}
		return NewHandle(Object(x)), nil
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return Source{}, errors.Wrapf(ErrInvalidSource, "handle %q", x.String())
		}
		return NewHandle(Object(n)), nil
	default:
		return Source{}, errors.Wrapf(ErrInvalidSource, "got %T", v)
	}
}

// MarshalJSON encodes the source as a JSON string or number.
func (s Source) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Native())
}

// UnmarshalJSON decodes a JSON string or number.
func (s *Source) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := Parse(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML encodes the source as a YAML scalar.
func (s Source) MarshalYAML() (any, error) {
	return s.Native(), nil
}

// UnmarshalYAML decodes a YAML scalar. Integer scalars become handles.
func (s *Source) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Wrapf(ErrInvalidSource, "line %d: expected scalar", node.Line)
	}
	if node.Tag == "!!int" {
		var n int
		if err := node.Decode(&n); err != nil {
			return err
		}
		*s = NewHandle(Object(n))
		return nil
	}
	*s = NewURI(node.Value)
	return nil
}

// UnmarshalTOML decodes a TOML string or integer.
func (s *Source) UnmarshalTOML(v any) error {
	parsed, err := Parse(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
