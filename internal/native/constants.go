// Package native binds enumeration members to the constants exported by the
// native playback module and encodes outbound payloads.
package native

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/osa030/trackbind/internal/domain/player"
)

// Errors
var (
	ErrUninitialized      = errors.New("native constants are not initialized")
	ErrAlreadyInitialized = errors.New("native constants are already initialized")
	ErrMissingConstant    = errors.New("native module does not export constant")
	ErrInvalidConstant    = errors.New("native constant is not an integer")
	ErrUnknownCode        = errors.New("native code does not map to any member")
)

// RequiredConstants returns every constant name the native-backed enums are bound to.
func RequiredConstants() []string {
	var names []string
	for _, m := range player.AllStates() {
		names = append(names, m.ConstantName())
	}
	for _, m := range player.AllCapabilities() {
		names = append(names, m.ConstantName())
	}
	for _, m := range player.AllRatingTypes() {
		names = append(names, m.ConstantName())
	}
	for _, m := range player.AllPitchAlgorithms() {
		names = append(names, m.ConstantName())
	}
	return names
}

// Constants is the lookup table from native constant name to value.
// It is filled once by Init; every lookup before that fails with ErrUninitialized.
type Constants struct {
	mu     sync.RWMutex
	ready  bool
	values map[string]int
}

// NewConstants creates an empty, uninitialized table.
func NewConstants() *Constants {
	return &Constants{}
}

// Init reads the native module's exported constants. Values may be any Go
// numeric type but must be integral. Every required constant must be present.
// Extra constants are kept and can be read with Value.
func (c *Constants) Init(exported map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready {
		return ErrAlreadyInitialized
	}

	values := make(map[string]int, len(exported))
	for name, raw := range exported {
		v, ok := toInt(raw)
		if !ok {
			if isRequired(name) {
				return errors.Wrapf(ErrInvalidConstant, "%s = %v (%T)", name, raw, raw)
			}
			continue
		}
		values[name] = v
	}

	var missing []string
	for _, name := range RequiredConstants() {
		if _, ok := values[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.WithHint(
			errors.Wrapf(ErrMissingConstant, "%s", strings.Join(missing, ", ")),
			"the native module must be loaded and export its constants before the binding initializes",
		)
	}

	c.values = values
	c.ready = true
	return nil
}

// Ready reports whether Init succeeded.
func (c *Constants) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// Value returns a raw constant by name.
func (c *Constants) Value(name string) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.ready {
		return 0, uninitialized(name)
	}
	v, ok := c.values[name]
	if !ok {
		return 0, errors.Wrapf(ErrMissingConstant, "%s", name)
	}
	return v, nil
}

// Snapshot returns a copy of the required constants, or nil before Init.
func (c *Constants) Snapshot() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.ready {
		return nil
	}
	out := make(map[string]int)
	for _, name := range RequiredConstants() {
		out[name] = c.values[name]
	}
	return out
}

func uninitialized(name string) error {
	return errors.WithHint(
		errors.Wrapf(ErrUninitialized, "lookup of %s", name),
		"call Init with the native module's constants first",
	)
}

// Resolve returns the native value of m.
func Resolve[M player.Member](c *Constants, m M) (int, error) {
	name := m.ConstantName()
	if name == "" {
		return 0, errors.Newf("%v is not a bound member", m)
	}
	return c.Value(name)
}

// ResolveAll resolves a list of members, preserving order.
func ResolveAll[M player.Member](c *Constants, ms []M) ([]int, error) {
	out := make([]int, 0, len(ms))
	for _, m := range ms {
		v, err := Resolve(c, m)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Decode maps a native code back to the member bound to it.
// When several members share a code, the first in members wins.
func Decode[M player.Member](c *Constants, members []M, code int) (M, error) {
	var zero M
	for _, m := range members {
		v, err := Resolve(c, m)
		if err != nil {
			return zero, err
		}
		if v == code {
			return m, nil
		}
	}
	return zero, errors.Wrapf(ErrUnknownCode, "%d", code)
}

// stateDecodeOrder puts Ready last: some platforms export it with the same
// code as Paused.
var stateDecodeOrder = []player.State{
	player.StateNone,
	player.StatePlaying,
	player.StatePaused,
	player.StateStopped,
	player.StateBuffering,
	player.StateConnecting,
	player.StateReady,
}

// DecodeState maps a native state code to a State.
func DecodeState(c *Constants, code int) (player.State, error) {
	return Decode(c, stateDecodeOrder, code)
}

func isRequired(name string) bool {
	for _, n := range RequiredConstants() {
		if n == name {
			return true
		}
	}
	return false
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int8:
		return int(x), true
	case int16:
		return int(x), true
	case int32:
		return int(x), true
	case int64:
		if x > math.MaxInt || x < math.MinInt {
			return 0, false
		}
		return int(x), true
	case uint:
		if uint64(x) > math.MaxInt {
			return 0, false
		}
		return int(x), true
	case uint8:
		return int(x), true
	case uint16:
		return int(x), true
	case uint32:
		return int(x), true
	case uint64:
		if x > math.MaxInt {
			return 0, false
		}
		return int(x), true
	case float32:
		return toInt(float64(x))
	case float64:
		// float64(math.MaxInt) rounds up to 2^63, so the upper bound is exclusive.
		if x != math.Trunc(x) || math.IsInf(x, 0) || math.IsNaN(x) ||
			x < math.MinInt || x >= math.MaxInt {
			return 0, false
		}
		return int(x), true
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return 0, false
		}
		return toInt(n)
	default:
		return 0, false
	}
}
