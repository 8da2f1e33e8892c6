package simnative

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/trackbind/internal/native"
)

// Errors
var (
	ErrNotSetUp       = errors.New("the player is not initialized, call setupPlayer first")
	ErrAlreadySetUp   = errors.New("the player has already been initialized")
	ErrClosed         = errors.New("native module is closed")
	ErrTrackNotQueued = errors.New("track is not in the queue")
	ErrBufferFull     = errors.New("event buffer full")
)

const (
	eventBuffer = 32
	sendRetry   = 5 * time.Millisecond
)

// Module simulates the native playback module.
type Module struct {
	mu sync.Mutex

	profile  Profile
	setUp    bool
	resolved PlayerDefaults
	metadata map[string]any
	queue    []map[string]any

	events chan native.RawEvent
	closed bool
}

var _ native.Module = (*Module)(nil)

// New creates a simulated module for profile.
func New(profile Profile) *Module {
	return &Module{
		profile: profile,
		queue:   make([]map[string]any, 0),
		events:  make(chan native.RawEvent, eventBuffer),
	}
}

// Constants returns the profile's constants.
func (m *Module) Constants(ctx context.Context) (map[string]any, error) {
	out := make(map[string]any, len(m.profile.Constants))
	for k, v := range m.profile.Constants {
		out[k] = v
	}
	return out, nil
}

// SetupPlayer resolves opts against the profile defaults.
func (m *Module) SetupPlayer(ctx context.Context, opts map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.setUp {
		return ErrAlreadySetUp
	}

	resolved := m.profile.Defaults
	if err := mapstructure.Decode(opts, &resolved); err != nil {
		return errors.Wrap(err, "failed to decode player options")
	}
	m.resolved = resolved
	m.setUp = true

	zlog.Debug().Str("profile", m.profile.Name).
		Float64("min_buffer", resolved.MinBuffer).
		Float64("max_buffer", resolved.MaxBuffer).
		Float64("play_buffer", resolved.PlayBuffer).
		Bool("wait_for_buffer", resolved.WaitForBuffer).
		Msg("Player set up")
	return nil
}

// UpdateOptions stores the latest metadata options.
func (m *Module) UpdateOptions(ctx context.Context, opts map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.setUp {
		return ErrNotSetUp
	}
	m.metadata = opts
	return nil
}

// Add inserts tracks before insertBeforeID, or appends them.
func (m *Module) Add(ctx context.Context, tracks []map[string]any, insertBeforeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.setUp {
		return ErrNotSetUp
	}

	pos := len(m.queue)
	if insertBeforeID != "" {
		pos = m.indexLocked(insertBeforeID)
		if pos < 0 {
			return errors.Wrapf(ErrTrackNotQueued, "%q", insertBeforeID)
		}
	}

	next := make([]map[string]any, 0, len(m.queue)+len(tracks))
	next = append(next, m.queue[:pos]...)
	next = append(next, tracks...)
	next = append(next, m.queue[pos:]...)
	m.queue = next
	return nil
}

// Remove removes tracks by id. Unknown ids are ignored.
func (m *Module) Remove(ctx context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.setUp {
		return ErrNotSetUp
	}

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := m.queue[:0]
	for _, t := range m.queue {
		if id, _ := t["id"].(string); !drop[id] {
			kept = append(kept, t)
		}
	}
	m.queue = kept
	return nil
}

func (m *Module) indexLocked(id string) int {
	for i, t := range m.queue {
		if t["id"] == id {
			return i
		}
	}
	return -1
}

// Events returns the event channel.
func (m *Module) Events() <-chan native.RawEvent {
	return m.events
}

// Emit queues an event as if the native player had produced it.
func (m *Module) Emit(ev native.RawEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	select {
	case m.events <- ev:
		return nil
	default:
		return errors.Wrapf(ErrBufferFull, "dropping %s", ev.Name)
	}
}

// Send queues an event, waiting for buffer space until ctx is done.
func (m *Module) Send(ctx context.Context, ev native.RawEvent) error {
	for {
		err := m.Emit(ev)
		if !errors.Is(err, ErrBufferFull) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sendRetry):
		}
	}
}

// Close stops event delivery.
func (m *Module) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.events)
	}
}

// Resolved returns the player options after defaults were applied.
func (m *Module) Resolved() (PlayerDefaults, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolved, m.setUp
}

// Metadata returns the last metadata payload.
func (m *Module) Metadata() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.metadata
}

// Queue returns the ids of the queued tracks in order.
func (m *Module) Queue() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.queue))
	for _, t := range m.queue {
		id, _ := t["id"].(string)
		ids = append(ids, id)
	}
	return ids
}
