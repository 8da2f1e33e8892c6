package native

import (
	"context"
)

// RawEvent is an event as emitted by the native module, before decoding.
type RawEvent struct {
	Name string
	Data map[string]any
}

// Module is the native playback module. It owns all playback state; the
// binding only hands it payloads and relays its events.
type Module interface {
	// Constants returns the module's exported constants.
	Constants(ctx context.Context) (map[string]any, error)
	// SetupPlayer initializes the player with encoded PlayerOptions.
	SetupPlayer(ctx context.Context, opts map[string]any) error
	// UpdateOptions applies encoded MetadataOptions.
	UpdateOptions(ctx context.Context, opts map[string]any) error
	// Add enqueues encoded tracks before the track with insertBeforeID,
	// or at the end when it is empty.
	Add(ctx context.Context, tracks []map[string]any, insertBeforeID string) error
	// Remove removes tracks by id.
	Remove(ctx context.Context, ids []string) error
	// Events delivers events until the module shuts down.
	Events() <-chan RawEvent
}
