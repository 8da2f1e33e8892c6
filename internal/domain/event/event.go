// Package event provides the identifiers and payloads of events delivered
// by the native player.
package event

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/osa030/trackbind/internal/domain/player"
)

// Event identifies a player, queue or remote-control event.
type Event string

const (
	PlaybackState            Event = "playback-state"
	PlaybackError            Event = "playback-error"
	PlaybackQueueEnded       Event = "playback-queue-ended"
	PlaybackTrackChanged     Event = "playback-track-changed"
	PlaybackMetadataReceived Event = "playback-metadata-received"
	RemotePlay               Event = "remote-play"
	RemotePlayID             Event = "remote-play-id"
	RemotePlaySearch         Event = "remote-play-search"
	RemotePause              Event = "remote-pause"
	RemoteStop               Event = "remote-stop"
	RemoteSkip               Event = "remote-skip"
	RemoteNext               Event = "remote-next"
	RemotePrevious           Event = "remote-previous"
	RemoteJumpForward        Event = "remote-jump-forward"
	RemoteJumpBackward       Event = "remote-jump-backward"
	RemoteSeek               Event = "remote-seek"
	RemoteSetRating          Event = "remote-set-rating"
	RemoteDuck               Event = "remote-duck"
	RemoteLike               Event = "remote-like"
	RemoteDislike            Event = "remote-dislike"
	RemoteBookmark           Event = "remote-bookmark"
)

var all = []Event{
	PlaybackState, PlaybackError, PlaybackQueueEnded, PlaybackTrackChanged, PlaybackMetadataReceived,
	RemotePlay, RemotePlayID, RemotePlaySearch, RemotePause, RemoteStop, RemoteSkip, RemoteNext,
	RemotePrevious, RemoteJumpForward, RemoteJumpBackward, RemoteSeek, RemoteSetRating, RemoteDuck,
	RemoteLike, RemoteDislike, RemoteBookmark,
}

// ErrUnknownEvent is returned when parsing an unrecognized event name.
var ErrUnknownEvent = errors.New("unknown event")

// All returns every event in declaration order.
func All() []Event {
	out := make([]Event, len(all))
	copy(out, all)
	return out
}

// Parse parses an event name.
func Parse(name string) (Event, error) {
	for _, e := range all {
		if string(e) == name {
			return e, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownEvent, "%q", name)
}

// Valid reports whether e is a known event.
func (e Event) Valid() bool {
	_, err := Parse(string(e))
	return err == nil
}

// IsRemote reports whether e originates from a remote control
// (lock screen, notification, headset, car).
func (e Event) IsRemote() bool {
	return strings.HasPrefix(string(e), "remote-")
}

// Message is an event together with its payload.
type Message struct {
	Type Event
	Data map[string]any
	// State is set for PlaybackState messages once the native code is resolved.
	State *player.State
}
