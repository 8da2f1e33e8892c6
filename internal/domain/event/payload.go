package event

import (
	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"
)

// Error codes carried by PlaybackError payloads.
const (
	ErrorCodePlayback         = "playback"
	ErrorCodePlaybackSource   = "playback-source"
	ErrorCodePlaybackRenderer = "playback-renderer"
)

// Metadata sources carried by PlaybackMetadataReceived payloads.
const (
	MetadataSourceID3        = "id3"
	MetadataSourceICY        = "icy"
	MetadataSourceICYHeaders = "icy-headers"
)

// ErrPayloadMismatch is returned when decoding a payload for a different event.
var ErrPayloadMismatch = errors.New("payload does not belong to this event")

// StatePayload accompanies PlaybackState. State is the raw native code.
type StatePayload struct {
	State int `mapstructure:"state"`
}

// ErrorPayload accompanies PlaybackError.
type ErrorPayload struct {
	Code    string `mapstructure:"code"`
	Message string `mapstructure:"message"`
}

// MetadataPayload accompanies PlaybackMetadataReceived (ID3 or ICY stream metadata).
type MetadataPayload struct {
	Source string `mapstructure:"source"`
	Title  string `mapstructure:"title"`
	URL    string `mapstructure:"url"`
	Artist string `mapstructure:"artist"`
	Album  string `mapstructure:"album"`
	Date   string `mapstructure:"date"`
	Genre  string `mapstructure:"genre"`
}

// TrackChangedPayload accompanies PlaybackTrackChanged.
// Track is the previous track id, empty at queue start.
type TrackChangedPayload struct {
	Track     string  `mapstructure:"track"`
	Position  float64 `mapstructure:"position"` // Seconds into the previous track
	NextTrack string  `mapstructure:"nextTrack"`
}

// QueueEndedPayload accompanies PlaybackQueueEnded.
type QueueEndedPayload struct {
	Track    string  `mapstructure:"track"`
	Position float64 `mapstructure:"position"`
}

func decode(m Message, want Event, out any) error {
	if m.Type != want {
		return errors.Wrapf(ErrPayloadMismatch, "want %s, got %s", want, m.Type)
	}
	if err := mapstructure.Decode(m.Data, out); err != nil {
		return errors.Wrapf(err, "failed to decode %s payload", want)
	}
	return nil
}

// DecodeState decodes a PlaybackState payload.
func (m Message) DecodeState() (StatePayload, error) {
	var p StatePayload
	return p, decode(m, PlaybackState, &p)
}

// DecodeError decodes a PlaybackError payload.
func (m Message) DecodeError() (ErrorPayload, error) {
	var p ErrorPayload
	return p, decode(m, PlaybackError, &p)
}

// DecodeMetadata decodes a PlaybackMetadataReceived payload.
func (m Message) DecodeMetadata() (MetadataPayload, error) {
	var p MetadataPayload
	return p, decode(m, PlaybackMetadataReceived, &p)
}

// DecodeTrackChanged decodes a PlaybackTrackChanged payload.
func (m Message) DecodeTrackChanged() (TrackChangedPayload, error) {
	var p TrackChangedPayload
	return p, decode(m, PlaybackTrackChanged, &p)
}

// DecodeQueueEnded decodes a PlaybackQueueEnded payload.
func (m Message) DecodeQueueEnded() (QueueEndedPayload, error) {
	var p QueueEndedPayload
	return p, decode(m, PlaybackQueueEnded, &p)
}
